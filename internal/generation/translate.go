package generation

import "strings"

// ukrainianTerms maps common English trend vocabulary to Ukrainian.
var ukrainianTerms = map[string]string{
	"fitness":              "фітнес",
	"workout":              "тренування",
	"gym":                  "спортзал",
	"gymlife":              "спортивнежиття",
	"sports":               "спорт",
	"athlete":              "атлет",
	"homeworkouts":         "домашнітренування",
	"mentalhealthinsports": "психічнездоров'яуспорті",
	"esports":              "кіберспорт",
	"beauty":               "краса",
	"skincare":             "доглядзашкірою",
	"makeup":               "макіяж",
	"natural":              "натуральний",
	"glow":                 "сяйво",
	"food":                 "їжа",
	"recipe":               "рецепт",
	"cooking":              "готування",
	"healthy":              "здоровий",
	"delicious":            "смачний",
	"travel":               "подорожі",
	"adventure":            "пригоди",
	"explore":              "досліджувати",
	"vacation":             "відпустка",
	"destination":          "напрямок",
	"fashion":              "мода",
	"style":                "стиль",
	"outfit":               "образ",
	"trend":                "тренд",
	"design":               "дизайн",
}

func translateTerm(word string) string {
	if translated, ok := ukrainianTerms[strings.ToLower(word)]; ok {
		return translated
	}
	return word
}

// TranslateHashtag replaces a known English hashtag with its Ukrainian form.
// A leading "#" is kept only when the input had one.
func TranslateHashtag(tag string) string {
	stem := strings.TrimPrefix(tag, "#")
	translated := translateTerm(stem)
	if translated == stem {
		return tag
	}
	return tag[:len(tag)-len(stem)] + translated
}

// TranslatePhrase translates a trend phrase word by word.
func TranslatePhrase(phrase string) string {
	words := strings.Split(phrase, " ")
	for i, word := range words {
		words[i] = translateTerm(word)
	}
	return strings.Join(words, " ")
}

// localize rewrites the trends content in place for Ukrainian responses.
func localize(content map[string]any) {
	if tags, ok := content[FieldHashtags].([]string); ok {
		out := make([]string, len(tags))
		for i, tag := range tags {
			out[i] = TranslateHashtag(tag)
		}
		content[FieldHashtags] = out
	}
	if trends, ok := content[FieldTrends].([]string); ok {
		out := make([]string, len(trends))
		for i, trend := range trends {
			out[i] = TranslatePhrase(trend)
		}
		content[FieldTrends] = out
	}
}
