package generation

import (
	"fmt"
	"strings"

	"github.com/contentforge/contentforge-api/internal/i18n"
)

var hashtagSuffixes = []string{"", "trends", "content", "ideas", "tips"}

var trendPhrases = map[i18n.Lang][]string{
	i18n.LangUK: {
		"Короткі відео про %s",
		"Інформативні пости про %s",
		"Інтерактивний контент про %s",
	},
	i18n.LangEN: {
		"Short videos about %s",
		"Informative posts about %s",
		"Interactive content about %s",
	},
}

type ideaTemplate struct {
	title       string
	description string
}

var ideaTemplates = map[i18n.Lang][]ideaTemplate{
	i18n.LangUK: {
		{"Короткі відео про %s", "Динамічні ролики до хвилини, які швидко знайомлять аудиторію з темою «%s»."},
		{"Інформативні пости про %s", "Корисні факти та пояснення на тему «%s», які аудиторія захоче зберегти."},
		{"Інтерактивний контент про %s", "Опитування, вікторини та запитання, що залучають аудиторію до обговорення теми «%s»."},
		{"Поради та лайфхаки: %s", "Практичні поради на тему «%s», які можна застосувати одразу."},
		{"За лаштунками: %s", "Показ процесу та історій, що стоять за темою «%s»."},
		{"Тренди тижня: %s", "Огляд актуальних новин і трендів у темі «%s»."},
	},
	i18n.LangEN: {
		{"Short videos about %s", "Punchy clips under a minute that introduce the audience to %s."},
		{"Informative posts about %s", "Useful facts and explanations about %s that your audience will want to save."},
		{"Interactive content about %s", "Polls, quizzes and questions that get the audience talking about %s."},
		{"Tips and hacks: %s", "Practical advice on %s that can be applied right away."},
		{"Behind the scenes: %s", "Show the process and the stories behind %s."},
		{"Trends of the week: %s", "A roundup of the latest news and trends in %s."},
	},
}

// Template builds the deterministic fallback content for req. It never fails.
func Template(req Request) map[string]any {
	req = req.normalized()
	niche := strings.ToLower(req.Niche)

	if req.Schema == SchemaIdeas {
		return map[string]any{FieldIdeas: templateIdeas(req.Lang, niche, req.Count)}
	}

	hashtags := make([]string, 0, len(hashtagSuffixes))
	tag := hashtagStem(niche)
	for _, suffix := range hashtagSuffixes {
		hashtags = append(hashtags, "#"+tag+suffix)
	}

	subject := subjectFor(req.Lang, niche)
	phrases := trendPhrases[req.Lang]
	trends := make([]string, 0, len(phrases))
	for _, phrase := range phrases {
		trends = append(trends, fmt.Sprintf(phrase, subject))
	}
	return map[string]any{FieldHashtags: hashtags, FieldTrends: trends}
}

func templateIdeas(lang i18n.Lang, niche string, count int) []Idea {
	templates := ideaTemplates[lang]
	subject := subjectFor(lang, niche)
	ideas := make([]Idea, 0, count)
	for i := 0; i < count; i++ {
		tpl := templates[i%len(templates)]
		title := fmt.Sprintf(tpl.title, subject)
		if round := i / len(templates); round > 0 {
			title = fmt.Sprintf("%s (%d)", title, round+1)
		}
		ideas = append(ideas, Idea{
			Title:       title,
			Description: fmt.Sprintf(tpl.description, niche),
		})
	}
	return ideas
}

// subjectFor returns the niche in the grammatical form used after "про".
func subjectFor(lang i18n.Lang, niche string) string {
	if lang == i18n.LangUK {
		return Accusative(niche)
	}
	return niche
}

// hashtagStem strips characters that cannot appear inside a hashtag.
func hashtagStem(niche string) string {
	var b strings.Builder
	for _, r := range niche {
		switch r {
		case ' ', '\t', '#', ',', '.', '!', '?':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
