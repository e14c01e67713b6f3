package generation

import "strings"

// accusativeForms holds irregular and indeclinable accusative forms of common niches.
var accusativeForms = map[string]string{
	"краса":         "красу",
	"мода":          "моду",
	"спорт":         "спорт",
	"їжа":           "їжу",
	"подорож":       "подорож",
	"технологія":    "технологію",
	"технології":    "технології",
	"музика":        "музику",
	"кіно":          "кіно",
	"фільм":         "фільм",
	"книга":         "книгу",
	"здоров'я":      "здоров'я",
	"фітнес":        "фітнес",
	"бізнес":        "бізнес",
	"освіта":        "освіту",
	"наука":         "науку",
	"мистецтво":     "мистецтво",
	"дизайн":        "дизайн",
	"фотографія":    "фотографію",
	"кулінарія":     "кулінарію",
	"природа":       "природу",
	"тварини":       "тварин",
	"діти":          "дітей",
	"сім'я":         "сім'ю",
	"робота":        "роботу",
	"кар'єра":       "кар'єру",
	"фінанси":       "фінанси",
	"інвестиції":    "інвестиції",
	"нерухомість":   "нерухомість",
	"автомобілі":    "автомобілі",
	"мотоцикли":     "мотоцикли",
	"футбол":        "футбол",
	"баскетбол":     "баскетбол",
	"теніс":         "теніс",
	"гольф":         "гольф",
	"йога":          "йогу",
	"медитація":     "медитацію",
	"психологія":    "психологію",
	"саморозвиток":  "саморозвиток",
	"мотивація":     "мотивацію",
	"успіх":         "успіх",
	"щастя":         "щастя",
	"любов":         "любов",
	"стосунки":      "стосунки",
	"дружба":        "дружбу",
	"сексуальність": "сексуальність",
	"стиль":         "стиль",
	"одяг":          "одяг",
	"взуття":        "взуття",
	"аксесуари":     "аксесуари",
	"косметика":     "косметику",
	"макіяж":        "макіяж",
	"догляд":        "догляд",
	"волосся":       "волосся",
	"шкіра":         "шкіру",
	"нігті":         "нігті",
	"парфуми":       "парфуми",
	"ароматерапія":  "ароматерапію",
}

// Accusative returns the Ukrainian accusative form of a lowercase niche.
// Unknown words ending in "а" or "я" take "у" or "ю"; anything else is kept.
func Accusative(word string) string {
	word = strings.ToLower(strings.TrimSpace(word))
	if form, ok := accusativeForms[word]; ok {
		return form
	}
	switch {
	case strings.HasSuffix(word, "а"):
		return strings.TrimSuffix(word, "а") + "у"
	case strings.HasSuffix(word, "я"):
		return strings.TrimSuffix(word, "я") + "ю"
	default:
		return word
	}
}
