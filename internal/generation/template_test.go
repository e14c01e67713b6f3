package generation

import (
	"strings"
	"testing"

	"github.com/contentforge/contentforge-api/internal/i18n"
)

func TestAccusative(t *testing.T) {
	cases := map[string]string{
		"краса":   "красу",
		"діти":    "дітей",
		"Кава":    "каву",
		"пісня":   "пісню",
		"спорт":   "спорт",
		"music":   "music",
		" Мода ":  "моду",
		"тварини": "тварин",
	}
	for in, want := range cases {
		if got := Accusative(in); got != want {
			t.Fatalf("Accusative(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTemplate_EnglishTrends(t *testing.T) {
	content := Template(Request{Niche: "Street Food", Lang: i18n.LangEN})
	hashtags := content[FieldHashtags].([]string)
	if hashtags[0] != "#streetfood" || hashtags[1] != "#streetfoodtrends" {
		t.Fatalf("unexpected hashtags %v", hashtags)
	}
	trends := content[FieldTrends].([]string)
	if trends[2] != "Interactive content about street food" {
		t.Fatalf("unexpected trends %v", trends)
	}
}

func TestTranslateHelpers(t *testing.T) {
	if got := TranslateHashtag("#Travel"); got != "#подорожі" {
		t.Fatalf("unexpected hashtag %q", got)
	}
	if got := TranslateHashtag("fitness"); got != "фітнес" {
		t.Fatalf("bare tag must stay without prefix, got %q", got)
	}
	if got := TranslateHashtag("#unknown"); got != "#unknown" {
		t.Fatalf("unknown hashtag changed to %q", got)
	}
	if got := TranslatePhrase("fashion outfit ideas"); got != "мода образ ideas" {
		t.Fatalf("unexpected phrase %q", got)
	}
}

func TestBuildPrompt(t *testing.T) {
	system, user := BuildPrompt(Request{Niche: "кава", Audience: "студенти"})
	if !strings.Contains(system, "трендів") {
		t.Fatalf("unexpected system prompt %q", system)
	}
	if !strings.Contains(user, `"кава"`) || !strings.Contains(user, "Аудиторія: студенти") || strings.Contains(user, "Платформа") {
		t.Fatalf("unexpected user prompt %q", user)
	}

	_, user = BuildPrompt(Request{Schema: SchemaIdeas, Niche: "coffee", Count: 3, Lang: i18n.LangEN})
	if !strings.Contains(user, "Generate 3 content ideas") || !strings.Contains(user, `"ideas"`) {
		t.Fatalf("unexpected ideas prompt %q", user)
	}
}
