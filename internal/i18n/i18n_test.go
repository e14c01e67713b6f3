package i18n

import (
	"testing"
)

func TestLoadAndTranslate(t *testing.T) {
	catalog, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := catalog.T(LangEN, "auth.signup_success"); got != "Registration successful" {
		t.Fatalf("unexpected en message %q", got)
	}
	if got := catalog.T(LangUK, "auth.signup_success"); got != "Реєстрація успішна" {
		t.Fatalf("unexpected uk message %q", got)
	}
	if got := catalog.T(LangEN, "does.not.exist"); got != "does.not.exist" {
		t.Fatalf("expected key fallback, got %q", got)
	}
}

func TestTranslatePlaceholders(t *testing.T) {
	catalog := MustLoad()
	got := catalog.T(LangUK, "note.partial", "provider", "Grok")
	want := "Частково використано стандартні тренди через неповну відповідь від Grok API"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	catalog := MustLoad()
	for key := range catalog.messages[LangUK] {
		if _, ok := catalog.messages[LangEN][key]; !ok {
			t.Fatalf("english catalog missing %q", key)
		}
	}
	for key := range catalog.messages[LangEN] {
		if _, ok := catalog.messages[LangUK][key]; !ok {
			t.Fatalf("ukrainian catalog missing %q", key)
		}
	}
}

func TestResolve(t *testing.T) {
	cases := []struct {
		param  string
		accept string
		want   Lang
	}{
		{"en", "", LangEN},
		{"EN", "uk-UA", LangEN},
		{"uk", "en-US", LangUK},
		{"de", "en-US", LangUK},
		{"", "en-US,en;q=0.9", LangEN},
		{"", "uk-UA,uk;q=0.9,en;q=0.8", LangUK},
		{"", "", LangUK},
		{"", "ja-JP", LangUK},
	}
	for _, tc := range cases {
		if got := Resolve(tc.param, tc.accept); got != tc.want {
			t.Fatalf("Resolve(%q,%q)=%q, want %q", tc.param, tc.accept, got, tc.want)
		}
	}
}
