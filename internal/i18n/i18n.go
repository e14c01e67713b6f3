// Package i18n loads the embedded message catalogs and resolves the
// response language for a request.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Lang is a supported response language.
type Lang string

// Supported languages. Ukrainian is the default.
const (
	LangUK Lang = "uk"
	LangEN Lang = "en"
)

//go:embed locales/*.json
var localeFS embed.FS

var matcher = language.NewMatcher([]language.Tag{language.Ukrainian, language.English})

// Catalog holds translated messages per language.
type Catalog struct {
	messages map[Lang]map[string]string
}

// Load parses the embedded catalogs.
func Load() (*Catalog, error) {
	catalog := &Catalog{messages: make(map[Lang]map[string]string)}
	for _, lang := range []Lang{LangUK, LangEN} {
		data, errRead := localeFS.ReadFile("locales/" + string(lang) + ".json")
		if errRead != nil {
			return nil, fmt.Errorf("i18n: read %s catalog: %w", lang, errRead)
		}
		var messages map[string]string
		if errUnmarshal := json.Unmarshal(data, &messages); errUnmarshal != nil {
			return nil, fmt.Errorf("i18n: parse %s catalog: %w", lang, errUnmarshal)
		}
		catalog.messages[lang] = messages
	}
	return catalog, nil
}

// MustLoad is Load for package initialization paths where the embedded
// catalogs are known to be valid.
func MustLoad() *Catalog {
	catalog, err := Load()
	if err != nil {
		panic(err)
	}
	return catalog
}

// T translates key into lang, substituting {name} placeholders from args.
// Unknown keys fall back to Ukrainian and then to the key itself.
func (c *Catalog) T(lang Lang, key string, args ...string) string {
	msg, ok := c.lookup(lang, key)
	if !ok {
		msg, ok = c.lookup(LangUK, key)
	}
	if !ok {
		return key
	}
	if len(args) > 1 {
		pairs := make([]string, 0, len(args))
		for i := 0; i+1 < len(args); i += 2 {
			pairs = append(pairs, "{"+args[i]+"}", args[i+1])
		}
		msg = strings.NewReplacer(pairs...).Replace(msg)
	}
	return msg
}

func (c *Catalog) lookup(lang Lang, key string) (string, bool) {
	if c == nil {
		return "", false
	}
	messages, ok := c.messages[lang]
	if !ok {
		return "", false
	}
	msg, ok := messages[key]
	return msg, ok
}

// Resolve picks the response language. An explicit lang parameter wins:
// "en" selects English and any other value selects Ukrainian. Without it,
// the Accept-Language header is matched, defaulting to Ukrainian.
func Resolve(langParam, acceptLanguage string) Lang {
	if param := strings.ToLower(strings.TrimSpace(langParam)); param != "" {
		if param == string(LangEN) {
			return LangEN
		}
		return LangUK
	}
	acceptLanguage = strings.TrimSpace(acceptLanguage)
	if acceptLanguage == "" {
		return LangUK
	}
	tags, _, errParse := language.ParseAcceptLanguage(acceptLanguage)
	if errParse != nil || len(tags) == 0 {
		return LangUK
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return LangUK
	}
	if index == 1 {
		return LangEN
	}
	return LangUK
}
