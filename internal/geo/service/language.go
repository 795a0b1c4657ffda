package service

import (
	"fmt"
	"strings"

	"homegate_search/platform/apperr"

	"golang.org/x/text/language"
)

// SupportedLanguages are the lookup languages the listing API accepts.
var SupportedLanguages = []string{"en", "de", "fr", "it"}

// NormalizeLanguage reduces a BCP 47 tag such as "de-CH" to its base language
// and checks that the listing API supports it. An empty string yields the default.
func NormalizeLanguage(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultLanguage, nil
	}

	tag, err := language.Parse(raw)
	if err != nil {
		return "", apperr.Configuration(fmt.Sprintf(
			"invalid search language %q: only 'en', 'de', 'fr', or 'it' are accepted", raw,
		))
	}

	base, _ := tag.Base()
	code := base.String()
	for _, supported := range SupportedLanguages {
		if code == supported {
			return code, nil
		}
	}

	return "", apperr.Configuration(fmt.Sprintf(
		"invalid search language %q: only 'en', 'de', 'fr', or 'it' are accepted", raw,
	))
}
