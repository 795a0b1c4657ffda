// Package casing translates caller-facing filter names into the field names
// the listing API expects.
// This is part of the platform layer and contains no business logic.
package casing

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Camel converts an underscore separated key to camelCase. The first word is
// kept as-is and every following word is title-cased, so keys without an
// underscore come back unchanged.
func Camel(key string) string {
	if !strings.Contains(key, "_") {
		return key
	}

	words := strings.Split(key, "_")
	// Casers are stateful and must not be shared between goroutines.
	title := cases.Title(language.Und)

	var b strings.Builder
	b.Grow(len(key))
	b.WriteString(words[0])
	for _, word := range words[1:] {
		b.WriteString(title.String(word))
	}
	return b.String()
}

// CamelKeys returns a copy of m with every top-level key passed through Camel.
// Values are copied unchanged; nested maps keep their original keys.
// When several keys map to the same camelCase key, a key already in camelCase
// wins, otherwise the lexically smallest key wins.
func CamelKeys(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	source := make(map[string]string, len(m))
	for key, value := range m {
		camel := Camel(key)
		if prev, ok := source[camel]; ok && !replaces(key, prev, camel) {
			continue
		}
		out[camel] = value
		source[camel] = key
	}
	return out
}

func replaces(key, prev, camel string) bool {
	if (key == camel) != (prev == camel) {
		return key == camel
	}
	return key < prev
}
