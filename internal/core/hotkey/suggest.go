package hotkey

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

var suggestionPool []string

func init() {
	seen := make(map[string]struct{}, len(keyAliases)+len(modifierTokens)+len(nameToCode))
	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		suggestionPool = append(suggestionPool, name)
	}
	for name := range modifierTokens {
		add(name)
	}
	for name := range keyAliases {
		add(name)
	}
	for name := range nameToCode {
		add(name)
	}
	sort.Strings(suggestionPool)
}

// UnknownTokens returns the tokens of s that resolve to neither a modifier nor a key.
func UnknownTokens(s string) []string {
	var unknown []string
	for _, token := range splitTokens(s) {
		if _, ok := modifierTokens[token]; ok {
			continue
		}
		if _, ok := resolveKey(token); ok {
			continue
		}
		unknown = append(unknown, token)
	}
	return unknown
}

// Suggest returns up to limit known names that fuzzily match token, best first.
func Suggest(token string, limit int) []string {
	token = strings.ToUpper(strings.TrimSpace(token))
	if token == "" || limit <= 0 {
		return nil
	}
	matches := fuzzy.Find(token, suggestionPool)
	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]string, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.Str)
	}
	return out
}
