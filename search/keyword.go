package search

import (
	"fmt"
	"strings"
)

// KeywordStrategy selects how a keyword is matched against the family's text field.
type KeywordStrategy string

const (
	// KeywordContains uses strpos over lowercased text. No index is needed.
	KeywordContains KeywordStrategy = "contains"
	// KeywordTrigram uses ILIKE, which the pg_trgm GIN indexes can serve.
	KeywordTrigram KeywordStrategy = "trigram"
)

// ParseKeywordStrategy reads the configured strategy name. Blank means contains.
func ParseKeywordStrategy(name string) (KeywordStrategy, error) {
	switch KeywordStrategy(strings.ToLower(strings.TrimSpace(name))) {
	case "", KeywordContains:
		return KeywordContains, nil
	case KeywordTrigram:
		return KeywordTrigram, nil
	default:
		return "", fmt.Errorf("unknown keyword strategy %q: must be contains or trigram", name)
	}
}

// KeywordPredicate builds a case-insensitive substring match of keyword on
// field. A blank keyword yields nil so no filter is applied.
func KeywordPredicate(strategy KeywordStrategy, field, keyword string) *Predicate {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil
	}

	if strategy == KeywordTrigram {
		return &Predicate{
			SQL:  fmt.Sprintf("%s ILIKE ?", field),
			Args: []any{"%" + escapeLike(keyword) + "%"},
		}
	}

	return &Predicate{
		SQL:  fmt.Sprintf("strpos(lower(%s), lower(?)) > 0", field),
		Args: []any{keyword},
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE metacharacters match literally under the default
// backslash escape.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
