package search

import "strings"

// VisibilityPredicate hides blocked and soft-deleted records of family. It is
// always part of a plan and cannot be switched off by callers.
func VisibilityPredicate(family Family) (*Predicate, error) {
	s, err := lookupSchema(family)
	if err != nil {
		return nil, err
	}

	parts := make([]string, 0, len(s.hidden))
	for _, alias := range s.hidden {
		parts = append(parts, visible(alias))
	}

	return &Predicate{SQL: strings.Join(parts, " AND ")}, nil
}

func visible(alias string) string {
	return "NOT " + alias + ".is_blocked AND NOT " + alias + ".is_deleted"
}
