package search

import "strings"

// Predicate is a boolean SQL fragment. Placeholders are written as ? and
// numbered when the whole statement is rendered.
type Predicate struct {
	SQL  string
	Args []any
}

// And joins the non-nil predicates with AND. It returns nil when nothing is left.
func And(preds ...*Predicate) *Predicate {
	var parts []string
	var args []any
	for _, p := range preds {
		if p == nil || p.SQL == "" {
			continue
		}
		parts = append(parts, p.SQL)
		args = append(args, p.Args...)
	}
	if len(parts) == 0 {
		return nil
	}
	return &Predicate{SQL: strings.Join(parts, " AND "), Args: args}
}
