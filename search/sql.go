package search

import (
	"strconv"
	"strings"
)

const sortCountColumn = "sort_count"

// SQL renders the plan as a single PostgreSQL statement with numbered
// placeholders, returning the statement and its arguments in order.
func (p *ExecutionPlan) SQL() (string, []any) {
	var b strings.Builder
	var args []any

	b.WriteString("SELECT ")
	b.WriteString(strings.Join(p.Columns, ", "))
	if p.Aggregate != nil {
		b.WriteString(", COUNT(DISTINCT ")
		b.WriteString(p.Aggregate.CountColumn())
		b.WriteString(") AS ")
		b.WriteString(sortCountColumn)
	}

	b.WriteString(" FROM ")
	b.WriteString(p.From)
	if p.Aggregate != nil {
		b.WriteString(" LEFT OUTER JOIN ")
		b.WriteString(p.Aggregate.Table)
		b.WriteString(" ")
		b.WriteString(p.Aggregate.Alias)
		b.WriteString(" ON ")
		b.WriteString(p.Aggregate.On)
	}

	if p.Where != nil {
		b.WriteString(" WHERE ")
		b.WriteString(p.Where.SQL)
		args = append(args, p.Where.Args...)
	}

	if p.Aggregate != nil && len(p.GroupBy) > 0 {
		b.WriteString(" GROUP BY ")
		b.WriteString(strings.Join(p.GroupBy, ", "))
	}

	if len(p.OrderBy) > 0 {
		terms := make([]string, len(p.OrderBy))
		for i, term := range p.OrderBy {
			terms[i] = term.String()
		}
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(terms, ", "))
	}

	b.WriteString(" LIMIT ? OFFSET ?")
	args = append(args, p.Limit, p.Offset)

	return numberPlaceholders(b.String()), args
}

// numberPlaceholders rewrites each ? as $1, $2 and so on.
func numberPlaceholders(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}
