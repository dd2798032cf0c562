package search

import (
	"fmt"

	"github.com/Gorani9/matzip-sub000/utils"
)

// OrderTerm is one ORDER BY expression.
type OrderTerm struct {
	Expr      string
	Ascending bool
}

func (o OrderTerm) String() string {
	if o.Ascending {
		return o.Expr + " ASC"
	}
	return o.Expr + " DESC"
}

// ExecutionPlan is a fully resolved search statement for one page.
type ExecutionPlan struct {
	Family    Family
	Columns   []string
	From      string
	Aggregate *AggregateDef
	Where     *Predicate
	GroupBy   []string
	OrderBy   []OrderTerm
	Limit     int
	Offset    int
}

// Planner turns validated requests into execution plans.
type Planner struct {
	registry *Registry
	strategy KeywordStrategy
}

func NewPlanner(registry *Registry, strategy KeywordStrategy) *Planner {
	if registry == nil {
		registry = DefaultRegistry
	}
	if strategy == "" {
		strategy = KeywordContains
	}
	return &Planner{
		registry: registry,
		strategy: strategy,
	}
}

// Plan builds the statement for req over family, scoped to subject. The
// request is expected to have passed validation; anything validation should
// have caught is reported as ErrInvalidPlan.
func (p *Planner) Plan(family Family, subject string, req *SearchRequest) (*ExecutionPlan, error) {
	s, err := lookupSchema(family)
	if err != nil {
		return nil, err
	}
	if req == nil || req.Size <= 0 || req.Page < 0 {
		return nil, fmt.Errorf("%w: page and size out of range", utils.ErrInvalidPlan)
	}

	def, err := p.registry.Resolve(family, req.SortKey)
	if err != nil {
		return nil, err
	}

	var subjectPredicate *Predicate
	switch {
	case subject != "":
		subjectPredicate = &Predicate{SQL: s.subject, Args: []any{subject}}
	case s.subjectRequired:
		return nil, fmt.Errorf("%w: %s requires a subject", utils.ErrInvalidPlan, family)
	}

	visibility, err := VisibilityPredicate(family)
	if err != nil {
		return nil, err
	}

	plan := &ExecutionPlan{
		Family:  family,
		Columns: s.columns,
		From:    s.from,
		Where:   And(visibility, subjectPredicate, KeywordPredicate(p.strategy, s.keywordField, req.Keyword)),
		Limit:   req.Size + 1,
		Offset:  req.Offset(),
	}

	var primary OrderTerm
	switch def.Kind {
	case Aggregate:
		plan.Aggregate = def.Aggregate
		plan.GroupBy = s.groupBy
		primary = OrderTerm{Expr: sortCountColumn, Ascending: req.Ascending}
	default:
		primary = OrderTerm{Expr: def.Field, Ascending: req.Ascending}
	}

	plan.OrderBy = []OrderTerm{primary}
	for _, tie := range []OrderTerm{{Expr: s.createdAt}, {Expr: s.id}} {
		if tie.Expr != primary.Expr {
			plan.OrderBy = append(plan.OrderBy, tie)
		}
	}

	return plan, nil
}
