package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Gorani9/matzip-sub000/utils"
)

// SortKey is the canonical name of a sort option.
type SortKey string

const (
	SortByCreatedAt SortKey = "createdAt"
	SortByUsername  SortKey = "username"
	SortByLevel     SortKey = "level"
	SortByFollowers SortKey = "followers"
	SortByHearts    SortKey = "hearts"
	SortByScraps    SortKey = "scraps"
	SortByComments  SortKey = "comments"
	SortByRating    SortKey = "rating"
)

// SortKind tells the planner whether a key orders by a column or by a count.
type SortKind int

const (
	Direct SortKind = iota
	Aggregate
)

func (k SortKind) String() string {
	if k == Aggregate {
		return "aggregate"
	}
	return "direct"
}

// AggregateDef describes a count over a related collection, joined with a
// LEFT OUTER JOIN so rows without related records count as zero.
type AggregateDef struct {
	Table string
	Alias string
	On    string
}

// CountColumn is the column counted distinctly for the aggregate.
func (a *AggregateDef) CountColumn() string {
	return a.Alias + ".id"
}

type SortKeyDef struct {
	Key       SortKey
	Kind      SortKind
	Field     string
	Aggregate *AggregateDef
}

func direct(key SortKey, field string) SortKeyDef {
	return SortKeyDef{Key: key, Kind: Direct, Field: field}
}

func aggregate(key SortKey, table, alias, on string) SortKeyDef {
	return SortKeyDef{
		Key:       key,
		Kind:      Aggregate,
		Aggregate: &AggregateDef{Table: table, Alias: alias, On: on},
	}
}

// Accepted spellings, compared lowercase.
var sortKeyAliases = map[string]SortKey{
	"createdat":     SortByCreatedAt,
	"created_at":    SortByCreatedAt,
	"username":      SortByUsername,
	"level":         SortByLevel,
	"followers":     SortByFollowers,
	"followercount": SortByFollowers,
	"hearts":        SortByHearts,
	"heartcount":    SortByHearts,
	"scraps":        SortByScraps,
	"scrapcount":    SortByScraps,
	"comments":      SortByComments,
	"commentcount":  SortByComments,
	"rating":        SortByRating,
}

var (
	userSortKeys = []SortKeyDef{
		direct(SortByUsername, "u.username"),
		direct(SortByLevel, "u.level"),
		aggregate(SortByFollowers, "follows", "fc", "fc.followee_id = u.id"),
	}

	reviewSortKeys = []SortKeyDef{
		aggregate(SortByHearts, "hearts", "h", "h.review_id = r.id"),
		aggregate(SortByScraps, "scraps", "sc", "sc.review_id = r.id"),
		aggregate(SortByComments, "comments", "cm", "cm.review_id = r.id AND NOT cm.is_blocked AND NOT cm.is_deleted"),
		direct(SortByRating, "r.rating"),
	}

	authorSortKeys = []SortKeyDef{
		direct(SortByUsername, "u.username"),
		direct(SortByLevel, "u.level"),
	}

	familySortKeys = map[Family][][]SortKeyDef{
		FamilyFollowers:  {userSortKeys},
		FamilyFollowings: {userSortKeys},
		FamilyReviews:    {userSortKeys, reviewSortKeys},
		FamilyScraps:     {userSortKeys, reviewSortKeys},
		FamilyComments:   {authorSortKeys},
	}
)

// Registry maps every family to the sort keys it supports.
type Registry struct {
	defs map[Family]map[SortKey]SortKeyDef
}

// DefaultRegistry holds the sort keys of every family.
var DefaultRegistry = NewRegistry()

func NewRegistry() *Registry {
	r := &Registry{defs: make(map[Family]map[SortKey]SortKeyDef, len(schemas))}
	for family, s := range schemas {
		keys := map[SortKey]SortKeyDef{
			SortByCreatedAt: direct(SortByCreatedAt, s.createdAt),
		}
		for _, group := range familySortKeys[family] {
			for _, def := range group {
				keys[def.Key] = def
			}
		}
		r.defs[family] = keys
	}
	return r
}

// Lookup canonicalizes a caller supplied token and checks that family
// supports it. An empty token selects the default key.
func (r *Registry) Lookup(family Family, token string) (SortKey, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return SortByCreatedAt, nil
	}

	key, ok := sortKeyAliases[strings.ToLower(token)]
	if ok {
		_, ok = r.defs[family][key]
	}
	if !ok {
		return "", &utils.InvalidParameterError{
			Field:   "sort",
			Value:   token,
			Message: fmt.Sprintf("must be one of %s", strings.Join(r.names(family), ", ")),
			Err:     utils.ErrUnknownSortKey,
		}
	}

	return key, nil
}

// Resolve returns the definition registered for key. An empty key resolves to the
// default creation time ordering.
func (r *Registry) Resolve(family Family, key SortKey) (SortKeyDef, error) {
	keys, ok := r.defs[family]
	if !ok {
		return SortKeyDef{}, fmt.Errorf("%w: unknown family %q", utils.ErrInvalidPlan, family)
	}
	if key == "" {
		key = SortByCreatedAt
	}
	def, ok := keys[key]
	if !ok {
		return SortKeyDef{}, fmt.Errorf("%w: %q for %s", utils.ErrUnknownSortKey, key, family)
	}
	return def, nil
}

// Keys lists the canonical keys of family in alphabetical order.
func (r *Registry) Keys(family Family) []SortKey {
	keys := make([]SortKey, 0, len(r.defs[family]))
	for k := range r.defs[family] {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func (r *Registry) names(family Family) []string {
	keys := r.Keys(family)
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = string(k)
	}
	return names
}
