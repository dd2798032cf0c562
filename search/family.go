package search

import (
	"fmt"
	"strings"

	"github.com/Gorani9/matzip-sub000/utils"
)

// Family identifies one of the searchable entity collections.
type Family string

const (
	FamilyFollowers  Family = "followers"
	FamilyFollowings Family = "followings"
	FamilyReviews    Family = "reviews"
	FamilyComments   Family = "comments"
	FamilyScraps     Family = "scraps"
)

// Families lists every family in a stable order.
var Families = []Family{FamilyFollowers, FamilyFollowings, FamilyReviews, FamilyComments, FamilyScraps}

// ParseFamily resolves a family name given by a caller.
func ParseFamily(name string) (Family, error) {
	family := Family(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := schemas[family]; !ok {
		return "", utils.NewInvalidParameterError("family", name, fmt.Sprintf("must be one of %s", joinFamilies()))
	}
	return family, nil
}

func joinFamilies() string {
	names := make([]string, len(Families))
	for i, f := range Families {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// schema describes how a family maps onto the relational model. Every alias
// used below is fixed:
//
//	u  listed user, reviewer or comment author
//	su subject user (the profile whose followers, followings or scraps are listed)
//	fw follows row linking u and su
//	r  review
//	c  comment
//	s  scrap
type schema struct {
	from    string
	columns []string
	groupBy []string

	// primary entity ordering columns used for the default sort and the tie-break
	createdAt string
	id        string

	keywordField     string
	keywordMaxLength int

	// aliases whose is_blocked and is_deleted flags gate visibility
	hidden []string

	subject         string
	subjectField    string
	subjectRequired bool
	subjectIsUUID   bool
}

func userColumns(alias string) []string {
	return []string{
		alias + ".id",
		alias + ".uuid",
		alias + ".username",
		alias + ".profile_string",
		alias + ".profile_image_url",
		alias + ".level",
		alias + ".created_at",
		alias + ".updated_at",
	}
}

func reviewColumns() []string {
	return []string{
		"r.id",
		"r.uuid",
		"r.restaurant",
		"r.content",
		"r.rating",
		"r.created_at",
		"r.updated_at",
	}
}

func concat(parts ...[]string) []string {
	var out []string
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

const visibleSubject = "su.username = ? AND NOT su.is_blocked AND NOT su.is_deleted"

var schemas = map[Family]schema{
	FamilyFollowers: {
		from:             "follows fw JOIN users u ON u.id = fw.follower_id JOIN users su ON su.id = fw.followee_id",
		columns:          userColumns("u"),
		groupBy:          []string{"u.id"},
		createdAt:        "u.created_at",
		id:               "u.id",
		keywordField:     "u.username",
		keywordMaxLength: 30,
		hidden:           []string{"u"},
		subject:          visibleSubject,
		subjectField:     "username",
		subjectRequired:  true,
	},
	FamilyFollowings: {
		from:             "follows fw JOIN users u ON u.id = fw.followee_id JOIN users su ON su.id = fw.follower_id",
		columns:          userColumns("u"),
		groupBy:          []string{"u.id"},
		createdAt:        "u.created_at",
		id:               "u.id",
		keywordField:     "u.username",
		keywordMaxLength: 30,
		hidden:           []string{"u"},
		subject:          visibleSubject,
		subjectField:     "username",
		subjectRequired:  true,
	},
	FamilyReviews: {
		from:             "reviews r JOIN users u ON u.id = r.user_id",
		columns:          concat(reviewColumns(), userColumns("u")),
		groupBy:          []string{"r.id", "u.id"},
		createdAt:        "r.created_at",
		id:               "r.id",
		keywordField:     "r.content",
		keywordMaxLength: 100,
		hidden:           []string{"r", "u"},
		subject:          "u.username = ?",
		subjectField:     "username",
	},
	FamilyComments: {
		from: "comments c JOIN users u ON u.id = c.user_id JOIN reviews r ON r.id = c.review_id",
		columns: concat(
			[]string{"c.id", "c.uuid", "c.content", "c.created_at", "c.updated_at", "r.uuid"},
			userColumns("u"),
		),
		groupBy:          []string{"c.id", "u.id", "r.id"},
		createdAt:        "c.created_at",
		id:               "c.id",
		keywordField:     "c.content",
		keywordMaxLength: 100,
		hidden:           []string{"c", "u", "r"},
		subject:          "r.uuid = ?",
		subjectField:     "review",
		subjectIsUUID:    true,
	},
	FamilyScraps: {
		from: "scraps s JOIN reviews r ON r.id = s.review_id JOIN users u ON u.id = r.user_id JOIN users su ON su.id = s.user_id",
		columns: concat(
			[]string{"s.id", "s.description", "s.created_at"},
			reviewColumns(),
			userColumns("u"),
		),
		groupBy:          []string{"s.id", "r.id", "u.id"},
		createdAt:        "s.created_at",
		id:               "s.id",
		keywordField:     "r.content",
		keywordMaxLength: 100,
		hidden:           []string{"r", "u"},
		subject:          visibleSubject,
		subjectField:     "username",
		subjectRequired:  true,
	},
}

func lookupSchema(family Family) (schema, error) {
	s, ok := schemas[family]
	if !ok {
		return schema{}, fmt.Errorf("%w: unknown family %q", utils.ErrInvalidPlan, family)
	}
	return s, nil
}

// KeywordMaxLength is the longest keyword, in characters, accepted for family.
func KeywordMaxLength(family Family) int {
	return schemas[family].keywordMaxLength
}
