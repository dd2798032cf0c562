package search

import (
	"testing"

	"github.com/Gorani9/matzip-sub000/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Resolve(t *testing.T) {
	registry := NewRegistry()

	tests := []struct {
		family Family
		key    SortKey
		kind   SortKind
		field  string
		table  string
	}{
		{family: FamilyFollowers, key: SortByUsername, kind: Direct, field: "u.username"},
		{family: FamilyFollowings, key: SortByLevel, kind: Direct, field: "u.level"},
		{family: FamilyFollowers, key: SortByFollowers, kind: Aggregate, table: "follows"},
		{family: FamilyReviews, key: SortByHearts, kind: Aggregate, table: "hearts"},
		{family: FamilyReviews, key: SortByRating, kind: Direct, field: "r.rating"},
		{family: FamilyScraps, key: SortByComments, kind: Aggregate, table: "comments"},
		{family: FamilyScraps, key: SortByScraps, kind: Aggregate, table: "scraps"},
		{family: FamilyComments, key: SortByUsername, kind: Direct, field: "u.username"},
		{family: FamilyReviews, key: SortByCreatedAt, kind: Direct, field: "r.created_at"},
		{family: FamilyScraps, key: SortByCreatedAt, kind: Direct, field: "s.created_at"},
		{family: FamilyComments, key: "", kind: Direct, field: "c.created_at"},
	}

	for _, tt := range tests {
		t.Run(string(tt.family)+"/"+string(tt.key), func(t *testing.T) {
			def, err := registry.Resolve(tt.family, tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, def.Kind)
			if tt.kind == Direct {
				assert.Equal(t, tt.field, def.Field)
				assert.Nil(t, def.Aggregate)
			} else {
				require.NotNil(t, def.Aggregate)
				assert.Equal(t, tt.table, def.Aggregate.Table)
			}
		})
	}
}

func TestRegistry_ResolveRejectsKeysOutsideFamily(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Resolve(FamilyComments, SortByHearts)
	assert.ErrorIs(t, err, utils.ErrUnknownSortKey)

	_, err = registry.Resolve(FamilyFollowers, SortByRating)
	assert.ErrorIs(t, err, utils.ErrUnknownSortKey)

	_, err = registry.Resolve(Family("likes"), SortByCreatedAt)
	assert.ErrorIs(t, err, utils.ErrInvalidPlan)
}

func TestRegistry_Lookup(t *testing.T) {
	registry := NewRegistry()

	tests := []struct {
		token string
		want  SortKey
	}{
		{token: "", want: SortByCreatedAt},
		{token: "createdAt", want: SortByCreatedAt},
		{token: "CREATED_AT", want: SortByCreatedAt},
		{token: "followerCount", want: SortByFollowers},
		{token: "heartcount", want: SortByHearts},
		{token: " scrapCount ", want: SortByScraps},
		{token: "commentCount", want: SortByComments},
		{token: "Rating", want: SortByRating},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			key, err := registry.Lookup(FamilyReviews, tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.want, key)
		})
	}
}

func TestRegistry_LookupListsValidKeys(t *testing.T) {
	_, err := NewRegistry().Lookup(FamilyComments, "hearts")

	var invalid *utils.InvalidParameterError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "sort", invalid.Field)
	assert.Equal(t, "must be one of createdAt, level, username", invalid.Message)
	assert.ErrorIs(t, err, utils.ErrUnknownSortKey)
}

func TestRegistry_Keys(t *testing.T) {
	registry := NewRegistry()

	assert.Equal(t,
		[]SortKey{SortByCreatedAt, SortByFollowers, SortByLevel, SortByUsername},
		registry.Keys(FamilyFollowers),
	)
	assert.Len(t, registry.Keys(FamilyReviews), 8)
	assert.Equal(t, registry.Keys(FamilyReviews), registry.Keys(FamilyScraps))
}
