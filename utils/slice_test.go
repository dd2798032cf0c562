package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSlice(t *testing.T) {
	tests := []struct {
		name    string
		rows    []int
		page    int
		size    int
		want    []int
		hasNext bool
		first   bool
		empty   bool
	}{
		{name: "overfetched row is dropped", rows: []int{1, 2, 3, 4}, page: 0, size: 3, want: []int{1, 2, 3}, hasNext: true, first: true},
		{name: "exactly size rows", rows: []int{1, 2, 3}, page: 1, size: 3, want: []int{1, 2, 3}},
		{name: "short last page", rows: []int{7}, page: 2, size: 3, want: []int{7}},
		{name: "no rows", rows: nil, page: 5, size: 3, want: []int{}, empty: true},
		{name: "first empty page", rows: []int{}, page: 0, size: 10, want: []int{}, first: true, empty: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := BuildSlice(tt.rows, tt.page, tt.size)

			assert.Equal(t, tt.want, s.Content)
			assert.Equal(t, tt.page, s.Page)
			assert.Equal(t, tt.size, s.Size)
			assert.Equal(t, tt.hasNext, s.HasNext)
			assert.Equal(t, !tt.hasNext, s.IsLast())
			assert.Equal(t, tt.first, s.IsFirst())
			assert.Equal(t, tt.empty, s.IsEmpty())
			assert.Equal(t, len(tt.want), s.NumberOfElements())
			assert.LessOrEqual(t, s.NumberOfElements(), tt.size)
		})
	}
}
