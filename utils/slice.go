package utils

// Slice is one page of an ordered result set. It knows whether a following
// page exists but never how many rows match in total.
type Slice[T any] struct {
	Content []T
	Page    int
	Size    int
	HasNext bool
}

// BuildSlice turns rows fetched with LIMIT size+1 into a Slice. The extra row,
// when present, only signals that another page exists and is dropped.
func BuildSlice[T any](rows []T, page, size int) *Slice[T] {
	if size < 0 {
		size = 0
	}

	hasNext := len(rows) > size
	if hasNext {
		rows = rows[:size]
	}
	if rows == nil {
		rows = []T{}
	}

	return &Slice[T]{
		Content: rows,
		Page:    page,
		Size:    size,
		HasNext: hasNext,
	}
}

func (s *Slice[T]) NumberOfElements() int {
	return len(s.Content)
}

func (s *Slice[T]) IsFirst() bool {
	return s.Page == 0
}

func (s *Slice[T]) IsLast() bool {
	return !s.HasNext
}

func (s *Slice[T]) IsEmpty() bool {
	return len(s.Content) == 0
}
