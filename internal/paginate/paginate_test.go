package paginate

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAll(t *testing.T) {
	pages := []Page[int]{
		{Nodes: []int{1, 2}, EndCursor: "a", HasNextPage: true},
		{Nodes: []int{3}, EndCursor: "b", HasNextPage: true},
		{Nodes: []int{4, 5}, HasNextPage: false},
	}

	var gotCursors []string
	call := 0
	nodes, err := All(context.Background(), func(ctx context.Context, cursor string) (Page[int], error) {
		gotCursors = append(gotCursors, cursor)
		page := pages[call]
		call++
		return page, nil
	})

	assert.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, nodes)
	assert.Equal(t, []string{"", "a", "b"}, gotCursors)
}

func TestAllSinglePage(t *testing.T) {
	nodes, err := All(context.Background(), func(ctx context.Context, cursor string) (Page[string], error) {
		return Page[string]{Nodes: []string{"only"}}, nil
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"only"}, nodes)
}

func TestAllPropagatesError(t *testing.T) {
	call := 0
	_, err := All(context.Background(), func(ctx context.Context, cursor string) (Page[int], error) {
		call++
		if call == 2 {
			return Page[int]{}, fmt.Errorf("boom")
		}
		return Page[int]{Nodes: []int{1}, EndCursor: "a", HasNextPage: true}, nil
	})

	assert.Error(t, err)
	assert.Equal(t, 2, call)
}
