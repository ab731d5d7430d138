// Package paginate provides a cursor-pagination drain shared by the GitHub
// and Notion clients.
package paginate

import "context"

// Page is one page of nodes together with the cursor state the source
// reported for it.
type Page[T any] struct {
	Nodes       []T
	EndCursor   string
	HasNextPage bool
}

// All drains every page from fetch, feeding each call the previous page's
// end cursor (empty string on the first call), and returns the concatenated
// nodes. The first fetch error aborts the drain.
func All[T any](ctx context.Context, fetch func(ctx context.Context, cursor string) (Page[T], error)) ([]T, error) {
	var nodes []T
	cursor := ""
	for {
		page, err := fetch(ctx, cursor)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, page.Nodes...)
		if !page.HasNextPage {
			return nodes, nil
		}
		cursor = page.EndCursor
	}
}
