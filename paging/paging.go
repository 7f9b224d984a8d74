// Package paging walks paginated API listings to completion and splits
// identifier sequences into bounded batches.
package paging

import "context"

// Page is one response unit from a paginated listing endpoint. More is true
// iff the API reported a further page beyond this one.
type Page[T any] struct {
	Items []T
	More  bool
}

// Source produces the pages of one listing endpoint, in order. The first
// NextPage call fetches the first page; each later call fetches the page
// after the last one returned. The continuation cursor is the Source's own
// business.
type Source[T any] interface {
	NextPage(ctx context.Context) (Page[T], error)
}

// All drains src, returning every item in API order. It stops after the
// first page whose More is false; a source that never clears More never
// returns. If any page fetch fails, All aborts and discards everything
// accumulated so far.
func All[T any](ctx context.Context, src Source[T]) ([]T, error) {
	page, err := src.NextPage(ctx)
	if err != nil {
		return nil, err
	}
	items := page.Items
	for page.More {
		if page, err = src.NextPage(ctx); err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
	}
	return items, nil
}
