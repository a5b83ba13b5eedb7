package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// DefaultPageSize is used when a PageQuery leaves PageSize unset.
const DefaultPageSize = 10

// Page is the server's pagination envelope. The wire shape is preserved
// exactly; the client never re-aggregates across pages.
type Page[T any] struct {
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
	Data       []T `json:"data"`
}

// PageQuery selects one page of a paginated endpoint. Page is 1-based.
// Zero values fall back to page 1 and DefaultPageSize.
type PageQuery struct {
	Page     int
	PageSize int
}

func (q PageQuery) normalize() PageQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	return q
}

// encode appends page/page_size query parameters to an endpoint path.
func (q PageQuery) encode(endpoint string) string {
	q = q.normalize()
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("page_size", strconv.Itoa(q.PageSize))
	return endpoint + "?" + v.Encode()
}

// validate applies boundary checks to a decoded envelope before it is
// handed to the caller.
func (p Page[T]) validate(endpoint string, q PageQuery) error {
	q = q.normalize()
	if p.Total < 0 {
		return fmt.Errorf("invalid page envelope from %s: negative total %d", endpoint, p.Total)
	}
	if p.TotalPages < 0 {
		return fmt.Errorf("invalid page envelope from %s: negative total_pages %d", endpoint, p.TotalPages)
	}
	if len(p.Data) > q.PageSize {
		return fmt.Errorf("invalid page envelope from %s: %d items exceeds page size %d", endpoint, len(p.Data), q.PageSize)
	}
	return nil
}

// fetchPage performs an authenticated GET of a paginated endpoint where
// 404 means the underlying resource is absent.
func fetchPage[T any](ctx context.Context, c *Client, endpoint string, q PageQuery) (Page[T], bool, error) {
	page, ok, err := fetchOptional[Page[T]](ctx, c, q.encode(endpoint))
	if err != nil || !ok {
		return Page[T]{}, ok, err
	}
	if err := page.validate(endpoint, q); err != nil {
		return Page[T]{}, false, err
	}
	return page, true, nil
}
