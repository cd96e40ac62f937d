// Package pagination normalizes page requests and shapes page results for
// every paginated listing. Output field names can be remapped per caller
// without the page logic knowing who the caller is.
package pagination

import (
	"encoding/json"
	"math"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100

	// MaxPage keeps the offset and paging counter of any page within int
	// range. Pages this far out are always past the end and come back empty.
	MaxPage = math.MaxInt / MaxPageSize
)

// Request is a normalized page request. Build it with NewRequest.
type Request struct {
	Page     int
	PageSize int
}

// NewRequest clamps out-of-range values instead of rejecting them.
func NewRequest(page, pageSize int) Request {
	switch {
	case page < 1:
		page = DefaultPage
	case page > MaxPage:
		page = MaxPage
	}
	switch {
	case pageSize < 1:
		pageSize = DefaultPageSize
	case pageSize > MaxPageSize:
		pageSize = MaxPageSize
	}
	return Request{Page: page, PageSize: pageSize}
}

// Offset is the number of items skipped before this page.
func (r Request) Offset() uint64 {
	return uint64(r.Page-1) * uint64(r.PageSize)
}

// Limit is the maximum number of items on this page.
func (r Request) Limit() uint64 {
	return uint64(r.PageSize)
}

// Page is one page of results plus its metadata.
type Page[T any] struct {
	Items         []T
	ItemCount     int64
	PageSize      int
	CurrentPage   int
	TotalPages    int
	HasPrevPage   bool
	HasNextPage   bool
	PrevPage      *int
	NextPage      *int
	PagingCounter int
}

// NewPage derives the page metadata from the total match count.
// A page past the end is valid and simply has no items.
func NewPage[T any](items []T, total int64, req Request) Page[T] {
	if items == nil {
		items = []T{}
	}
	if total < 0 {
		total = 0
	}

	size := int64(req.PageSize)
	totalPages := int((total + size - 1) / size)

	p := Page[T]{
		Items:         items,
		ItemCount:     total,
		PageSize:      req.PageSize,
		CurrentPage:   req.Page,
		TotalPages:    totalPages,
		HasPrevPage:   req.Page > 1,
		HasNextPage:   req.Page < totalPages,
		PagingCounter: (req.Page-1)*req.PageSize + 1,
	}
	if p.HasPrevPage {
		prev := req.Page - 1
		p.PrevPage = &prev
	}
	if p.HasNextPage {
		next := req.Page + 1
		p.NextPage = &next
	}
	return p
}

// Map converts the items of a page while keeping its metadata.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, len(p.Items))
	for i, item := range p.Items {
		out[i] = fn(item)
	}
	return Page[U]{
		Items:         out,
		ItemCount:     p.ItemCount,
		PageSize:      p.PageSize,
		CurrentPage:   p.CurrentPage,
		TotalPages:    p.TotalPages,
		HasPrevPage:   p.HasPrevPage,
		HasNextPage:   p.HasNextPage,
		PrevPage:      p.PrevPage,
		NextPage:      p.NextPage,
		PagingCounter: p.PagingCounter,
	}
}

// Render builds the output document, renaming canonical fields through labels.
// Fields without a label keep their canonical name.
func (p Page[T]) Render(labels Labels) map[string]any {
	meta := map[string]any{
		labels.name(FieldItemCount):     p.ItemCount,
		labels.name(FieldPageSize):      p.PageSize,
		labels.name(FieldCurrentPage):   p.CurrentPage,
		labels.name(FieldTotalPages):    p.TotalPages,
		labels.name(FieldHasPrevPage):   p.HasPrevPage,
		labels.name(FieldHasNextPage):   p.HasNextPage,
		labels.name(FieldPrevPage):      p.PrevPage,
		labels.name(FieldNextPage):      p.NextPage,
		labels.name(FieldPagingCounter): p.PagingCounter,
	}

	if key, ok := labels[FieldMeta]; ok && key != "" {
		return map[string]any{
			labels.name(FieldItems): p.Items,
			key:                     meta,
		}
	}

	meta[labels.name(FieldItems)] = p.Items
	return meta
}

// MarshalJSON renders the page with canonical field names.
func (p Page[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Render(nil))
}
