// Package pagination implements the page/envelope contract shared by every
// list endpoint: an ordered collection in, a page of items plus metadata out.
// Ordering is the caller's responsibility; this package never sorts.
package pagination

// DefaultPerPage is the fixed page size used by all list endpoints.
const DefaultPerPage = 100

// Meta describes the position of a page within the full collection.
type Meta struct {
	CurrentPage  int `json:"current_page"`
	TotalPages   int `json:"total_pages"`
	TotalItems   int `json:"total_items"`
	ItemsPerPage int `json:"items_per_page"`
}

// Page is a single page of items plus its metadata.
type Page[T any] struct {
	Items []T  `json:"items"`
	Meta  Meta `json:"pagination"`
}

// NewMeta computes page metadata for a collection of totalItems items.
// An empty collection still has one page (of zero items), so TotalPages is
// never 0 and callers can always compare CurrentPage against it.
func NewMeta(page, perPage, totalItems int) Meta {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	totalPages := (totalItems + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	return Meta{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalItems:   totalItems,
		ItemsPerPage: perPage,
	}
}

// Offset returns the row offset for a page, for LIMIT/OFFSET queries.
func Offset(page, perPage int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * perPage
}

// Paginate slices an already-ordered collection into the requested page.
// Pages past the end yield empty items with metadata reflecting the true
// totals, not an error.
func Paginate[T any](items []T, page, perPage int) Page[T] {
	meta := NewMeta(page, perPage, len(items))

	start := Offset(meta.CurrentPage, meta.ItemsPerPage)
	if start > len(items) {
		start = len(items)
	}
	end := start + meta.ItemsPerPage
	if end > len(items) {
		end = len(items)
	}

	return Page[T]{Items: items[start:end], Meta: meta}
}
