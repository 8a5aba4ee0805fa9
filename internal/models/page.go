package models

// ListParams carries the pagination arguments shared by every list query.
// Defaults (page 1, limit 10, descending) are filled by the API layer when
// the caller omits an argument; values are intentionally not re-clamped here,
// matching the API contract.
type ListParams struct {
	Page  int
	Limit int
	Order string
}

// Offset computes the number of rows to skip.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Descending reports the requested sort direction, treating anything other
// than "asc" as descending.
func (p ListParams) Descending() bool {
	return p.Order != "asc"
}

// Page is the envelope returned by every list query: the bounded slice plus
// the full filter-scoped count and the echoed pagination inputs.
type Page[T any] struct {
	Data  []T   `json:"data"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// NewPage assembles an envelope from a fetched slice and its total count.
func NewPage[T any](data []T, total int64, params ListParams) *Page[T] {
	if data == nil {
		data = []T{}
	}
	return &Page[T]{Data: data, Total: total, Page: params.Page, Limit: params.Limit}
}
