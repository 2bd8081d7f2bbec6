package pagination

import "strings"

const (
	defaultPerPage = 15
	maxPerPage     = 100
)

// Pagination is the page block returned with list responses
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// PaginationParams are the page, per_page and search query parameters
type PaginationParams struct {
	Page    int    `form:"page" json:"page"`
	PerPage int    `form:"per_page" json:"per_page"`
	Search  string `form:"search" json:"search"`
}

func DefaultPagination() *PaginationParams {
	return &PaginationParams{Page: 1, PerPage: defaultPerPage}
}

// Validate clamps page to >= 1 and per_page to [1, 100]
func (p *PaginationParams) Validate() {
	p.Page = max(p.Page, 1)
	switch {
	case p.PerPage < 1:
		p.PerPage = defaultPerPage
	case p.PerPage > maxPerPage:
		p.PerPage = maxPerPage
	}
	p.Search = strings.TrimSpace(p.Search)
}

func (p *PaginationParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// SearchPattern returns the ILIKE pattern for the search term, or "" when there is none
func (p *PaginationParams) SearchPattern() string {
	if p.Search == "" {
		return ""
	}
	return "%" + p.Search + "%"
}

func NewPagination(page, perPage int, total int64) *Pagination {
	var pages int
	if perPage > 0 {
		pages = int((total + int64(perPage) - 1) / int64(perPage))
	}
	return &Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		TotalPages:  pages,
		HasNext:     page < pages,
		HasPrev:     page > 1,
	}
}

// PaginatedResult is one page of a list. Items is never null in JSON.
type PaginatedResult[T any] struct {
	Items      []T         `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

func NewPaginatedResult[T any](items []T, pagination *Pagination) *PaginatedResult[T] {
	if items == nil {
		items = []T{}
	}
	return &PaginatedResult[T]{Items: items, Pagination: pagination}
}

// ResultFor wraps one page of rows fetched with params
func ResultFor[T any](items []T, total int64, params *PaginationParams) *PaginatedResult[T] {
	return NewPaginatedResult(items, NewPagination(params.Page, params.PerPage, total))
}
