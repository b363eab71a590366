// internal/repository/pagination.go
package repository

const maxPageSize = 100

// Pagination holds standard offset/limit paging parameters.
type Pagination struct {
	Page     int // 1-based page number
	PageSize int // number of items per page
}

// Offset returns the number of records to skip (0-based).
func (p Pagination) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit()
}

// Limit returns the maximum number of records to return.
func (p Pagination) Limit() int {
	if p.PageSize <= 0 {
		return 10 // a sensible default
	}
	if p.PageSize > maxPageSize {
		return maxPageSize
	}
	return p.PageSize
}

// TotalPages returns how many pages total items span.
func (p Pagination) TotalPages(total int) int {
	size := p.Limit()
	pages := total / size
	if total%size > 0 {
		pages++
	}
	return pages
}
