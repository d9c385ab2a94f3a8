package models

import "time"

// Audit carries the timestamp and soft-delete columns shared by every table.
type Audit struct {
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
	Deleted   bool       `db:"deleted" json:"-"`
	DeletedAt *time.Time `db:"deleted_at" json:"-"`
	DeletedBy *string    `db:"deleted_by" json:"-"`
}

// Touch stamps creation and update times for a new row.
func (a *Audit) Touch(now time.Time) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}

// PageRequest is the pagination part of every list filter.
type PageRequest struct {
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// Normalize applies the default page size and bounds.
func (p *PageRequest) Normalize() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

// Offset is the row offset for the current page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Pagination builds the response metadata for a page with total rows.
func (p PageRequest) Pagination(total int) *Pagination {
	return &Pagination{Page: p.Page, PageSize: p.PageSize, TotalCount: total}
}
