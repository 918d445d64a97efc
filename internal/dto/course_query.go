package dto

import "github.com/google/uuid"

const (
	SortPriceAsc   = "price_asc"
	SortPriceDesc  = "price_desc"
	SortRatingDesc = "rating_desc"
	SortPopular    = "popular"
)

// CourseQuery carries the catalog listing filters. Page and PageSize have no
// enforced upper bound; callers control result size (known open risk).
type CourseQuery struct {
	Keyword           string     `form:"q"`
	CategoryID        *uuid.UUID `form:"category_id"`
	SellerID          *uuid.UUID `form:"seller_id"`
	Level             string     `form:"level"`
	MinPrice          *float64   `form:"min_price"`
	MaxPrice          *float64   `form:"max_price"`
	IncludeUnapproved bool       `form:"include_unapproved"`
	IncludeRestricted bool       `form:"include_restricted"`
	SortBy            string     `form:"sort_by"`
	Page              int        `form:"page"`
	PageSize          int        `form:"page_size"`
}

func (q *CourseQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 10
	}
}
