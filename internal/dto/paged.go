package dto

type PagedResult[T any] struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalCount int64 `json:"total_count"`
	Items      []T   `json:"items"`
}
