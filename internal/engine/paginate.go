package engine

import "slices"

const MaxPageSize = 100

type Paginated[T any] struct {
	Data       []T `json:"data"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

func clamp(v, lo, hi int) int { return max(lo, min(v, hi)) }

// ApplyPagination 越界的 page/pageSize 一律夹紧，不报错
func ApplyPagination[T any](data []T, page, pageSize int) Paginated[T] {
	size := clamp(pageSize, 1, MaxPageSize)
	total := len(data)
	totalPages := max(1, (total+size-1)/size)
	p := clamp(page, 1, totalPages)

	start := min((p-1)*size, total)
	end := min(start+size, total)

	out := slices.Clone(data[start:end])
	if out == nil {
		out = []T{}
	}
	return Paginated[T]{
		Data:       out,
		Page:       p,
		PageSize:   size,
		Total:      total,
		TotalPages: totalPages,
	}
}
