package types

import "fmt"

const (
	DefaultPageSize   = 12
	DefaultPageWindow = 5
)

// Pagination describes the pager below the results grid.
type Pagination struct {
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
	TotalCount int    `json:"totalCount"`
	TotalPages int    `json:"totalPages"`
	CanPrev    bool   `json:"canPrev"`
	CanNext    bool   `json:"canNext"`
	Pages      []int  `json:"pages"`
	From       int    `json:"from"`
	To         int    `json:"to"`
	RangeText  string `json:"rangeText"`
}

// NewPagination computes the pager for a result count. Page numbers are a
// window of at most `window` entries starting two before the current page.
func NewPagination(page, pageSize, count, window int) Pagination {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if window <= 0 {
		window = DefaultPageWindow
	}
	if page < 1 {
		page = 1
	}
	totalPages := max(1, (count+pageSize-1)/pageSize)
	start := max(1, page-window/2)
	end := min(totalPages, start+window-1)
	pages := make([]int, 0, window)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	p := Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalCount: count,
		TotalPages: totalPages,
		CanPrev:    page > 1,
		CanNext:    page < totalPages,
		Pages:      pages,
	}
	if count == 0 {
		p.RangeText = "0 results"
		return p
	}
	p.From = (page-1)*pageSize + 1
	p.To = min(page*pageSize, count)
	noun := "results"
	if count == 1 {
		noun = "result"
	}
	p.RangeText = fmt.Sprintf("%d–%d of %d %s", p.From, p.To, count, noun)
	return p
}
