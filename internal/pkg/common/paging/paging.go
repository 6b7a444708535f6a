package paging

import "math"

type PagingQuery struct {
	Paging   bool `form:"paging" json:"paging"`
	Page     int  `form:"page" json:"page" validate:"omitempty,gte=1"`
	PageSize int  `form:"page_size" json:"page_size" validate:"omitempty,gte=1,lte=1000"`
}

// SetDefaults 设置默认分页, 限制每页项目最大数
func (p *PagingQuery) SetDefaults(defaultPage, defaultSize, maxSize int) {
	if p.Page <= 0 {
		p.Page = defaultPage
	}
	if p.PageSize <= 0 {
		p.PageSize = defaultSize
	}
	if maxSize > 0 && p.PageSize > maxSize {
		p.PageSize = maxSize
	}
}

// Paginate 返回第 pageNumber 页(从 1 开始)的元素, 即 items[(pageNumber-1)*pageSize : pageNumber*pageSize].
// 页号越界或 pageSize 非法时返回空切片, 不报错.
func Paginate[T any](items []T, pageSize, pageNumber int) []T {
	if pageSize <= 0 || pageNumber < 1 {
		return []T{}
	}
	// 先比较页号再相乘, 避免超大页号溢出
	if pageNumber-1 >= TotalPages(len(items), pageSize) {
		return []T{}
	}
	start := (pageNumber - 1) * pageSize
	end := len(items)
	if pageSize < end-start {
		end = start + pageSize
	}
	return items[start:end:end]
}

// TotalPages returns ceil(total/pageSize).
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	n := total / pageSize
	if total%pageSize != 0 {
		n++
	}
	return n
}

// Step moves page by delta and clamps the result to [1, maxPage].
// A maxPage <= 0 leaves the upper bound open.
func Step(page, delta, maxPage int) int {
	p := page + delta
	if delta > 0 && p < page {
		p = math.MaxInt
	}
	if maxPage > 0 && p > maxPage {
		p = maxPage
	}
	if p < 1 {
		p = 1
	}
	return p
}
