package response

import (
	"encoding/json"
	"net/url"
	"strconv"

	"cwdash/internal/pkg/common/paging"
)

// Response 是所有 JSON 接口的统一响应结构. 分页接口填写 Count, Previous 与 Next.
type Response struct {
	Count    int         `json:"count"`
	Previous url.URL     `json:"previous" swaggertype:"string"`
	Next     url.URL     `json:"next" swaggertype:"string"`
	Results  interface{} `json:"results"`
	Detail   string      `json:"detail"`
}

// MarshalJSON renders Previous and Next as URL strings instead of struct fields.
func (r Response) MarshalJSON() ([]byte, error) {
	type alias struct {
		Count    int         `json:"count"`
		Previous string      `json:"previous"`
		Next     string      `json:"next"`
		Results  interface{} `json:"results"`
		Detail   string      `json:"detail"`
	}
	return json.Marshal(alias{
		Count:    r.Count,
		Previous: r.Previous.String(),
		Next:     r.Next.String(),
		Results:  r.Results,
		Detail:   r.Detail,
	})
}

// Paged builds the envelope of one page of a filtered listing. total is the
// number of items across all pages.
func Paged(base *url.URL, page, pageSize, total int, results interface{}) Response {
	prev, next := BuildPageLinks(base, page, pageSize, total)
	return Response{
		Count:    total,
		Previous: prev,
		Next:     next,
		Results:  results,
	}
}

// BuildPageLinks constructs previous and next page URLs based on the provided
// base URL and paging parameters. It does not modify the input URL.
func BuildPageLinks(base *url.URL, page, pageSize, total int) (prev, next url.URL) {
	if base == nil || pageSize <= 0 {
		return url.URL{}, url.URL{}
	}
	lastPage := paging.TotalPages(total, pageSize)

	makeURL := func(p int) url.URL {
		u := *base
		q := u.Query()
		q.Set("page", strconv.Itoa(paging.Step(p, 0, lastPage)))
		q.Set("page_size", strconv.Itoa(pageSize))
		u.RawQuery = q.Encode()
		return u
	}

	if page > 1 {
		prev = makeURL(page - 1)
	}
	if page < lastPage {
		next = makeURL(page + 1)
	}
	return
}
