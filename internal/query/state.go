// Package query holds the listing view's query state and its flat key/value encoding.
package query

import "strings"

type SortDir string

const (
	Asc  SortDir = "asc"
	Desc SortDir = "desc"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// AllowedPageSizes 分页下拉框可选值
var AllowedPageSizes = []int{10, 20, 50}

// 编码键，顺序即编码顺序
const (
	KeyPage         = "page"
	KeyPageSize     = "pageSize"
	KeySearch       = "search"
	KeyQ            = "q"
	KeySortBy       = "sortBy"
	KeySortDir      = "sortDir"
	KeyOrganization = "organization"
	KeyUserName     = "userName"
	KeyEmailAddress = "emailAddress"
	KeyPhoneNumber  = "phoneNumber"
	KeyStatus       = "status"
	KeyDate         = "date"
)

var Keys = []string{
	KeyPage, KeyPageSize, KeySearch, KeyQ, KeySortBy, KeySortDir,
	KeyOrganization, KeyUserName, KeyEmailAddress, KeyPhoneNumber, KeyStatus, KeyDate,
}

// FilterKeys 会使页码回到第一页的键
var FilterKeys = []string{
	KeySearch, KeyQ, KeyOrganization, KeyUserName, KeyEmailAddress, KeyPhoneNumber, KeyStatus, KeyDate,
}

// Filters 空字符串表示未设置
type Filters struct {
	Organization string `json:"organization,omitempty" form:"organization"`
	UserName     string `json:"userName,omitempty"     form:"userName"`
	EmailAddress string `json:"emailAddress,omitempty" form:"emailAddress"`
	PhoneNumber  string `json:"phoneNumber,omitempty"  form:"phoneNumber"`
	Status       string `json:"status,omitempty"       form:"status"`
	Date         string `json:"date,omitempty"         form:"date"` // YYYY-MM-DD
}

func (f Filters) Empty() bool { return f == Filters{} }

type State struct {
	Page     int     `json:"page,omitempty"`
	PageSize int     `json:"pageSize,omitempty"`
	Search   string  `json:"search,omitempty"`
	Q        string  `json:"q,omitempty"`
	Filters  Filters `json:"filters"`
	SortBy   string  `json:"sortBy,omitempty"`
	SortDir  SortDir `json:"sortDir,omitempty"`
}

// Query 全局搜索词；search 优先于 q
func (s State) Query() string {
	if s.Search != "" {
		return s.Search
	}
	return s.Q
}

// WithDefaults 补齐未设置的页码、页大小和排序方向
func (s State) WithDefaults() State {
	if s.Page < 1 {
		s.Page = DefaultPage
	}
	if s.PageSize < 1 {
		s.PageSize = DefaultPageSize
	}
	if SortDir(strings.ToLower(string(s.SortDir))) == Desc {
		s.SortDir = Desc
	} else {
		s.SortDir = Asc
	}
	return s
}

func IsAllowedPageSize(n int) bool {
	for _, v := range AllowedPageSizes {
		if v == n {
			return true
		}
	}
	return false
}
