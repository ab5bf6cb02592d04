package query

import (
	"net/url"
	"strconv"
	"strings"
)

// get/set 把 State 展平成 key -> string，空值即未设置
func (s State) get(key string) string {
	switch key {
	case KeyPage:
		return itoa(s.Page)
	case KeyPageSize:
		return itoa(s.PageSize)
	case KeySearch:
		return s.Search
	case KeyQ:
		return s.Q
	case KeySortBy:
		return s.SortBy
	case KeySortDir:
		return string(s.SortDir)
	case KeyOrganization:
		return s.Filters.Organization
	case KeyUserName:
		return s.Filters.UserName
	case KeyEmailAddress:
		return s.Filters.EmailAddress
	case KeyPhoneNumber:
		return s.Filters.PhoneNumber
	case KeyStatus:
		return s.Filters.Status
	case KeyDate:
		return s.Filters.Date
	}
	return ""
}

func (s *State) set(key, val string) bool {
	switch key {
	case KeyPage:
		s.Page = atoi(val)
	case KeyPageSize:
		s.PageSize = atoi(val)
	case KeySearch:
		s.Search = val
	case KeyQ:
		s.Q = val
	case KeySortBy:
		s.SortBy = val
	case KeySortDir:
		s.SortDir = SortDir(val)
	case KeyOrganization:
		s.Filters.Organization = val
	case KeyUserName:
		s.Filters.UserName = val
	case KeyEmailAddress:
		s.Filters.EmailAddress = val
	case KeyPhoneNumber:
		s.Filters.PhoneNumber = val
	case KeyStatus:
		s.Filters.Status = val
	case KeyDate:
		s.Filters.Date = val
	default:
		return false
	}
	return true
}

// Get 按编码键取值，未设置返回 ""
func (s State) Get(key string) string { return s.get(key) }

// Encode 生成传输用查询串，省略空值，键按 Keys 顺序输出
func Encode(s State) string {
	var b strings.Builder
	for _, k := range Keys {
		v := s.get(k)
		if v == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(v))
	}
	return b.String()
}

func Values(s State) url.Values {
	out := url.Values{}
	for _, k := range Keys {
		if v := s.get(k); v != "" {
			out.Set(k, v)
		}
	}
	return out
}

// Decode 解析查询串（可带前导 ?），无法解析的部分按未设置处理，默认值由调用方补齐
func Decode(raw string) State {
	vals, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil && vals == nil {
		return State{}
	}
	return DecodeValues(vals)
}

func DecodeValues(vals url.Values) State {
	var s State
	for _, k := range Keys {
		s.set(k, vals.Get(k))
	}
	return s
}

func itoa(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
