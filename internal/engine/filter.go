package engine

import (
	"strings"

	"lendsqr-admin/internal/domain"
	"lendsqr-admin/internal/query"
)

// 输入为空视为不限制
func equalsCI(field, input string) bool {
	want := normalize(input)
	if want == "" {
		return true
	}
	return normalize(field) == want
}

func includesCI(field, input string) bool {
	want := normalize(input)
	if want == "" {
		return true
	}
	return strings.Contains(normalize(field), want)
}

// sameDay 比较 createdAt 的前 10 位（YYYY-MM-DD）
func sameDay(createdAt, ymd string) bool {
	if ymd == "" {
		return true
	}
	if createdAt == "" {
		return false
	}
	if len(createdAt) > 10 {
		createdAt = createdAt[:10]
	}
	return createdAt == ymd
}

func matches(u *domain.User, f query.Filters) bool {
	return equalsCI(u.Organization, f.Organization) &&
		includesCI(u.UserName, f.UserName) &&
		includesCI(u.EmailAddress, f.EmailAddress) &&
		includesCI(string(u.PhoneNumber), f.PhoneNumber) &&
		equalsCI(string(u.Status), f.Status) &&
		sameDay(u.CreatedAt, f.Date)
}

// ApplyFilters 逐字段 AND 组合；organization/status 精确匹配，其余子串匹配
func ApplyFilters(data []domain.User, f query.Filters) []domain.User {
	if f.Empty() {
		return data
	}
	out := make([]domain.User, 0, len(data))
	for i := range data {
		if matches(&data[i], f) {
			out = append(out, data[i])
		}
	}
	return out
}
