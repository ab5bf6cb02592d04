// Package engine is the pure search -> filter -> sort -> paginate pipeline over user records.
// Nothing here mutates its input or returns an error; bad bounds are clamped.
package engine

import (
	"strconv"
	"strings"

	"lendsqr-admin/internal/domain"
)

func normalize(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// searchBag 参与全局搜索的字段拼接
func searchBag(u *domain.User) string {
	return normalize(strings.Join([]string{
		u.ID,
		u.FullName,
		u.EmailAddress,
		u.OfficeEmail,
		string(u.PhoneNumber),
		string(u.BVN),
		u.Gender,
		string(u.Status),
		u.MaritalStatus,
		u.EmploymentStatus,
		u.SectorOfEmployment,
		u.TypeOfResidence,
		u.LevelOfEducation,
		u.CreatedAt,
	}, " "))
}

// ApplySearch 每个词都必须出现在某个可搜索字段中（大小写不敏感、与顺序无关）
func ApplySearch(data []domain.User, q string) []domain.User {
	query := normalize(q)
	if query == "" {
		return data
	}
	tokens := strings.Fields(query)

	out := make([]domain.User, 0, len(data))
	for i := range data {
		bag := searchBag(&data[i])
		if containsAll(bag, tokens) {
			out = append(out, data[i])
		}
	}
	return out
}

func containsAll(bag string, tokens []string) bool {
	for _, t := range tokens {
		if !strings.Contains(bag, t) {
			return false
		}
	}
	return true
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
