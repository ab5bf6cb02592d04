package engine

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"lendsqr-admin/internal/domain"
	"lendsqr-admin/internal/query"
)

// Kind 排序字段声明的比较类型
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	}
	return "string"
}

type sortField struct {
	kind Kind
	get  func(u *domain.User) string
}

// sortFields 按 JSON 字段名注册
var sortFields = map[string]sortField{
	"id":                   {KindString, func(u *domain.User) string { return u.ID }},
	"fullName":             {KindString, func(u *domain.User) string { return u.FullName }},
	"userName":             {KindString, func(u *domain.User) string { return u.UserName }},
	"organization":         {KindString, func(u *domain.User) string { return u.Organization }},
	"status":               {KindString, func(u *domain.User) string { return string(u.Status) }},
	"createdAt":            {KindDate, func(u *domain.User) string { return u.CreatedAt }},
	"phoneNumber":          {KindNumber, func(u *domain.User) string { return string(u.PhoneNumber) }},
	"emailAddress":         {KindString, func(u *domain.User) string { return u.EmailAddress }},
	"bvn":                  {KindNumber, func(u *domain.User) string { return string(u.BVN) }},
	"gender":               {KindString, func(u *domain.User) string { return u.Gender }},
	"maritalStatus":        {KindString, func(u *domain.User) string { return u.MaritalStatus }},
	"children":             {KindNumber, func(u *domain.User) string { return strconv.Itoa(u.Children) }},
	"typeOfResidence":      {KindString, func(u *domain.User) string { return u.TypeOfResidence }},
	"levelOfEducation":     {KindString, func(u *domain.User) string { return u.LevelOfEducation }},
	"employmentStatus":     {KindString, func(u *domain.User) string { return u.EmploymentStatus }},
	"sectorOfEmployment":   {KindString, func(u *domain.User) string { return u.SectorOfEmployment }},
	"durationOfEmployment": {KindString, func(u *domain.User) string { return u.DurationOfEmployment }},
	"officeEmail":          {KindString, func(u *domain.User) string { return u.OfficeEmail }},
	"monthlyIncome":        {KindString, func(u *domain.User) string { return u.MonthlyIncome }},
	"loanRepayment":        {KindNumber, func(u *domain.User) string { return formatFloat(u.LoanRepayment) }},
	"accountBalance":       {KindNumber, func(u *domain.User) string { return formatFloat(u.AccountBalance) }},
	"twitter":              {KindString, func(u *domain.User) string { return u.Twitter }},
	"facebook":             {KindString, func(u *domain.User) string { return u.Facebook }},
	"instagram":            {KindString, func(u *domain.User) string { return u.Instagram }},
}

// KindOf 未注册字段返回 false
func KindOf(field string) (Kind, bool) {
	f, ok := sortFields[field]
	return f.kind, ok
}

func SortableFields() []string {
	out := make([]string, 0, len(sortFields))
	for k := range sortFields {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Comparator 单次排序内复用；collator 非并发安全，每次排序新建
type Comparator struct {
	kind Kind
	col  *collate.Collator
}

func NewComparator(kind Kind) *Comparator {
	return &Comparator{
		kind: kind,
		col:  collate.New(language.English, collate.Loose, collate.Numeric),
	}
}

// Compare 数字/日期类型两边都能解析时按数值比较，否则回退到本地化字符串比较
func (c *Comparator) Compare(a, b string) int {
	switch c.kind {
	case KindNumber:
		if x, ok := parseNumber(a); ok {
			if y, ok := parseNumber(b); ok {
				return cmp.Compare(x, y)
			}
		}
	case KindDate:
		if x, ok := parseTime(a); ok {
			if y, ok := parseTime(b); ok {
				return x.Compare(y)
			}
		}
	}
	return c.col.CompareString(a, b)
}

func parseNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ApplySort 稳定排序，返回新切片；sortBy 为空或未注册时原样返回
func ApplySort(data []domain.User, sortBy string, dir query.SortDir) []domain.User {
	f, ok := sortFields[sortBy]
	if !ok {
		return data
	}
	c := NewComparator(f.kind)
	sign := 1
	if strings.EqualFold(string(dir), string(query.Desc)) {
		sign = -1
	}

	out := slices.Clone(data)
	slices.SortStableFunc(out, func(x, y domain.User) int {
		return sign * c.Compare(f.get(&x), f.get(&y))
	})
	return out
}
