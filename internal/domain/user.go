package domain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
)

type Status string

const (
	StatusActive      Status = "active"
	StatusInactive    Status = "inactive"
	StatusPending     Status = "pending"
	StatusBlacklisted Status = "blacklisted"
)

// Statuses 下拉框选项顺序
var Statuses = []Status{StatusInactive, StatusBlacklisted, StatusPending, StatusActive}

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range Statuses {
		if v == st {
			return st, nil
		}
	}
	return "", ErrInvalidStatus
}

// NumString 电话、BVN 等数字串；上游 JSON 里可能是数字也可能是字符串，统一按字符串保存
type NumString string

func (n *NumString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = NumString(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	*n = NumString(num.String())
	return nil
}

func (n NumString) String() string { return string(n) }

type Guarantor struct {
	FullName     string    `json:"guarantorFullName"`
	PhoneNumber  NumString `json:"guarantorPhoneNumber"`
	EmailAddress string    `json:"guarantorEmailAddress"`
	Relationship string    `json:"guarantorRelationship"`
}

// User 后台审核的用户记录；ID 创建后不可变，Status 是唯一会被修改的字段
type User struct {
	ID           string `json:"id"`
	FullName     string `json:"fullName"`
	UserName     string `json:"userName"`
	Organization string `json:"organization"`
	Status       Status `json:"status"`
	CreatedAt    string `json:"createdAt"` // ISO-8601

	PhoneNumber     NumString `json:"phoneNumber"`
	EmailAddress    string    `json:"emailAddress"`
	BVN             NumString `json:"bvn"`
	Gender          string    `json:"gender"`
	MaritalStatus   string    `json:"maritalStatus"`
	Children        int       `json:"children"`
	TypeOfResidence string    `json:"typeOfResidence"`

	LevelOfEducation     string `json:"levelOfEducation"`
	EmploymentStatus     string `json:"employmentStatus"`
	SectorOfEmployment   string `json:"sectorOfEmployment"`
	DurationOfEmployment string `json:"durationOfEmployment"`

	OfficeEmail    string  `json:"officeEmail"`
	MonthlyIncome  string  `json:"monthlyIncome"`
	LoanRepayment  float64 `json:"loanRepayment"`
	AccountBalance float64 `json:"accountBalance"`

	Twitter   string `json:"twitter"`
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`

	Guarantors []Guarantor `json:"guarantors"`
}

type Stats struct {
	TotalUsers       int `json:"totalUsers"`
	ActiveUsers      int `json:"activeUsers"`
	UsersWithLoans   int `json:"usersWithLoans"`
	UsersWithSavings int `json:"usersWithSavings"`
}

type FilterOptions struct {
	Organizations []string `json:"organizations"`
	Statuses      []string `json:"statuses"`
}

var (
	ErrNotFound      = errors.New("user not found")
	ErrInvalidStatus = errors.New("invalid status")
	ErrDuplicateID   = errors.New("user id already exists")
)

// UserRepository All 返回快照，调用方不得修改
type UserRepository interface {
	All(ctx context.Context) ([]User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, u *User) error
	UpdateStatus(ctx context.Context, id string, st Status) (*User, error)
	Delete(ctx context.Context, id string) error
}
