package user

import (
	"time"

	"lendsqr-admin/internal/domain"
)

// UserModel users 表；guarantors 以 JSON 列存储
type UserModel struct {
	ID           string `gorm:"primaryKey;type:varchar(64)"`
	FullName     string `gorm:"size:128;not null"`
	UserName     string `gorm:"size:64;index;not null"`
	Organization string `gorm:"size:128;index"`
	Status       string `gorm:"size:16;index;not null;default:pending"`
	CreatedAtRaw string `gorm:"column:created_at_raw;size:40;index"`

	PhoneNumber     string `gorm:"size:32"`
	EmailAddress    string `gorm:"size:255;index"`
	BVN             string `gorm:"column:bvn;size:32"`
	Gender          string `gorm:"size:16"`
	MaritalStatus   string `gorm:"size:16"`
	Children        int
	TypeOfResidence string `gorm:"size:64"`

	LevelOfEducation     string `gorm:"size:64"`
	EmploymentStatus     string `gorm:"size:64"`
	SectorOfEmployment   string `gorm:"size:64"`
	DurationOfEmployment string `gorm:"size:64"`

	OfficeEmail    string `gorm:"size:255"`
	MonthlyIncome  string `gorm:"size:64"`
	LoanRepayment  float64
	AccountBalance float64

	Twitter   string `gorm:"size:128"`
	Facebook  string `gorm:"size:128"`
	Instagram string `gorm:"size:128"`

	Guarantors []domain.Guarantor `gorm:"serializer:json;type:text"`

	// Seq 插入顺序，列表按它排序；删除为物理删除，ID 可再次使用
	Seq       int64     `gorm:"column:seq;index;not null;default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (UserModel) TableName() string { return "users" }

func FromDomain(u *domain.User) *UserModel {
	return &UserModel{
		ID:                   u.ID,
		FullName:             u.FullName,
		UserName:             u.UserName,
		Organization:         u.Organization,
		Status:               string(u.Status),
		CreatedAtRaw:         u.CreatedAt,
		PhoneNumber:          string(u.PhoneNumber),
		EmailAddress:         u.EmailAddress,
		BVN:                  string(u.BVN),
		Gender:               u.Gender,
		MaritalStatus:        u.MaritalStatus,
		Children:             u.Children,
		TypeOfResidence:      u.TypeOfResidence,
		LevelOfEducation:     u.LevelOfEducation,
		EmploymentStatus:     u.EmploymentStatus,
		SectorOfEmployment:   u.SectorOfEmployment,
		DurationOfEmployment: u.DurationOfEmployment,
		OfficeEmail:          u.OfficeEmail,
		MonthlyIncome:        u.MonthlyIncome,
		LoanRepayment:        u.LoanRepayment,
		AccountBalance:       u.AccountBalance,
		Twitter:              u.Twitter,
		Facebook:             u.Facebook,
		Instagram:            u.Instagram,
		Guarantors:           u.Guarantors,
	}
}

func (m *UserModel) ToDomain() domain.User {
	g := m.Guarantors
	if g == nil {
		g = []domain.Guarantor{}
	}
	return domain.User{
		ID:                   m.ID,
		FullName:             m.FullName,
		UserName:             m.UserName,
		Organization:         m.Organization,
		Status:               domain.Status(m.Status),
		CreatedAt:            m.CreatedAtRaw,
		PhoneNumber:          domain.NumString(m.PhoneNumber),
		EmailAddress:         m.EmailAddress,
		BVN:                  domain.NumString(m.BVN),
		Gender:               m.Gender,
		MaritalStatus:        m.MaritalStatus,
		Children:             m.Children,
		TypeOfResidence:      m.TypeOfResidence,
		LevelOfEducation:     m.LevelOfEducation,
		EmploymentStatus:     m.EmploymentStatus,
		SectorOfEmployment:   m.SectorOfEmployment,
		DurationOfEmployment: m.DurationOfEmployment,
		OfficeEmail:          m.OfficeEmail,
		MonthlyIncome:        m.MonthlyIncome,
		LoanRepayment:        m.LoanRepayment,
		AccountBalance:       m.AccountBalance,
		Twitter:              m.Twitter,
		Facebook:             m.Facebook,
		Instagram:            m.Instagram,
		Guarantors:           g,
	}
}
