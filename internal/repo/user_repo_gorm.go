package repo

import (
	"context"
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"

	"lendsqr-admin/internal/domain"
	"lendsqr-admin/internal/feature/user"
)

type UserRepo struct {
	db *gorm.DB

	mu      sync.Mutex
	lastSeq int64
}

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

// nextSeq 单调递增的插入序号，n 为需要的连续个数，返回第一个
func (r *UserRepo) nextSeq(n int) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	first := max(time.Now().UnixNano(), r.lastSeq+1)
	r.lastSeq = first + int64(n) - 1
	return first
}

// ordered 列表顺序与插入顺序一致
func ordered(tx *gorm.DB) *gorm.DB { return tx.Order("seq asc").Order("id asc") }

func (r *UserRepo) All(ctx context.Context) ([]domain.User, error) {
	var rows []user.UserModel
	if err := ordered(r.db.WithContext(ctx)).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.User, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var m user.UserModel
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u := m.ToDomain()
	return &u, nil
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	m := user.FromDomain(u)
	m.Seq = r.nextSeq(1)
	// 需要 gorm.Config.TranslateError 才能拿到 ErrDuplicatedKey
	err := r.db.WithContext(ctx).Create(m).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateID
	}
	return err
}

func (r *UserRepo) UpdateStatus(ctx context.Context, id string, st domain.Status) (*domain.User, error) {
	res := r.db.WithContext(ctx).Model(&user.UserModel{}).Where("id = ?", id).Update("status", string(st))
	if res.Error != nil {
		return nil, res.Error
	}
	// 状态未变化时 mysql 也会返回 0 行，交给 FindByID 判断是否存在
	return r.FindByID(ctx, id)
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&user.UserModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SeedIfEmpty 空表时批量导入种子数据
func (r *UserRepo) SeedIfEmpty(ctx context.Context, users []domain.User) (int, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&user.UserModel{}).Count(&n).Error; err != nil {
		return 0, err
	}
	if n > 0 || len(users) == 0 {
		return 0, nil
	}
	rows := make([]*user.UserModel, len(users))
	seq := r.nextSeq(len(users))
	for i := range users {
		rows[i] = user.FromDomain(&users[i])
		rows[i].Seq = seq + int64(i)
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return 0, err
	}
	return len(rows), nil
}
