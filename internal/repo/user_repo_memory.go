package repo

import (
	"context"
	"slices"
	"sync"

	"lendsqr-admin/internal/domain"
)

// MemoryUserRepo 进程内存储，保持插入顺序
type MemoryUserRepo struct {
	mu    sync.RWMutex
	users []domain.User
}

func NewMemoryUserRepo(seed []domain.User) *MemoryUserRepo {
	return &MemoryUserRepo{users: slices.Clone(seed)}
}

func (r *MemoryUserRepo) indexOf(id string) int {
	return slices.IndexFunc(r.users, func(u domain.User) bool { return u.ID == id })
}

func (r *MemoryUserRepo) All(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.users), nil
}

func (r *MemoryUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	u := r.users[i]
	return &u, nil
}

func (r *MemoryUserRepo) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.indexOf(u.ID) >= 0 {
		return domain.ErrDuplicateID
	}
	r.users = append(r.users, *u)
	return nil
}

func (r *MemoryUserRepo) UpdateStatus(_ context.Context, id string, st domain.Status) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	r.users[i].Status = st
	u := r.users[i]
	return &u, nil
}

func (r *MemoryUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return domain.ErrNotFound
	}
	r.users = slices.Delete(r.users, i, i+1)
	return nil
}
