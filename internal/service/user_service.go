package service

import (
	"context"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"lendsqr-admin/internal/core/cache"
	"lendsqr-admin/internal/domain"
	"lendsqr-admin/internal/engine"
	"lendsqr-admin/internal/query"
	"lendsqr-admin/pkg/utils"
)

const (
	keyStats   = "users:stats"
	keyFilters = "users:filters"
)

var statusChanges = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "admin_user_status_changes_total",
	Help: "User status transitions performed through the admin API",
}, []string{"status"})

// ListResult 列表接口响应；search 回显本次生效的搜索词
type ListResult struct {
	engine.Result
	Search string `json:"search"`
}

type UserService struct {
	repo     domain.UserRepository
	cache    *cache.Cache
	statsTTL time.Duration
	log      *zap.Logger
	now      func() time.Time
}

func NewUserService(repo domain.UserRepository, c *cache.Cache, statsTTL time.Duration, l *zap.Logger) *UserService {
	if l == nil {
		l = zap.NewNop()
	}
	if c == nil {
		c = cache.New(cache.NewMemory(statsTTL))
	}
	return &UserService{repo: repo, cache: c, statsTTL: statsTTL, log: l, now: time.Now}
}

func (s *UserService) List(ctx context.Context, st query.State) (*ListResult, error) {
	users, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	res := engine.Run(users, st)
	if res.Adjusted {
		s.log.Debug("list params clamped",
			zap.Int("page", st.Page), zap.Int("pageSize", st.PageSize),
			zap.Int("servedPage", res.Page), zap.Int("servedPageSize", res.PageSize))
	}
	return &ListResult{Result: res, Search: st.Query()}, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateStatus 只允许四种合法状态
func (s *UserService) UpdateStatus(ctx context.Context, id, status string) (*domain.User, error) {
	st, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	u, err := s.repo.UpdateStatus(ctx, id, st)
	if err != nil {
		return nil, err
	}
	statusChanges.WithLabelValues(string(st)).Inc()
	s.invalidate(ctx)
	s.log.Info("user status updated", zap.String("id", id), zap.String("status", string(st)))
	return u, nil
}

func (s *UserService) Activate(ctx context.Context, id string) (*domain.User, error) {
	return s.UpdateStatus(ctx, id, string(domain.StatusActive))
}

func (s *UserService) Blacklist(ctx context.Context, id string) (*domain.User, error) {
	return s.UpdateStatus(ctx, id, string(domain.StatusBlacklisted))
}

// Toggle active 变 inactive，其它状态变 active
func (s *UserService) Toggle(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	next := domain.StatusActive
	if u.Status == domain.StatusActive {
		next = domain.StatusInactive
	}
	return s.UpdateStatus(ctx, id, string(next))
}

// Create 缺省 id 用 uuid，缺省 createdAt 用当前时间，缺省状态为 pending
func (s *UserService) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	u.ID = strings.TrimSpace(u.ID)
	if u.ID == "" {
		u.ID = utils.NewID()
	}
	if u.CreatedAt == "" {
		u.CreatedAt = s.now().UTC().Format(time.RFC3339)
	}
	if u.Status == "" {
		u.Status = domain.StatusPending
	} else {
		st, err := domain.ParseStatus(string(u.Status))
		if err != nil {
			return nil, err
		}
		u.Status = st
	}
	if u.Guarantors == nil {
		u.Guarantors = []domain.Guarantor{}
	}
	if err := s.repo.Create(ctx, &u); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return &u, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *UserService) Stats(ctx context.Context) (*domain.Stats, error) {
	return cache.GetOrLoadJSON(s.cache, ctx, keyStats, s.statsTTL, func(ctx context.Context) (*domain.Stats, error) {
		users, err := s.repo.All(ctx)
		if err != nil {
			return nil, err
		}
		st := ComputeStats(users)
		return &st, nil
	})
}

func (s *UserService) Filters(ctx context.Context) (*domain.FilterOptions, error) {
	return cache.GetOrLoadJSON(s.cache, ctx, keyFilters, s.statsTTL, func(ctx context.Context) (*domain.FilterOptions, error) {
		users, err := s.repo.All(ctx)
		if err != nil {
			return nil, err
		}
		f := ComputeFilters(users)
		return &f, nil
	})
}

func (s *UserService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, keyStats, keyFilters); err != nil {
		s.log.Warn("cache invalidate failed", zap.Error(err))
	}
}

func ComputeStats(users []domain.User) domain.Stats {
	st := domain.Stats{TotalUsers: len(users)}
	for i := range users {
		if users[i].Status == domain.StatusActive {
			st.ActiveUsers++
		}
		if users[i].LoanRepayment > 0 {
			st.UsersWithLoans++
		}
		if users[i].AccountBalance > 0 {
			st.UsersWithSavings++
		}
	}
	return st
}

// ComputeFilters 机构去重、去空白，保持首次出现顺序
func ComputeFilters(users []domain.User) domain.FilterOptions {
	seen := make(map[string]struct{})
	orgs := []string{}
	for i := range users {
		o := strings.TrimSpace(users[i].Organization)
		if o == "" {
			continue
		}
		if _, ok := seen[o]; ok {
			continue
		}
		seen[o] = struct{}{}
		orgs = append(orgs, o)
	}
	statuses := make([]string, len(domain.Statuses))
	for i, st := range domain.Statuses {
		statuses[i] = string(st)
	}
	return domain.FilterOptions{Organizations: orgs, Statuses: statuses}
}
