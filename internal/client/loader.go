package client

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"lendsqr-admin/internal/domain"
	"lendsqr-admin/internal/query"
)

// ErrStale 结果属于已被更新的查询状态，丢弃
var ErrStale = errors.New("stale response")

// UsersAPI 列表页需要的两个请求
type UsersAPI interface {
	ListUsers(ctx context.Context, st query.State) (*ListResponse, error)
	Stats(ctx context.Context) (*domain.Stats, error)
}

// Snapshot 列表与统计各自成功/失败，互不影响
type Snapshot struct {
	Revision uint64
	State    query.State
	List     *ListResponse
	ListErr  error
	Stats    *domain.Stats
	StatsErr error
}

// Loader 同一时刻只认最新一次 Load；新的 Load 会取消旧请求，旧结果返回 ErrStale
type Loader struct {
	api UsersAPI
	log *zap.Logger

	mu     sync.Mutex
	gen    uint64
	rev    uint64 // 已开始加载的最大 Store revision
	cancel context.CancelFunc

	// deliver 串行执行，已交付的 revision 只增不减
	dmu       sync.Mutex
	delivered uint64
	hasShown  bool
}

func NewLoader(api UsersAPI, l *zap.Logger) *Loader {
	if l == nil {
		l = zap.NewNop()
	}
	return &Loader{api: api, log: l}
}

// begin 开始一次加载并作废之前的加载。tracked=false 的 Load 总视为最新状态。
func (l *Loader) begin(parent context.Context, rev uint64, tracked bool) (context.Context, uint64, uint64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !tracked {
		rev = l.rev
	}
	if rev < l.rev {
		return nil, 0, 0, false
	}
	l.rev = rev
	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	l.gen++
	l.cancel = cancel
	return ctx, l.gen, rev, true
}

func (l *Loader) current(gen uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gen == gen
}

func (l *Loader) Load(ctx context.Context, st query.State) (*Snapshot, error) {
	snap, _, err := l.load(ctx, st, 0, false)
	return snap, err
}

func (l *Loader) load(parent context.Context, st query.State, rev uint64, tracked bool) (*Snapshot, uint64, error) {
	ctx, gen, rev, ok := l.begin(parent, rev, tracked)
	if !ok {
		return nil, 0, ErrStale
	}
	st = st.WithDefaults()
	snap := &Snapshot{Revision: rev, State: st}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		snap.List, snap.ListErr = l.api.ListUsers(ctx, st)
	}()
	go func() {
		defer wg.Done()
		snap.Stats, snap.StatsErr = l.api.Stats(ctx)
	}()
	wg.Wait()

	if !l.current(gen) {
		l.log.Debug("drop stale snapshot", zap.Uint64("gen", gen), zap.Uint64("rev", rev))
		return nil, 0, ErrStale
	}
	if snap.ListErr != nil {
		l.log.Warn("list users failed", zap.Error(snap.ListErr))
	}
	if snap.StatsErr != nil {
		l.log.Warn("fetch stats failed", zap.Error(snap.StatsErr))
	}
	return snap, gen, nil
}

// publish 仍是最新一次加载且 revision 不回退时才交付
func (l *Loader) publish(snap *Snapshot, gen uint64, deliver func(*Snapshot)) {
	l.dmu.Lock()
	defer l.dmu.Unlock()
	if !l.current(gen) || (l.hasShown && snap.Revision < l.delivered) {
		l.log.Debug("drop stale snapshot", zap.Uint64("gen", gen), zap.Uint64("rev", snap.Revision))
		return
	}
	l.delivered, l.hasShown = snap.Revision, true
	deliver(snap)
}

// Follow 订阅 Store，每次变更重新加载，只把最新状态的结果交给 deliver
func (l *Loader) Follow(ctx context.Context, store *query.Store, deliver func(*Snapshot)) {
	run := func(st query.State, rev uint64) {
		snap, gen, err := l.load(ctx, st, rev, true)
		if err != nil {
			return
		}
		l.publish(snap, gen, deliver)
	}
	store.Subscribe(func(st query.State, rev uint64) { go run(st, rev) })
	st, rev := store.Snapshot()
	go run(st, rev)
}
