package query

import "sync"

// Store 列表页查询参数的唯一来源；所有读写都经过它，每次变更 revision +1
type Store struct {
	mu   sync.Mutex
	st   State
	rev  uint64
	subs []func(State, uint64)
}

// NewStore 从可分享的查询串恢复状态
func NewStore(raw string) *Store {
	return &Store{st: Decode(raw)}
}

func (s *Store) Get(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.get(key)
}

// State 原始状态（未补默认值）
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st
}

// Resolved 补齐默认值后的状态，供请求使用
func (s *Store) Resolved() State { return s.State().WithDefaults() }

// Snapshot 同一把锁下读取状态与 revision
func (s *Store) Snapshot() (State, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st, s.rev
}

func (s *Store) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rev
}

// Encode 当前状态的可分享表示
func (s *Store) Encode() string { return Encode(s.State()) }

// Set 空值删除该键
func (s *Store) Set(key, val string) bool {
	return s.SetMany(map[string]string{key: val})
}

// SetMany 原子地应用一组更新，只产生一次 revision。
// 修改 pageSize 或任一筛选/搜索键而未同时给出 page 时，页码回到第一页。
func (s *Store) SetMany(updates map[string]string) bool {
	s.mu.Lock()
	next := s.st
	changed := false
	resetPage := false
	for k, v := range updates {
		before := next.get(k)
		if !next.set(k, v) {
			continue
		}
		// 比较归一化后的值，例如 page=abc 解析为未设置
		if next.get(k) == before {
			continue
		}
		changed = true
		if k == KeyPageSize || isFilterKey(k) {
			resetPage = true
		}
	}
	if _, ok := updates[KeyPage]; resetPage && !ok && next.Page != 0 {
		next.Page = 0
	}
	if !changed {
		s.mu.Unlock()
		return false
	}
	s.st = next
	s.rev++
	st, rev := s.st, s.rev
	subs := append([]func(State, uint64){}, s.subs...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(st, rev)
	}
	return true
}

// Reset 清空全部参数
func (s *Store) Reset() {
	updates := make(map[string]string, len(Keys))
	for _, k := range Keys {
		updates[k] = ""
	}
	s.SetMany(updates)
}

// Subscribe 每次变更后回调（锁外执行）
func (s *Store) Subscribe(fn func(State, uint64)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func isFilterKey(k string) bool {
	for _, f := range FilterKeys {
		if f == k {
			return true
		}
	}
	return false
}
