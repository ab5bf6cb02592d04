package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreFilterChangeResetsPage(t *testing.T) {
	s := NewStore("page=4&pageSize=20")
	require.Equal(t, 4, s.State().Page)

	assert.True(t, s.Set(KeyStatus, "active"))
	assert.Equal(t, 0, s.State().Page)
	assert.Equal(t, 1, s.Resolved().Page)
	assert.Equal(t, "pageSize=20&status=active", s.Encode())
}

func TestStorePageSizeChangeResetsPage(t *testing.T) {
	s := NewStore("page=3")
	s.Set(KeyPageSize, "50")
	assert.Equal(t, 1, s.Resolved().Page)
}

func TestStoreExplicitPageWins(t *testing.T) {
	s := NewStore("page=3")
	s.SetMany(map[string]string{KeySearch: "ade", KeyPage: "2"})
	assert.Equal(t, 2, s.State().Page)
}

func TestStoreSortDoesNotResetPage(t *testing.T) {
	s := NewStore("page=3")
	s.Set(KeySortBy, "userName")
	assert.Equal(t, 3, s.State().Page)
}

func TestStoreRevisionAndSubscribers(t *testing.T) {
	s := NewStore("")
	var seen []uint64
	s.Subscribe(func(_ State, rev uint64) { seen = append(seen, rev) })

	assert.True(t, s.SetMany(map[string]string{KeySearch: "a", KeyStatus: "active"}))
	assert.False(t, s.Set(KeySearch, "a"), "no-op update")
	assert.False(t, s.Set("bogus", "x"))
	s.Reset()

	assert.Equal(t, []uint64{1, 2}, seen)
	assert.Equal(t, uint64(2), s.Revision())
	assert.Equal(t, State{}, s.State())
	assert.Equal(t, "", s.Get(KeySearch))
}

func TestStoreInvalidPageIsNoOp(t *testing.T) {
	s := NewStore("")
	var calls int
	s.Subscribe(func(State, uint64) { calls++ })

	assert.False(t, s.Set(KeyPage, "abc"))
	assert.Equal(t, uint64(0), s.Revision())
	assert.Zero(t, calls)

	s = NewStore("page=3")
	assert.True(t, s.Set(KeyPage, "abc"), "clears an explicit page")
	assert.Equal(t, 0, s.State().Page)
}

func TestStoreSnapshotMatchesState(t *testing.T) {
	s := NewStore("search=ade")
	s.Set(KeyStatus, "active")
	st, rev := s.Snapshot()
	assert.Equal(t, s.State(), st)
	assert.Equal(t, uint64(1), rev)
}
