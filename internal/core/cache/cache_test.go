package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	N int `json:"n"`
}

func TestGetOrLoadJSONCachesUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	c := New(NewMemory(time.Minute))
	var loads atomic.Int32
	load := func(context.Context) (*item, error) {
		return &item{N: int(loads.Add(1))}, nil
	}

	v, err := GetOrLoadJSON(c, ctx, "k", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, 1, v.N)

	v, _ = GetOrLoadJSON(c, ctx, "k", time.Minute, load)
	assert.Equal(t, 1, v.N)

	require.NoError(t, c.Invalidate(ctx, "k"))
	v, _ = GetOrLoadJSON(c, ctx, "k", time.Minute, load)
	assert.Equal(t, 2, v.N)
}

func TestGetOrLoadErrorNotCached(t *testing.T) {
	ctx := context.Background()
	c := New(NewMemory(time.Minute))
	boom := errors.New("boom")

	_, err := GetOrLoadJSON(c, ctx, "k", time.Minute, func(context.Context) (*item, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)

	v, err := GetOrLoadJSON(c, ctx, "k", time.Minute, func(context.Context) (*item, error) { return &item{N: 7}, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v.N)
}

func TestGetOrLoadCoalesces(t *testing.T) {
	ctx := context.Background()
	c := New(NewMemory(time.Minute))
	var loads atomic.Int32
	release := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.GetOrLoad(ctx, "k", time.Minute, func(context.Context) ([]byte, error) {
				loads.Add(1)
				<-release
				return []byte("1"), nil
			})
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	assert.Equal(t, int32(1), loads.Load())

	b, err := NewMemory(time.Minute).Get(ctx, "missing")
	assert.Nil(t, b)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestGetOrLoadJSONReplacesUndecodableEntry(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory(time.Minute)
	c := New(mem)
	for _, stale := range []string{`{"n":"not a number"}`, `null`} {
		require.NoError(t, mem.Set(ctx, "k", []byte(stale), time.Minute))

		v, err := GetOrLoadJSON(c, ctx, "k", time.Minute, func(context.Context) (*item, error) { return &item{N: 3}, nil })
		require.NoError(t, err)
		assert.Equal(t, 3, v.N)

		b, err := mem.Get(ctx, "k")
		require.NoError(t, err)
		assert.JSONEq(t, `{"n":3}`, string(b))
	}
}

func TestGetOrLoadJSONNilValueNotCached(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory(time.Minute)
	c := New(mem)

	v, err := GetOrLoadJSON(c, ctx, "k", time.Minute, func(context.Context) (*item, error) { return nil, nil })
	assert.ErrorIs(t, err, ErrMiss)
	assert.Nil(t, v)

	_, err = mem.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}
