package pager

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindowSmallTotalsListEverything(t *testing.T) {
	assert.Equal(t, []int{1}, Pages(Window(1, 0)))
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, Pages(Window(5, 9)))
}

func TestWindowCompressed(t *testing.T) {
	cases := []struct {
		current, total int
		want           string
	}{
		{8, 20, "1 2 3 … 7 [8] 9 … 18 19 20"},
		{1, 20, "[1] 2 3 4 5 6 … 18 19 20"},
		{20, 20, "1 2 3 … 15 16 17 18 19 [20]"},
		{5, 10, "1 2 3 4 [5] 6 … 8 9 10"},
		{99, 20, "1 2 3 … 15 16 17 18 19 20"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Render(Window(tc.current, tc.total), tc.current), "current=%d total=%d", tc.current, tc.total)
	}
}

func TestWindowHasNoDuplicates(t *testing.T) {
	for total := 1; total <= 30; total++ {
		for cur := 1; cur <= total; cur++ {
			seen := map[int]bool{}
			prev := 0
			for _, tk := range Window(cur, total) {
				if tk.IsEllipsis() {
					continue
				}
				assert.False(t, seen[tk.Page])
				assert.Greater(t, tk.Page, prev)
				seen[tk.Page], prev = true, tk.Page
			}
			assert.True(t, seen[cur], "current page always shown")
		}
	}
}

func TestEllipsisString(t *testing.T) {
	assert.Equal(t, "…", Ellipsis.String())
	assert.Equal(t, "7", Token{Page: 7}.String())
}
