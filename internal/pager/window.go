// Package pager computes the compressed page-selector window shown under the users table.
package pager

import "strconv"

const (
	maxUncompressed = 9
	edge            = 3 // 头尾固定页数
	span            = 3 // 中间窗口页数
)

// Token 页码或省略号（Page == 0）
type Token struct {
	Page int `json:"page,omitempty"`
}

var Ellipsis = Token{}

func (t Token) IsEllipsis() bool { return t.Page == 0 }

func (t Token) String() string {
	if t.IsEllipsis() {
		return "…"
	}
	return strconv.Itoa(t.Page)
}

// Window 总页数不超过 9 时全部列出；否则 头3 + 当前页居中的 3 页 + 尾3，中间有空档插省略号
func Window(current, total int) []Token {
	total = max(1, total)
	if total <= maxUncompressed {
		out := make([]Token, 0, total)
		for p := 1; p <= total; p++ {
			out = append(out, Token{Page: p})
		}
		return out
	}

	cur := max(1, min(current, total))
	start := cur - span/2
	start = max(edge+1, min(start, total-edge-span+1))
	end := start + span - 1

	out := make([]Token, 0, 2*edge+span+2)
	last := 0
	push := func(p int) {
		if p <= last {
			return
		}
		if last > 0 && p > last+1 {
			out = append(out, Ellipsis)
		}
		out = append(out, Token{Page: p})
		last = p
	}
	for p := 1; p <= edge; p++ {
		push(p)
	}
	for p := start; p <= end; p++ {
		push(p)
	}
	for p := total - edge + 1; p <= total; p++ {
		push(p)
	}
	return out
}

// Pages 只取页码（省略号记为 0）
func Pages(tokens []Token) []int {
	out := make([]int, len(tokens))
	for i, t := range tokens {
		out[i] = t.Page
	}
	return out
}

// Render 以空格拼接，如 "1 2 3 … 7 8 9 … 18 19 20"，current 用方括号标出
func Render(tokens []Token, current int) string {
	b := make([]byte, 0, len(tokens)*4)
	for i, t := range tokens {
		if i > 0 {
			b = append(b, ' ')
		}
		if !t.IsEllipsis() && t.Page == current {
			b = append(b, '[')
			b = append(b, t.String()...)
			b = append(b, ']')
			continue
		}
		b = append(b, t.String()...)
	}
	return string(b)
}
