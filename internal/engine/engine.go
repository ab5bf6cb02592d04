package engine

import (
	"lendsqr-admin/internal/domain"
	"lendsqr-admin/internal/query"
)

// Result Adjusted 表示请求的 page 或 pageSize 被夹紧过（例如筛选后旧页码越界）
type Result struct {
	Paginated[domain.User]
	Adjusted bool `json:"adjusted"`
}

// Run 按 search -> filter -> sort -> paginate 的固定顺序执行
func Run(users []domain.User, st query.State) Result {
	st = st.WithDefaults()

	rows := ApplySearch(users, st.Query())
	rows = ApplyFilters(rows, st.Filters)
	rows = ApplySort(rows, st.SortBy, st.SortDir)
	page := ApplyPagination(rows, st.Page, st.PageSize)

	return Result{
		Paginated: page,
		Adjusted:  page.Page != st.Page || page.PageSize != st.PageSize,
	}
}
