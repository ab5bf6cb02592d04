package router

import (
	"sort"

	"github.com/gin-gonic/gin"
)

// Module 在给定分组上注册自己的路由
type Module interface{ Mount(*gin.RouterGroup) }

// 实现该接口可控制挂载顺序（数值越小越先挂），不实现默认 100
type prioritizer interface{ Priority() int }

type Registry struct {
	mods []Module
}

func (r *Registry) Add(mods ...Module) { r.mods = append(r.mods, mods...) }

func (r *Registry) MountAll(g *gin.RouterGroup) {
	mods := append([]Module(nil), r.mods...)
	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	for _, m := range mods {
		m.Mount(g)
	}
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
