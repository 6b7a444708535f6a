package router

import (
	"sync"

	"github.com/gin-gonic/gin"
)

// 每个模块提供一个 Register(Route) 函数，实现下面签名：
type Registrar interface{ Register(r *gin.Engine) }

// 全局注册表（集中声明要装配的模块）
var (
	mu         sync.Mutex
	registrars []Registrar
)

// Register 向全局注册表中注册模块
func Register(rs ...Registrar) {
	mu.Lock()
	defer mu.Unlock()
	registrars = append(registrars, rs...)
}

// Mount 挂载所有已注册模块并清空注册表, 同一模块不会被挂载两次.
func Mount(r *gin.Engine) {
	mu.Lock()
	pending := registrars
	registrars = nil
	mu.Unlock()

	for _, rg := range pending {
		rg.Register(r)
	}
}
