package plugin

import (
	"sync"
)

// ==================== Registry 插件注册表 ====================

// Registry 进程内已注册的插件实现
// 目录表（plugins）决定插件是否存在，注册表决定本进程能否执行它：
// 两者通过 slug 对齐，未注册实现的安装记录在 dispatch 时被跳过并告警
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
}

// NewRegistry 创建注册表
func NewRegistry() *Registry {
	return &Registry{plugins: make(map[string]Plugin)}
}

// Register 注册插件实现（slug 重复时覆盖）
func (r *Registry) Register(p Plugin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plugins[p.Slug()] = p
}

// Get 按 slug 取插件实现
func (r *Registry) Get(slug string) (Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[slug]
	return p, ok
}

// Slugs 已注册的全部 slug
func (r *Registry) Slugs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	slugs := make([]string, 0, len(r.plugins))
	for slug := range r.plugins {
		slugs = append(slugs, slug)
	}
	return slugs
}

// DefaultRegistry 注册全部内置插件
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&PaymentValidator{})
	r.Register(&GatewayMeta{})
	r.Register(NewWebhookNotifier())
	return r
}
