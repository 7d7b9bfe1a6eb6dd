package utils

import (
	"sync"
	"time"
)

// TTLCache 进程内 TTL 缓存
// 显式实例化后注入使用，不做包级单例；并发安全
type TTLCache struct {
	mu    sync.RWMutex
	items map[string]cacheItem
}

// cacheItem 内部结构，包含值和过期时间
type cacheItem struct {
	value      interface{}
	expiration int64
}

// NewTTLCache 创建缓存
func NewTTLCache() *TTLCache {
	return &TTLCache{items: make(map[string]cacheItem)}
}

// Set 设置缓存
func (c *TTLCache) Set(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = cacheItem{
		value:      value,
		expiration: time.Now().Add(ttl).UnixNano(),
	}
}

// Get 获取缓存并验证是否过期
func (c *TTLCache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	// 过期懒删除
	if time.Now().UnixNano() > item.expiration {
		c.Delete(key)
		return nil, false
	}
	return item.value, true
}

// Delete 删除缓存
func (c *TTLCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Sweep 清理所有已过期条目，返回清理数量（定时任务调用）
func (c *TTLCache) Sweep() int {
	now := time.Now().UnixNano()
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for k, item := range c.items {
		if now > item.expiration {
			delete(c.items, k)
			n++
		}
	}
	return n
}

// Len 当前条目数
func (c *TTLCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
