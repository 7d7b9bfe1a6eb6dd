package plugin

import (
	"sync"

	"go.uber.org/zap"
)

// ==================== EventBus 进程内事件总线 ====================

// EventHandler 事件回调
type EventHandler func(topic string, data interface{})

// EventBus 供 hook handler 发布领域事件（如 "order.confirmed"）
// 同步调用订阅者；订阅者 panic 不影响发布方
type EventBus struct {
	mu       sync.RWMutex
	handlers map[string][]EventHandler
	logger   *zap.SugaredLogger
}

// NewEventBus 创建事件总线
func NewEventBus(logger *zap.SugaredLogger) *EventBus {
	return &EventBus{
		handlers: make(map[string][]EventHandler),
		logger:   logger,
	}
}

// Subscribe 订阅主题
func (b *EventBus) Subscribe(topic string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], handler)
}

// Emit 发布事件
func (b *EventBus) Emit(topic string, data interface{}) {
	b.mu.RLock()
	handlers := make([]EventHandler, len(b.handlers[topic]))
	copy(handlers, b.handlers[topic])
	b.mu.RUnlock()

	for _, h := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					b.logger.Errorw("事件订阅者 panic", "topic", topic, "panic", r)
				}
			}()
			h(topic, data)
		}()
	}
}
