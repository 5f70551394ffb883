package outbox

import (
	"context"
	"runtime/debug"
	"sync"

	"car-sharing-app/internal/domain/events"

	"go.uber.org/zap"
)

// Bus is an in-memory event bus: services publish after their
// transaction commits and a single dispatch goroutine fans events out
// to subscribers. It is not durable; a true outbox would persist events
// and dispatch from a worker.
type Bus struct {
	mu        sync.RWMutex
	subs      map[string][]events.Handler
	queue     chan events.Event
	startOnce sync.Once
	stopOnce  sync.Once
	cancel    context.CancelFunc
	done      chan struct{}
	log       *zap.Logger
}

func NewBus(log *zap.Logger) *Bus {
	return &Bus{
		subs:  make(map[string][]events.Handler),
		queue: make(chan events.Event, 256),
		done:  make(chan struct{}),
		log:   log.With(zap.String("component", "outbox")),
	}
}

func (b *Bus) Subscribe(eventName string, h events.Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[eventName] = append(b.subs[eventName], h)
}

func (b *Bus) Start(ctx context.Context) {
	b.startOnce.Do(func() {
		bg, cancel := context.WithCancel(ctx)
		b.cancel = cancel
		go b.dispatchLoop(bg)
		b.log.Info("event bus started")
	})
}

func (b *Bus) Stop() {
	b.stopOnce.Do(func() {
		if b.cancel != nil {
			b.cancel()
		}
		close(b.queue)
		<-b.done
		b.log.Info("event bus stopped")
	})
}

func (b *Bus) Publish(ctx context.Context, e events.Event) error {
	if e == nil {
		return nil
	}
	select {
	case b.queue <- e:
		return nil
	case <-ctx.Done():
		b.log.Warn("event dropped", zap.String("event", e.EventName()), zap.Error(ctx.Err()))
		return ctx.Err()
	}
}

func (b *Bus) dispatchLoop(ctx context.Context) {
	defer close(b.done)
	for e := range b.queue {
		b.fanout(ctx, e)
	}
}

func (b *Bus) fanout(ctx context.Context, e events.Event) {
	name := e.EventName()

	b.mu.RLock()
	handlers := append([]events.Handler(nil), b.subs[name]...)
	b.mu.RUnlock()

	for _, h := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					b.log.Error("event handler panic",
						zap.String("event", name),
						zap.Any("panic", r),
						zap.String("stack", string(debug.Stack())),
					)
				}
			}()
			if err := h(ctx, e); err != nil {
				b.log.Warn("event handler error", zap.String("event", name), zap.Error(err))
			}
		}()
	}
}
