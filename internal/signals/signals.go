// internal/signals/signals.go
package signals

import (
	"context"
	"log/slog"
	"sync"
)

// Event names emitted by the identity core. Delivery is at-least-once;
// subscribers must be idempotent.
const (
	UserRegistered    = "user-registered"
	UserLogin         = "user-login"
	UserDataChanged   = "user-data-changed"
	MembershipChanged = "membership-changed"
	OrgChanged        = "org-changed"
	TeamChanged       = "team-changed"
	EmailClaimed      = "email-claimed"
	PhoneClaimed      = "phone-claimed"
)

// Event is a named change notification with an opaque payload.
type Event struct {
	Name    string
	Subject string
	Changes []string
}

// Handler consumes an event. Handlers run synchronously on the
// publishing goroutine and must not block on the store.
type Handler func(ctx context.Context, event Event)

// Bus fans events out to registered subscribers.
type Bus interface {
	Publish(ctx context.Context, event Event)
	Subscribe(name string, handler Handler)
}

// InProcBus is a process-local Bus. External consumers (audit, cache
// invalidation) hang off a subscriber that bridges to their transport.
type InProcBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

func NewInProcBus() *InProcBus {
	return &InProcBus{handlers: make(map[string][]Handler)}
}

func (b *InProcBus) Subscribe(name string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = append(b.handlers[name], handler)
}

func (b *InProcBus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := b.handlers[event.Name]
	b.mu.RUnlock()

	slog.DebugContext(ctx, "publishing event",
		"event", event.Name, "subject", event.Subject, "changes", event.Changes)

	for _, h := range handlers {
		h(ctx, event)
	}
}

// NopBus discards all events. Useful in tests.
type NopBus struct{}

func (NopBus) Publish(context.Context, Event) {}
func (NopBus) Subscribe(string, Handler)      {}
