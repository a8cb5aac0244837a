// Package eventbus provides the synchronous publish/subscribe mediator the
// storefront components use to talk to each other.
package eventbus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// ErrPayloadType is returned by Typed handlers when the event payload does not
// have the expected type.
var ErrPayloadType = errors.New("unexpected event payload type")

// Event is a single notification delivered to subscribers.
type Event struct {
	Name    string
	Payload any
}

// Handler reacts to an event. Returned errors are logged by the bus and never
// reach the publisher.
type Handler func(ctx context.Context, event Event) error

// Typed adapts a payload-typed function into a Handler.
func Typed[T any](fn func(ctx context.Context, payload T) error) Handler {
	return func(ctx context.Context, event Event) error {
		payload, ok := event.Payload.(T)
		if !ok {
			var want T
			return fmt.Errorf("%w: event %q carries %T, want %T", ErrPayloadType, event.Name, event.Payload, want)
		}
		return fn(ctx, payload)
	}
}

// Option customizes Bus construction.
type Option func(*Bus)

// WithLogger injects the logger used for handler failures.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bus) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// Bus fans events out to exact-name subscribers first, then to matcher
// subscribers, each group in registration order. Dispatch runs on the caller's
// stack; re-entrant Emit calls are delivered depth-first.
type Bus struct {
	mu       sync.RWMutex
	exact    map[string][]*Subscription
	matchers []*Subscription
	logger   *slog.Logger
}

// New constructs an empty bus.
func New(opts ...Option) *Bus {
	b := &Bus{
		exact:  map[string][]*Subscription{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Subscription identifies one registered handler.
type Subscription struct {
	bus     *Bus
	name    string
	matcher Matcher
	handler Handler

	mu     sync.Mutex
	active bool
}

// Unsubscribe stops further delivery. Calling it more than once is a no-op.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.bus == nil {
		return
	}
	s.bus.Off(s)
}

func (s *Subscription) isActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// deactivate reports whether the subscription was active before the call.
func (s *Subscription) deactivate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	was := s.active
	s.active = false
	return was
}

// On registers handler for events named exactly name.
func (b *Bus) On(name string, handler Handler) *Subscription {
	sub := &Subscription{bus: b, name: name, handler: handler, active: true}
	b.mu.Lock()
	b.exact[name] = append(b.exact[name], sub)
	b.mu.Unlock()
	return sub
}

// OnMatch registers handler for every event whose name satisfies matcher. A nil
// matcher registers nothing and yields a nil subscription.
func (b *Bus) OnMatch(matcher Matcher, handler Handler) *Subscription {
	if matcher == nil {
		return nil
	}
	sub := &Subscription{bus: b, matcher: matcher, handler: handler, active: true}
	b.mu.Lock()
	b.matchers = append(b.matchers, sub)
	b.mu.Unlock()
	return sub
}

// Off removes the subscription. Nil, foreign, or already removed subscriptions
// are ignored.
func (b *Bus) Off(sub *Subscription) {
	if sub == nil || sub.bus != b {
		return
	}
	if !sub.deactivate() {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if sub.matcher != nil {
		b.matchers = without(b.matchers, sub)
		return
	}
	remaining := without(b.exact[sub.name], sub)
	if len(remaining) == 0 {
		delete(b.exact, sub.name)
		return
	}
	b.exact[sub.name] = remaining
}

// Emit delivers payload to every matching subscriber before returning.
func (b *Bus) Emit(ctx context.Context, name string, payload any) {
	event := Event{Name: name, Payload: payload}
	for _, sub := range b.snapshot(ctx, name) {
		if !sub.isActive() {
			continue
		}
		b.invoke(ctx, sub, event)
	}
}

// snapshot resolves the subscribers of name. Matchers run outside the lock.
func (b *Bus) snapshot(ctx context.Context, name string) []*Subscription {
	b.mu.RLock()
	exact := b.exact[name]
	matchers := append([]*Subscription(nil), b.matchers...)
	b.mu.RUnlock()

	targets := make([]*Subscription, 0, len(exact)+len(matchers))
	targets = append(targets, exact...)
	for _, sub := range matchers {
		if b.matches(ctx, sub, name) {
			targets = append(targets, sub)
		}
	}
	return targets
}

// matches treats a panicking matcher as a miss.
func (b *Bus) matches(ctx context.Context, sub *Subscription, name string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.LogAttrs(ctx, slog.LevelError, "event matcher panicked",
				slog.String("event", name),
				slog.String("panic", fmt.Sprint(r)))
			ok = false
		}
	}()
	return sub.matcher(name)
}

func (b *Bus) invoke(ctx context.Context, sub *Subscription, event Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.LogAttrs(ctx, slog.LevelError, "event handler panicked",
				slog.String("event", event.Name),
				slog.String("panic", fmt.Sprint(r)))
		}
	}()
	if sub.handler == nil {
		return
	}
	if err := sub.handler(ctx, event); err != nil {
		b.logger.LogAttrs(ctx, slog.LevelError, "event handler failed",
			slog.String("event", event.Name),
			slog.String("error", err.Error()))
	}
}

func without(list []*Subscription, target *Subscription) []*Subscription {
	out := make([]*Subscription, 0, len(list))
	for _, sub := range list {
		if sub != target {
			out = append(out, sub)
		}
	}
	return out
}
