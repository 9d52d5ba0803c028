package eventbus

import (
	"log"
	"runtime/debug"
	"sync"

	"headlesselect/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventOpened           = domain.EventOpened
	EventClosed           = domain.EventClosed
	EventSearchChanged    = domain.EventSearchChanged
	EventHighlightChanged = domain.EventHighlightChanged
	EventItemSelected     = domain.EventItemSelected
	EventSelectionCleared = domain.EventSelectionCleared
	EventItemsChanged     = domain.EventItemsChanged
	EventConfigLoaded     = domain.EventConfigLoaded
	EventConfigSaved      = domain.EventConfigSaved
)

// Re-export domain event types
type OpenedEvent = domain.OpenedEvent
type ClosedEvent = domain.ClosedEvent
type SearchChangedEvent = domain.SearchChangedEvent
type HighlightChangedEvent = domain.HighlightChangedEvent
type ItemSelectedEvent = domain.ItemSelectedEvent
type SelectionClearedEvent = domain.SelectionClearedEvent
type ItemsChangedEvent = domain.ItemsChangedEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus.
// Subscribe and SubscribeAll return an unsubscribe function.
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	SubscribeAll(handler EventHandler) func()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus delivers events synchronously on the publishing goroutine, so every
// subscriber has observed a transition before the transition returns.
type bus struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers map[EventType][]subscription
	all      []subscription
}

// New creates a new event bus
func New() EventBus {
	return &bus{
		handlers: make(map[EventType][]subscription),
	}
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	if event == nil {
		return
	}

	// Make a copy to avoid holding the lock while handlers run; a handler
	// may itself subscribe, unsubscribe or publish.
	b.mu.RLock()
	typed := b.handlers[event.Type()]
	handlers := make([]EventHandler, 0, len(typed)+len(b.all))
	for _, s := range typed {
		handlers = append(handlers, s.handler)
	}
	for _, s := range b.all {
		handlers = append(handlers, s.handler)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		b.call(h, event)
	}
}

// Subscribe subscribes to events of a specific type
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.handlers[eventType] = remove(b.handlers[eventType], id)
	}
}

// SubscribeAll subscribes to every event regardless of type
func (b *bus) SubscribeAll(handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.all = append(b.all, subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.all = remove(b.all, id)
	}
}

func (b *bus) call(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Event handler panic for %s: %v\nStack: %s", event.Type(), r, debug.Stack())
		}
	}()
	h(event)
}

func remove(subs []subscription, id uint64) []subscription {
	for i, s := range subs {
		if s.id == id {
			out := make([]subscription, 0, len(subs)-1)
			out = append(out, subs[:i]...)
			return append(out, subs[i+1:]...)
		}
	}
	return subs
}

// NullBus is a no-op implementation of EventBus
type NullBus struct{}

func (NullBus) Publish(event DomainEvent)                                  {}
func (NullBus) Subscribe(eventType EventType, handler EventHandler) func() { return func() {} }
func (NullBus) SubscribeAll(handler EventHandler) func()                   { return func() {} }
