package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventOpened           EventType = "Opened"
	EventClosed           EventType = "Closed"
	EventSearchChanged    EventType = "SearchChanged"
	EventHighlightChanged EventType = "HighlightChanged"
	EventItemSelected     EventType = "ItemSelected"
	EventSelectionCleared EventType = "SelectionCleared"
	EventItemsChanged     EventType = "ItemsChanged"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// OpenedEvent is emitted when the option list becomes visible
type OpenedEvent struct{}

func (e OpenedEvent) Type() EventType { return EventOpened }

// ClosedEvent is emitted when the option list is hidden
type ClosedEvent struct{}

func (e ClosedEvent) Type() EventType { return EventClosed }

// SearchChangedEvent is emitted after the search text changes
type SearchChangedEvent struct {
	Query      string
	MatchCount int
}

func (e SearchChangedEvent) Type() EventType { return EventSearchChanged }

// HighlightChangedEvent is emitted when the highlighted index moves.
// -1 means no highlight.
type HighlightChangedEvent struct {
	OldIndex int
	NewIndex int
}

func (e HighlightChangedEvent) Type() EventType { return EventHighlightChanged }

// ItemSelectedEvent is emitted when an item is committed as the selection
type ItemSelectedEvent struct {
	Item  any
	Label string
}

func (e ItemSelectedEvent) Type() EventType { return EventItemSelected }

// SelectionClearedEvent is emitted when the selection becomes absent
type SelectionClearedEvent struct{}

func (e SelectionClearedEvent) Type() EventType { return EventSelectionCleared }

// ItemsChangedEvent is emitted when the caller replaces the item list
type ItemsChangedEvent struct {
	Count      int
	MatchCount int
}

func (e ItemsChangedEvent) Type() EventType { return EventItemsChanged }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
