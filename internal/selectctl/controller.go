package selectctl

import (
	"reflect"

	"headlesselect/internal/eventbus"
)

// Controller is a headless single-select controller. It owns the open
// state, search text, highlight and selection for one select widget and
// hands out prop bundles for a view to bind to.
//
// A Controller is not safe for concurrent use; all transitions are
// expected to run on the goroutine delivering UI events.
type Controller[T any] struct {
	state        *State[T]
	items        []T
	filtered     []T
	itemToString func(T) string
	itemKey      func(T) string
	bus          eventbus.EventBus
}

// New creates a controller over items
func New[T any](items []T, opts Options[T]) *Controller[T] {
	c := &Controller[T]{
		state: &State[T]{
			IsOpen:           opts.InitialOpen,
			HighlightedIndex: -1,
		},
		items:        items,
		itemToString: opts.ItemToString,
		itemKey:      opts.ItemKey,
		bus:          opts.Bus,
	}
	if c.itemToString == nil {
		c.itemToString = defaultItemToString[T]
	}
	if c.bus == nil {
		c.bus = eventbus.New()
	}
	if opts.InitialSelectedItem != nil {
		c.state.Selected = *opts.InitialSelectedItem
		c.state.HasSelection = true
	}
	c.filtered = Filter(c.items, c.state.Search, c.itemToString)
	return c
}

// IsOpen reports whether the option list is visible
func (c *Controller[T]) IsOpen() bool {
	return c.state.IsOpen
}

// Search returns the current search text
func (c *Controller[T]) Search() string {
	return c.state.Search
}

// SelectedItem returns the committed selection, if any
func (c *Controller[T]) SelectedItem() (T, bool) {
	return c.state.Selected, c.state.HasSelection
}

// HighlightedIndex returns the index into FilteredItems, or -1
func (c *Controller[T]) HighlightedIndex() int {
	return c.state.HighlightedIndex
}

// HighlightedItem returns the item under the highlight, if any
func (c *Controller[T]) HighlightedItem() (T, bool) {
	if c.state.HighlightedIndex < 0 {
		var zero T
		return zero, false
	}
	return c.filtered[c.state.HighlightedIndex], true
}

// Items returns the current item snapshot
func (c *Controller[T]) Items() []T {
	return c.items
}

// FilteredItems returns the items matching the current search. The slice
// must be treated as read-only.
func (c *Controller[T]) FilteredItems() []T {
	return c.filtered
}

// Label returns the projected text for item
func (c *Controller[T]) Label(item T) string {
	return c.itemToString(item)
}

// IsSelected reports whether item is the committed selection
func (c *Controller[T]) IsSelected(item T) bool {
	if !c.state.HasSelection {
		return false
	}
	if c.itemKey != nil {
		return c.itemKey(item) == c.itemKey(c.state.Selected)
	}
	return reflect.DeepEqual(item, c.state.Selected)
}

// Snapshot returns a copy of the current state
func (c *Controller[T]) Snapshot() Snapshot[T] {
	return Snapshot[T]{
		IsOpen:           c.state.IsOpen,
		Search:           c.state.Search,
		SelectedItem:     c.state.Selected,
		HasSelection:     c.state.HasSelection,
		HighlightedIndex: c.state.HighlightedIndex,
		FilteredItems:    c.filtered,
	}
}

// Subscribe registers handler for every state change notification.
// The returned function removes it.
func (c *Controller[T]) Subscribe(handler eventbus.EventHandler) func() {
	return c.bus.SubscribeAll(handler)
}

// Bus returns the bus the controller publishes on
func (c *Controller[T]) Bus() eventbus.EventBus {
	return c.bus
}

// Open shows the option list
func (c *Controller[T]) Open() {
	if c.state.IsOpen {
		return
	}
	c.state.IsOpen = true
	c.bus.Publish(eventbus.OpenedEvent{})
}

// Close hides the option list and clears the highlight
func (c *Controller[T]) Close() {
	c.setHighlight(-1)
	if !c.state.IsOpen {
		return
	}
	c.state.IsOpen = false
	c.bus.Publish(eventbus.ClosedEvent{})
}

// Toggle opens a closed list and closes an open one
func (c *Controller[T]) Toggle() {
	if c.state.IsOpen {
		c.Close()
		return
	}
	c.Open()
}

// SetSearch replaces the search text. A highlight left past the end of
// the new filtered list is clamped to its last item.
func (c *Controller[T]) SetSearch(text string) {
	if text == c.state.Search {
		return
	}
	c.state.Search = text
	c.refilter()
	c.bus.Publish(eventbus.SearchChangedEvent{
		Query:      text,
		MatchCount: len(c.filtered),
	})
}

// SetItems replaces the item snapshot
func (c *Controller[T]) SetItems(items []T) {
	c.items = items
	c.refilter()
	c.bus.Publish(eventbus.ItemsChangedEvent{
		Count:      len(items),
		MatchCount: len(c.filtered),
	})
}

// SelectItem commits item as the selection and closes the list. item is
// expected to come from the supplied items; this is not checked.
func (c *Controller[T]) SelectItem(item T) {
	c.state.Selected = item
	c.state.HasSelection = true
	c.Close()
	c.bus.Publish(eventbus.ItemSelectedEvent{
		Item:  item,
		Label: c.itemToString(item),
	})
}

// ClearSelection drops the committed selection
func (c *Controller[T]) ClearSelection() {
	if !c.state.HasSelection {
		return
	}
	var zero T
	c.state.Selected = zero
	c.state.HasSelection = false
	c.bus.Publish(eventbus.SelectionClearedEvent{})
}

// SetHighlightedIndex moves the highlight to index. It is ignored while
// the list is closed or when index is outside the filtered list.
func (c *Controller[T]) SetHighlightedIndex(index int) {
	if !c.state.IsOpen || index < -1 || index >= len(c.filtered) {
		return
	}
	c.setHighlight(index)
}

func (c *Controller[T]) refilter() {
	c.filtered = Filter(c.items, c.state.Search, c.itemToString)
	if c.state.HighlightedIndex >= len(c.filtered) {
		c.setHighlight(len(c.filtered) - 1)
	}
}

func (c *Controller[T]) setHighlight(index int) {
	old := c.state.HighlightedIndex
	if old == index {
		return
	}
	c.state.HighlightedIndex = index
	c.bus.Publish(eventbus.HighlightChangedEvent{
		OldIndex: old,
		NewIndex: index,
	})
}
