package selectctl

import "headlesselect/internal/eventbus"

// Options configures a Controller
type Options[T any] struct {
	// ItemToString projects an item to the text used for filtering and
	// default display. Nil falls back to fmt.Sprint.
	ItemToString func(T) string

	// InitialSelectedItem seeds the selection. Nil means no selection.
	InitialSelectedItem *T

	// ItemKey identifies items when deciding whether an option is the
	// selected one. Nil compares whole items with reflect.DeepEqual.
	ItemKey func(T) string

	// InitialOpen starts the controller in the open state
	InitialOpen bool

	// Bus receives change notifications. Nil gets a private bus.
	Bus eventbus.EventBus
}

// State holds all controller-owned state
type State[T any] struct {
	IsOpen           bool
	Search           string
	Selected         T
	HasSelection     bool
	HighlightedIndex int
}

// Snapshot is a read-only copy of the controller state plus the derived
// filtered list
type Snapshot[T any] struct {
	IsOpen           bool
	Search           string
	SelectedItem     T
	HasSelection     bool
	HighlightedIndex int
	FilteredItems    []T
}

// Key names a key the navigation policy recognises
type Key string

const (
	KeyDown   Key = "ArrowDown"
	KeyUp     Key = "ArrowUp"
	KeyEnter  Key = "Enter"
	KeyEscape Key = "Escape"
)

// KeyEvent is a key-down event passed to the input's key handler.
// The handler marks it when the view should suppress the key's default
// behaviour (cursor movement and the like).
type KeyEvent struct {
	Key              Key
	defaultPrevented bool
}

// NewKeyEvent creates a key event for key
func NewKeyEvent(key Key) *KeyEvent {
	return &KeyEvent{Key: key}
}

// PreventDefault marks the event as handled by the controller
func (e *KeyEvent) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether the controller acted on the event
func (e *KeyEvent) DefaultPrevented() bool {
	return e.defaultPrevented
}

// Attribute names understood by renderers
const (
	AttrOnClick          = "onClick"
	AttrOnChange         = "onChange"
	AttrOnKeyDown        = "onKeyDown"
	AttrOnMouseEnter     = "onMouseEnter"
	AttrRole             = "role"
	AttrKey              = "key"
	AttrValue            = "value"
	AttrAriaHasPopup     = "aria-haspopup"
	AttrAriaExpanded     = "aria-expanded"
	AttrAriaAutocomplete = "aria-autocomplete"
	AttrAriaSelected     = "aria-selected"

	RoleListbox = "listbox"
	RoleOption  = "option"
)

// TriggerProps binds the element that opens and closes the list
type TriggerProps struct {
	AriaHasPopup string
	AriaExpanded bool
	OnClick      func()
}

// Attrs returns the bundle as a flat attribute map
func (p TriggerProps) Attrs() map[string]any {
	return map[string]any{
		AttrOnClick:      p.OnClick,
		AttrAriaHasPopup: p.AriaHasPopup,
		AttrAriaExpanded: p.AriaExpanded,
	}
}

// InputProps binds the search input
type InputProps struct {
	Value            string
	AriaAutocomplete string
	OnChange         func(value string)
	OnKeyDown        func(e *KeyEvent)
}

// Attrs returns the bundle as a flat attribute map
func (p InputProps) Attrs() map[string]any {
	return map[string]any{
		AttrValue:            p.Value,
		AttrOnChange:         p.OnChange,
		AttrOnKeyDown:        p.OnKeyDown,
		AttrAriaAutocomplete: p.AriaAutocomplete,
	}
}

// ListboxProps binds the option list container
type ListboxProps struct {
	Role string
}

// Attrs returns the bundle as a flat attribute map
func (p ListboxProps) Attrs() map[string]any {
	return map[string]any{
		AttrRole: p.Role,
	}
}

// OptionProps binds a single option row
type OptionProps struct {
	Role         string
	Key          int
	AriaSelected bool

	// Highlighted is a read hint for renderers; it is not part of the
	// attribute vocabulary.
	Highlighted bool

	OnPointerEnter func()
	OnClick        func()
}

// Attrs returns the bundle as a flat attribute map
func (p OptionProps) Attrs() map[string]any {
	return map[string]any{
		AttrRole:         p.Role,
		AttrKey:          p.Key,
		AttrAriaSelected: p.AriaSelected,
		AttrOnMouseEnter: p.OnPointerEnter,
		AttrOnClick:      p.OnClick,
	}
}
