package selectctl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"headlesselect/internal/eventbus"
)

func TestTriggerProps(t *testing.T) {
	c := newFruits(Options[string]{})

	p := c.TriggerProps()
	assert.Equal(t, "listbox", p.AriaHasPopup)
	assert.False(t, p.AriaExpanded)

	p.OnClick()
	assert.True(t, c.IsOpen())
	assert.False(t, p.AriaExpanded, "bundles are snapshots of the state they were built from")
	assert.True(t, c.TriggerProps().AriaExpanded)

	c.TriggerProps().OnClick()
	assert.False(t, c.IsOpen())
}

func TestInputProps(t *testing.T) {
	c := newFruits(Options[string]{})
	c.Open()

	p := c.InputProps()
	assert.Equal(t, "", p.Value)
	assert.Equal(t, "list", p.AriaAutocomplete)

	p.OnChange("an")
	assert.Equal(t, []string{"Banana"}, c.FilteredItems())
	assert.Equal(t, "an", c.InputProps().Value)

	e := NewKeyEvent(KeyDown)
	p.OnKeyDown(e)
	assert.True(t, e.DefaultPrevented())
	assert.Equal(t, 0, c.HighlightedIndex())

	p.OnKeyDown(NewKeyEvent(KeyEnter))
	sel, ok := c.SelectedItem()
	require.True(t, ok)
	assert.Equal(t, "Banana", sel)
}

func TestListboxProps(t *testing.T) {
	c := newFruits(Options[string]{})
	assert.Equal(t, ListboxProps{Role: "listbox"}, c.ListboxProps())
	assert.Equal(t, map[string]any{"role": "listbox"}, c.ListboxProps().Attrs())
}

func TestOptionProps(t *testing.T) {
	initial := "Banana"
	c := newFruits(Options[string]{InitialSelectedItem: &initial})
	c.Open()

	p := c.OptionProps("Banana", 1)
	assert.Equal(t, "option", p.Role)
	assert.Equal(t, 1, p.Key)
	assert.True(t, p.AriaSelected)
	assert.False(t, p.Highlighted)
	assert.False(t, c.OptionProps("Apple", 0).AriaSelected)

	c.OptionProps("Cherry", 2).OnPointerEnter()
	assert.Equal(t, 2, c.HighlightedIndex())
	assert.True(t, c.OptionProps("Cherry", 2).Highlighted)

	c.OptionProps("Date", 3).OnClick()
	sel, _ := c.SelectedItem()
	assert.Equal(t, "Date", sel)
	assert.False(t, c.IsOpen())
	assert.Equal(t, -1, c.HighlightedIndex())
}

func TestOptionPointerEnterWhileClosed(t *testing.T) {
	c := newFruits(Options[string]{})
	c.OptionProps("Apple", 0).OnPointerEnter()
	assert.Equal(t, -1, c.HighlightedIndex())
}

func TestBuildingPropsDoesNotMutate(t *testing.T) {
	c := newFruits(Options[string]{InitialOpen: true})

	count := 0
	c.Subscribe(func(eventbus.DomainEvent) { count++ })

	before := c.Snapshot()
	c.TriggerProps()
	c.InputProps()
	c.ListboxProps()
	for i, item := range c.FilteredItems() {
		c.OptionProps(item, i)
	}
	assert.Equal(t, before, c.Snapshot())
	assert.Zero(t, count)
}

func TestAttrs(t *testing.T) {
	c := newFruits(Options[string]{})

	trigger := c.TriggerProps().Attrs()
	assert.Equal(t, "listbox", trigger["aria-haspopup"])
	assert.Equal(t, false, trigger["aria-expanded"])
	require.IsType(t, func() {}, trigger["onClick"])
	trigger["onClick"].(func())()
	assert.True(t, c.IsOpen())

	input := c.InputProps().Attrs()
	assert.Equal(t, "", input["value"])
	assert.Equal(t, "list", input["aria-autocomplete"])
	input["onChange"].(func(string))("che")
	assert.Equal(t, []string{"Cherry"}, c.FilteredItems())
	input["onKeyDown"].(func(*KeyEvent))(NewKeyEvent(KeyDown))
	assert.Equal(t, 0, c.HighlightedIndex())

	option := c.OptionProps("Cherry", 0).Attrs()
	assert.Equal(t, "option", option["role"])
	assert.Equal(t, 0, option["key"])
	assert.Equal(t, false, option["aria-selected"])
	assert.Contains(t, option, "onMouseEnter")
	option["onClick"].(func())()
	sel, _ := c.SelectedItem()
	assert.Equal(t, "Cherry", sel)
}
