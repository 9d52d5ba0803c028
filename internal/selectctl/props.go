package selectctl

// TriggerProps returns the bundle for the element that toggles the list
func (c *Controller[T]) TriggerProps() TriggerProps {
	return TriggerProps{
		AriaHasPopup: RoleListbox,
		AriaExpanded: c.state.IsOpen,
		OnClick:      c.Toggle,
	}
}

// InputProps returns the bundle for the search input
func (c *Controller[T]) InputProps() InputProps {
	return InputProps{
		Value:            c.state.Search,
		AriaAutocomplete: "list",
		OnChange:         c.SetSearch,
		OnKeyDown:        c.HandleKeyDown,
	}
}

// ListboxProps returns the bundle for the option list container
func (c *Controller[T]) ListboxProps() ListboxProps {
	return ListboxProps{Role: RoleListbox}
}

// OptionProps returns the bundle for the option at index in FilteredItems
func (c *Controller[T]) OptionProps(item T, index int) OptionProps {
	return OptionProps{
		Role:         RoleOption,
		Key:          index,
		AriaSelected: c.IsSelected(item),
		Highlighted:  index == c.state.HighlightedIndex,
		OnPointerEnter: func() {
			c.SetHighlightedIndex(index)
		},
		OnClick: func() {
			c.SelectItem(item)
		},
	}
}
