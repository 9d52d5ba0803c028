package selectctl

// HandleKeyDown applies the keyboard navigation policy. It does nothing
// while the list is closed. Down and Up mark e with PreventDefault.
func (c *Controller[T]) HandleKeyDown(e *KeyEvent) {
	if e == nil || !c.state.IsOpen {
		return
	}

	switch e.Key {
	case KeyDown:
		e.PreventDefault()
		c.moveDown()
	case KeyUp:
		e.PreventDefault()
		c.moveUp()
	case KeyEnter:
		if item, ok := c.HighlightedItem(); ok {
			c.SelectItem(item)
		}
	case KeyEscape:
		c.Close()
	}
}

func (c *Controller[T]) moveDown() {
	last := len(c.filtered) - 1
	next := c.state.HighlightedIndex + 1
	if next > last {
		next = last
	}
	c.setHighlight(next)
}

func (c *Controller[T]) moveUp() {
	if len(c.filtered) == 0 {
		c.setHighlight(-1)
		return
	}
	next := c.state.HighlightedIndex - 1
	if next < 0 {
		next = 0
	}
	c.setHighlight(next)
}
