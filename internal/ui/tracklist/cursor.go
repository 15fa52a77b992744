package tracklist

// cursor tracks the selected row and scroll offset of a list.
// The list length and viewport height are passed to methods rather than
// stored, since they change with every state update and resize.
type cursor struct {
	pos    int // selected row (0-indexed)
	offset int // first visible row
	margin int // rows kept visible above/below the cursor
}

func newCursor(margin int) cursor {
	return cursor{margin: margin}
}

// move moves the cursor by delta rows, clamped to the list.
// If listLen is 0, this is a no-op.
func (c *cursor) move(delta, listLen, height int) {
	if listLen == 0 {
		return
	}
	c.pos = clamp(c.pos+delta, listLen-1)
	c.ensureVisible(listLen, height)
}

// jump sets the cursor to an absolute row, clamped to the list.
func (c *cursor) jump(pos, listLen, height int) {
	if listLen == 0 {
		return
	}
	c.pos = clamp(pos, listLen-1)
	c.ensureVisible(listLen, height)
}

// ensureVisible adjusts the scroll offset to keep the cursor in view.
func (c *cursor) ensureVisible(listLen, height int) {
	if height <= 0 || listLen == 0 {
		return
	}
	margin := min(c.margin, (height-1)/2)

	if c.pos < c.offset+margin {
		c.offset = max(c.pos-margin, 0)
	}
	if c.pos >= c.offset+height-margin {
		c.offset = c.pos - height + margin + 1
	}

	maxOffset := max(listLen-height, 0)
	c.offset = clamp(c.offset, maxOffset)
}

// clampTo keeps the cursor inside a list that may have shrunk.
func (c *cursor) clampTo(listLen, height int) {
	if listLen == 0 {
		c.pos = 0
		c.offset = 0
		return
	}
	c.pos = clamp(c.pos, listLen-1)
	c.ensureVisible(listLen, height)
}

// visibleRange returns the range of visible indices [start, end).
func (c cursor) visibleRange(listLen, height int) (start, end int) {
	if listLen == 0 || height <= 0 {
		return 0, 0
	}
	start = min(c.offset, listLen)
	end = min(c.offset+height, listLen)
	return start, end
}

func clamp(v, maxVal int) int {
	if v < 0 {
		return 0
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
