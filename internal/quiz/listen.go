package quiz

// ListeningCursor walks an ordered question subset one record at a time.
// Navigation clamps at the pool edges rather than wrapping; the cursor is
// kept per filter key so progress per section is independent.
type ListeningCursor struct {
	Index int `json:"index"`
	Total int `json:"total"`
}

// NewListeningCursor clamps a stored index into the current pool size,
// which may have changed since the index was saved.
func NewListeningCursor(index, total int) ListeningCursor {
	c := ListeningCursor{Index: index, Total: total}
	c.clamp()
	return c
}

func (c *ListeningCursor) Next() {
	c.Index++
	c.clamp()
}

func (c *ListeningCursor) Prev() {
	c.Index--
	c.clamp()
}

func (c *ListeningCursor) Reset() {
	c.Index = 0
}

func (c *ListeningCursor) clamp() {
	if c.Total <= 0 {
		c.Index = 0
		return
	}
	if c.Index < 0 {
		c.Index = 0
	}
	if c.Index >= c.Total {
		c.Index = c.Total - 1
	}
}
