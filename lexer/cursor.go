package lexer

// Cursor walks source text one character at a time, tracking the
// character offset and the 1-based line and column of the next character.
type Cursor struct {
	text   []rune
	pos    int
	line   int
	column int
}

func NewCursor(src string) *Cursor {
	return &Cursor{
		text:   []rune(src),
		line:   1,
		column: 1,
	}
}

func (c *Cursor) Position() Position {
	return Position{
		Offset: c.pos,
		Line:   c.line,
		Column: c.column,
	}
}

func (c *Cursor) EOF() bool {
	return c.pos >= len(c.text)
}

// Peek returns the next character without consuming it, or 0 at end of input.
func (c *Cursor) Peek() rune {
	if c.EOF() {
		return 0
	}
	return c.text[c.pos]
}

// Advance consumes and returns the next character.
func (c *Cursor) Advance() rune {
	if c.EOF() {
		return 0
	}
	ch := c.text[c.pos]
	c.pos++
	if ch == '\n' {
		c.line++
		c.column = 1
	} else {
		c.column++
	}
	return ch
}

// Reset moves the cursor back to a position previously returned by Position.
func (c *Cursor) Reset(p Position) {
	c.pos = p.Offset
	c.line = p.Line
	c.column = p.Column
}
