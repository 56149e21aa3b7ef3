package command

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dshills/mathedit/internal/formula"
)

// ReplaceText replaces a span of a token's text.
type ReplaceText struct {
	base
	owner      *formula.Token
	position   int
	length     int
	added      string
	removed    string
	glyphIndex int
	glyphs     []*formula.Glyph
}

// NewReplaceText replaces length positions at pos in owner with added.
// Glyphs inside the replaced span are restored on revert. Glyph markers in
// added are dropped since no glyph stands behind them.
func NewReplaceText(owner *formula.Token, pos, length int, added string) *ReplaceText {
	added = strings.ReplaceAll(added, string(formula.GlyphMarker), "")
	if pos < 0 || length < 0 || pos+length > owner.Len() {
		panic(fmt.Sprintf("command: text span %d+%d out of range for <%s>", pos, length, owner.Tag()))
	}
	text := []rune(owner.Text())
	c := &ReplaceText{
		owner:    owner,
		position: pos,
		length:   length,
		added:    added,
		removed:  string(text[pos : pos+length]),
		glyphs:   owner.GlyphsIn(pos, length),
	}
	c.description = describeText(added, length)
	c.undoCursor = formula.NewCursor(owner, pos+length)
	c.redoCursor = formula.NewCursor(owner, pos+utf8.RuneCountInString(added))
	return c
}

func describeText(added string, removed int) string {
	n := utf8.RuneCountInString(added)
	switch {
	case n == 0:
		return "Delete text"
	case removed > 0:
		return "Replace text"
	case n == 1:
		return fmt.Sprintf("Type '%s'", added)
	case n <= 20:
		return fmt.Sprintf("Insert %q", added)
	}
	return fmt.Sprintf("Insert %d characters", n)
}

// Apply removes the old span and inserts the new text.
func (c *ReplaceText) Apply() formula.Cursor {
	c.beginApply()
	c.glyphIndex, c.glyphs = c.owner.RemoveText(c.position, c.length)
	c.owner.InsertText(c.position, c.added)
	return c.redoCursor
}

// Revert removes the inserted text and restores the old span with its glyphs.
func (c *ReplaceText) Revert() formula.Cursor {
	c.beginRevert()
	c.owner.RemoveText(c.position, utf8.RuneCountInString(c.added))
	c.owner.InsertText(c.position, c.removed)
	c.owner.InsertGlyphs(c.glyphIndex, c.glyphs)
	return c.undoCursor
}
