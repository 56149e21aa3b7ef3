package formula

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/rivo/uniseg"
	"golang.org/x/net/html"
)

// GlyphMarker stands in the token text for each embedded glyph.
const GlyphMarker = '\uFFFC'

// Token is a leaf element holding text: mi, mn, mo, mtext or ms.
//
// Positions are rune offsets into the text. Each embedded glyph occupies one
// position, marked by GlyphMarker; glyphs are stored in text order.
type Token struct {
	base
	text   []rune
	glyphs []*Glyph
}

// Glyph is an mglyph embedded in a token.
type Glyph struct {
	Attributes Attributes
}

// NewToken creates an empty token with the given tag.
func NewToken(tag string) *Token {
	t := &Token{}
	t.init(tag, t)
	return t
}

// NewTokenText creates a token holding text.
func NewTokenText(tag, text string) *Token {
	t := NewToken(tag)
	t.SetText(text)
	return t
}

// NewPlaceholder creates the empty identifier used as an editable hole.
func NewPlaceholder() *Token {
	return NewToken("mi")
}

// IsPlaceholder reports whether e is an empty token.
func IsPlaceholder(e Element) bool {
	t, ok := e.(*Token)
	return ok && t.IsEmpty()
}

// IsOperator reports whether the token is an mo.
func (t *Token) IsOperator() bool { return t.tag == "mo" }

// Text returns the token text including glyph markers.
func (t *Token) Text() string { return string(t.text) }

// Len returns the number of positions in the text.
func (t *Token) Len() int { return len(t.text) }

// SetText replaces the whole text and drops all glyphs.
func (t *Token) SetText(s string) {
	t.text = []rune(strings.ReplaceAll(s, string(GlyphMarker), ""))
	t.glyphs = nil
}

// InsertText inserts s at pos.
func (t *Token) InsertText(pos int, s string) {
	if pos < 0 || pos > len(t.text) {
		panic(fmt.Sprintf("formula: text position %d out of range [0,%d]", pos, len(t.text)))
	}
	t.text = slices.Insert(t.text, pos, []rune(s)...)
}

// RemoveText removes n positions starting at pos. It returns the glyph index
// of the first removed position and the glyphs that were removed.
func (t *Token) RemoveText(pos, n int) (int, []*Glyph) {
	if pos < 0 || n < 0 || pos+n > len(t.text) {
		panic(fmt.Sprintf("formula: text range %d+%d out of range [0,%d]", pos, n, len(t.text)))
	}
	start := t.glyphIndex(pos)
	count := countGlyphMarkers(t.text[pos : pos+n])
	removed := slices.Clone(t.glyphs[start : start+count])
	t.glyphs = slices.Delete(t.glyphs, start, start+count)
	t.text = slices.Delete(t.text, pos, pos+n)
	return start, removed
}

// InsertGlyphs inserts glyphs into the glyph list at index. The caller is
// responsible for the matching markers in the text.
func (t *Token) InsertGlyphs(index int, glyphs []*Glyph) {
	t.glyphs = slices.Insert(t.glyphs, index, glyphs...)
}

// InsertGlyph inserts g and its marker at pos.
func (t *Token) InsertGlyph(pos int, g *Glyph) {
	idx := t.glyphIndex(pos)
	t.InsertText(pos, string(GlyphMarker))
	t.InsertGlyphs(idx, []*Glyph{g})
}

// Glyphs returns the embedded glyphs.
func (t *Token) Glyphs() []*Glyph { return slices.Clone(t.glyphs) }

// GlyphsIn returns the glyphs within n positions starting at pos.
func (t *Token) GlyphsIn(pos, n int) []*Glyph {
	start := t.glyphIndex(pos)
	count := countGlyphMarkers(t.text[pos : pos+n])
	return slices.Clone(t.glyphs[start : start+count])
}

func (t *Token) glyphIndex(pos int) int {
	return countGlyphMarkers(t.text[:pos])
}

func countGlyphMarkers(rs []rune) int {
	n := 0
	for _, r := range rs {
		if r == GlyphMarker {
			n++
		}
	}
	return n
}

// boundaries returns the rune offsets of grapheme cluster boundaries,
// including 0 and Len.
func (t *Token) boundaries() []int {
	stops := []int{0}
	g := uniseg.NewGraphemes(string(t.text))
	pos := 0
	for g.Next() {
		pos += len(g.Runes())
		stops = append(stops, pos)
	}
	return stops
}

// PreviousStop returns the last grapheme boundary before pos.
func (t *Token) PreviousStop(pos int) int {
	stops := t.boundaries()
	for i := len(stops) - 1; i >= 0; i-- {
		if stops[i] < pos {
			return stops[i]
		}
	}
	return 0
}

// NextStop returns the first grapheme boundary after pos.
func (t *Token) NextStop(pos int) int {
	for _, s := range t.boundaries() {
		if s > pos {
			return s
		}
	}
	return len(t.text)
}

// GraphemeCount returns the number of user perceived characters.
func (t *Token) GraphemeCount() int {
	return uniseg.GraphemeClusterCount(string(t.text))
}

func (t *Token) ChildElements() []Element { return nil }
func (t *Token) EndPosition() int { return len(t.text) }
func (t *Token) ElementBefore(int) Element { return nil }
func (t *Token) ElementAfter(int) Element { return nil }
func (t *Token) PositionOfChild(Element) int { return -1 }
func (t *Token) IsEmpty() bool { return len(t.text) == 0 }
func (t *Token) IsInferredRow() bool { return false }
func (t *Token) AcceptCursor(Cursor) bool { return true }
func (t *Token) ReplaceChild(_, _ Element) bool { return false }
func (t *Token) InsertChild(int, Element) bool { return false }
func (t *Token) RemoveChild(Element) bool { return false }

// edgesShared reports whether the token's outer positions coincide with gaps
// of the enclosing row.
func (t *Token) edgesShared() bool {
	return t.parent != nil && t.parent.IsInferredRow()
}

// MoveCursor steps one grapheme. Without selection the cursor never rests on
// the outer edges of a token inside a row; the row gap is used instead.
func (t *Token) MoveCursor(c *Cursor, _ Cursor) bool {
	pos := c.Position()
	shared := !c.IsSelecting() && t.edgesShared()
	switch c.Direction() {
	case MoveLeft:
		if pos == 0 {
			return false
		}
		next := t.PreviousStop(pos)
		if next == 0 && shared {
			return false
		}
		c.SetPosition(next)
	case MoveRight:
		if pos >= len(t.text) {
			return false
		}
		next := t.NextStop(pos)
		if next == len(t.text) && shared {
			return false
		}
		c.SetPosition(next)
	default:
		return false
	}
	return true
}

// SetCursorTo maps p to the nearest grapheme boundary. Outer edges resolve
// to the enclosing row gap.
func (t *Token) SetCursorTo(c *Cursor, p Point) bool {
	c.SetCurrentElement(t)
	if t.geometry.Width <= 0 || len(t.text) == 0 {
		c.SetPosition(0)
		return true
	}
	rel := (p.X - t.geometry.Origin.X) / t.geometry.Width
	target := rel * float64(len(t.text))
	best, bestDist := 0, math.Inf(1)
	for _, s := range t.boundaries() {
		if d := math.Abs(float64(s) - target); d < bestDist {
			best, bestDist = s, d
		}
	}
	if t.edgesShared() && (best == 0 || best == len(t.text)) {
		pos := t.parent.PositionOfChild(t)
		if best > 0 {
			pos++
		}
		c.SetCurrentElement(t.parent)
		c.SetPosition(pos)
		return true
	}
	c.SetPosition(best)
	return true
}

// ReadMarkup reads text and mglyph children. Character data is kept as is;
// entities have been decoded by the parser.
func (t *Token) ReadMarkup(n *html.Node) error {
	readAttributes(&t.attrs, n)
	t.text = nil
	t.glyphs = nil
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			t.text = append(t.text, []rune(strings.ReplaceAll(c.Data, string(GlyphMarker), ""))...)
		case html.ElementNode:
			if c.Data != "mglyph" {
				return markupErrorf(t.tag, "unexpected <%s> inside token", c.Data)
			}
			g := &Glyph{}
			readAttributes(&g.Attributes, c)
			t.text = append(t.text, GlyphMarker)
			t.glyphs = append(t.glyphs, g)
		}
	}
	if t.tag != "ms" && t.tag != "mtext" {
		t.text = []rune(strings.TrimSpace(string(t.text)))
	}
	return nil
}

// WriteMarkup writes the text with glyphs in place of their markers.
func (t *Token) WriteMarkup(w *MarkupWriter) {
	w.StartElement(t.tag, &t.attrs)
	var run []rune
	gi := 0
	for _, r := range t.text {
		if r != GlyphMarker {
			run = append(run, r)
			continue
		}
		if len(run) > 0 {
			w.Text(string(run))
			run = run[:0]
		}
		w.StartElement("mglyph", &t.glyphs[gi].Attributes)
		w.EndElement()
		gi++
	}
	if len(run) > 0 {
		w.Text(string(run))
	}
	w.EndElement()
}
