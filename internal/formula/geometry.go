package formula

import "math"

// Point is a position in layout coordinates.
type Point struct {
	X, Y float64
}

// Geometry is the layout box of an element. Origin is absolute.
type Geometry struct {
	Width    float64
	Height   float64
	Baseline float64
	Origin   Point
}

// Contains reports whether p lies inside the box.
func (g *Geometry) Contains(p Point) bool {
	return p.X >= g.Origin.X && p.X < g.Origin.X+g.Width &&
		p.Y >= g.Origin.Y && p.Y < g.Origin.Y+g.Height
}

// IsZero reports whether no layout has been assigned.
func (g *Geometry) IsZero() bool {
	return g.Width == 0 && g.Height == 0
}

// Center returns the middle of the box.
func (g *Geometry) Center() Point {
	return Point{g.Origin.X + g.Width/2, g.Origin.Y + g.Height/2}
}

func (g *Geometry) distance(p Point) float64 {
	c := g.Center()
	return math.Hypot(c.X-p.X, c.Y-p.Y)
}

// CursorPoint returns the layout position of the caret for c.
func CursorPoint(c Cursor) Point {
	e := c.CurrentElement()
	if e == nil {
		return Point{}
	}
	g := e.Geometry()
	y := g.Origin.Y + g.Height/2
	switch x := e.(type) {
	case *Token:
		if n := x.Len(); n > 0 {
			return Point{g.Origin.X + g.Width*float64(c.Position())/float64(n), y}
		}
		return Point{g.Origin.X, y}
	}
	if !e.IsInferredRow() {
		return Point{g.Origin.X, y}
	}
	if after := e.ElementAfter(c.Position()); after != nil {
		return Point{after.Geometry().Origin.X, y}
	}
	if before := e.ElementBefore(c.Position()); before != nil {
		bg := before.Geometry()
		return Point{bg.Origin.X + bg.Width, y}
	}
	return Point{g.Origin.X, y}
}

// enterVertically places c inside target, keeping the caret's horizontal
// position from old where layout allows it.
func enterVertically(c *Cursor, target Element, old Cursor) {
	g := target.Geometry()
	if !g.IsZero() {
		x := CursorPoint(old).X
		if target.SetCursorTo(c, Point{x, g.Origin.Y + g.Height/2}) {
			return
		}
	}
	c.SetCurrentElement(target)
	c.MoveHome()
}

// enter places c at the start or end of target.
func enter(c *Cursor, target Element, atEnd bool) {
	c.SetCurrentElement(target)
	if atEnd {
		c.MoveEnd()
	} else {
		c.MoveHome()
	}
}
