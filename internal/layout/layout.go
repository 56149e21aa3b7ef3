package layout

import (
	"github.com/mattn/go-runewidth"

	"github.com/dshills/mathedit/internal/formula"
)

// Option configures an Engine.
type Option func(*Engine)

// WithOperatorSpacing enables or disables spacing around operators.
func WithOperatorSpacing(enabled bool) Option {
	return func(l *Engine) {
		l.operatorSpacing = enabled
	}
}

// WithColumnGap sets the number of cells between table columns.
func WithColumnGap(cells int) Option {
	return func(l *Engine) {
		if cells >= 0 {
			l.columnGap = float64(cells)
		}
	}
}

// Engine computes layouts.
type Engine struct {
	operatorSpacing bool
	columnGap       float64
}

// New creates a layout engine.
func New(opts ...Option) *Engine {
	l := &Engine{
		operatorSpacing: true,
		columnGap:       1,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Compute lays out root with default settings.
func Compute(root formula.Element) formula.Geometry {
	return New().Compute(root)
}

// Compute assigns geometry to root and all its descendants, with root at
// the origin, and returns the root box.
func (l *Engine) Compute(root formula.Element) formula.Geometry {
	l.measure(root)
	l.place(root, formula.Point{})
	return *root.Geometry()
}

// emptyWidth keeps empty rows and placeholders clickable.
const emptyWidth = 1

func set(g *formula.Geometry, w, h, baseline float64) {
	g.Width, g.Height, g.Baseline = w, h, baseline
}

func descent(g *formula.Geometry) float64 { return g.Height - g.Baseline }

// measure sets width, height and baseline bottom-up.
func (l *Engine) measure(e formula.Element) {
	for _, c := range e.ChildElements() {
		l.measure(c)
	}
	g := e.Geometry()

	switch x := e.(type) {
	case *formula.Token:
		w := float64(runewidth.StringWidth(x.Text()))
		if w == 0 {
			w = emptyWidth
		}
		if l.operatorSpacing && x.IsOperator() {
			w += spaceCells(x.Attribute("lspace")) + spaceCells(x.Attribute("rspace"))
		}
		set(g, w, 1, 0)

	case *formula.Basic:
		set(g, 1, 1, 0)

	case *formula.Fraction:
		num, den := x.Numerator().Geometry(), x.Denominator().Geometry()
		set(g, max(num.Width, den.Width), num.Height+1+den.Height, num.Height)

	case *formula.Root:
		rad := x.Radicand().Geometry()
		w, h := rad.Width+1, rad.Height+1
		if idx := x.Index(); idx != nil {
			ig := idx.Geometry()
			w += ig.Width
			h = max(h, ig.Height)
		}
		set(g, w, h, rad.Baseline+1)

	case *formula.UnderOver:
		base := x.Base().Geometry()
		w, h, baseline := base.Width, base.Height, base.Baseline
		if over := x.Over(); over != nil {
			og := over.Geometry()
			w = max(w, og.Width)
			h += og.Height
			baseline += og.Height
		}
		if under := x.Under(); under != nil {
			ug := under.Geometry()
			w = max(w, ug.Width)
			h += ug.Height
		}
		set(g, w, h, baseline)

	case *formula.Multiscript:
		base := x.Base().Geometry()
		pre, post := scriptColumns(x.PreScripts()), scriptColumns(x.PostScripts())
		sup := max(pre.supHeight, post.supHeight)
		sub := max(pre.subHeight, post.subHeight)
		set(g, pre.width+base.Width+post.width, sup+base.Height+sub, sup+base.Baseline)

	case *formula.TableRow:
		var w, asc, desc float64
		for i, c := range x.Cells() {
			cg := c.Geometry()
			if i > 0 {
				w += l.columnGap
			}
			w += cg.Width
			asc = max(asc, cg.Baseline)
			desc = max(desc, descent(cg))
		}
		set(g, w, asc+desc, asc)

	case *formula.Table:
		widths := l.columnWidths(x)
		var w, h float64
		for i, cw := range widths {
			if i > 0 {
				w += l.columnGap
			}
			w += cw
		}
		for _, r := range x.Rows() {
			rg := r.Geometry()
			rg.Width = w
			h += rg.Height
		}
		set(g, w, h, float64(int(h/2)))

	default:
		if !e.IsInferredRow() {
			return
		}
		children := e.ChildElements()
		if len(children) == 0 {
			set(g, emptyWidth, 1, 0)
			return
		}
		var w, asc, desc float64
		for _, c := range children {
			cg := c.Geometry()
			w += cg.Width
			asc = max(asc, cg.Baseline)
			desc = max(desc, descent(cg))
		}
		set(g, w, asc+desc, asc)
	}
}

// place sets absolute origins top-down.
func (l *Engine) place(e formula.Element, origin formula.Point) {
	g := e.Geometry()
	g.Origin = origin

	switch x := e.(type) {
	case *formula.Token, *formula.Basic:
		return

	case *formula.Fraction:
		num, den := x.Numerator(), x.Denominator()
		l.place(num, formula.Point{X: origin.X + center(g.Width, num.Geometry().Width), Y: origin.Y})
		l.place(den, formula.Point{
			X: origin.X + center(g.Width, den.Geometry().Width),
			Y: origin.Y + num.Geometry().Height + 1,
		})

	case *formula.Root:
		x0 := origin.X
		if idx := x.Index(); idx != nil {
			l.place(idx, origin)
			x0 += idx.Geometry().Width
		}
		l.place(x.Radicand(), formula.Point{X: x0 + 1, Y: origin.Y + 1})

	case *formula.UnderOver:
		y := origin.Y
		if over := x.Over(); over != nil {
			l.place(over, formula.Point{X: origin.X + center(g.Width, over.Geometry().Width), Y: y})
			y += over.Geometry().Height
		}
		base := x.Base()
		l.place(base, formula.Point{X: origin.X + center(g.Width, base.Geometry().Width), Y: y})
		y += base.Geometry().Height
		if under := x.Under(); under != nil {
			l.place(under, formula.Point{X: origin.X + center(g.Width, under.Geometry().Width), Y: y})
		}

	case *formula.Multiscript:
		base := x.Base()
		bg := base.Geometry()
		pre, post := scriptColumns(x.PreScripts()), scriptColumns(x.PostScripts())
		sup := max(pre.supHeight, post.supHeight)
		baseTop := origin.Y + sup
		l.placeScripts(x.PreScripts(), origin.X, baseTop, bg.Height)
		l.place(base, formula.Point{X: origin.X + pre.width, Y: baseTop})
		l.placeScripts(x.PostScripts(), origin.X+pre.width+bg.Width, baseTop, bg.Height)

	case *formula.Table:
		widths := l.columnWidths(x)
		y := origin.Y
		for _, r := range x.Rows() {
			rg := r.Geometry()
			rg.Origin = formula.Point{X: origin.X, Y: y}
			cx := origin.X
			for j, c := range r.Cells() {
				cg := c.Geometry()
				l.place(c, formula.Point{
					X: cx + center(widths[j], cg.Width),
					Y: y + rg.Baseline - cg.Baseline,
				})
				cx += widths[j] + l.columnGap
			}
			y += rg.Height
		}

	default:
		if !e.IsInferredRow() {
			return
		}
		cx := origin.X
		for _, c := range e.ChildElements() {
			cg := c.Geometry()
			l.place(c, formula.Point{X: cx, Y: origin.Y + g.Baseline - cg.Baseline})
			cx += cg.Width
		}
	}
}

// placeScripts places sub/sup pairs left to right starting at x. Subscripts
// hang below the base box and superscripts sit above it.
func (l *Engine) placeScripts(slots []*formula.Row, x, baseTop, baseHeight float64) {
	for i := 0; i+1 < len(slots); i += 2 {
		sub, sup := slots[i], slots[i+1]
		sg, pg := sub.Geometry(), sup.Geometry()
		l.place(sub, formula.Point{X: x, Y: baseTop + baseHeight})
		l.place(sup, formula.Point{X: x, Y: baseTop - pg.Height})
		x += max(sg.Width, pg.Width)
	}
}

func (l *Engine) columnWidths(t *formula.Table) []float64 {
	widths := make([]float64, t.ColumnCount())
	for _, r := range t.Rows() {
		for j, c := range r.Cells() {
			if j < len(widths) {
				widths[j] = max(widths[j], c.Geometry().Width)
			}
		}
	}
	return widths
}

type columns struct {
	width, subHeight, supHeight float64
}

// scriptColumns measures sub/sup pairs.
func scriptColumns(slots []*formula.Row) columns {
	var c columns
	for i := 0; i+1 < len(slots); i += 2 {
		sg, pg := slots[i].Geometry(), slots[i+1].Geometry()
		c.width += max(sg.Width, pg.Width)
		c.subHeight = max(c.subHeight, sg.Height)
		c.supHeight = max(c.supHeight, pg.Height)
	}
	return c
}

func center(outer, inner float64) float64 {
	return float64(int((outer - inner) / 2))
}

// spaceCells maps a named math space to whole cells.
func spaceCells(v string) float64 {
	switch v {
	case "mediummathspace", "thickmathspace", "verythickmathspace", "veryverythickmathspace":
		return 1
	}
	return 0
}
