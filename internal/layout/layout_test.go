package layout

import (
	"testing"

	"github.com/dshills/mathedit/internal/formula"
)

func mustParse(t *testing.T, markup string) *formula.Formula {
	t.Helper()
	f, err := formula.ParseMarkup(markup)
	if err != nil {
		t.Fatalf("ParseMarkup(%q): %v", markup, err)
	}
	return f
}

func checkBox(t *testing.T, name string, e formula.Element, x, y, w, h float64) {
	t.Helper()
	g := e.Geometry()
	if g.Origin.X != x || g.Origin.Y != y || g.Width != w || g.Height != h {
		t.Errorf("%s box = (%v,%v %vx%v), want (%v,%v %vx%v)",
			name, g.Origin.X, g.Origin.Y, g.Width, g.Height, x, y, w, h)
	}
}

func TestRowLayout(t *testing.T) {
	tests := []struct {
		name    string
		spacing bool
		width   float64
		bX      float64
	}{
		{"spaced", true, 5, 4},
		{"tight", false, 3, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := mustParse(t, `<math><mi>a</mi><mo>+</mo><mi>b</mi></math>`)
			g := New(WithOperatorSpacing(tt.spacing)).Compute(f)
			if g.Width != tt.width || g.Height != 1 {
				t.Errorf("root = %vx%v, want %vx1", g.Width, g.Height, tt.width)
			}
			checkBox(t, "b", f.Child(2), tt.bX, 0, 1, 1)
		})
	}
}

func TestEmptyFormula(t *testing.T) {
	g := Compute(formula.NewFormula())
	if g.Width != 1 || g.Height != 1 {
		t.Errorf("empty formula = %vx%v, want 1x1", g.Width, g.Height)
	}
}

func TestWideCharacters(t *testing.T) {
	f := mustParse(t, `<math><mi>漢字</mi></math>`)
	if g := Compute(f); g.Width != 4 {
		t.Errorf("width = %v, want 4", g.Width)
	}
}

func TestFractionLayout(t *testing.T) {
	f := mustParse(t, `<math><mfrac><mi>a</mi><mn>12</mn></mfrac></math>`)
	Compute(f)
	frac := f.Child(0).(*formula.Fraction)

	checkBox(t, "fraction", frac, 0, 0, 2, 3)
	checkBox(t, "numerator", frac.Numerator(), 0, 0, 1, 1)
	checkBox(t, "denominator", frac.Denominator(), 0, 2, 2, 1)
	if b := frac.Geometry().Baseline; b != 1 {
		t.Errorf("baseline = %v, want 1", b)
	}
}

func TestFractionBaselineAlignment(t *testing.T) {
	f := mustParse(t, `<math><mi>x</mi><mo>=</mo><mfrac><mn>1</mn><mn>2</mn></mfrac></math>`)
	New(WithOperatorSpacing(false)).Compute(f)

	checkBox(t, "x", f.Child(0), 0, 1, 1, 1)
	checkBox(t, "fraction", f.Child(2), 2, 0, 1, 3)
}

func TestScriptLayout(t *testing.T) {
	f := mustParse(t, `<math><msubsup><mi>x</mi><mn>1</mn><mn>2</mn></msubsup></math>`)
	Compute(f)
	m := f.Child(0).(*formula.Multiscript)
	post := m.PostScripts()

	checkBox(t, "msubsup", m, 0, 0, 2, 3)
	checkBox(t, "base", m.Base(), 0, 1, 1, 1)
	checkBox(t, "sub", post[0], 1, 2, 1, 1)
	checkBox(t, "sup", post[1], 1, 0, 1, 1)
}

func TestRootLayout(t *testing.T) {
	f := mustParse(t, `<math><mroot><mi>x</mi><mn>3</mn></mroot></math>`)
	Compute(f)
	r := f.Child(0).(*formula.Root)

	checkBox(t, "mroot", r, 0, 0, 3, 2)
	checkBox(t, "index", r.Index(), 0, 0, 1, 1)
	checkBox(t, "radicand", r.Radicand(), 2, 1, 1, 1)
}

func TestTableLayout(t *testing.T) {
	f := mustParse(t, `<math><mtable>`+
		`<mtr><mtd><mi>a</mi></mtd><mtd><mn>10</mn></mtd></mtr>`+
		`<mtr><mtd><mi>b</mi></mtd><mtd><mi>c</mi></mtd></mtr>`+
		`</mtable></math>`)
	Compute(f)
	table := f.Child(0).(*formula.Table)

	checkBox(t, "table", table, 0, 0, 4, 2)
	checkBox(t, "row 1", table.Row(1), 0, 1, 4, 1)
	checkBox(t, "cell 0,1", table.Cell(0, 1), 2, 0, 2, 1)
	checkBox(t, "cell 1,1", table.Cell(1, 1), 2, 1, 1, 1)
}

func TestHitTesting(t *testing.T) {
	f := mustParse(t, `<math><mfrac><mi>a</mi><mn>12</mn></mfrac></math>`)
	Compute(f)
	frac := f.Child(0).(*formula.Fraction)
	den := frac.Denominator()

	c := formula.SetCursorTo(f, formula.Point{X: 1, Y: 2.5})
	if c.CurrentElement() != den.Child(0) || c.Position() != 1 {
		t.Errorf("SetCursorTo inside 12 = %v, want mn:1", c)
	}

	c = formula.SetCursorTo(f, formula.Point{X: 0.1, Y: 0.5})
	if c.CurrentElement() != formula.Element(frac.Numerator()) || c.Position() != 0 {
		t.Errorf("SetCursorTo before a = %v, want numerator gap 0", c)
	}
}

func TestVerticalMovementUsesLayout(t *testing.T) {
	f := mustParse(t, `<math><mfrac><mn>12</mn><mn>34</mn></mfrac></math>`)
	Compute(f)
	frac := f.Child(0).(*formula.Fraction)
	num := frac.Numerator().Child(0)

	c := formula.NewCursor(num, 1)
	if !c.Move(formula.MoveDown) {
		t.Fatal("Move(down) failed")
	}
	if c.CurrentElement() != frac.Denominator().Child(0) || c.Position() != 1 {
		t.Errorf("cursor = %v, want inside 34 at 1", c)
	}
}
