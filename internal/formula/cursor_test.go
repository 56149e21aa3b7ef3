package formula

import "testing"

func mustParse(t *testing.T, markup string) *Formula {
	t.Helper()
	f, err := ParseMarkup(markup)
	if err != nil {
		t.Fatalf("ParseMarkup(%q): %v", markup, err)
	}
	return f
}

func checkCursor(t *testing.T, c Cursor, e Element, pos int) {
	t.Helper()
	if c.CurrentElement() != e || c.Position() != pos {
		t.Fatalf("cursor = %v, want <%s>:%d", c, e.Tag(), pos)
	}
}

func TestMoveLeftAtRootStartIsNoop(t *testing.T) {
	f := NewFormula()
	c := NewCursor(f, 0)

	if c.Move(MoveLeft) {
		t.Error("Move(left) at the start of the root should fail")
	}
	checkCursor(t, c, f, 0)

	if c.Move(MoveUp) {
		t.Error("Move(up) in a flat row should fail")
	}
	checkCursor(t, c, f, 0)
}

func TestMoveThroughTokens(t *testing.T) {
	f := mustParse(t, "<math><mi>ab</mi><mo>+</mo><mn>1</mn></math>")
	ab := f.Child(0)
	c := NewCursor(f, 0)

	steps := []struct {
		e   Element
		pos int
	}{
		{ab, 1},
		{f, 1},
		{f, 2},
		{f, 3},
	}
	for i, s := range steps {
		if !c.Move(MoveRight) {
			t.Fatalf("step %d: Move(right) failed at %v", i, c)
		}
		checkCursor(t, c, s.e, s.pos)
	}
	if c.Move(MoveRight) {
		t.Errorf("Move(right) at the end should fail, got %v", c)
	}

	back := []struct {
		e   Element
		pos int
	}{
		{f, 2},
		{f, 1},
		{ab, 1},
		{f, 0},
	}
	for i, s := range back {
		if !c.Move(MoveLeft) {
			t.Fatalf("step %d: Move(left) failed at %v", i, c)
		}
		checkCursor(t, c, s.e, s.pos)
	}
}

func TestMoveByGrapheme(t *testing.T) {
	f := mustParse(t, "<math><mi>éx</mi></math>")
	tok := f.Child(0).(*Token)
	c := NewCursor(f, 0)

	if !c.Move(MoveRight) {
		t.Fatal("Move(right) failed")
	}
	checkCursor(t, c, tok, 2)

	if tok.GraphemeCount() != 2 {
		t.Errorf("GraphemeCount() = %d, want 2", tok.GraphemeCount())
	}
}

func TestMoveThroughFraction(t *testing.T) {
	f := mustParse(t, "<math><mfrac><mi>a</mi><mi>b</mi></mfrac></math>")
	frac := f.Child(0).(*Fraction)
	num, den := frac.Numerator(), frac.Denominator()
	c := NewCursor(f, 0)

	if !c.Move(MoveRight) {
		t.Fatal("enter fraction")
	}
	checkCursor(t, c, num, 0)

	if !c.Move(MoveDown) {
		t.Fatal("move to denominator")
	}
	checkCursor(t, c, den, 0)

	if !c.Move(MoveUp) {
		t.Fatal("move to numerator")
	}
	checkCursor(t, c, num, 0)

	if c.Move(MoveUp) {
		t.Errorf("Move(up) from numerator should fail, got %v", c)
	}

	c.Move(MoveRight)
	checkCursor(t, c, num, 1)
	if !c.Move(MoveRight) {
		t.Fatal("leave fraction")
	}
	checkCursor(t, c, f, 1)

	if !c.Move(MoveLeft) {
		t.Fatal("re-enter fraction from the right")
	}
	checkCursor(t, c, num, 1)
}

func TestMoveThroughRootIndexFirst(t *testing.T) {
	f := mustParse(t, "<math><mroot><mi>x</mi><mn>3</mn></mroot></math>")
	root := f.Child(0).(*Root)
	c := NewCursor(f, 0)

	c.Move(MoveRight)
	checkCursor(t, c, root.Index(), 0)
	c.Move(MoveRight)
	checkCursor(t, c, root.Index(), 1)
	c.Move(MoveRight)
	checkCursor(t, c, root.Radicand(), 0)
	c.Move(MoveRight)
	checkCursor(t, c, root.Radicand(), 1)
	c.Move(MoveRight)
	checkCursor(t, c, f, 1)
}

func TestMoveThroughTable(t *testing.T) {
	f := mustParse(t, "<math><mtable><mtr><mtd><mi>a</mi></mtd><mtd><mi>b</mi></mtd></mtr>"+
		"<mtr><mtd><mi>c</mi></mtd><mtd><mi>d</mi></mtd></mtr></mtable></math>")
	table := f.Child(0).(*Table)
	c := NewCursor(f, 0)

	c.Move(MoveRight)
	checkCursor(t, c, table.Cell(0, 0), 0)

	c.Move(MoveDown)
	checkCursor(t, c, table.Cell(1, 0), 0)

	c.Move(MoveUp)
	checkCursor(t, c, table.Cell(0, 0), 0)

	c.Move(MoveRight)
	c.Move(MoveRight)
	checkCursor(t, c, table.Cell(0, 1), 0)

	c.Move(MoveRight)
	c.Move(MoveRight)
	checkCursor(t, c, table.Cell(1, 0), 0)

	c.Move(MoveLeft)
	checkCursor(t, c, table.Cell(0, 1), 1)
}

func TestSelectionInRow(t *testing.T) {
	f := mustParse(t, "<math><mi>a</mi><mi>b</mi></math>")
	c := NewCursor(f, 0)
	c.SetSelecting(true)

	if !c.Move(MoveRight) {
		t.Fatal("extend selection")
	}
	start, end := c.Selection()
	if start != 0 || end != 1 || !c.HasSelection() {
		t.Errorf("selection = %d..%d (%v), want 0..1", start, end, c.HasSelection())
	}

	c.SetSelecting(false)
	if c.HasSelection() || c.Mark() != c.Position() {
		t.Error("leaving selection mode should collapse the mark")
	}
}

func TestSelectionAscendsOutOfToken(t *testing.T) {
	f := mustParse(t, "<math><mi>abc</mi></math>")
	tok := f.Child(0)
	c := NewCursor(tok, 1)
	c.SetSelecting(true)

	c.Move(MoveRight)
	c.Move(MoveRight)
	checkCursor(t, c, tok, 3)

	if !c.Move(MoveRight) {
		t.Fatal("selection should ascend to the row")
	}
	checkCursor(t, c, f, 1)
	if c.Mark() != 0 {
		t.Errorf("mark = %d, want 0", c.Mark())
	}
}

func TestSelectionCoversFixedElement(t *testing.T) {
	f := mustParse(t, "<math><mfrac><mi>a</mi><mi>b</mi></mfrac></math>")
	frac := f.Child(0).(*Fraction)
	c := NewCursor(frac.Numerator(), 0)
	c.SetSelecting(true)

	c.Move(MoveRight)
	checkCursor(t, c, frac.Numerator(), 1)

	if !c.Move(MoveRight) {
		t.Fatal("selection should grow to the fraction")
	}
	checkCursor(t, c, frac, 1)
	if !c.InsideFixedElement() {
		t.Error("cursor should be inside the fixed element")
	}

	if !c.Move(MoveRight) {
		t.Fatal("selection should grow to the row")
	}
	checkCursor(t, c, f, 1)
	if s, e := c.Selection(); s != 0 || e != 1 {
		t.Errorf("selection = %d..%d, want 0..1", s, e)
	}
}

func TestIsAccepted(t *testing.T) {
	f := mustParse(t, "<math><mfrac><mi>a</mi><mi>b</mi></mfrac></math>")
	frac := f.Child(0)

	tests := []struct {
		name string
		c    Cursor
		want bool
	}{
		{"row gap", NewCursor(f, 1), true},
		{"out of range", NewCursor(f, 2), false},
		{"fixed not selecting", NewCursor(frac, 1), false},
		{"fixed selecting", NewSelection(frac, 0, 1), true},
		{"nil element", Cursor{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.IsAccepted(); got != tt.want {
				t.Errorf("IsAccepted() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetCursorToFallsBackToRoot(t *testing.T) {
	f := NewFormula()
	c := SetCursorTo(f, Point{X: 10, Y: 10})
	checkCursor(t, c, f, 0)
}

func TestSetCursorToUsesGeometry(t *testing.T) {
	f := mustParse(t, "<math><mi>ab</mi><mo>+</mo></math>")
	tok := f.Child(0).(*Token)
	op := f.Child(1)
	*f.Geometry() = Geometry{Width: 30, Height: 10}
	*tok.Geometry() = Geometry{Width: 20, Height: 10}
	*op.Geometry() = Geometry{Width: 10, Height: 10, Origin: Point{X: 20}}

	c := SetCursorTo(f, Point{X: 11, Y: 5})
	checkCursor(t, c, tok, 1)

	c = SetCursorTo(f, Point{X: 29, Y: 5})
	checkCursor(t, c, f, 2)

	c = SetCursorTo(f, Point{X: 1, Y: 5})
	checkCursor(t, c, f, 0)
}
