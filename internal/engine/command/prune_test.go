package command

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/mathedit/internal/formula"
)

func row(children ...formula.Element) *formula.Row {
	r := formula.NewRow()
	for i, c := range children {
		r.InsertChild(i, c)
	}
	return r
}

func TestPrune(t *testing.T) {
	f := mustParse(t, `<math><mi>x</mi><mi>y</mi></math>`)
	inner := row(formula.NewTokenText("mi", "a"))
	f.InsertChild(1, formula.NewRow())
	f.InsertChild(3, row(inner))
	before := formula.Dump(f)

	c := NewPrune(f, formula.NewCursor(inner, 1))
	cur := c.Apply()
	if got, want := formula.Markup(f), `<math><mi>x</mi><mi>y</mi><mi>a</mi></math>`; got != want {
		t.Errorf("Markup() = %s, want %s", got, want)
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
	if cur.CurrentElement() != f || cur.Position() != 3 {
		t.Errorf("redo cursor = <%s>:%d, want <math>:3", cur.CurrentElement().Tag(), cur.Position())
	}
	if err := formula.Validate(f); err != nil {
		t.Errorf("Validate: %v", err)
	}

	cur = c.Revert()
	if diff := cmp.Diff(before, formula.Dump(f)); diff != "" {
		t.Errorf("revert did not restore the tree (-want +got):\n%s", diff)
	}
	if cur.CurrentElement() != inner || cur.Position() != 1 {
		t.Errorf("undo cursor = <%s>:%d, want <mrow>:1", cur.CurrentElement().Tag(), cur.Position())
	}
	if err := formula.Validate(f); err != nil {
		t.Errorf("Validate after revert: %v", err)
	}

	c.Apply()
	if got, want := formula.Markup(f), `<math><mi>x</mi><mi>y</mi><mi>a</mi></math>`; got != want {
		t.Errorf("replayed Markup() = %s, want %s", got, want)
	}
	c.Revert()

	roundTrip(t, f, NewPrune(f, formula.NewCursor(f, 0)))
}

func TestPruneShiftsSelection(t *testing.T) {
	f := mustParse(t, `<math><mi>a</mi><mi>b</mi><mi>c</mi></math>`)
	f.InsertChild(1, formula.NewRow())

	cur := NewPrune(f, formula.NewSelection(f, 2, 4)).Apply()
	if !cur.IsSelecting() || cur.Mark() != 1 || cur.Position() != 3 {
		t.Errorf("cursor = mark %d pos %d, want mark 1 pos 3", cur.Mark(), cur.Position())
	}

	cur = NewPrune(f, formula.NewCursor(f, 1)).Apply()
	if cur.Position() != 1 {
		t.Errorf("cursor before the removed row moved to %d", cur.Position())
	}
}

func TestPruneKeepsMeaningfulRows(t *testing.T) {
	f := mustParse(t, `<math><mfrac><mi>a</mi><mi>b</mi></mfrac><mrow><mi>c</mi><mi>d</mi></mrow></math>`)
	style := formula.NewRowWithTag("mstyle")
	style.InsertChild(0, formula.NewTokenText("mi", "e"))
	f.InsertChild(f.EndPosition(), style)
	before := formula.Markup(f)

	c := NewPrune(f, formula.NewCursor(f, 0))
	c.Apply()
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
	if got := formula.Markup(f); got != before {
		t.Errorf("Markup() = %s, want %s", got, before)
	}
}
