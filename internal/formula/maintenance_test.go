package formula

import (
	"fmt"
	"testing"
)

func TestNormalizeIdempotent(t *testing.T) {
	f := NewFormula()
	outer := NewRow()
	inner := NewRow()
	inner.InsertChild(0, NewTokenText("mi", "x"))
	outer.InsertChild(0, inner)
	f.InsertChild(0, outer)
	f.InsertChild(1, NewRow())
	f.InsertChild(2, NewTokenText("mi", "y"))
	styled := NewRow()
	styled.Attributes().Set("mathcolor", "red")
	styled.InsertChild(0, NewTokenText("mi", "z"))
	f.InsertChild(3, styled)

	if !Normalize(f) {
		t.Fatal("first Normalize should change the tree")
	}
	first := Dump(f)
	if Normalize(f) {
		t.Error("second Normalize should be a no-op")
	}
	if Dump(f) != first {
		t.Errorf("tree changed on second pass:\n%s", Dump(f))
	}

	want := "<math><mi>x</mi><mi>y</mi><mrow mathcolor=\"red\"><mi>z</mi></mrow></math>"
	if got := Markup(f); got != want {
		t.Errorf("Markup() = %s, want %s", got, want)
	}
	if err := Validate(f); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestNormalizeKeepsSlots(t *testing.T) {
	frac := NewFraction()
	frac.Numerator().InsertChild(0, NewTokenText("mi", "a"))
	Normalize(frac)

	if frac.SlotCount() != 2 || frac.Denominator().Parent() != frac {
		t.Error("slots must survive normalization")
	}
}

func TestEmptyDescendant(t *testing.T) {
	frac := NewTemplate("mfrac").(*Fraction)
	got := EmptyDescendant(frac)
	if got == nil || got.Parent() != frac.Numerator() {
		t.Fatalf("EmptyDescendant = %v, want numerator placeholder", got)
	}

	if EmptyDescendant(NewTokenText("mi", "x")) != nil {
		t.Error("a detached token has no empty descendant")
	}
	if EmptyDescendant(NewPlaceholder()) != nil {
		t.Error("a detached placeholder is not inside a row")
	}
}

func TestHasDescendant(t *testing.T) {
	f := mustParse(t, "<math><mfrac><mi>a</mi><mi>b</mi></mfrac></math>")
	frac := f.Child(0).(*Fraction)
	a := frac.Numerator().Child(0)

	if !HasDescendant(f, a) || !HasDescendant(frac, a) {
		t.Error("a should be below the root and the fraction")
	}
	if !HasDescendant(a, a) || !HasDescendant(f, f) {
		t.Error("an element contains itself")
	}
	if HasDescendant(a, f) || HasDescendant(frac.Denominator(), a) {
		t.Error("HasDescendant must be directed")
	}
	if HasDescendant(f, NewTokenText("mi", "z")) || HasDescendant(nil, a) {
		t.Error("detached and nil elements are not contained")
	}
}

func TestValidateGlyphMarkers(t *testing.T) {
	f, err := ParseMarkup(`<math><mi>a<mglyph src="g"></mglyph>b</mi></math>`)
	if err != nil {
		t.Fatal(err)
	}
	if err := Validate(f); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	tok := f.Child(0).(*Token)
	tok.InsertText(1, string(GlyphMarker))
	if err := Validate(f); err == nil {
		t.Error("Validate should reject a glyph marker without a glyph")
	}

	g := NewTokenText("mi", "c")
	g.InsertGlyphs(0, tok.Glyphs())
	if err := Validate(g); err == nil {
		t.Error("Validate should reject a glyph without a marker")
	}
}

func TestMultiscriptPairing(t *testing.T) {
	for post := 0; post < 4; post++ {
		for pre := 0; pre < 4; pre++ {
			t.Run(fmt.Sprintf("post%d_pre%d", post, pre), func(t *testing.T) {
				m := NewMultiscript("mmultiscripts")
				for i := 0; i < post; i++ {
					m.AppendPostScript(NewTokenText("mi", "p"))
				}
				for i := 0; i < pre; i++ {
					m.AppendPreScript(nil)
				}
				m.EnsureEvenNumberElements()

				if n := len(m.PostScripts()); n%2 != 0 || n < post {
					t.Errorf("post scripts = %d", n)
				}
				if n := len(m.PreScripts()); n%2 != 0 || n < pre {
					t.Errorf("pre scripts = %d", n)
				}
				if err := Validate(m); err != nil {
					t.Errorf("Validate: %v", err)
				}
			})
		}
	}
}

func TestMultiscriptNavigation(t *testing.T) {
	f := mustParse(t, "<math><msubsup><mi>x</mi><mi>i</mi><mn>2</mn></msubsup></math>")
	m := f.Child(0).(*Multiscript)
	sub, sup := m.PostScripts()[0], m.PostScripts()[1]

	c := NewCursor(sub, 0)
	if !c.Move(MoveUp) {
		t.Fatal("Move(up) from subscript")
	}
	checkCursor(t, c, sup, 0)
	if !c.Move(MoveDown) {
		t.Fatal("Move(down) from superscript")
	}
	checkCursor(t, c, sub, 0)

	c = NewCursor(m.Base(), 1)
	c.Move(MoveRight)
	checkCursor(t, c, sub, 0)
}

func TestDocument(t *testing.T) {
	d, err := NewDocumentFromMarkup("<math><mi>x</mi></math>")
	if err != nil {
		t.Fatalf("NewDocumentFromMarkup: %v", err)
	}
	rev := d.Revision()
	old := d.SetRoot(NewFormula())

	if old.Len() != 1 {
		t.Error("SetRoot should return the previous root")
	}
	if d.Revision() != rev+1 {
		t.Errorf("Revision() = %d, want %d", d.Revision(), rev+1)
	}
	if d.ID() == NewDocument().ID() {
		t.Error("documents should get distinct IDs")
	}
}
