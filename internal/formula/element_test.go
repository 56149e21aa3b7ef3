package formula

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestRowInsertRemove(t *testing.T) {
	r := NewRow()
	a := NewTokenText("mi", "a")
	b := NewTokenText("mi", "b")

	if !r.InsertChild(0, b) || !r.InsertChild(0, a) {
		t.Fatal("InsertChild failed")
	}
	if r.InsertChild(5, NewPlaceholder()) {
		t.Error("InsertChild past the end should fail")
	}
	if r.PositionOfChild(b) != 1 || r.ElementAfter(1) != b || r.ElementBefore(1) != a {
		t.Error("positions do not match children")
	}
	if a.Parent() != r {
		t.Error("parent not set")
	}

	if !r.RemoveChild(a) {
		t.Fatal("RemoveChild failed")
	}
	if a.Parent() != nil || r.Len() != 1 {
		t.Error("removed child still attached")
	}
	if r.RemoveChild(a) {
		t.Error("removing a non-child should fail")
	}
}

func TestAdoptInvariants(t *testing.T) {
	r := NewRow()
	tok := NewTokenText("mi", "x")
	r.InsertChild(0, tok)

	expectPanic(t, "attached child", func() { NewRow().InsertChild(0, tok) })
	expectPanic(t, "cycle", func() {
		inner := NewRow()
		r.InsertChild(0, inner)
		inner.InsertChild(0, r)
	})
	expectPanic(t, "cell in row", func() { NewRow().InsertChild(0, NewTableData()) })
	expectPanic(t, "token in table", func() { NewTable().InsertChild(0, NewPlaceholder()) })
	expectPanic(t, "non-row slot", func() {
		f := NewFraction()
		f.ReplaceChild(f.Numerator(), NewPlaceholder())
	})
}

func TestFixedPositions(t *testing.T) {
	f := NewFraction()

	if f.EndPosition() != 3 {
		t.Errorf("EndPosition() = %d, want 3", f.EndPosition())
	}
	if f.PositionOfChild(f.Denominator()) != 2 {
		t.Errorf("PositionOfChild(denominator) = %d, want 2", f.PositionOfChild(f.Denominator()))
	}
	if f.ElementBefore(3) != f.Denominator() || f.ElementAfter(0) != f.Numerator() {
		t.Error("slot lookup by position is wrong")
	}
	if f.InsertChild(0, NewRow()) || f.RemoveChild(f.Numerator()) {
		t.Error("fixed elements must keep their arity")
	}
}

func TestAddressesStayInRange(t *testing.T) {
	f, err := ParseMarkup(`<math>` +
		`<mrow><mi>a</mi><mn>1</mn></mrow>` +
		`<mfrac><mi>b</mi><mi>c</mi></mfrac>` +
		`<msqrt><mi>d</mi></msqrt>` +
		`<mroot><mi>e</mi><mn>3</mn></mroot>` +
		`<munderover><mo>+</mo><mi>i</mi><mi>n</mi></munderover>` +
		`<msubsup><mi>x</mi><mi>j</mi><mn>2</mn></msubsup>` +
		`<mmultiscripts><mi>y</mi><mi>k</mi><mi>l</mi></mmultiscripts>` +
		`<mtable><mtr><mtd><mi>p</mi></mtd><mtd><mi>q</mi></mtd></mtr>` +
		`<mtr><mtd><mi>r</mi></mtd><mtd><mi>s</mi></mtd></mtr></mtable>` +
		`<mspace width="1em"></mspace>` +
		`<mo>=</mo>` +
		`</math>`)
	if err != nil {
		t.Fatalf("ParseMarkup: %v", err)
	}
	table := f.Child(7)

	tests := []struct {
		name string
		el   Element
		kind any
	}{
		{"formula", f, &Formula{}},
		{"row", f.Child(0), &Row{}},
		{"fraction", f.Child(1), &Fraction{}},
		{"slot", f.Child(1).ElementAfter(0), &Row{}},
		{"sqrt", f.Child(2), &Root{}},
		{"root", f.Child(3), &Root{}},
		{"underover", f.Child(4), &UnderOver{}},
		{"subsup", f.Child(5), &Multiscript{}},
		{"multiscripts", f.Child(6), &Multiscript{}},
		{"table", table, &Table{}},
		{"table row", table.ElementAfter(2), &TableRow{}},
		{"table data", table.ElementAfter(2).ElementAfter(1), &TableData{}},
		{"basic", f.Child(8), &Basic{}},
		{"token", f.Child(9), &Token{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.el == nil {
				t.Fatal("element not found in the tree")
			}
			if got, want := fmt.Sprintf("%T", tt.el), fmt.Sprintf("%T", tt.kind); got != want {
				t.Fatalf("element is %s, want %s", got, want)
			}

			for _, c := range tt.el.ChildElements() {
				pos := tt.el.PositionOfChild(c)
				if pos < 0 || tt.el.ElementAfter(pos) != c {
					t.Errorf("child <%s> maps to %d", c.Tag(), pos)
				}
			}
			Walk(f, func(x Element) bool {
				if x.Parent() != tt.el {
					if pos := tt.el.PositionOfChild(x); pos != -1 {
						t.Errorf("PositionOfChild(<%s> under <%s>) = %d, want -1", x.Tag(), tagOf(x.Parent()), pos)
					}
				}
				return true
			})
			if pos := tt.el.PositionOfChild(NewTokenText("mi", "z")); pos != -1 {
				t.Errorf("PositionOfChild(detached) = %d, want -1", pos)
			}

			end := tt.el.EndPosition()
			for _, pos := range []int{-2, -1, end + 1, end + 2} {
				if e := tt.el.ElementBefore(pos); e != nil {
					t.Errorf("ElementBefore(%d) = <%s>, want nil", pos, e.Tag())
				}
				if e := tt.el.ElementAfter(pos); e != nil {
					t.Errorf("ElementAfter(%d) = <%s>, want nil", pos, e.Tag())
				}
			}
			if e := tt.el.ElementBefore(0); e != nil {
				t.Errorf("ElementBefore(0) = <%s>, want nil", e.Tag())
			}
			if e := tt.el.ElementAfter(end); e != nil {
				t.Errorf("ElementAfter(%d) = <%s>, want nil", end, e.Tag())
			}
		})
	}
}

func tagOf(e Element) string {
	if e == nil {
		return "nil"
	}
	return e.Tag()
}

func TestTokenTextAndGlyphs(t *testing.T) {
	tok := NewTokenText("mi", "ab")
	tok.InsertGlyph(1, &Glyph{})
	tok.InsertText(3, "c")

	if tok.Text() != "a\uFFFCbc" {
		t.Fatalf("Text() = %q", tok.Text())
	}

	idx, removed := tok.RemoveText(0, 2)
	if idx != 0 || len(removed) != 1 {
		t.Errorf("RemoveText = %d, %d glyphs; want 0, 1", idx, len(removed))
	}
	if tok.Text() != "bc" || len(tok.Glyphs()) != 0 {
		t.Errorf("after removal Text() = %q, glyphs %d", tok.Text(), len(tok.Glyphs()))
	}

	tok.InsertText(0, "a\uFFFC")
	tok.InsertGlyphs(idx, removed)
	if got := tok.GlyphsIn(0, 4); len(got) != 1 || got[0] != removed[0] {
		t.Error("glyph not restored")
	}
}

func TestAttributeResolution(t *testing.T) {
	f := mustParse(t, `<math><mstyle mathcolor="red"><mi>x</mi><mi>sin</mi></mstyle><mrow><mo>(</mo><mi>y</mi><mo>)</mo></mrow></math>`)
	style := f.Child(0).(*Row)
	x := style.Child(0)
	sin := style.Child(1)
	fenced := f.Child(1).(*Row)
	open := fenced.Child(0)
	closing := fenced.Child(2)

	tests := []struct {
		name string
		e    Element
		attr string
		want string
	}{
		{"inherited", x, "mathcolor", "red"},
		{"not inherited", x, "linethickness", ""},
		{"single letter italic", x, "mathvariant", "italic"},
		{"multi letter normal", sin, "mathvariant", "normal"},
		{"prefix form", open, "form", "prefix"},
		{"postfix form", closing, "form", "postfix"},
		{"fence", open, "fence", "true"},
		{"dictionary space", open, "lspace", "0em"},
		{"own attribute", style, "mathcolor", "red"},
		{"fallback", f, "scriptlevel", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.e.Attribute(tt.attr); got != tt.want {
				t.Errorf("Attribute(%q) = %q, want %q", tt.attr, got, tt.want)
			}
		})
	}
}

func TestAttributeDefaultsHook(t *testing.T) {
	SetAttributeDefaults(func(e Element, name string) (string, bool) {
		if name == "mathsize" {
			return "2em", true
		}
		return "", false
	})
	defer SetAttributeDefaults(nil)

	tok := NewTokenText("mi", "x")
	if got := tok.Attribute("mathsize"); got != "2em" {
		t.Errorf("mathsize = %q, want 2em", got)
	}
	if got := tok.Attribute("mathvariant"); got != "italic" {
		t.Errorf("mathvariant = %q, want italic", got)
	}
}

func TestAttributesOrder(t *testing.T) {
	var a Attributes
	a.Set("b", "1")
	a.Set("a", "2")
	a.Set("b", "3")
	a.Delete("missing")

	if diff := cmp.Diff([]string{"b", "a"}, a.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	if v, _ := a.Get("b"); v != "3" {
		t.Errorf("b = %q, want 3", v)
	}
	c := a.Clone()
	a.Delete("b")
	if c.Len() != 2 || a.Len() != 1 {
		t.Error("Clone should be independent")
	}
}

func TestFactory(t *testing.T) {
	tests := []struct {
		tag  string
		kind Kind
	}{
		{"mi", KindIdentifier},
		{"mfrac", KindFraction},
		{"mmultiscripts", KindMultiscripts},
		{"mtd", KindTableData},
		{"math", KindFormula},
		{"semantics", KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			if k := KindOf(tt.tag); k != tt.kind {
				t.Errorf("KindOf(%q) = %v, want %v", tt.tag, k, tt.kind)
			}
			if tt.kind != KindUnknown && ElementName(tt.kind) != tt.tag {
				t.Errorf("ElementName(%v) = %q", tt.kind, ElementName(tt.kind))
			}
			if e := CreateElement(tt.tag); e.Tag() != tt.tag {
				t.Errorf("CreateElement(%q).Tag() = %q", tt.tag, e.Tag())
			}
		})
	}
}

func TestTemplates(t *testing.T) {
	tests := []struct {
		tag    string
		holes  int
		markup string
	}{
		{"mfrac", 2, "<mfrac><mi></mi><mi></mi></mfrac>"},
		{"msqrt", 1, "<msqrt><mi></mi></msqrt>"},
		{"msub", 2, "<msub><mi></mi><mi></mi></msub>"},
		{"msup", 2, "<msup><mi></mi><mi></mi></msup>"},
		{"munderover", 3, "<munderover><mi></mi><mi></mi><mi></mi></munderover>"},
		{"mtable", 1, "<mtable><mtr><mtd><mi></mi></mtd></mtr></mtable>"},
		{"mrow", 1, "<mrow><mi></mi></mrow>"},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			e := NewTemplate(tt.tag)
			holes := 0
			Walk(e, func(x Element) bool {
				if IsPlaceholder(x) {
					holes++
				}
				return true
			})
			if holes != tt.holes {
				t.Errorf("placeholders = %d, want %d", holes, tt.holes)
			}
			if got := Markup(e); got != tt.markup {
				t.Errorf("Markup() = %s, want %s", got, tt.markup)
			}
			if err := Validate(e); err != nil {
				t.Errorf("Validate: %v", err)
			}
		})
	}
}
