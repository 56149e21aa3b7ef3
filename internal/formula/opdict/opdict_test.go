package opdict

import "testing"

func TestLookupExactForm(t *testing.T) {
	e, ok := Lookup("(", Prefix)
	if !ok {
		t.Fatal("expected ( prefix entry")
	}
	if !e.Fence || !e.Stretchy {
		t.Errorf("( should be a stretchy fence, got %+v", e)
	}
	if e.LSpace != "0em" {
		t.Errorf("LSpace = %q, want 0em", e.LSpace)
	}
}

func TestLookupFallback(t *testing.T) {
	tests := []struct {
		symbol string
		form   Form
		want   Form
	}{
		{"=", Prefix, Infix},
		{"!", Infix, Postfix},
		{"∑", Postfix, Prefix},
		{"+", Prefix, Prefix},
	}

	for _, tt := range tests {
		t.Run(tt.symbol+"/"+string(tt.form), func(t *testing.T) {
			e, ok := Lookup(tt.symbol, tt.form)
			if !ok {
				t.Fatalf("Lookup(%q, %s) missed", tt.symbol, tt.form)
			}
			if e.Form != tt.want {
				t.Errorf("Form = %s, want %s", e.Form, tt.want)
			}
		})
	}
}

func TestLookupMissing(t *testing.T) {
	if _, ok := Lookup("xyz", Infix); ok {
		t.Error("unexpected entry for xyz")
	}
}

func TestDefaultSpacing(t *testing.T) {
	e, ok := Lookup("=", Infix)
	if !ok {
		t.Fatal("expected = entry")
	}
	if e.LSpace != DefaultLSpace || e.RSpace != DefaultRSpace {
		t.Errorf("spacing = %q/%q, want defaults", e.LSpace, e.RSpace)
	}
}

func TestEntryAttribute(t *testing.T) {
	e, _ := Lookup("∑", Prefix)

	if v, ok := e.Attribute("largeop"); !ok || v != "true" {
		t.Errorf("largeop = %q, %v", v, ok)
	}
	if v, ok := e.Attribute("fence"); !ok || v != "false" {
		t.Errorf("fence = %q, %v", v, ok)
	}
	if _, ok := e.Attribute("mathcolor"); ok {
		t.Error("mathcolor is not a dictionary attribute")
	}
}

func TestLen(t *testing.T) {
	if Len() < 40 {
		t.Errorf("Len() = %d, expected the full table", Len())
	}
}
