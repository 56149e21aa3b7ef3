package formula

import (
	"strconv"
	"sync/atomic"
	"unicode/utf8"

	"github.com/dshills/mathedit/internal/formula/opdict"
)

// Attributes is an ordered set of element attributes.
// The zero value is an empty set ready for use.
type Attributes struct {
	names  []string
	values map[string]string
}

// Get returns the value of name and whether it is set.
func (a *Attributes) Get(name string) (string, bool) {
	v, ok := a.values[name]
	return v, ok
}

// Set assigns value to name, keeping the original insertion order.
func (a *Attributes) Set(name, value string) {
	if a.values == nil {
		a.values = make(map[string]string)
	}
	if _, ok := a.values[name]; !ok {
		a.names = append(a.names, name)
	}
	a.values[name] = value
}

// Delete removes name.
func (a *Attributes) Delete(name string) {
	if _, ok := a.values[name]; !ok {
		return
	}
	delete(a.values, name)
	for i, n := range a.names {
		if n == name {
			a.names = append(a.names[:i], a.names[i+1:]...)
			break
		}
	}
}

// Len returns the number of attributes.
func (a *Attributes) Len() int {
	return len(a.names)
}

// Names returns the attribute names in insertion order.
func (a *Attributes) Names() []string {
	out := make([]string, len(a.names))
	copy(out, a.names)
	return out
}

// Each calls fn for every attribute in insertion order.
func (a *Attributes) Each(fn func(name, value string)) {
	for _, n := range a.names {
		fn(n, a.values[n])
	}
}

// Clone returns an independent copy.
func (a *Attributes) Clone() Attributes {
	var c Attributes
	a.Each(c.Set)
	return c
}

// inheritedAttributes are resolved through the ancestor chain when an element
// does not set them itself.
var inheritedAttributes = map[string]bool{
	"mathvariant":    true,
	"mathsize":       true,
	"mathcolor":      true,
	"mathbackground": true,
	"dir":            true,
	"displaystyle":   true,
	"scriptlevel":    true,
}

// AttributeDefaults supplies a value for an attribute that is neither set on
// the element nor inherited from an ancestor.
type AttributeDefaults func(e Element, name string) (string, bool)

var attributeDefaults atomic.Pointer[AttributeDefaults]

// SetAttributeDefaults installs a host provided defaults hook. The hook is
// consulted before the built-in defaults. Passing nil removes it.
func SetAttributeDefaults(fn AttributeDefaults) {
	if fn == nil {
		attributeDefaults.Store(nil)
		return
	}
	attributeDefaults.Store(&fn)
}

// resolveAttribute looks up name on e: own value, inherited value, host
// default, built-in default. Missing attributes resolve to "".
func resolveAttribute(e Element, name string) string {
	if v, ok := e.Attributes().Get(name); ok {
		return v
	}
	if inheritedAttributes[name] {
		for p := e.Parent(); p != nil; p = p.Parent() {
			if v, ok := p.Attributes().Get(name); ok {
				return v
			}
		}
	}
	if hook := attributeDefaults.Load(); hook != nil {
		if v, ok := (*hook)(e, name); ok {
			return v
		}
	}
	v, _ := builtinDefault(e, name)
	return v
}

func builtinDefault(e Element, name string) (string, bool) {
	switch x := e.(type) {
	case *Token:
		if x.tag == "mo" {
			if v, ok := x.operatorDefault(name); ok {
				return v, true
			}
		}
		if name == "mathvariant" && x.tag == "mi" {
			if utf8.RuneCountInString(x.Text()) == 1 {
				return "italic", true
			}
			return "normal", true
		}
	case *Fraction:
		if name == "linethickness" {
			return "1", true
		}
	case *Table:
		switch name {
		case "rowspacing":
			return "1.0ex", true
		case "columnspacing":
			return "0.8em", true
		case "align":
			return "axis", true
		}
	}
	switch name {
	case "displaystyle":
		return strconv.FormatBool(false), true
	case "scriptlevel":
		return "0", true
	case "mathvariant":
		return "normal", true
	case "mathsize":
		return "1em", true
	case "dir":
		return "ltr", true
	}
	return "", false
}

// operatorForm derives the form of an operator from its place in the row,
// unless the form attribute is set explicitly.
func (t *Token) operatorForm() opdict.Form {
	if v, ok := t.attrs.Get("form"); ok {
		return opdict.Form(v)
	}
	p := t.parent
	if p == nil || !p.IsInferredRow() {
		return opdict.Infix
	}
	n := p.EndPosition()
	i := p.PositionOfChild(t)
	switch {
	case n <= 1:
		return opdict.Infix
	case i == 0:
		return opdict.Prefix
	case i == n-1:
		return opdict.Postfix
	}
	return opdict.Infix
}

func (t *Token) operatorDefault(name string) (string, bool) {
	if name == "form" {
		return string(t.operatorForm()), true
	}
	entry, ok := opdict.Lookup(t.Text(), t.operatorForm())
	if !ok {
		entry = opdict.Default()
	}
	return entry.Attribute(name)
}
