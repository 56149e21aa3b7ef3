package opdict

import (
	_ "embed"
	"fmt"
	"strconv"
	"sync"

	"github.com/goccy/go-yaml"
)

// Form is the position dependent form of an operator.
type Form string

// Operator forms.
const (
	Prefix  Form = "prefix"
	Infix   Form = "infix"
	Postfix Form = "postfix"
)

// Default spacing for operators missing from the dictionary.
const (
	DefaultLSpace = "thickmathspace"
	DefaultRSpace = "thickmathspace"
)

// Entry holds the dictionary properties of one operator form.
type Entry struct {
	Symbol        string `yaml:"symbol"`
	Form          Form   `yaml:"form"`
	LSpace        string `yaml:"lspace"`
	RSpace        string `yaml:"rspace"`
	Stretchy      bool   `yaml:"stretchy"`
	Fence         bool   `yaml:"fence"`
	Separator     bool   `yaml:"separator"`
	LargeOp       bool   `yaml:"largeop"`
	MovableLimits bool   `yaml:"movablelimits"`
	Symmetric     bool   `yaml:"symmetric"`
	Accent        bool   `yaml:"accent"`
}

// Attribute returns the entry's value for a MathML operator attribute.
func (e Entry) Attribute(name string) (string, bool) {
	switch name {
	case "lspace":
		return e.LSpace, true
	case "rspace":
		return e.RSpace, true
	case "stretchy":
		return strconv.FormatBool(e.Stretchy), true
	case "fence":
		return strconv.FormatBool(e.Fence), true
	case "separator":
		return strconv.FormatBool(e.Separator), true
	case "largeop":
		return strconv.FormatBool(e.LargeOp), true
	case "movablelimits":
		return strconv.FormatBool(e.MovableLimits), true
	case "symmetric":
		return strconv.FormatBool(e.Symmetric), true
	case "accent":
		return strconv.FormatBool(e.Accent), true
	}
	return "", false
}

// Default returns the entry used for operators not in the dictionary.
func Default() Entry {
	return Entry{Form: Infix, LSpace: DefaultLSpace, RSpace: DefaultRSpace}
}

type key struct {
	symbol string
	form   Form
}

//go:embed operators.yaml
var operatorsYAML []byte

var (
	loadOnce sync.Once
	entries  map[key]Entry
)

func load() {
	var table struct {
		Operators []Entry `yaml:"operators"`
	}
	if err := yaml.Unmarshal(operatorsYAML, &table); err != nil {
		panic(fmt.Sprintf("opdict: embedded table: %v", err))
	}
	entries = make(map[key]Entry, len(table.Operators))
	for _, e := range table.Operators {
		if e.Form == "" {
			e.Form = Infix
		}
		if e.LSpace == "" {
			e.LSpace = DefaultLSpace
		}
		if e.RSpace == "" {
			e.RSpace = DefaultRSpace
		}
		entries[key{e.Symbol, e.Form}] = e
	}
}

// fallback lists the forms tried after the requested one.
var fallback = []Form{Infix, Postfix, Prefix}

// Lookup returns the entry for symbol in the given form. When that form is
// not listed the other forms are tried in the order infix, postfix, prefix.
func Lookup(symbol string, form Form) (Entry, bool) {
	loadOnce.Do(load)
	if e, ok := entries[key{symbol, form}]; ok {
		return e, true
	}
	for _, f := range fallback {
		if e, ok := entries[key{symbol, f}]; ok {
			return e, true
		}
	}
	return Entry{}, false
}

// Len returns the number of dictionary entries.
func Len() int {
	loadOnce.Do(load)
	return len(entries)
}
