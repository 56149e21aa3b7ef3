package formula

import "fmt"

// Kind identifies an element kind by its MathML tag.
type Kind int

// Element kinds known to the factory.
const (
	KindUnknown Kind = iota
	KindIdentifier
	KindNumber
	KindOperator
	KindText
	KindString
	KindSpace
	KindRow
	KindStyle
	KindPadded
	KindPhantom
	KindEnclose
	KindError
	KindFraction
	KindSquareRoot
	KindRoot
	KindUnder
	KindOver
	KindUnderOver
	KindSub
	KindSup
	KindSubSup
	KindMultiscripts
	KindTable
	KindTableRow
	KindTableData
	KindFormula
)

var kindTags = [...]string{
	KindUnknown:      "",
	KindIdentifier:   "mi",
	KindNumber:       "mn",
	KindOperator:     "mo",
	KindText:         "mtext",
	KindString:       "ms",
	KindSpace:        "mspace",
	KindRow:          "mrow",
	KindStyle:        "mstyle",
	KindPadded:       "mpadded",
	KindPhantom:      "mphantom",
	KindEnclose:      "menclose",
	KindError:        "merror",
	KindFraction:     "mfrac",
	KindSquareRoot:   "msqrt",
	KindRoot:         "mroot",
	KindUnder:        "munder",
	KindOver:         "mover",
	KindUnderOver:    "munderover",
	KindSub:          "msub",
	KindSup:          "msup",
	KindSubSup:       "msubsup",
	KindMultiscripts: "mmultiscripts",
	KindTable:        "mtable",
	KindTableRow:     "mtr",
	KindTableData:    "mtd",
	KindFormula:      "math",
}

var tagKinds = func() map[string]Kind {
	m := make(map[string]Kind, len(kindTags))
	for k, tag := range kindTags {
		if tag != "" {
			m[tag] = Kind(k)
		}
	}
	return m
}()

// KindOf returns the kind for a MathML tag.
func KindOf(tag string) Kind {
	return tagKinds[tag]
}

// ElementName returns the MathML tag for k, or "" for KindUnknown.
func ElementName(k Kind) string {
	if k < 0 || int(k) >= len(kindTags) {
		return ""
	}
	return kindTags[k]
}

// String returns the tag name.
func (k Kind) String() string {
	if name := ElementName(k); name != "" {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// CreateElement returns a new, empty element for tag. Unknown tags yield a
// Basic element so foreign content survives a round trip.
func CreateElement(tag string) Element {
	switch KindOf(tag) {
	case KindIdentifier, KindNumber, KindOperator, KindText, KindString:
		return NewToken(tag)
	case KindRow, KindStyle, KindPadded, KindPhantom, KindEnclose, KindError:
		return NewRowWithTag(tag)
	case KindFraction:
		return NewFraction()
	case KindSquareRoot:
		return NewSqrt()
	case KindRoot:
		return NewRoot()
	case KindUnder, KindOver, KindUnderOver:
		return NewUnderOver(tag)
	case KindSub, KindSup, KindSubSup, KindMultiscripts:
		return NewMultiscript(tag)
	case KindTable:
		return NewTable()
	case KindTableRow:
		return NewTableRow()
	case KindTableData:
		return NewTableData()
	case KindFormula:
		return NewFormula()
	}
	return NewBasic(tag)
}

// NewTemplate creates an element for tag with a placeholder in every
// editable slot, ready to be inserted by the editor. Tokens and unknown tags
// are returned empty.
func NewTemplate(tag string) Element {
	e := CreateElement(tag)
	switch x := e.(type) {
	case *Fraction, *Root, *UnderOver:
		for _, s := range x.(interface{ slotRows() []*Row }).slotRows() {
			s.InsertChild(0, NewPlaceholder())
		}
	case *Multiscript:
		x.Base().InsertChild(0, NewPlaceholder())
		switch tag {
		case "msub":
			x.slots[1].InsertChild(0, NewPlaceholder())
		case "msup":
			x.slots[2].InsertChild(0, NewPlaceholder())
		case "msubsup":
			x.slots[1].InsertChild(0, NewPlaceholder())
			x.slots[2].InsertChild(0, NewPlaceholder())
		default:
			x.AppendPostScript(NewPlaceholder())
			x.AppendPostScript(NewPlaceholder())
		}
	case *Table:
		x.InsertChild(0, NewPlaceholderRow(1))
	case *TableRow:
		x.InsertChild(0, NewPlaceholderCell())
	case *Formula, *TableData:
		return e
	case *Row:
		x.InsertChild(0, NewPlaceholder())
	}
	return e
}
