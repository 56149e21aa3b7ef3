// Package opdict provides the MathML operator dictionary.
//
// The dictionary maps an operator's text and form (prefix, infix, postfix)
// to its default rendering properties such as spacing and stretchiness.
// Entries are loaded once from an embedded YAML table.
//
//	entry, ok := opdict.Lookup("+", opdict.Infix)
//	if ok {
//	    lspace, _ := entry.Attribute("lspace")
//	}
//
// A lookup that misses the requested form falls back to the other forms in
// the order infix, postfix, prefix.
package opdict
