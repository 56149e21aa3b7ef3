package formula

import (
	"bytes"
	"io"
	"iter"
	"strings"

	"golang.org/x/net/html"
)

// MarkupWriter collects elements into a MathML node tree and renders it.
type MarkupWriter struct {
	root  *html.Node
	stack []*html.Node
}

// NewMarkupWriter creates an empty writer.
func NewMarkupWriter() *MarkupWriter {
	root := &html.Node{Type: html.DocumentNode}
	return &MarkupWriter{root: root, stack: []*html.Node{root}}
}

func (w *MarkupWriter) top() *html.Node {
	return w.stack[len(w.stack)-1]
}

// StartElement opens an element. attrs may be nil.
func (w *MarkupWriter) StartElement(tag string, attrs *Attributes) {
	n := &html.Node{Type: html.ElementNode, Data: tag, Namespace: "math"}
	if attrs != nil {
		attrs.Each(func(name, value string) {
			n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
		})
	}
	w.top().AppendChild(n)
	w.stack = append(w.stack, n)
}

// EndElement closes the innermost open element.
func (w *MarkupWriter) EndElement() {
	if len(w.stack) > 1 {
		w.stack = w.stack[:len(w.stack)-1]
	}
}

// Text appends character data to the open element.
func (w *MarkupWriter) Text(s string) {
	w.top().AppendChild(&html.Node{Type: html.TextNode, Data: s})
}

// Raw appends a detached node as is.
func (w *MarkupWriter) Raw(n *html.Node) {
	w.top().AppendChild(n)
}

// WriteTo renders everything written so far.
func (w *MarkupWriter) WriteTo(out io.Writer) (int64, error) {
	var buf bytes.Buffer
	for c := w.root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return 0, err
		}
	}
	return buf.WriteTo(out)
}

// String renders everything written so far.
func (w *MarkupWriter) String() string {
	var b strings.Builder
	w.WriteTo(&b)
	return b.String()
}

// Markup serializes e as MathML.
func Markup(e Element) string {
	w := NewMarkupWriter()
	e.WriteMarkup(w)
	return w.String()
}

// ParseMarkup reads a MathML document and returns its first <math> element
// as a normalized formula.
func ParseMarkup(markup string) (*Formula, error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, &MarkupError{Message: "parse", Err: err}
	}
	n := findMath(doc)
	if n == nil {
		return nil, &MarkupError{Message: "no <math> element", Err: ErrNoMath}
	}
	f := NewFormula()
	if err := f.ReadMarkup(n); err != nil {
		return nil, err
	}
	Normalize(f)
	return f, nil
}

// ParseFragment reads a sequence of MathML elements, with or without an
// enclosing <math>, and returns them detached and normalized.
func ParseFragment(markup string) ([]Element, error) {
	s := strings.TrimSpace(markup)
	if !strings.HasPrefix(s, "<math") {
		s = "<math>" + s + "</math>"
	}
	f, err := ParseMarkup(s)
	if err != nil {
		return nil, err
	}
	children := f.ChildElements()
	for _, c := range children {
		f.RemoveChild(c)
	}
	return children, nil
}

func findMath(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "math" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if m := findMath(c); m != nil {
			return m
		}
	}
	return nil
}

// readElement creates and populates the element for n.
func readElement(n *html.Node) (Element, error) {
	e := CreateElement(n.Data)
	if err := e.ReadMarkup(n); err != nil {
		return nil, err
	}
	return e, nil
}

func readAttributes(a *Attributes, n *html.Node) {
	for _, attr := range n.Attr {
		key := attr.Key
		if attr.Namespace != "" {
			key = attr.Namespace + ":" + key
		}
		a.Set(key, attr.Val)
	}
}

// elementChildren yields the element children of n, skipping text and
// comments.
func elementChildren(n *html.Node) iter.Seq[*html.Node] {
	return func(yield func(*html.Node) bool) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

func cloneNode(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(cloneNode(child))
	}
	return c
}
