package command

import "github.com/dshills/mathedit/internal/formula"

// Load replaces the document root.
type Load struct {
	base
	doc     *formula.Document
	oldRoot *formula.Formula
	newRoot *formula.Formula
}

// NewLoad builds a command that installs root as the document root.
func NewLoad(doc *formula.Document, root *formula.Formula) *Load {
	c := &Load{doc: doc, oldRoot: doc.Root(), newRoot: root}
	c.description = "Load formula"
	c.undoCursor = formula.NewCursor(c.oldRoot, 0)
	c.redoCursor = formula.NewCursor(root, 0)
	return c
}

// Apply installs the new root.
func (c *Load) Apply() formula.Cursor {
	c.beginApply()
	c.doc.SetRoot(c.newRoot)
	return c.redoCursor
}

// Revert restores the previous root.
func (c *Load) Revert() formula.Cursor {
	c.beginRevert()
	c.doc.SetRoot(c.oldRoot)
	return c.undoCursor
}
