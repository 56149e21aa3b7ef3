package command

import (
	"fmt"

	"github.com/dshills/mathedit/internal/formula"
)

// Command is a reversible edit of a formula tree.
type Command interface {
	// Apply performs the edit and returns the cursor to show afterwards.
	Apply() formula.Cursor

	// Revert undoes the edit and returns the cursor to show afterwards.
	Revert() formula.Cursor

	// Applied reports whether the live tree currently owns the command's
	// inserted content.
	Applied() bool

	// UndoCursor returns the cursor restored by Revert.
	UndoCursor() formula.Cursor

	// RedoCursor returns the cursor restored by Apply.
	RedoCursor() formula.Cursor

	// SetUndoCursor overrides the cursor restored by Revert.
	SetUndoCursor(c formula.Cursor)

	// SetRedoCursor overrides the cursor restored by Apply.
	SetRedoCursor(c formula.Cursor)

	// Description returns a human-readable description.
	Description() string

	// SetDescription overrides the description.
	SetDescription(s string)
}

// state tracks which side owns the command's subtrees.
type state uint8

const (
	holding  state = iota // the command owns what it will insert
	released              // the live tree owns it; the command owns what it removed
)

// base holds the bookkeeping shared by all commands.
type base struct {
	state       state
	description string
	undoCursor  formula.Cursor
	redoCursor  formula.Cursor
}

func (b *base) Applied() bool { return b.state == released }
func (b *base) UndoCursor() formula.Cursor { return b.undoCursor }
func (b *base) RedoCursor() formula.Cursor { return b.redoCursor }
func (b *base) SetUndoCursor(c formula.Cursor) { b.undoCursor = c }
func (b *base) SetRedoCursor(c formula.Cursor) { b.redoCursor = c }
func (b *base) Description() string { return b.description }
func (b *base) SetDescription(s string) { b.description = s }

// beginApply switches to released, panicking on a double apply.
func (b *base) beginApply() {
	if b.state == released {
		panic(fmt.Sprintf("command: %q applied twice", b.description))
	}
	b.state = released
}

// beginRevert switches to holding, panicking if the command is not applied.
func (b *base) beginRevert() {
	if b.state == holding {
		panic(fmt.Sprintf("command: %q reverted while not applied", b.description))
	}
	b.state = holding
}

// mustRemove detaches child from parent. A failure means the tree no longer
// matches the command, which is a programming error.
func mustRemove(parent, child formula.Element) {
	if !parent.RemoveChild(child) {
		panic(fmt.Sprintf("command: <%s> is not a child of <%s>", child.Tag(), parent.Tag()))
	}
}

func mustInsert(parent formula.Element, pos int, child formula.Element) {
	if !parent.InsertChild(pos, child) {
		panic(fmt.Sprintf("command: cannot insert <%s> into <%s> at %d", child.Tag(), parent.Tag(), pos))
	}
}
