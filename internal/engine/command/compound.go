package command

import (
	"fmt"

	"github.com/dshills/mathedit/internal/formula"
)

// Compound groups commands into a single undo unit. It applies its
// commands in order and reverts them in reverse order.
type Compound struct {
	Name     string
	Commands []Command
}

// NewCompound groups cmds under name.
func NewCompound(name string, cmds ...Command) *Compound {
	return &Compound{Name: name, Commands: cmds}
}

// Apply applies every command and returns the last redo cursor.
func (c *Compound) Apply() formula.Cursor {
	var cur formula.Cursor
	for _, cmd := range c.Commands {
		cur = cmd.Apply()
	}
	return cur
}

// Revert reverts every command in reverse and returns the first undo cursor.
func (c *Compound) Revert() formula.Cursor {
	var cur formula.Cursor
	for i := len(c.Commands) - 1; i >= 0; i-- {
		cur = c.Commands[i].Revert()
	}
	return cur
}

// Applied reports whether the first command is applied.
func (c *Compound) Applied() bool {
	return len(c.Commands) > 0 && c.Commands[0].Applied()
}

// UndoCursor returns the undo cursor of the first command.
func (c *Compound) UndoCursor() formula.Cursor {
	if len(c.Commands) == 0 {
		return formula.Cursor{}
	}
	return c.Commands[0].UndoCursor()
}

// RedoCursor returns the redo cursor of the last command.
func (c *Compound) RedoCursor() formula.Cursor {
	if len(c.Commands) == 0 {
		return formula.Cursor{}
	}
	return c.Commands[len(c.Commands)-1].RedoCursor()
}

// SetUndoCursor overrides the undo cursor of the first command.
func (c *Compound) SetUndoCursor(cur formula.Cursor) {
	if len(c.Commands) > 0 {
		c.Commands[0].SetUndoCursor(cur)
	}
}

// SetRedoCursor overrides the redo cursor of the last command.
func (c *Compound) SetRedoCursor(cur formula.Cursor) {
	if len(c.Commands) > 0 {
		c.Commands[len(c.Commands)-1].SetRedoCursor(cur)
	}
}

// Description returns the group name or a summary.
func (c *Compound) Description() string {
	if c.Name != "" {
		return c.Name
	}
	if len(c.Commands) == 1 {
		return c.Commands[0].Description()
	}
	return fmt.Sprintf("%d edits", len(c.Commands))
}

// SetDescription sets the group name.
func (c *Compound) SetDescription(s string) { c.Name = s }

// Len returns the number of grouped commands.
func (c *Compound) Len() int { return len(c.Commands) }
