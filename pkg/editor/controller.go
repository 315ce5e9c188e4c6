// Package editor applies structural edits to block documents.
//
// Every operation returns a new Document and leaves its input untouched.
// Unchanged blocks are shared between the input and the result, and every
// payload helper copies the slices it changes. An edit that cannot apply
// (unknown id, payload of the wrong shape, boundary move) returns the input
// unchanged instead of failing.
package editor

import (
	"content-platform-be/pkg/block"

	"github.com/go-playground/validator/v10"
)

// Direction is the way Move shifts a block.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

type Controller struct {
	ids      block.IDGenerator
	validate *validator.Validate
}

// NewController returns a controller drawing new block ids from ids.
func NewController(ids block.IDGenerator) *Controller {
	if ids == nil {
		ids = block.NewULIDGenerator()
	}
	return &Controller{
		ids:      ids,
		validate: validator.New(),
	}
}

// NewDocument returns the empty document: a single empty paragraph.
func (c *Controller) NewDocument() block.Document {
	return block.Document{block.New(c.ids.NewID(), block.DefaultKind)}
}

// InsertAfter adds a block of kind with its default payload after afterID,
// or at the end when afterID is empty or absent. It returns the new block's
// id as the next focus target.
func (c *Controller) InsertAfter(doc block.Document, afterID string, kind block.Kind) (block.Document, string) {
	if !kind.Valid() {
		return doc, ""
	}

	b := block.New(block.FreshID(c.ids, doc), kind)
	pos := len(doc)
	if afterID != "" {
		if i := doc.Index(afterID); i >= 0 {
			pos = i + 1
		}
	}

	out := make(block.Document, 0, len(doc)+1)
	out = append(out, doc[:pos]...)
	out = append(out, b)
	out = append(out, doc[pos:]...)
	return out, b.ID
}

// UpdatePayload replaces the payload of block id. Payloads that do not
// belong to the block's kind or fail validation are ignored.
func (c *Controller) UpdatePayload(doc block.Document, id string, content block.Content) block.Document {
	i := doc.Index(id)
	if i < 0 || content == nil {
		return doc
	}
	if !block.Accepts(doc[i].Kind, content) || !c.Valid(content) {
		return doc
	}

	out := make(block.Document, len(doc))
	copy(out, doc)
	out[i] = block.Block{ID: doc[i].ID, Kind: doc[i].Kind, Content: block.Clone(content)}
	return out
}

// Update applies fn to the payload of block id when it holds a T.
func Update[T block.Content](c *Controller, doc block.Document, id string, fn func(T) T) block.Document {
	b, ok := doc.Find(id)
	if !ok {
		return doc
	}
	current, ok := b.Content.(T)
	if !ok {
		return doc
	}
	return c.UpdatePayload(doc, id, fn(current))
}

// Move swaps block id with its neighbour. Moving past either end is a no-op.
func (c *Controller) Move(doc block.Document, id string, dir Direction) block.Document {
	i := doc.Index(id)
	if i < 0 {
		return doc
	}

	j := i - 1
	if dir == Down {
		j = i + 1
	} else if dir != Up {
		return doc
	}
	if j < 0 || j >= len(doc) {
		return doc
	}

	out := make(block.Document, len(doc))
	copy(out, doc)
	out[i], out[j] = out[j], out[i]
	return out
}

// Delete removes block id. Deleting the only block leaves a fresh empty
// paragraph in its place.
func (c *Controller) Delete(doc block.Document, id string) block.Document {
	i := doc.Index(id)
	if i < 0 {
		return doc
	}
	if len(doc) == 1 {
		return block.Document{block.New(block.FreshID(c.ids, doc), block.DefaultKind)}
	}

	out := make(block.Document, 0, len(doc)-1)
	out = append(out, doc[:i]...)
	out = append(out, doc[i+1:]...)
	return out
}

// Submit handles a submit action inside a paragraph or heading by opening a
// new paragraph right after it. Other kinds are left alone.
func (c *Controller) Submit(doc block.Document, id string) (block.Document, string) {
	b, ok := doc.Find(id)
	if !ok || !b.Kind.IsText() {
		return doc, id
	}
	return c.InsertAfter(doc, id, block.KindParagraph)
}

// ClearText deletes a paragraph or heading whose text is empty and returns
// the block that should receive focus next.
func (c *Controller) ClearText(doc block.Document, id string) (block.Document, string) {
	i := doc.Index(id)
	if i < 0 || !doc[i].Kind.IsText() {
		return doc, id
	}
	if t, ok := doc[i].Content.(block.Text); !ok || t.Text != "" {
		return doc, id
	}

	out := c.Delete(doc, id)
	focus := out[0].ID
	if i > 0 {
		focus = out[i-1].ID
	}
	return out, focus
}

// SetStepBlocks replaces the nested document of step index in How-To block
// id with a single payload update, switching the step to rich mode.
func (c *Controller) SetStepBlocks(doc block.Document, id string, index int, nested block.Document) block.Document {
	return Update(c, doc, id, func(h block.HowTo) block.HowTo {
		if index < 0 || index >= len(h.Steps) {
			return h
		}
		if len(nested) == 0 {
			nested = c.NewDocument()
		}
		steps := append([]block.Step{}, h.Steps...)
		steps[index] = block.Step{Title: steps[index].Title, Blocks: nested.Clone()}
		h.Steps = steps
		return h
	})
}

// Valid reports whether content passes payload validation. Tables must be
// rectangular with at least one column and one row, and How-To steps are
// checked recursively.
func (c *Controller) Valid(content block.Content) bool {
	switch v := content.(type) {
	case block.Table:
		if len(v.Headers) == 0 || len(v.Rows) == 0 {
			return false
		}
		for _, row := range v.Rows {
			if len(row) != len(v.Headers) {
				return false
			}
		}
		return true
	case block.HowTo:
		for _, s := range v.Steps {
			for _, nb := range s.Blocks {
				if _, raw := nb.Content.(block.Raw); raw {
					continue
				}
				if !block.Accepts(nb.Kind, nb.Content) || !c.Valid(nb.Content) {
					return false
				}
			}
		}
		return true
	case block.Raw:
		return false
	}
	return c.validate.Struct(content) == nil
}
