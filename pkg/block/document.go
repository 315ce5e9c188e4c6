package block

import (
	"fmt"
	"strings"
)

// Block is one typed unit of content. ID and Kind never change after creation.
type Block struct {
	ID      string
	Kind    Kind
	Content Content
}

// New creates a block of kind with its default payload.
func New(id string, kind Kind) Block {
	return Block{ID: id, Kind: kind, Content: Default(kind)}
}

// NewWithContent creates a block, rejecting payloads that do not belong to kind.
func NewWithContent(id string, kind Kind, content Content) (Block, error) {
	if content == nil || !Accepts(kind, content) {
		return Block{}, fmt.Errorf("block %s: payload %T does not match kind %q", id, content, kind)
	}
	return Block{ID: id, Kind: kind, Content: content}, nil
}

// Paragraph is a shorthand for a paragraph block with text.
func Paragraph(id, text string) Block {
	return Block{ID: id, Kind: KindParagraph, Content: Text{Text: text}}
}

// Clone returns a deep copy of b.
func (b Block) Clone() Block {
	b.Content = Clone(b.Content)
	return b
}

// Document is an ordered sequence of blocks in reading order.
type Document []Block

// Index returns the position of the block with id, or -1.
func (d Document) Index(id string) int {
	for i, b := range d {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the block with id.
func (d Document) Find(id string) (Block, bool) {
	if i := d.Index(id); i >= 0 {
		return d[i], true
	}
	return Block{}, false
}

// Has reports whether a block with id is present.
func (d Document) Has(id string) bool {
	return d.Index(id) >= 0
}

// IDs lists block ids in order.
func (d Document) IDs() []string {
	ids := make([]string, len(d))
	for i, b := range d {
		ids[i] = b.ID
	}
	return ids
}

// Clone returns a deep copy of d. A nil document stays nil.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for i, b := range d {
		out[i] = b.Clone()
	}
	return out
}

// Step is one How-To step. It is in rich mode when Blocks is non-nil, and
// then Text is ignored.
type Step struct {
	Title  string
	Text   string
	Blocks Document
}

// IsRich reports whether the step body is a nested document.
func (s Step) IsRich() bool {
	return s.Blocks != nil
}

// Clone returns a deep copy of s.
func (s Step) Clone() Step {
	s.Blocks = s.Blocks.Clone()
	return s
}

// Body returns the step text, joining nested paragraphs for rich steps.
func (s Step) Body() string {
	if s.IsRich() {
		return s.Blocks.PlainText()
	}
	return s.Text
}

// PlainText joins the text of top-level paragraph blocks with newlines.
// Other block kinds contribute nothing.
func (d Document) PlainText() string {
	var parts []string
	for _, b := range d {
		if b.Kind != KindParagraph {
			continue
		}
		if t, ok := b.Content.(Text); ok {
			parts = append(parts, t.Text)
		}
	}
	return strings.Join(parts, "\n")
}
