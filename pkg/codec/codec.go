// Package codec converts between stored content strings and block documents.
//
// Four read shapes are accepted: the empty string, the canonical block array,
// the legacy Lexical editor state and legacy plain text. Writes always use the
// canonical block array. Parse never fails; content it cannot understand is
// kept as paragraph text or as a raw block so nothing stored is lost.
package codec

import (
	"encoding/json"
	"fmt"
	"strings"

	"content-platform-be/pkg/block"
	"content-platform-be/pkg/lexical"

	"go.uber.org/zap"
)

// Prefix starts every canonical block array.
const Prefix = "["

// Shape names the stored encoding Parse detected.
type Shape string

const (
	ShapeEmpty     Shape = "empty"
	ShapeCanonical Shape = "canonical"
	ShapeLexical   Shape = "lexical"
	ShapePlain     Shape = "plain"
	// ShapeMalformed is canonical- or lexical-looking input that failed to decode.
	ShapeMalformed Shape = "malformed"
)

type Codec struct {
	ids    block.IDGenerator
	logger *zap.Logger
}

type Option func(*Codec)

// WithIDGenerator sets the generator used for blocks stored without a usable id.
func WithIDGenerator(ids block.IDGenerator) Option {
	return func(c *Codec) { c.ids = ids }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Codec) { c.logger = logger }
}

func New(opts ...Option) *Codec {
	c := &Codec{}
	for _, opt := range opts {
		opt(c)
	}
	if c.ids == nil {
		c.ids = block.NewULIDGenerator()
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

// Parse decodes stored content with a fresh default codec.
func Parse(stored string) block.Document {
	return New().Parse(stored)
}

// Serialize encodes doc with a fresh default codec.
func Serialize(doc block.Document) string {
	return New().Serialize(doc)
}

// Detect reports which read shape stored has, without decoding payloads.
func Detect(stored string) Shape {
	trimmed := strings.TrimSpace(stored)
	switch {
	case stored == "":
		return ShapeEmpty
	case strings.HasPrefix(trimmed, Prefix):
		return ShapeCanonical
	case lexical.IsLexical(trimmed):
		return ShapeLexical
	}
	return ShapePlain
}

// Parse turns stored content into a document with at least one block.
func (c *Codec) Parse(stored string) block.Document {
	doc, _ := c.ParseShape(stored)
	return doc
}

// ParseShape is Parse that also reports the shape the content was read as.
func (c *Codec) ParseShape(stored string) (block.Document, Shape) {
	shape := Detect(stored)
	switch shape {
	case ShapeEmpty:
		return c.emptyDocument(), shape

	case ShapeCanonical:
		doc, err := c.decodeDocument([]byte(strings.TrimSpace(stored)))
		if err != nil {
			c.logger.Warn("canonical content failed to decode, keeping it as text",
				zap.Error(err), zap.Int("length", len(stored)))
			return c.plainDocument(stored), ShapeMalformed
		}
		return doc, shape

	case ShapeLexical:
		doc, err := lexical.DecodeBlocks(stored, c.ids)
		if err != nil {
			c.logger.Warn("lexical content failed to decode, keeping it as text",
				zap.Error(err), zap.Int("length", len(stored)))
			return c.plainDocument(stored), ShapeMalformed
		}
		// Every root child yields a block, kept raw if need be, so an empty
		// result means the root had no children at all.
		if len(doc) == 0 {
			return c.emptyDocument(), shape
		}
		return doc, shape
	}

	return c.plainDocument(stored), ShapePlain
}

// Serialize writes the canonical block array. An empty document is written
// as a single empty paragraph.
func (c *Codec) Serialize(doc block.Document) string {
	if len(doc) == 0 {
		doc = c.emptyDocument()
	}
	data, err := json.Marshal(c.encodeDocument(doc))
	if err != nil {
		// Only reachable through a hand-built block.Raw with invalid JSON.
		c.logger.Error("failed to serialize document", zap.Error(err))
		return ""
	}
	return string(data)
}

func (c *Codec) emptyDocument() block.Document {
	return block.Document{block.New(c.ids.NewID(), block.DefaultKind)}
}

func (c *Codec) plainDocument(text string) block.Document {
	return block.Document{block.Paragraph(c.ids.NewID(), text)}
}

// DecodeContent reads a single canonical payload for kind, using the same
// lenient rules as Parse. The edit API uses it for client-supplied payloads.
func (c *Codec) DecodeContent(kind block.Kind, raw json.RawMessage) (block.Content, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown block kind %q", kind)
	}
	return c.decodeContent(kind, raw)
}
