package service

import (
	"crypto/sha256"
	"encoding/hex"

	"content-platform-be/internal/dto"
	"content-platform-be/internal/pkg/logger"
	"content-platform-be/pkg/block"
	"content-platform-be/pkg/codec"
	"content-platform-be/pkg/markdown"
	"content-platform-be/pkg/render"
	"content-platform-be/pkg/seo"
)

// Blocks stored without an id get b1, b2, ... so that every read of the same
// body yields the same ids and clients can address them in edits.
const parsedIDPrefix = "b"

const shapeMarkdown codec.Shape = "markdown"

func newCodec(log logger.ILogger) *codec.Codec {
	return codec.New(
		codec.WithIDGenerator(block.NewSequence(parsedIDPrefix)),
		codec.WithLogger(log.Zap()),
	)
}

// readBody turns request input into a document. Markdown is imported,
// anything else goes through the stored-content reader.
func readBody(body, format string, log logger.ILogger) (block.Document, codec.Shape) {
	if format == dto.FormatMarkdown {
		return markdown.Import([]byte(body), block.NewSequence(parsedIDPrefix)), shapeMarkdown
	}
	return newCodec(log).ParseShape(body)
}

// rendition is everything derived from one stored body.
type rendition struct {
	Shape       codec.Shape
	Document    block.Document
	Blocks      string
	HTML        string
	Markdown    string
	Descriptors []seo.Descriptor
}

func renditionOf(doc block.Document, shape codec.Shape, log logger.ILogger) *rendition {
	return &rendition{
		Shape:       shape,
		Document:    doc,
		Blocks:      newCodec(log).Serialize(doc),
		HTML:        render.HTML(doc),
		Markdown:    render.Markdown(doc),
		Descriptors: seo.Derive(doc),
	}
}

func bodyDigest(body string) string {
	sum := sha256.Sum256([]byte(body))
	return hex.EncodeToString(sum[:])
}
