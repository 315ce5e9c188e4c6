package codec

import (
	"encoding/json"

	"content-platform-be/pkg/block"
)

type wireBlock struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Content json.RawMessage `json:"content"`
}

type wireStep struct {
	Title  string          `json:"title"`
	Text   *string         `json:"text,omitempty"`
	Blocks json.RawMessage `json:"blocks,omitempty"`
}

type wireHowTo struct {
	Name  string     `json:"name"`
	Steps []wireStep `json:"steps"`
}

var null = json.RawMessage("null")

func (c *Codec) encodeDocument(doc block.Document) []wireBlock {
	out := make([]wireBlock, 0, len(doc))
	for _, b := range doc {
		out = append(out, c.encodeBlock(b))
	}
	return out
}

func (c *Codec) encodeBlock(b block.Block) wireBlock {
	w := wireBlock{ID: b.ID, Type: string(b.Kind), Content: null}

	switch content := b.Content.(type) {
	case block.Text:
		w.Content = marshal(content.Text)
	case block.Divider:
		w.Content = null
	case block.Video:
		w.Content = marshal(content.ID)
	case block.HowTo:
		w.Content = marshal(c.encodeHowTo(content))
	case block.Raw:
		if content.Type != "" || !b.Kind.Valid() {
			w.Type = content.Type
		}
		if len(content.Payload) > 0 && json.Valid(content.Payload) {
			w.Content = content.Payload
		}
	case nil:
		w.Content = null
	default:
		w.Content = marshal(content)
	}
	return w
}

func (c *Codec) encodeHowTo(h block.HowTo) wireHowTo {
	out := wireHowTo{Name: h.Name, Steps: make([]wireStep, 0, len(h.Steps))}
	for _, s := range h.Steps {
		ws := wireStep{Title: s.Title}
		if s.IsRich() {
			nested := s.Blocks
			if len(nested) == 0 {
				nested = c.emptyDocument()
			}
			ws.Blocks = marshal(c.encodeDocument(nested))
		} else {
			text := s.Text
			ws.Text = &text
		}
		out.Steps = append(out.Steps, ws)
	}
	return out
}

func marshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return null
	}
	return data
}
