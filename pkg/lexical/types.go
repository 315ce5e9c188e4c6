package lexical

import "encoding/json"

// LexicalRoot is a serialized editor state.
type LexicalRoot struct {
	Root Node `json:"root"`
}

// Node is any element of the Lexical tree. Only the fields the block
// conversion reads are decoded; formatting and layout attributes are ignored.
type Node struct {
	Type     string `json:"type"`
	Children []Node `json:"children,omitempty"`

	// text, code-highlight
	Text string `json:"text,omitempty"`

	// heading: h1..h6
	Tag string `json:"tag,omitempty"`

	// list: bullet, number, check
	ListType string `json:"listType,omitempty"`

	// code
	Language string `json:"language,omitempty"`

	// image
	Src     string `json:"src,omitempty"`
	AltText string `json:"altText,omitempty"`

	// youtube
	VideoID string `json:"videoID,omitempty"`

	// Raw is the node exactly as stored, kept for nodes that have no block form.
	Raw json.RawMessage `json:"-"`
}

func (n *Node) UnmarshalJSON(data []byte) error {
	type alias Node
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*n = Node(a)
	n.Raw = append(json.RawMessage(nil), data...)
	return nil
}
