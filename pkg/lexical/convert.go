package lexical

import (
	"encoding/json"
	"fmt"
	"strings"

	"content-platform-be/pkg/block"
)

// RootPrefix marks stored content produced by the previous Lexical editor.
const RootPrefix = `{"root":`

// IsLexical reports whether content looks like a serialized Lexical editor state.
func IsLexical(content string) bool {
	return strings.HasPrefix(strings.TrimSpace(content), RootPrefix)
}

// DecodeBlocks parses a Lexical editor state and converts it into blocks.
func DecodeBlocks(content string, ids block.IDGenerator) (block.Document, error) {
	var root LexicalRoot
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &root); err != nil {
		return nil, fmt.Errorf("failed to parse lexical json: %w", err)
	}
	return ToBlocks(root.Root, ids), nil
}

// RawType is the stored block type of Lexical nodes that have no block
// equivalent. The node JSON is kept as the payload so nothing is lost.
const RawType = "lexical"

// ToBlocks maps the top-level children of a Lexical root onto block kinds.
// Inline formatting is flattened to plain text.
func ToBlocks(root Node, ids block.IDGenerator) block.Document {
	c := &converter{ids: ids}
	for _, node := range root.Children {
		c.convert(node)
	}
	return c.doc
}

type converter struct {
	ids block.IDGenerator
	doc block.Document
}

func (c *converter) add(kind block.Kind, content block.Content) {
	c.doc = append(c.doc, block.Block{ID: block.FreshID(c.ids, c.doc), Kind: kind, Content: content})
}

func (c *converter) keep(node Node) {
	payload := node.Raw
	if len(payload) == 0 {
		payload, _ = json.Marshal(node)
	}
	c.add(block.Kind(RawType), block.Raw{Type: RawType, Payload: payload})
}

func (c *converter) convert(node Node) {
	switch node.Type {
	case "paragraph":
		c.text(block.KindParagraph, node)
	case "heading":
		c.text(headingKind(node.Tag), node)
	case "quote":
		media := embedded(node)
		if text := inlineText(node); text != "" || len(media) == 0 {
			c.add(block.KindQuote, block.Quote{Text: text})
		}
		c.media(media)
	case "code":
		c.add(block.KindCode, block.Code{Language: node.Language, Code: inlineText(node)})
	case "list":
		c.add(block.KindList, toList(node))
	case "table":
		if tbl, ok := toTable(node); ok {
			c.add(block.KindTable, tbl)
		} else {
			c.keep(node)
		}
	case "horizontalrule":
		c.add(block.KindDivider, block.Divider{})
	case "image":
		if node.Src == "" {
			c.keep(node)
			return
		}
		c.add(block.KindImage, block.Image{URL: node.Src, Alt: node.AltText})
	case "youtube":
		if node.VideoID == "" {
			c.keep(node)
			return
		}
		c.add(block.KindVideo, block.Video{ID: node.VideoID})
	case "text":
		if node.Text == "" {
			c.keep(node)
			return
		}
		c.add(block.KindParagraph, block.Text{Text: node.Text})
	default:
		if text := inlineText(node); text != "" {
			c.add(block.KindParagraph, block.Text{Text: text})
			return
		}
		c.keep(node)
	}
}

// text emits a text block followed by any media nested directly in it. A
// node holding only media produces just the media blocks.
func (c *converter) text(kind block.Kind, node Node) {
	media := embedded(node)
	if text := inlineText(node); text != "" || len(media) == 0 {
		c.add(kind, block.Text{Text: text})
	}
	c.media(media)
}

func (c *converter) media(nodes []Node) {
	for _, n := range nodes {
		c.convert(n)
	}
}

func embedded(node Node) []Node {
	var out []Node
	for _, child := range node.Children {
		if child.Type == "image" || child.Type == "youtube" {
			out = append(out, child)
		}
	}
	return out
}

func headingKind(tag string) block.Kind {
	switch tag {
	case "h1":
		return block.KindHeading1
	case "h2":
		return block.KindHeading2
	}
	return block.KindHeading3
}

func inlineText(node Node) string {
	var sb strings.Builder
	var walk func(n Node)
	walk = func(n Node) {
		switch n.Type {
		case "text", "code-highlight":
			sb.WriteString(n.Text)
		case "linebreak":
			sb.WriteString("\n")
		case "list":
			// nested lists are flattened by toList
		default:
			for _, child := range n.Children {
				walk(child)
			}
		}
	}
	for _, child := range node.Children {
		walk(child)
	}
	return sb.String()
}

func toList(node Node) block.List {
	list := block.List{Style: block.ListBullet, Items: []string{}}
	switch node.ListType {
	case "number":
		list.Style = block.ListNumbered
	case "check":
		list.Style = block.ListCheck
	}

	var collect func(n Node)
	collect = func(n Node) {
		for _, item := range n.Children {
			if item.Type != "listitem" {
				continue
			}
			nested := false
			for _, child := range item.Children {
				if child.Type == "list" {
					nested = true
				}
			}
			// An item that only wraps a nested list is a container, not an entry.
			if text := inlineText(item); text != "" || !nested {
				list.Items = append(list.Items, text)
			}
			for _, child := range item.Children {
				if child.Type == "list" {
					collect(child)
				}
			}
		}
	}
	collect(node)

	if len(list.Items) == 0 {
		list.Items = []string{""}
	}
	return list
}

// toTable uses the first row as headers and pads every row to the widest one.
func toTable(node Node) (block.Table, bool) {
	var grid [][]string
	width := 0
	for _, row := range node.Children {
		if row.Type != "tablerow" {
			continue
		}
		var cells []string
		for _, cell := range row.Children {
			cells = append(cells, strings.ReplaceAll(inlineText(cell), "\n", " "))
		}
		grid = append(grid, cells)
		if len(cells) > width {
			width = len(cells)
		}
	}
	if len(grid) == 0 || width == 0 {
		return block.Table{}, false
	}

	pad := func(cells []string) []string {
		out := make([]string, width)
		copy(out, cells)
		return out
	}

	tbl := block.Table{Headers: pad(grid[0])}
	for _, cells := range grid[1:] {
		tbl.Rows = append(tbl.Rows, pad(cells))
	}
	if len(tbl.Rows) == 0 {
		tbl.Rows = [][]string{make([]string, width)}
	}
	return tbl, true
}
