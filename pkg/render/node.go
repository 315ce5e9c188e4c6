// Package render turns block documents into a presentation tree, HTML and
// Markdown. Rendering never fails: blocks it cannot understand are skipped.
package render

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// BlockIDAttr carries the id of the block a top-level node was rendered from.
const BlockIDAttr = "data-block-id"

type Attr struct {
	Key string
	Val string
}

// Node is an element of the presentation tree. A node with an empty Tag is a
// text node.
type Node struct {
	Tag      string
	Attrs    []Attr
	Text     string
	Children []*Node
}

func el(tag string, children ...*Node) *Node {
	return &Node{Tag: tag, Children: children}
}

func text(s string) *Node {
	return &Node{Text: s}
}

func (n *Node) with(key, val string) *Node {
	n.Attrs = append(n.Attrs, Attr{Key: key, Val: val})
	return n
}

func (n *Node) add(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Attr returns the value of key, or "" when absent.
func (n *Node) Attr(key string) string {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// TextContent concatenates every text node below n.
func (n *Node) TextContent() string {
	var sb strings.Builder
	n.collectText(&sb)
	return sb.String()
}

func (n *Node) collectText(sb *strings.Builder) {
	if n.Tag == "" {
		sb.WriteString(n.Text)
		return
	}
	for _, c := range n.Children {
		c.collectText(sb)
	}
}

// Find returns the first node in n's subtree, n included, with the given tag.
func (n *Node) Find(tag string) *Node {
	if n.Tag == tag {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(tag); found != nil {
			return found
		}
	}
	return nil
}

func (n *Node) toHTML() *html.Node {
	if n.Tag == "" {
		return &html.Node{Type: html.TextNode, Data: n.Text}
	}
	h := &html.Node{Type: html.ElementNode, Data: n.Tag, DataAtom: atom.Lookup([]byte(n.Tag))}
	for _, a := range n.Attrs {
		h.Attr = append(h.Attr, html.Attribute{Key: a.Key, Val: a.Val})
	}
	for _, c := range n.Children {
		h.AppendChild(c.toHTML())
	}
	return h
}
