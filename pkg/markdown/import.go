// Package markdown imports Markdown text as a block document.
package markdown

import (
	"bytes"
	"net/url"
	"strings"

	"content-platform-be/pkg/block"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Import converts Markdown source into blocks. Constructs with no block
// equivalent (raw HTML, link reference definitions) are dropped. The result
// always holds at least one block.
func Import(source []byte, ids block.IDGenerator) block.Document {
	if ids == nil {
		ids = block.NewULIDGenerator()
	}
	p := goldmark.New(goldmark.WithExtensions(extension.Table, extension.TaskList)).Parser()
	root := p.Parse(text.NewReader(source))

	im := &importer{source: source, ids: ids, doc: block.Document{}}
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		im.convert(n)
	}
	if len(im.doc) == 0 {
		return block.Document{block.New(ids.NewID(), block.DefaultKind)}
	}
	return im.doc
}

type importer struct {
	source []byte
	ids    block.IDGenerator
	doc    block.Document
}

func (im *importer) add(kind block.Kind, content block.Content) {
	im.doc = append(im.doc, block.Block{ID: block.FreshID(im.ids, im.doc), Kind: kind, Content: content})
}

func (im *importer) convert(n ast.Node) {
	switch node := n.(type) {
	case *ast.Heading:
		kind := block.KindHeading3
		switch node.Level {
		case 1:
			kind = block.KindHeading1
		case 2:
			kind = block.KindHeading2
		}
		im.add(kind, block.Text{Text: im.inline(node)})

	case *ast.Paragraph:
		im.paragraph(node)

	case *ast.FencedCodeBlock:
		im.add(block.KindCode, block.Code{
			Language: string(node.Language(im.source)),
			Code:     im.lines(node),
		})

	case *ast.CodeBlock:
		im.add(block.KindCode, block.Code{Code: im.lines(node)})

	case *ast.Blockquote:
		im.blockquote(node)

	case *ast.List:
		im.list(node)

	case *ast.ThematicBreak:
		im.add(block.KindDivider, block.Divider{})

	case *east.Table:
		im.table(node)
	}
}

// paragraph recognises a lone image or a lone video link before falling
// back to plain text.
func (im *importer) paragraph(p *ast.Paragraph) {
	if p.ChildCount() == 1 {
		switch only := p.FirstChild().(type) {
		case *ast.Image:
			im.add(block.KindImage, block.Image{
				URL:     string(only.Destination),
				Alt:     im.inline(only),
				Caption: string(only.Title),
			})
			return
		case *ast.Link:
			if id := youTubeID(string(only.Destination)); id != "" {
				im.add(block.KindVideo, block.Video{ID: id})
				return
			}
		}
	}
	im.add(block.KindParagraph, block.Text{Text: im.inline(p)})
}

var severities = map[string]block.Severity{
	"note":    block.SeverityInfo,
	"info":    block.SeverityInfo,
	"tip":     block.SeveritySuccess,
	"success": block.SeveritySuccess,
	"warning": block.SeverityWarning,
}

// blockquote becomes a callout when it opens with a bold "Label:" and a
// quote otherwise. A trailing emphasised paragraph is the quote's author.
func (im *importer) blockquote(q *ast.Blockquote) {
	var paras []ast.Node
	for c := q.FirstChild(); c != nil; c = c.NextSibling() {
		paras = append(paras, c)
	}
	if len(paras) == 0 {
		return
	}

	if label, ok := paras[0].FirstChild().(*ast.Emphasis); ok && label.Level == 2 {
		name := strings.ToLower(strings.TrimSuffix(strings.TrimSpace(im.inline(label)), ":"))
		if severity, ok := severities[name]; ok {
			var rest strings.Builder
			for c := label.NextSibling(); c != nil; c = c.NextSibling() {
				im.writeInline(&rest, c)
			}
			parts := []string{strings.TrimSpace(rest.String())}
			for _, p := range paras[1:] {
				parts = append(parts, im.inline(p))
			}
			im.add(block.KindCallout, block.Callout{Severity: severity, Text: strings.TrimSpace(strings.Join(parts, "\n"))})
			return
		}
	}

	author := ""
	if last := paras[len(paras)-1]; len(paras) > 1 && last.ChildCount() == 1 {
		if em, ok := last.FirstChild().(*ast.Emphasis); ok && em.Level == 1 {
			author = im.inline(em)
			paras = paras[:len(paras)-1]
		}
	}
	texts := make([]string, 0, len(paras))
	for _, p := range paras {
		texts = append(texts, im.inline(p))
	}
	im.add(block.KindQuote, block.Quote{Text: strings.Join(texts, "\n"), Author: author})
}

func (im *importer) list(l *ast.List) {
	style := block.ListBullet
	if l.IsOrdered() {
		style = block.ListNumbered
	}

	items := []string{}
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		var parts []string
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if box, ok := c.FirstChild().(*east.TaskCheckBox); ok && box != nil {
				style = block.ListCheck
			}
			if t := strings.TrimSpace(im.inline(c)); t != "" {
				parts = append(parts, t)
			}
		}
		items = append(items, strings.Join(parts, "\n"))
	}
	if len(items) == 0 {
		items = []string{""}
	}
	im.add(block.KindList, block.List{Style: style, Items: items})
}

func (im *importer) table(t *east.Table) {
	var headers []string
	rows := [][]string{}
	for r := t.FirstChild(); r != nil; r = r.NextSibling() {
		var cells []string
		for c := r.FirstChild(); c != nil; c = c.NextSibling() {
			cells = append(cells, strings.TrimSpace(im.inline(c)))
		}
		if _, ok := r.(*east.TableHeader); ok {
			headers = cells
			continue
		}
		rows = append(rows, cells)
	}

	for i, row := range rows {
		rows[i] = fitRow(row, len(headers))
	}
	if len(rows) == 0 {
		rows = append(rows, make([]string, len(headers)))
	}
	im.add(block.KindTable, block.Table{Headers: headers, Rows: rows})
}

func fitRow(row []string, width int) []string {
	out := make([]string, width)
	copy(out, row)
	return out
}

func (im *importer) lines(n ast.Node) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(im.source))
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func (im *importer) inline(n ast.Node) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		im.writeInline(&sb, c)
	}
	return sb.String()
}

func (im *importer) writeInline(sb *strings.Builder, n ast.Node) {
	switch node := n.(type) {
	case *ast.Text:
		sb.Write(node.Segment.Value(im.source))
		if node.SoftLineBreak() || node.HardLineBreak() {
			sb.WriteByte('\n')
		}
	case *ast.String:
		sb.Write(node.Value)
	case *ast.AutoLink:
		sb.Write(node.Label(im.source))
	case *ast.RawHTML, *east.TaskCheckBox:
	default:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			im.writeInline(sb, c)
		}
	}
}

// youTubeID extracts the video id from watch, short and embed links.
func youTubeID(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(u.Host, "www.")
	switch host {
	case "youtube.com", "m.youtube.com", "youtube-nocookie.com":
		if v := u.Query().Get("v"); v != "" {
			return v
		}
		if rest, ok := strings.CutPrefix(u.Path, "/embed/"); ok {
			return strings.Trim(rest, "/")
		}
	case "youtu.be":
		return strings.Trim(u.Path, "/")
	}
	return ""
}
