package render

import (
	"strconv"
	"strings"

	"content-platform-be/pkg/block"

	"golang.org/x/net/html"
)

// YouTubeEmbedURL is the iframe source prefix for video blocks.
const YouTubeEmbedURL = "https://www.youtube-nocookie.com/embed/"

var listMarkers = map[block.ListStyle]string{
	block.ListBullet: "•",
	block.ListCheck:  "☐",
}

// Render builds one node per renderable block, in document order. Each node
// carries the block id in BlockIDAttr. Rich How-To steps are rendered
// recursively.
func Render(doc block.Document) []*Node {
	b := &treeBuilder{}
	block.WalkDocument(doc, b)
	return b.nodes
}

// HTML renders doc as an HTML fragment.
func HTML(doc block.Document) string {
	var sb strings.Builder
	for _, n := range Render(doc) {
		// Render only fails on writer errors, and strings.Builder has none.
		_ = html.Render(&sb, n.toHTML())
	}
	return sb.String()
}

type treeBuilder struct {
	nodes []*Node
}

func (t *treeBuilder) emit(b block.Block, n *Node) {
	t.nodes = append(t.nodes, n.with(BlockIDAttr, b.ID))
}

func (t *treeBuilder) VisitParagraph(b block.Block, c block.Text) {
	t.emit(b, el("p", text(c.Text)))
}

func (t *treeBuilder) VisitHeading(b block.Block, level int, c block.Text) {
	t.emit(b, el("h"+strconv.Itoa(level), text(c.Text)))
}

func (t *treeBuilder) VisitImage(b block.Block, c block.Image) {
	t.emit(b, figure(c.URL, c.Alt, c.Caption).with("class", "image"))
}

func (t *treeBuilder) VisitGallery(b block.Block, c block.Gallery) {
	n := el("div").with("class", "gallery")
	for _, item := range c.Items {
		n.add(figure(item.URL, item.Caption, item.Caption))
	}
	t.emit(b, n)
}

func figure(url, alt, caption string) *Node {
	n := el("figure")
	if url != "" {
		n.add(el("img").with("src", url).with("alt", alt).with("loading", "lazy"))
	}
	if caption != "" {
		n.add(el("figcaption", text(caption)))
	}
	return n
}

func (t *treeBuilder) VisitQuote(b block.Block, c block.Quote) {
	n := el("blockquote", el("p", text(c.Text)))
	if c.Author != "" {
		n.add(el("cite", text(c.Author)))
	}
	t.emit(b, n)
}

func (t *treeBuilder) VisitCode(b block.Block, c block.Code) {
	code := el("code", text(c.Code))
	if c.Language != "" {
		code.with("class", "language-"+c.Language)
	}
	t.emit(b, el("pre", code))
}

func (t *treeBuilder) VisitList(b block.Block, c block.List) {
	tag := "ul"
	if c.Style == block.ListNumbered {
		tag = "ol"
	}
	n := el(tag).with("class", "list-"+string(c.Style))
	marker, ok := listMarkers[c.Style]
	for i, item := range c.Items {
		li := el("li")
		if c.Style == block.ListNumbered {
			li.with("data-marker", strconv.Itoa(i+1)+".")
		} else if ok {
			li.with("data-marker", marker)
		}
		if c.Style == block.ListCheck {
			li.add(el("input").with("type", "checkbox").with("disabled", ""))
		}
		n.add(li.add(text(item)))
	}
	t.emit(b, n)
}

func (t *treeBuilder) VisitCallout(b block.Block, c block.Callout) {
	n := el("aside", el("p", text(c.Text))).
		with("class", "callout callout-"+string(c.Severity)).
		with("role", "note")
	t.emit(b, n)
}

func (t *treeBuilder) VisitDivider(b block.Block) {
	t.emit(b, el("hr"))
}

func (t *treeBuilder) VisitFAQ(b block.Block, c block.FAQ) {
	n := el("section").with("class", "faq")
	for _, item := range c.Items {
		n.add(el("details",
			el("summary", text(item.Question)),
			el("p", text(item.Answer)),
		))
	}
	t.emit(b, n)
}

func (t *treeBuilder) VisitHowTo(b block.Block, c block.HowTo) {
	n := el("section").with("class", "howto")
	if c.Name != "" {
		n.add(el("h3", text(c.Name)))
	}
	steps := el("ol")
	for _, s := range c.Steps {
		li := el("li", el("h4", text(s.Title)))
		if s.IsRich() {
			li.add(el("div", Render(s.Blocks)...).with("class", "step-body"))
		} else {
			li.add(el("p", text(s.Text)))
		}
		steps.add(li)
	}
	t.emit(b, n.add(steps))
}

// VisitTable skips tables without headers or rows.
func (t *treeBuilder) VisitTable(b block.Block, c block.Table) {
	if len(c.Rows) == 0 || len(c.Headers) == 0 {
		return
	}
	head := el("tr")
	for _, h := range c.Headers {
		head.add(el("th", text(h)))
	}
	body := el("tbody")
	for _, row := range c.Rows {
		tr := el("tr")
		for _, cell := range row {
			tr.add(el("td", text(cell)))
		}
		body.add(tr)
	}
	t.emit(b, el("table", el("thead", head), body))
}

func (t *treeBuilder) VisitVideo(b block.Block, c block.Video) {
	if c.ID == "" {
		return
	}
	frame := el("iframe").
		with("src", YouTubeEmbedURL+c.ID).
		with("title", "YouTube video").
		with("allowfullscreen", "")
	t.emit(b, el("div", frame).with("class", "video"))
}

func (t *treeBuilder) VisitReview(b block.Block, c block.Review) {
	rating := c.Rating
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	n := el("div",
		el("strong", text(c.ItemName)),
		el("span", text(strings.Repeat("★", rating)+strings.Repeat("☆", 5-rating))).
			with("class", "rating").
			with("aria-label", strconv.Itoa(c.Rating)+" out of 5"),
	).with("class", "review")
	if c.Text != "" {
		n.add(el("p", text(c.Text)))
	}
	if c.Author != "" {
		n.add(el("span", text(c.Author)).with("class", "author"))
	}
	t.emit(b, n)
}

func (t *treeBuilder) VisitUnknown(block.Block) {}
