package render

import (
	"fmt"
	"strconv"
	"strings"

	"content-platform-be/pkg/block"
)

// YouTubeWatchURL links video blocks in Markdown output.
const YouTubeWatchURL = "https://www.youtube.com/watch?v="

// Markdown renders doc as Markdown, one paragraph per block. It is used for
// previews and inspection, so presentation detail such as callout colour is
// reduced to text.
func Markdown(doc block.Document) string {
	w := &markdownWriter{}
	block.WalkDocument(doc, w)
	return strings.Join(w.parts, "\n\n")
}

type markdownWriter struct {
	parts []string
}

func (w *markdownWriter) write(s string) {
	w.parts = append(w.parts, strings.TrimRight(s, "\n"))
}

func (w *markdownWriter) VisitParagraph(b block.Block, c block.Text) {
	w.write(c.Text)
}

func (w *markdownWriter) VisitHeading(b block.Block, level int, c block.Text) {
	w.write(strings.Repeat("#", level) + " " + c.Text)
}

func (w *markdownWriter) VisitImage(b block.Block, c block.Image) {
	if c.URL == "" {
		return
	}
	out := fmt.Sprintf("![%s](%s)", c.Alt, c.URL)
	if c.Caption != "" {
		out += "\n_" + c.Caption + "_"
	}
	w.write(out)
}

func (w *markdownWriter) VisitGallery(b block.Block, c block.Gallery) {
	var lines []string
	for _, item := range c.Items {
		if item.URL != "" {
			lines = append(lines, fmt.Sprintf("![%s](%s)", item.Caption, item.URL))
		}
	}
	if len(lines) > 0 {
		w.write(strings.Join(lines, "\n"))
	}
}

func (w *markdownWriter) VisitQuote(b block.Block, c block.Quote) {
	out := quoteLines(c.Text)
	if c.Author != "" {
		out += "\n>\n> _" + c.Author + "_"
	}
	w.write(out)
}

func (w *markdownWriter) VisitCode(b block.Block, c block.Code) {
	w.write("```" + c.Language + "\n" + c.Code + "\n```")
}

func (w *markdownWriter) VisitList(b block.Block, c block.List) {
	var sb strings.Builder
	for i, item := range c.Items {
		switch c.Style {
		case block.ListNumbered:
			sb.WriteString(strconv.Itoa(i+1) + ". ")
		case block.ListCheck:
			sb.WriteString("- [ ] ")
		default:
			sb.WriteString("- ")
		}
		sb.WriteString(item + "\n")
	}
	w.write(sb.String())
}

func (w *markdownWriter) VisitCallout(b block.Block, c block.Callout) {
	label := "Note"
	if c.Severity != "" {
		label = strings.ToUpper(string(c.Severity[:1])) + string(c.Severity[1:])
	}
	w.write(quoteLines("**" + label + ":** " + c.Text))
}

func (w *markdownWriter) VisitDivider(b block.Block) {
	w.write("---")
}

func (w *markdownWriter) VisitFAQ(b block.Block, c block.FAQ) {
	var pairs []string
	for _, item := range c.Items {
		if item.Question == "" && item.Answer == "" {
			continue
		}
		pairs = append(pairs, "**"+item.Question+"**\n\n"+item.Answer)
	}
	if len(pairs) > 0 {
		w.write(strings.Join(pairs, "\n\n"))
	}
}

func (w *markdownWriter) VisitHowTo(b block.Block, c block.HowTo) {
	var sb strings.Builder
	if c.Name != "" {
		sb.WriteString("### " + c.Name + "\n\n")
	}
	for i, s := range c.Steps {
		fmt.Fprintf(&sb, "%d. **%s**", i+1, s.Title)
		if s.IsRich() {
			sb.WriteString("\n\n" + indent(Markdown(s.Blocks), "   ") + "\n")
		} else if s.Text != "" {
			sb.WriteString(": " + s.Text + "\n")
		} else {
			sb.WriteString("\n")
		}
	}
	w.write(sb.String())
}

func (w *markdownWriter) VisitTable(b block.Block, c block.Table) {
	if len(c.Rows) == 0 || len(c.Headers) == 0 {
		return
	}
	var sb strings.Builder
	sb.WriteString(tableRow(c.Headers))
	sb.WriteString("|" + strings.Repeat("---|", len(c.Headers)) + "\n")
	for _, row := range c.Rows {
		sb.WriteString(tableRow(row))
	}
	w.write(sb.String())
}

func tableRow(cells []string) string {
	escaped := make([]string, len(cells))
	for i, cell := range cells {
		escaped[i] = strings.ReplaceAll(strings.ReplaceAll(cell, "|", `\|`), "\n", " ")
	}
	return "| " + strings.Join(escaped, " | ") + " |\n"
}

func (w *markdownWriter) VisitVideo(b block.Block, c block.Video) {
	if c.ID == "" {
		return
	}
	w.write(fmt.Sprintf("[Video](%s%s)", YouTubeWatchURL, c.ID))
}

func (w *markdownWriter) VisitReview(b block.Block, c block.Review) {
	out := fmt.Sprintf("**%s** (%d/5)", c.ItemName, c.Rating)
	if c.Author != "" {
		out += " by " + c.Author
	}
	if c.Text != "" {
		out += "\n\n" + c.Text
	}
	w.write(out)
}

func (w *markdownWriter) VisitUnknown(block.Block) {}

func quoteLines(s string) string {
	return "> " + strings.ReplaceAll(s, "\n", "\n> ")
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}
