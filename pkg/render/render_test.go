package render

import (
	"encoding/json"
	"testing"

	"content-platform-be/pkg/block"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() block.Document {
	return block.Document{
		{ID: "h", Kind: block.KindHeading2, Content: block.Text{Text: "Guide"}},
		block.Paragraph("p", "intro"),
		{ID: "bad", Kind: block.KindTable, Content: block.Table{Headers: []string{"a"}}},
		{ID: "raw", Kind: block.Kind("embed"), Content: block.Raw{Type: "embed", Payload: json.RawMessage(`{"x":1}`)}},
		{ID: "list", Kind: block.KindList, Content: block.List{Style: block.ListNumbered, Items: []string{"one", "two"}}},
		{ID: "tbl", Kind: block.KindTable, Content: block.Table{Headers: []string{"k", "v"}, Rows: [][]string{{"a", "1"}, {"b", "2"}}}},
		{ID: "vid", Kind: block.KindVideo, Content: block.Video{ID: "abc123"}},
		{ID: "div", Kind: block.KindDivider, Content: block.Divider{}},
	}
}

func TestRenderSkipsCorruptBlocks(t *testing.T) {
	doc := sampleDocument()
	before := doc.Clone()

	nodes := Render(doc)
	ids := make([]string, 0, len(nodes))
	for _, n := range nodes {
		ids = append(ids, n.Attr(BlockIDAttr))
	}
	assert.Equal(t, []string{"h", "p", "list", "tbl", "vid", "div"}, ids)
	assert.Equal(t, before, doc)
}

func TestRenderListMarkers(t *testing.T) {
	tests := []struct {
		style   block.ListStyle
		tag     string
		markers []string
	}{
		{block.ListBullet, "ul", []string{"•", "•"}},
		{block.ListNumbered, "ol", []string{"1.", "2."}},
		{block.ListCheck, "ul", []string{"☐", "☐"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.style), func(t *testing.T) {
			nodes := Render(block.Document{{ID: "l", Kind: block.KindList, Content: block.List{Style: tt.style, Items: []string{"a", "b"}}}})
			require.Len(t, nodes, 1)
			assert.Equal(t, tt.tag, nodes[0].Tag)
			require.Len(t, nodes[0].Children, 2)
			for i, li := range nodes[0].Children {
				assert.Equal(t, tt.markers[i], li.Attr("data-marker"))
			}
		})
	}
}

func TestRenderTableOrder(t *testing.T) {
	nodes := Render(sampleDocument())
	var table *Node
	for _, n := range nodes {
		if n.Tag == "table" {
			table = n
		}
	}
	require.NotNil(t, table)

	require.Len(t, table.Children, 2)
	assert.Equal(t, "kv", table.Children[0].TextContent())
	body := table.Children[1]
	require.Len(t, body.Children, 2)
	assert.Equal(t, "a1", body.Children[0].TextContent())
	assert.Equal(t, "b2", body.Children[1].TextContent())
}

func TestRenderRichStepRecurses(t *testing.T) {
	doc := block.Document{{ID: "how", Kind: block.KindHowTo, Content: block.HowTo{Name: "Brew", Steps: []block.Step{
		{Title: "Boil", Text: "Boil water"},
		{Title: "Pour", Blocks: block.Document{
			block.Paragraph("n1", "X"),
			{ID: "n2", Kind: block.KindHowTo, Content: block.HowTo{Steps: []block.Step{
				{Title: "deep", Blocks: block.Document{block.Paragraph("d1", "deepest")}},
			}}},
		}},
	}}}}

	nodes := Render(doc)
	require.Len(t, nodes, 1)
	steps := nodes[0].Find("ol")
	require.NotNil(t, steps)
	require.Len(t, steps.Children, 2)

	body := steps.Children[1].Find("div")
	require.NotNil(t, body)
	require.Len(t, body.Children, 2)
	assert.Equal(t, "n1", body.Children[0].Attr(BlockIDAttr))
	assert.Equal(t, "X", body.Children[0].TextContent())
	assert.Contains(t, body.Children[1].TextContent(), "deepest")
}

func TestHTML(t *testing.T) {
	out := HTML(sampleDocument())

	assert.Contains(t, out, `<h2 data-block-id="h">Guide</h2>`)
	assert.Contains(t, out, `<p data-block-id="p">intro</p>`)
	assert.Contains(t, out, `<ol class="list-numbered" data-block-id="list"><li data-marker="1.">one</li>`)
	assert.Contains(t, out, `<thead><tr><th>k</th><th>v</th></tr></thead>`)
	assert.Contains(t, out, `src="`+YouTubeEmbedURL+`abc123"`)
	assert.Contains(t, out, `<hr data-block-id="div"/>`)
	assert.NotContains(t, out, "embed\"")
	assert.NotContains(t, out, `data-block-id="bad"`)
}

func TestHTMLEscapesText(t *testing.T) {
	out := HTML(block.Document{block.Paragraph("p", "<script>alert(1)</script>")})
	assert.Equal(t, `<p data-block-id="p">&lt;script&gt;alert(1)&lt;/script&gt;</p>`, out)
}

func TestMarkdown(t *testing.T) {
	out := Markdown(sampleDocument())

	assert.Contains(t, out, "## Guide\n\nintro")
	assert.Contains(t, out, "1. one\n2. two")
	assert.Contains(t, out, "| k | v |\n|---|---|\n| a | 1 |\n| b | 2 |")
	assert.Contains(t, out, "[Video]("+YouTubeWatchURL+"abc123)")
	assert.True(t, len(out) > 0 && out[len(out)-3:] == "---")
}

func TestMarkdownRichStep(t *testing.T) {
	out := Markdown(block.Document{{ID: "how", Kind: block.KindHowTo, Content: block.HowTo{Name: "Brew", Steps: []block.Step{
		{Title: "Boil", Text: "water"},
		{Title: "Pour", Blocks: block.Document{block.Paragraph("n1", "slowly")}},
	}}}})

	assert.Equal(t, "### Brew\n\n1. **Boil**: water\n2. **Pour**\n\n   slowly", out)
}
