package lexical

import (
	"testing"

	"content-platform-be/pkg/block"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleState = `{"root":{"type":"root","version":1,"children":[
{"type":"heading","tag":"h1","version":1,"children":[{"type":"text","text":"Title","version":1}]},
{"type":"paragraph","version":1,"children":[{"type":"text","text":"Hello ","format":1,"version":1},{"type":"text","text":"world","version":1}]},
{"type":"list","listType":"number","version":1,"children":[
  {"type":"listitem","version":1,"children":[{"type":"text","text":"one","version":1}]},
  {"type":"listitem","version":1,"children":[{"type":"text","text":"two","version":1}]}]},
{"type":"horizontalrule","version":1},
{"type":"table","version":1,"children":[
  {"type":"tablerow","version":1,"children":[
    {"type":"tablecell","version":1,"children":[{"type":"paragraph","version":1,"children":[{"type":"text","text":"A","version":1}]}]},
    {"type":"tablecell","version":1,"children":[{"type":"paragraph","version":1,"children":[{"type":"text","text":"B","version":1}]}]}]},
  {"type":"tablerow","version":1,"children":[
    {"type":"tablecell","version":1,"children":[{"type":"paragraph","version":1,"children":[{"type":"text","text":"1","version":1}]}]}]}]}
]}}`

func TestIsLexical(t *testing.T) {
	assert.True(t, IsLexical("  "+sampleState))
	assert.False(t, IsLexical(`[{"id":"a"}]`))
	assert.False(t, IsLexical("plain"))
}

func TestDecodeBlocks(t *testing.T) {
	doc, err := DecodeBlocks(sampleState, block.NewSequence("l"))
	require.NoError(t, err)
	require.Len(t, doc, 5)

	assert.Equal(t, block.KindHeading1, doc[0].Kind)
	assert.Equal(t, block.Text{Text: "Title"}, doc[0].Content)

	assert.Equal(t, block.Text{Text: "Hello world"}, doc[1].Content)

	assert.Equal(t, block.List{Style: block.ListNumbered, Items: []string{"one", "two"}}, doc[2].Content)
	assert.Equal(t, block.KindDivider, doc[3].Kind)

	assert.Equal(t, block.Table{
		Headers: []string{"A", "B"},
		Rows:    [][]string{{"1", ""}},
	}, doc[4].Content)

	assert.Equal(t, []string{"l1", "l2", "l3", "l4", "l5"}, doc.IDs())
}

func TestDecodeBlocksInvalid(t *testing.T) {
	_, err := DecodeBlocks(`{"root":`, block.NewSequence("l"))
	assert.Error(t, err)
}

func TestDecodeBlocksImagesAndFallbacks(t *testing.T) {
	state := `{"root":{"type":"root","children":[
{"type":"image","src":"/uploads/a.png","altText":"A cat"},
{"type":"heading","tag":"h5","children":[{"type":"text","text":"Deep"}]},
{"type":"collapsible","children":[{"type":"paragraph","children":[{"type":"text","text":"inner"}]}]},
{"type":"youtube","videoID":"dQw4w9WgXcQ"},
{"type":"paragraph","children":[{"type":"text","text":"See "},{"type":"image","src":"/uploads/b.png","altText":"B"}]}
]}}`

	doc, err := DecodeBlocks(state, block.NewSequence("l"))
	require.NoError(t, err)
	require.Len(t, doc, 6)

	assert.Equal(t, block.Image{URL: "/uploads/a.png", Alt: "A cat"}, doc[0].Content)
	assert.Equal(t, block.KindHeading3, doc[1].Kind)
	assert.Equal(t, block.Text{Text: "inner"}, doc[2].Content)
	assert.Equal(t, block.KindVideo, doc[3].Kind)
	assert.Equal(t, block.Video{ID: "dQw4w9WgXcQ"}, doc[3].Content)
	assert.Equal(t, block.Text{Text: "See "}, doc[4].Content)
	assert.Equal(t, block.Image{URL: "/uploads/b.png", Alt: "B"}, doc[5].Content)
}

func TestDecodeBlocksKeepsUnmappedNodes(t *testing.T) {
	state := `{"root":{"type":"root","children":[
{"type":"image","altText":"diagram"},
{"type":"table","children":[]},
{"type":"poll","question":"Tea?","options":[]},
{"type":"list","listType":"bullet","children":[
  {"type":"listitem","children":[]},
  {"type":"listitem","children":[{"type":"text","text":"b"}]}]}
]}}`

	doc, err := DecodeBlocks(state, block.NewSequence("l"))
	require.NoError(t, err)
	require.Len(t, doc, 4)

	for i, want := range []string{
		`{"type":"image","altText":"diagram"}`,
		`{"type":"table","children":[]}`,
		`{"type":"poll","question":"Tea?","options":[]}`,
	} {
		assert.Equal(t, block.Kind(RawType), doc[i].Kind)
		raw, ok := doc[i].Content.(block.Raw)
		require.True(t, ok)
		assert.Equal(t, RawType, raw.Type)
		assert.JSONEq(t, want, string(raw.Payload))
	}

	assert.Equal(t, block.List{Style: block.ListBullet, Items: []string{"", "b"}}, doc[3].Content)
}
