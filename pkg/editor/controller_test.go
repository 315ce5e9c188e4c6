package editor

import (
	"math/rand"
	"testing"

	"content-platform-be/pkg/block"
	"content-platform-be/pkg/codec"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController() *Controller {
	return NewController(block.NewSequence("b"))
}

func kindsOf(doc block.Document) []block.Kind {
	out := make([]block.Kind, len(doc))
	for i, b := range doc {
		out[i] = b.Kind
	}
	return out
}

func idOfKind(doc block.Document, kind block.Kind) string {
	for _, b := range doc {
		if b.Kind == kind {
			return b.ID
		}
	}
	return ""
}

func TestInsertAfter(t *testing.T) {
	c := newTestController()
	doc := c.NewDocument()
	require.Equal(t, []string{"b1"}, doc.IDs())

	withTable, focus := c.InsertAfter(doc, "b1", block.KindTable)
	assert.Equal(t, "b2", focus)
	assert.Equal(t, []string{"b1", "b2"}, withTable.IDs())
	assert.Equal(t, block.Table{Headers: []string{"", ""}, Rows: [][]string{{"", ""}}}, withTable[1].Content)
	assert.Len(t, doc, 1, "input must not change")

	front, _ := c.InsertAfter(withTable, "b1", block.KindFAQ)
	assert.Equal(t, []block.Kind{block.KindParagraph, block.KindFAQ, block.KindTable}, kindsOf(front))
	assert.Equal(t, block.FAQ{Items: []block.FAQItem{{}}}, front[1].Content)

	appended, _ := c.InsertAfter(front, "missing", block.KindDivider)
	assert.Equal(t, block.KindDivider, appended[len(appended)-1].Kind)

	same, focus := c.InsertAfter(front, "b1", block.Kind("embed"))
	assert.Equal(t, front, same)
	assert.Empty(t, focus)
}

func TestUpdatePayload(t *testing.T) {
	c := newTestController()
	doc, id := c.InsertAfter(c.NewDocument(), "", block.KindReview)

	assert.Equal(t, doc, c.UpdatePayload(doc, "missing", block.Review{ItemName: "x", Rating: 3}))
	assert.Equal(t, doc, c.UpdatePayload(doc, id, block.Text{Text: "wrong kind"}))
	assert.Equal(t, doc, c.UpdatePayload(doc, id, block.Review{ItemName: "x", Rating: 0}))
	assert.Equal(t, doc, c.UpdatePayload(doc, id, block.Review{ItemName: "x", Rating: 6}))

	out := c.UpdatePayload(doc, id, block.Review{ItemName: "Kettle", Rating: 4})
	assert.Equal(t, id, out[1].ID)
	assert.Equal(t, block.KindReview, out[1].Kind)
	assert.Equal(t, block.Review{ItemName: "Kettle", Rating: 4}, out[1].Content)
	assert.Equal(t, block.Review{Rating: 5}, doc[1].Content)
}

func TestUpdatePayloadRejectsInvalid(t *testing.T) {
	c := newTestController()
	doc := c.NewDocument()
	doc, tbl := c.InsertAfter(doc, "", block.KindTable)
	doc, list := c.InsertAfter(doc, "", block.KindList)
	doc, call := c.InsertAfter(doc, "", block.KindCallout)

	tests := []struct {
		name    string
		id      string
		content block.Content
	}{
		{"ragged table", tbl, block.Table{Headers: []string{"a", "b"}, Rows: [][]string{{"1"}}}},
		{"table without rows", tbl, block.Table{Headers: []string{"a"}}},
		{"table without columns", tbl, block.Table{Rows: [][]string{{}}}},
		{"list style", list, block.List{Style: "roman", Items: []string{"x"}}},
		{"callout severity", call, block.Callout{Severity: "danger"}},
		{"raw payload", list, block.Raw{Type: "list"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, doc, c.UpdatePayload(doc, tt.id, tt.content))
		})
	}
}

func TestMove(t *testing.T) {
	c := newTestController()
	doc := c.NewDocument()
	doc, _ = c.InsertAfter(doc, "", block.KindImage)
	doc, _ = c.InsertAfter(doc, "", block.KindQuote)
	original := doc.IDs()

	assert.Equal(t, doc, c.Move(doc, "b1", Up))
	assert.Equal(t, doc, c.Move(doc, "b3", Down))
	assert.Equal(t, doc, c.Move(doc, "missing", Up))

	down := c.Move(doc, "b2", Down)
	assert.Equal(t, []string{"b1", "b3", "b2"}, down.IDs())
	assert.Equal(t, original, c.Move(down, "b2", Up).IDs())

	up := c.Move(doc, "b2", Up)
	assert.Equal(t, []string{"b2", "b1", "b3"}, up.IDs())
	assert.Equal(t, original, c.Move(up, "b2", Down).IDs())
	assert.Equal(t, original, doc.IDs())
}

func TestDeleteNeverEmpty(t *testing.T) {
	c := newTestController()
	rng := rand.New(rand.NewSource(7))
	kinds := block.Kinds()

	doc := c.NewDocument()
	for i := 0; i < 500; i++ {
		if rng.Intn(3) == 0 {
			doc, _ = c.InsertAfter(doc, doc[rng.Intn(len(doc))].ID, kinds[rng.Intn(len(kinds))])
			continue
		}
		doc = c.Delete(doc, doc[rng.Intn(len(doc))].ID)
		require.NotEmpty(t, doc)
	}
}

func TestDeleteLastBlock(t *testing.T) {
	c := newTestController()
	doc, id := c.InsertAfter(block.Document{}, "", block.KindTable)
	require.Len(t, doc, 1)

	out := c.Delete(doc, id)
	require.Len(t, out, 1)
	assert.NotEqual(t, id, out[0].ID)
	assert.Equal(t, block.KindParagraph, out[0].Kind)
	assert.Equal(t, block.Text{}, out[0].Content)

	assert.Equal(t, out, c.Delete(out, "missing"))
}

func TestSubmitAndClearText(t *testing.T) {
	c := newTestController()
	doc := c.NewDocument()
	doc = c.UpdatePayload(doc, "b1", block.Text{Text: "first"})

	doc, focus := c.Submit(doc, "b1")
	assert.Equal(t, "b2", focus)
	assert.Equal(t, []block.Kind{block.KindParagraph, block.KindParagraph}, kindsOf(doc))

	doc, divider := c.InsertAfter(doc, "", block.KindDivider)
	same, focus := c.Submit(doc, divider)
	assert.Equal(t, doc, same)
	assert.Equal(t, divider, focus)

	doc, focus = c.ClearText(doc, "b2")
	assert.Equal(t, "b1", focus)
	assert.Equal(t, []string{"b1", divider}, doc.IDs())

	kept, focus := c.ClearText(doc, "b1")
	assert.Equal(t, doc, kept, "non-empty text is not removed")
	assert.Equal(t, "b1", focus)
}

func TestTableStaysRectangular(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tbl := block.Default(block.KindTable).(block.Table)

	for i := 0; i < 1000; i++ {
		switch rng.Intn(6) {
		case 0:
			tbl = AddTableRow(tbl)
		case 1:
			tbl = RemoveTableRow(tbl, rng.Intn(len(tbl.Rows)+1))
		case 2:
			tbl = AddTableColumn(tbl)
		case 3:
			tbl = RemoveTableColumn(tbl, rng.Intn(len(tbl.Headers)+1))
		case 4:
			tbl = SetTableCell(tbl, rng.Intn(len(tbl.Rows)), rng.Intn(len(tbl.Headers)), "x")
		case 5:
			tbl = SetTableHeader(tbl, rng.Intn(len(tbl.Headers)), "h")
		}

		require.NotEmpty(t, tbl.Headers)
		require.NotEmpty(t, tbl.Rows)
		for _, row := range tbl.Rows {
			require.Len(t, row, len(tbl.Headers))
		}
	}
}

func TestTableHelpersCopyOnWrite(t *testing.T) {
	tbl := block.Table{Headers: []string{"a", "b"}, Rows: [][]string{{"1", "2"}, {"3", "4"}}}

	edited := SetTableCell(tbl, 0, 1, "x")
	assert.Equal(t, "2", tbl.Rows[0][1])
	assert.Equal(t, "x", edited.Rows[0][1])

	assert.Equal(t, block.Table{Headers: []string{"b"}, Rows: [][]string{{"2"}, {"4"}}}, RemoveTableColumn(tbl, 0))
	assert.Equal(t, [][]string{{"3", "4"}}, RemoveTableRow(tbl, 0).Rows)

	single := block.Table{Headers: []string{"a"}, Rows: [][]string{{"1"}}}
	assert.Equal(t, single, RemoveTableColumn(single, 0))
	assert.Equal(t, [][]string{{""}}, RemoveTableRow(single, 0).Rows)
}

func TestCollectionHelpers(t *testing.T) {
	faq := AddFAQItem(block.FAQ{Items: []block.FAQItem{{Question: "A?", Answer: "B"}}})
	require.Len(t, faq.Items, 2)
	faq = SetFAQItem(faq, 1, block.FAQItem{Question: "C?"})
	assert.Equal(t, "C?", faq.Items[1].Question)
	assert.Equal(t, []block.FAQItem{{}}, RemoveFAQItem(block.FAQ{Items: []block.FAQItem{{Question: "x"}}}, 0).Items)

	list := AddListItem(block.List{Style: block.ListBullet, Items: []string{"a"}}, "b")
	assert.Equal(t, []string{"a", "b"}, list.Items)
	assert.Equal(t, []string{"b"}, RemoveListItem(list, 0).Items)
	assert.Equal(t, []string{""}, RemoveListItem(block.List{Items: []string{"a"}}, 0).Items)
	assert.Equal(t, []string{"a", "z"}, SetListItem(list, 1, "z").Items)

	gallery := AddGalleryItem(block.Gallery{Items: []block.GalleryItem{}}, block.GalleryItem{URL: "/a.png"})
	require.Len(t, gallery.Items, 1)
	assert.Equal(t, "cap", SetGalleryCaption(gallery, 0, "cap").Items[0].Caption)
	emptied := RemoveGalleryItem(gallery, 0)
	assert.NotNil(t, emptied.Items)
	assert.Empty(t, emptied.Items)
}

func TestStepHelpers(t *testing.T) {
	h := block.HowTo{Steps: []block.Step{{Title: "one"}}}
	h = AddStep(h)
	h = SetStepTitle(h, 1, "two")
	h = SetStepText(h, 1, "second")
	require.Len(t, h.Steps, 2)

	moved := MoveStep(h, 0, Down)
	assert.Equal(t, "two", moved.Steps[0].Title)
	assert.Equal(t, "one", h.Steps[0].Title)
	assert.Equal(t, h, MoveStep(moved, 1, Up))
	assert.Equal(t, h, MoveStep(h, 0, Up))

	assert.Equal(t, []block.Step{{Title: "two", Text: "second"}}, RemoveStep(h, 0).Steps)
	assert.Equal(t, []block.Step{{}}, RemoveStep(block.HowTo{Steps: []block.Step{{Title: "x"}}}, 0).Steps)
}

func TestRichStepSwitch(t *testing.T) {
	c := newTestController()
	doc, id := c.InsertAfter(c.NewDocument(), "", block.KindHowTo)

	doc = Update(c, doc, id, func(h block.HowTo) block.HowTo {
		return EnableRichStep(h, 0, block.NewSequence("n"))
	})
	step := doc[1].Content.(block.HowTo).Steps[0]
	require.True(t, step.IsRich())
	require.Len(t, step.Blocks, 1)

	doc = c.SetStepBlocks(doc, id, 0, block.Document{block.Paragraph("n1", "X")})
	doc = Update(c, doc, id, func(h block.HowTo) block.HowTo {
		return DisableRichStep(h, 0)
	})

	step = doc[1].Content.(block.HowTo).Steps[0]
	assert.False(t, step.IsRich())
	assert.Equal(t, "X", step.Text)
}

func TestRoundTripAfterEdits(t *testing.T) {
	ids := block.NewSequence("r")
	c := NewController(ids)
	cd := codec.New(codec.WithIDGenerator(ids))

	doc := c.NewDocument()
	for _, k := range block.Kinds() {
		doc, _ = c.InsertAfter(doc, "", k)
	}
	doc = Update(c, doc, doc[len(doc)-1].ID, func(r block.Review) block.Review {
		r.ItemName = "Kettle"
		return r
	})
	tbl := idOfKind(doc, block.KindTable)
	doc = Update(c, doc, tbl, AddTableColumn)
	doc = Update(c, doc, tbl, func(t block.Table) block.Table { return SetTableCell(t, 0, 2, "c") })
	doc = Update(c, doc, idOfKind(doc, block.KindHowTo), func(h block.HowTo) block.HowTo {
		return EnableRichStep(AddStep(h), 1, ids)
	})
	doc = c.Move(doc, doc[3].ID, Up)
	doc = c.Delete(doc, doc[5].ID)

	back := cd.Parse(cd.Serialize(doc))
	assert.Equal(t, doc, back)
}
