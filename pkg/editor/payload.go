package editor

import "content-platform-be/pkg/block"

// Table helpers resize headers and every row in the same call so a table
// stays rectangular in every state they produce.

func AddTableRow(t block.Table) block.Table {
	rows := copyRows(t.Rows)
	t.Rows = append(rows, make([]string, len(t.Headers)))
	return t
}

// RemoveTableRow drops row i. The last row is replaced by a row of empty
// cells instead, so a table never has zero rows.
func RemoveTableRow(t block.Table, i int) block.Table {
	if i < 0 || i >= len(t.Rows) {
		return t
	}
	if len(t.Rows) == 1 {
		t.Rows = [][]string{make([]string, len(t.Headers))}
		return t
	}
	rows := make([][]string, 0, len(t.Rows)-1)
	rows = append(rows, t.Rows[:i]...)
	t.Rows = append(rows, t.Rows[i+1:]...)
	return t
}

func AddTableColumn(t block.Table) block.Table {
	t.Headers = append(append([]string{}, t.Headers...), "")
	rows := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		rows[r] = append(append([]string{}, row...), "")
	}
	t.Rows = rows
	return t
}

// RemoveTableColumn drops column i from the headers and every row. The last
// remaining column cannot be removed.
func RemoveTableColumn(t block.Table, i int) block.Table {
	if len(t.Headers) <= 1 || i < 0 || i >= len(t.Headers) {
		return t
	}
	t.Headers = removeAt(t.Headers, i)
	rows := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		if i < len(row) {
			rows[r] = removeAt(row, i)
		} else {
			rows[r] = append([]string{}, row...)
		}
	}
	t.Rows = rows
	return t
}

func SetTableHeader(t block.Table, col int, value string) block.Table {
	if col < 0 || col >= len(t.Headers) {
		return t
	}
	t.Headers = append([]string{}, t.Headers...)
	t.Headers[col] = value
	return t
}

func SetTableCell(t block.Table, row, col int, value string) block.Table {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return t
	}
	rows := copyRows(t.Rows)
	rows[row] = append([]string{}, rows[row]...)
	rows[row][col] = value
	t.Rows = rows
	return t
}

func AddFAQItem(f block.FAQ) block.FAQ {
	f.Items = append(append([]block.FAQItem{}, f.Items...), block.FAQItem{})
	return f
}

// RemoveFAQItem drops pair i; the last pair is cleared instead.
func RemoveFAQItem(f block.FAQ, i int) block.FAQ {
	if i < 0 || i >= len(f.Items) {
		return f
	}
	if len(f.Items) == 1 {
		f.Items = []block.FAQItem{{}}
		return f
	}
	f.Items = removeAt(f.Items, i)
	return f
}

func SetFAQItem(f block.FAQ, i int, item block.FAQItem) block.FAQ {
	if i < 0 || i >= len(f.Items) {
		return f
	}
	f.Items = append([]block.FAQItem{}, f.Items...)
	f.Items[i] = item
	return f
}

func AddListItem(l block.List, text string) block.List {
	l.Items = append(append([]string{}, l.Items...), text)
	return l
}

// RemoveListItem drops item i; the last item is cleared instead.
func RemoveListItem(l block.List, i int) block.List {
	if i < 0 || i >= len(l.Items) {
		return l
	}
	if len(l.Items) == 1 {
		l.Items = []string{""}
		return l
	}
	l.Items = removeAt(l.Items, i)
	return l
}

func SetListItem(l block.List, i int, text string) block.List {
	if i < 0 || i >= len(l.Items) {
		return l
	}
	l.Items = append([]string{}, l.Items...)
	l.Items[i] = text
	return l
}

func AddGalleryItem(g block.Gallery, item block.GalleryItem) block.Gallery {
	g.Items = append(append([]block.GalleryItem{}, g.Items...), item)
	return g
}

func RemoveGalleryItem(g block.Gallery, i int) block.Gallery {
	if i < 0 || i >= len(g.Items) {
		return g
	}
	g.Items = removeAt(g.Items, i)
	return g
}

func SetGalleryCaption(g block.Gallery, i int, caption string) block.Gallery {
	if i < 0 || i >= len(g.Items) {
		return g
	}
	g.Items = append([]block.GalleryItem{}, g.Items...)
	g.Items[i].Caption = caption
	return g
}

func AddStep(h block.HowTo) block.HowTo {
	h.Steps = append(cloneSteps(h.Steps), block.Step{})
	return h
}

// RemoveStep drops step i; the last step is cleared instead.
func RemoveStep(h block.HowTo, i int) block.HowTo {
	if i < 0 || i >= len(h.Steps) {
		return h
	}
	if len(h.Steps) == 1 {
		h.Steps = []block.Step{{}}
		return h
	}
	h.Steps = removeAt(h.Steps, i)
	return h
}

func MoveStep(h block.HowTo, i int, dir Direction) block.HowTo {
	j := i - 1
	if dir == Down {
		j = i + 1
	}
	if i < 0 || i >= len(h.Steps) || j < 0 || j >= len(h.Steps) {
		return h
	}
	h.Steps = cloneSteps(h.Steps)
	h.Steps[i], h.Steps[j] = h.Steps[j], h.Steps[i]
	return h
}

// SetStepTitle changes the title of step i in either mode.
func SetStepTitle(h block.HowTo, i int, title string) block.HowTo {
	if i < 0 || i >= len(h.Steps) {
		return h
	}
	h.Steps = cloneSteps(h.Steps)
	h.Steps[i].Title = title
	return h
}

// SetStepText changes the body of a plain step; rich steps are unchanged.
func SetStepText(h block.HowTo, i int, text string) block.HowTo {
	if i < 0 || i >= len(h.Steps) || h.Steps[i].IsRich() {
		return h
	}
	h.Steps = cloneSteps(h.Steps)
	h.Steps[i].Text = text
	return h
}

// EnableRichStep wraps the text of step i into a single paragraph of a new
// nested document.
func EnableRichStep(h block.HowTo, i int, ids block.IDGenerator) block.HowTo {
	if i < 0 || i >= len(h.Steps) || h.Steps[i].IsRich() {
		return h
	}
	h.Steps = cloneSteps(h.Steps)
	h.Steps[i] = block.Step{
		Title:  h.Steps[i].Title,
		Blocks: block.Document{block.Paragraph(ids.NewID(), h.Steps[i].Text)},
	}
	return h
}

// DisableRichStep turns step i back into plain text by joining its nested
// paragraphs. Nested blocks of any other kind are dropped.
func DisableRichStep(h block.HowTo, i int) block.HowTo {
	if i < 0 || i >= len(h.Steps) || !h.Steps[i].IsRich() {
		return h
	}
	h.Steps = cloneSteps(h.Steps)
	h.Steps[i] = block.Step{Title: h.Steps[i].Title, Text: h.Steps[i].Blocks.PlainText()}
	return h
}

func copyRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	copy(out, rows)
	return out
}

func cloneSteps(steps []block.Step) []block.Step {
	return append([]block.Step{}, steps...)
}

func removeAt[T any](s []T, i int) []T {
	out := make([]T, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}
