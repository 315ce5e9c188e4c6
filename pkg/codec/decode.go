package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"content-platform-be/pkg/block"

	"go.uber.org/zap"
)

var errNotObject = errors.New("payload is not an object")

// decodeDocument reads a canonical array. Every element must be a JSON object;
// anything else means the input was not a block array at all.
func (c *Codec) decodeDocument(data []byte) (block.Document, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, fmt.Errorf("failed to parse block array: %w", err)
	}

	doc := make(block.Document, 0, len(elems))
	seen := make(map[string]bool, len(elems))
	for i, elem := range elems {
		var w wireBlock
		if err := json.Unmarshal(elem, &w); err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}

		b := c.decodeBlock(w)
		if b.ID != "" && seen[b.ID] {
			c.logger.Debug("duplicate block id replaced", zap.String("id", b.ID))
			b.ID = ""
		}
		seen[b.ID] = true
		doc = append(doc, b)
	}

	// Ids are filled only after every stored id is known, so a generated id
	// can never shadow one that appears later in the array.
	for i := range doc {
		if doc[i].ID == "" {
			doc[i].ID = block.FreshID(c.ids, doc)
		}
	}

	if len(doc) == 0 {
		return c.emptyDocument(), nil
	}
	return doc, nil
}

func (c *Codec) decodeBlock(w wireBlock) block.Block {
	kind, ok := block.ParseKind(w.Type)
	if !ok {
		return block.Block{ID: w.ID, Kind: kind, Content: block.Raw{Type: w.Type, Payload: copyRaw(w.Content)}}
	}

	content, err := c.decodeContent(kind, w.Content)
	if err != nil {
		c.logger.Warn("block payload kept raw",
			zap.String("id", w.ID), zap.String("type", w.Type), zap.Error(err))
		return block.Block{ID: w.ID, Kind: kind, Content: block.Raw{Type: w.Type, Payload: copyRaw(w.Content)}}
	}
	return block.Block{ID: w.ID, Kind: kind, Content: content}
}

func (c *Codec) decodeContent(kind block.Kind, raw json.RawMessage) (block.Content, error) {
	switch kind {
	case block.KindParagraph, block.KindHeading1, block.KindHeading2, block.KindHeading3:
		text, err := textOrField(raw, "text")
		return block.Text{Text: text}, err
	case block.KindImage:
		return decodeImage(raw)
	case block.KindGallery:
		return decodeGallery(raw)
	case block.KindQuote:
		return decodeQuote(raw)
	case block.KindCode:
		return decodeCode(raw)
	case block.KindList:
		return decodeList(raw)
	case block.KindCallout:
		return decodeCallout(raw)
	case block.KindDivider:
		return block.Divider{}, nil
	case block.KindFAQ:
		return decodeFAQ(raw)
	case block.KindHowTo:
		return c.decodeHowTo(raw)
	case block.KindTable:
		return decodeTable(raw)
	case block.KindVideo:
		id, err := textOrField(raw, "id", "videoId", "url")
		return block.Video{ID: id}, err
	case block.KindReview:
		return decodeReview(raw)
	}
	return nil, fmt.Errorf("unsupported kind %q", kind)
}

// fields gives lenient access to a JSON object's members.
type fields map[string]json.RawMessage

func objectOf(raw json.RawMessage) (fields, error) {
	if isNull(raw) {
		return fields{}, nil
	}
	var f fields
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, errNotObject
	}
	return f, nil
}

// str returns the first present key as a string. Numbers and booleans are
// accepted in their JSON spelling.
func (f fields) str(keys ...string) string {
	for _, k := range keys {
		v, ok := f[k]
		if !ok || isNull(v) {
			continue
		}
		if s, ok := asString(v); ok {
			return s
		}
	}
	return ""
}

func (f fields) has(key string) bool {
	v, ok := f[key]
	return ok && !isNull(v)
}

func asString(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] != '{' && trimmed[0] != '[' {
		return string(trimmed), true
	}
	return "", false
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, null)
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// textOrField accepts either a bare string or an object carrying one of keys.
func textOrField(raw json.RawMessage, keys ...string) (string, error) {
	if isNull(raw) {
		return "", nil
	}
	if s, ok := asString(raw); ok {
		return s, nil
	}
	f, err := objectOf(raw)
	if err != nil {
		return "", err
	}
	return f.str(keys...), nil
}

func decodeImage(raw json.RawMessage) (block.Content, error) {
	if s, ok := asString(raw); ok && !isNull(raw) {
		return block.Image{URL: s}, nil
	}
	f, err := objectOf(raw)
	if err != nil {
		return nil, err
	}
	return block.Image{URL: f.str("url", "src"), Alt: f.str("alt"), Caption: f.str("caption")}, nil
}

func decodeGallery(raw json.RawMessage) (block.Content, error) {
	items, err := itemsOf(raw, "items", "images")
	if err != nil {
		return nil, err
	}
	g := block.Gallery{Items: make([]block.GalleryItem, 0, len(items))}
	for _, item := range items {
		if s, ok := asString(item); ok {
			g.Items = append(g.Items, block.GalleryItem{URL: s})
			continue
		}
		f, err := objectOf(item)
		if err != nil {
			return nil, err
		}
		g.Items = append(g.Items, block.GalleryItem{URL: f.str("url", "src"), Caption: f.str("caption")})
	}
	return g, nil
}

func decodeQuote(raw json.RawMessage) (block.Content, error) {
	if s, ok := asString(raw); ok && !isNull(raw) {
		return block.Quote{Text: s}, nil
	}
	f, err := objectOf(raw)
	if err != nil {
		return nil, err
	}
	return block.Quote{Text: f.str("text"), Author: f.str("author", "cite")}, nil
}

func decodeCode(raw json.RawMessage) (block.Content, error) {
	if s, ok := asString(raw); ok && !isNull(raw) {
		return block.Code{Code: s}, nil
	}
	f, err := objectOf(raw)
	if err != nil {
		return nil, err
	}
	return block.Code{Language: f.str("language", "lang"), Code: f.str("code", "text")}, nil
}

var listStyles = map[string]block.ListStyle{
	"bullet":    block.ListBullet,
	"unordered": block.ListBullet,
	"numbered":  block.ListNumbered,
	"number":    block.ListNumbered,
	"ordered":   block.ListNumbered,
	"check":     block.ListCheck,
	"checklist": block.ListCheck,
}

func decodeList(raw json.RawMessage) (block.Content, error) {
	style := block.ListBullet
	if !isArray(raw) {
		f, err := objectOf(raw)
		if err != nil {
			return nil, err
		}
		if s, ok := listStyles[strings.ToLower(f.str("style", "listType"))]; ok {
			style = s
		}
	}

	items, err := itemsOf(raw, "items")
	if err != nil {
		return nil, err
	}
	list := block.List{Style: style, Items: make([]string, 0, len(items))}
	for _, item := range items {
		text, err := textOrField(item, "text")
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, text)
	}
	return list, nil
}

var severities = map[string]block.Severity{
	"info":    block.SeverityInfo,
	"note":    block.SeverityInfo,
	"warning": block.SeverityWarning,
	"warn":    block.SeverityWarning,
	"success": block.SeveritySuccess,
	"tip":     block.SeveritySuccess,
}

func decodeCallout(raw json.RawMessage) (block.Content, error) {
	if s, ok := asString(raw); ok && !isNull(raw) {
		return block.Callout{Severity: block.SeverityInfo, Text: s}, nil
	}
	f, err := objectOf(raw)
	if err != nil {
		return nil, err
	}
	sev, ok := severities[strings.ToLower(f.str("severity", "variant", "type"))]
	if !ok {
		sev = block.SeverityInfo
	}
	return block.Callout{Severity: sev, Text: f.str("text")}, nil
}

func decodeFAQ(raw json.RawMessage) (block.Content, error) {
	items, err := itemsOf(raw, "items")
	if err != nil {
		return nil, err
	}
	faq := block.FAQ{Items: make([]block.FAQItem, 0, len(items))}
	for _, item := range items {
		f, err := objectOf(item)
		if err != nil {
			return nil, err
		}
		faq.Items = append(faq.Items, block.FAQItem{
			Question: f.str("question", "q"),
			Answer:   f.str("answer", "a"),
		})
	}
	return faq, nil
}

func (c *Codec) decodeHowTo(raw json.RawMessage) (block.Content, error) {
	f, err := objectOf(raw)
	if err != nil {
		return nil, err
	}
	steps, err := itemsOf(raw, "steps")
	if err != nil {
		return nil, err
	}

	howTo := block.HowTo{Name: f.str("name", "title"), Steps: make([]block.Step, 0, len(steps))}
	for i, item := range steps {
		sf, err := objectOf(item)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		step := block.Step{Title: sf.str("title", "name")}
		if sf.has("blocks") && isArray(sf["blocks"]) {
			nested, err := c.decodeDocument(sf["blocks"])
			if err != nil {
				return nil, fmt.Errorf("step %d: %w", i+1, err)
			}
			step.Blocks = nested
		} else {
			step.Text = sf.str("text")
		}
		howTo.Steps = append(howTo.Steps, step)
	}
	return howTo, nil
}

// decodeTable pads headers and rows to one width so no stored cell is lost.
// Missing rows stay nil.
func decodeTable(raw json.RawMessage) (block.Content, error) {
	f, err := objectOf(raw)
	if err != nil {
		return nil, err
	}

	var headers []string
	if f.has("headers") {
		if err := json.Unmarshal(f["headers"], &headers); err != nil {
			return nil, fmt.Errorf("headers: %w", err)
		}
	}

	var rows [][]string
	if f.has("rows") {
		var rawRows []json.RawMessage
		if err := json.Unmarshal(f["rows"], &rawRows); err != nil {
			return nil, fmt.Errorf("rows: %w", err)
		}
		rows = make([][]string, 0, len(rawRows))
		for _, rr := range rawRows {
			var cells []json.RawMessage
			if err := json.Unmarshal(rr, &cells); err != nil {
				return nil, fmt.Errorf("rows: %w", err)
			}
			row := make([]string, 0, len(cells))
			for _, cell := range cells {
				s, _ := asString(cell)
				if isNull(cell) {
					s = ""
				}
				row = append(row, s)
			}
			rows = append(rows, row)
		}
	}

	width := len(headers)
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	if headers != nil || width > 0 {
		headers = padRow(headers, width)
	}
	for i := range rows {
		rows[i] = padRow(rows[i], width)
	}
	return block.Table{Headers: headers, Rows: rows}, nil
}

func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	out := make([]string, width)
	copy(out, row)
	return out
}

func decodeReview(raw json.RawMessage) (block.Content, error) {
	f, err := objectOf(raw)
	if err != nil {
		return nil, err
	}
	rating := 0
	if s := f.str("rating"); s != "" {
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			rating = int(n)
		}
	}
	return block.Review{
		ItemName: f.str("itemName", "item_name", "name"),
		Rating:   rating,
		Author:   f.str("author"),
		Text:     f.str("text", "body"),
	}, nil
}

// itemsOf returns the array stored either directly in raw or under one of keys.
func itemsOf(raw json.RawMessage, keys ...string) ([]json.RawMessage, error) {
	if isNull(raw) {
		return nil, nil
	}
	source := raw
	if !isArray(raw) {
		f, err := objectOf(raw)
		if err != nil {
			return nil, err
		}
		source = nil
		for _, k := range keys {
			if f.has(k) {
				source = f[k]
				break
			}
		}
		if source == nil {
			return nil, nil
		}
	}
	var items []json.RawMessage
	if err := json.Unmarshal(source, &items); err != nil {
		return nil, fmt.Errorf("%s: %w", strings.Join(keys, "/"), err)
	}
	return items, nil
}

func copyRaw(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}
	return append(json.RawMessage{}, raw...)
}
