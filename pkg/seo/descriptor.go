// Package seo derives structured-data descriptors from block documents and
// formats them as a schema.org JSON-LD bundle.
package seo

import (
	"strings"

	"content-platform-be/pkg/block"
)

type Type string

const (
	TypeFAQ    Type = "faq"
	TypeHowTo  Type = "howto"
	TypeReview Type = "review"
	TypeVideo  Type = "video"
)

// Descriptor is one structured-data record derived from a block.
type Descriptor struct {
	Type    Type   `json:"type"`
	BlockID string `json:"block_id"`

	FAQ    *FAQ    `json:"faq,omitempty"`
	HowTo  *HowTo  `json:"howto,omitempty"`
	Review *Review `json:"review,omitempty"`
	Video  *Video  `json:"video,omitempty"`
}

type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type FAQ struct {
	Pairs []QA `json:"pairs"`
}

type HowToStep struct {
	Position int    `json:"position"`
	Title    string `json:"title"`
	Text     string `json:"text"`
}

type HowTo struct {
	Name  string      `json:"name"`
	Steps []HowToStep `json:"steps"`
}

type Review struct {
	ItemName string `json:"item_name"`
	Rating   int    `json:"rating"`
	Author   string `json:"author,omitempty"`
	Text     string `json:"text,omitempty"`
}

type Video struct {
	ID string `json:"id"`
}

// Derive returns one descriptor per qualifying top-level block, in block
// order. Nested step documents are not searched.
func Derive(doc block.Document) []Descriptor {
	d := &deriver{out: []Descriptor{}}
	block.WalkDocument(doc, d)
	return d.out
}

type deriver struct {
	out []Descriptor
}

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}

func (d *deriver) VisitFAQ(b block.Block, c block.FAQ) {
	var pairs []QA
	for _, item := range c.Items {
		if present(item.Question) && present(item.Answer) {
			pairs = append(pairs, QA{Question: item.Question, Answer: item.Answer})
		}
	}
	if len(pairs) == 0 {
		return
	}
	d.out = append(d.out, Descriptor{Type: TypeFAQ, BlockID: b.ID, FAQ: &FAQ{Pairs: pairs}})
}

// VisitHowTo keeps steps with both a title and a body. Rich steps use the
// text of their nested paragraphs. Positions number the kept steps from 1.
func (d *deriver) VisitHowTo(b block.Block, c block.HowTo) {
	var steps []HowToStep
	for _, s := range c.Steps {
		body := s.Body()
		if !present(s.Title) || !present(body) {
			continue
		}
		steps = append(steps, HowToStep{Position: len(steps) + 1, Title: s.Title, Text: body})
	}
	if len(steps) == 0 {
		return
	}
	d.out = append(d.out, Descriptor{Type: TypeHowTo, BlockID: b.ID, HowTo: &HowTo{Name: c.Name, Steps: steps}})
}

// Ratings outside the scale are skipped rather than clamped.
const (
	minRating = 1
	maxRating = 5
)

func (d *deriver) VisitReview(b block.Block, c block.Review) {
	if !present(c.ItemName) || c.Rating < minRating || c.Rating > maxRating {
		return
	}
	d.out = append(d.out, Descriptor{Type: TypeReview, BlockID: b.ID, Review: &Review{
		ItemName: c.ItemName,
		Rating:   c.Rating,
		Author:   c.Author,
		Text:     c.Text,
	}})
}

func (d *deriver) VisitVideo(b block.Block, c block.Video) {
	d.out = append(d.out, Descriptor{Type: TypeVideo, BlockID: b.ID, Video: &Video{ID: c.ID}})
}

func (d *deriver) VisitParagraph(block.Block, block.Text)    {}
func (d *deriver) VisitHeading(block.Block, int, block.Text) {}
func (d *deriver) VisitImage(block.Block, block.Image)       {}
func (d *deriver) VisitGallery(block.Block, block.Gallery)   {}
func (d *deriver) VisitQuote(block.Block, block.Quote)       {}
func (d *deriver) VisitCode(block.Block, block.Code)         {}
func (d *deriver) VisitList(block.Block, block.List)         {}
func (d *deriver) VisitCallout(block.Block, block.Callout)   {}
func (d *deriver) VisitDivider(block.Block)                  {}
func (d *deriver) VisitTable(block.Block, block.Table)       {}
func (d *deriver) VisitUnknown(block.Block)                  {}
