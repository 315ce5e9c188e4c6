package seo

import (
	"encoding/json"
	"fmt"
)

const schemaContext = "https://schema.org"

type graph struct {
	Context string `json:"@context"`
	Graph   []any  `json:"@graph"`
}

type ldAnswer struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}

type ldQuestion struct {
	Type           string   `json:"@type"`
	Name           string   `json:"name"`
	AcceptedAnswer ldAnswer `json:"acceptedAnswer"`
}

type ldFAQPage struct {
	Type       string       `json:"@type"`
	MainEntity []ldQuestion `json:"mainEntity"`
}

type ldHowToStep struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Text     string `json:"text"`
}

type ldHowTo struct {
	Type string        `json:"@type"`
	Name string        `json:"name,omitempty"`
	Step []ldHowToStep `json:"step"`
}

type ldThing struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type ldRating struct {
	Type        string `json:"@type"`
	RatingValue int    `json:"ratingValue"`
	BestRating  int    `json:"bestRating"`
	WorstRating int    `json:"worstRating"`
}

type ldReview struct {
	Type         string   `json:"@type"`
	ItemReviewed ldThing  `json:"itemReviewed"`
	ReviewRating ldRating `json:"reviewRating"`
	Author       *ldThing `json:"author,omitempty"`
	ReviewBody   string   `json:"reviewBody,omitempty"`
}

type ldVideo struct {
	Type         string `json:"@type"`
	EmbedURL     string `json:"embedUrl"`
	ContentURL   string `json:"contentUrl"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// Bundle formats descriptors as one JSON-LD document with an @graph entry per
// descriptor, in the order given. Equal input always yields equal bytes.
func Bundle(descs []Descriptor) ([]byte, error) {
	g := graph{Context: schemaContext, Graph: make([]any, 0, len(descs))}
	for i, d := range descs {
		node, err := toLD(d)
		if err != nil {
			return nil, fmt.Errorf("descriptor %d (%s): %w", i, d.BlockID, err)
		}
		g.Graph = append(g.Graph, node)
	}
	return json.Marshal(g)
}

func toLD(d Descriptor) (any, error) {
	switch {
	case d.Type == TypeFAQ && d.FAQ != nil:
		page := ldFAQPage{Type: "FAQPage", MainEntity: make([]ldQuestion, 0, len(d.FAQ.Pairs))}
		for _, qa := range d.FAQ.Pairs {
			page.MainEntity = append(page.MainEntity, ldQuestion{
				Type:           "Question",
				Name:           qa.Question,
				AcceptedAnswer: ldAnswer{Type: "Answer", Text: qa.Answer},
			})
		}
		return page, nil

	case d.Type == TypeHowTo && d.HowTo != nil:
		h := ldHowTo{Type: "HowTo", Name: d.HowTo.Name, Step: make([]ldHowToStep, 0, len(d.HowTo.Steps))}
		for _, s := range d.HowTo.Steps {
			h.Step = append(h.Step, ldHowToStep{Type: "HowToStep", Position: s.Position, Name: s.Title, Text: s.Text})
		}
		return h, nil

	case d.Type == TypeReview && d.Review != nil:
		r := ldReview{
			Type:         "Review",
			ItemReviewed: ldThing{Type: "Thing", Name: d.Review.ItemName},
			ReviewRating: ldRating{Type: "Rating", RatingValue: d.Review.Rating, BestRating: 5, WorstRating: 1},
			ReviewBody:   d.Review.Text,
		}
		if d.Review.Author != "" {
			r.Author = &ldThing{Type: "Person", Name: d.Review.Author}
		}
		return r, nil

	case d.Type == TypeVideo && d.Video != nil:
		return ldVideo{
			Type:         "VideoObject",
			EmbedURL:     "https://www.youtube.com/embed/" + d.Video.ID,
			ContentURL:   "https://www.youtube.com/watch?v=" + d.Video.ID,
			ThumbnailURL: "https://i.ytimg.com/vi/" + d.Video.ID + "/hqdefault.jpg",
		}, nil
	}
	return nil, fmt.Errorf("descriptor type %q has no payload", d.Type)
}
