package block

import "encoding/json"

// Kind identifies the payload shape of a block.
type Kind string

const (
	KindParagraph Kind = "paragraph"
	KindHeading1  Kind = "heading1"
	KindHeading2  Kind = "heading2"
	KindHeading3  Kind = "heading3"
	KindImage     Kind = "image"
	KindGallery   Kind = "gallery"
	KindQuote     Kind = "quote"
	KindCode      Kind = "code"
	KindList      Kind = "list"
	KindCallout   Kind = "callout"
	KindDivider   Kind = "divider"
	KindFAQ       Kind = "faq"
	KindHowTo     Kind = "howto"
	KindTable     Kind = "table"
	KindVideo     Kind = "video"
	KindReview    Kind = "review"
)

// DefaultKind is used for new empty documents and for submit-created blocks.
const DefaultKind = KindParagraph

var kinds = []Kind{
	KindParagraph,
	KindHeading1,
	KindHeading2,
	KindHeading3,
	KindImage,
	KindGallery,
	KindQuote,
	KindCode,
	KindList,
	KindCallout,
	KindDivider,
	KindFAQ,
	KindHowTo,
	KindTable,
	KindVideo,
	KindReview,
}

// Older editors stored a few kinds under different names.
var kindAliases = map[string]Kind{
	"h1":      KindHeading1,
	"h2":      KindHeading2,
	"h3":      KindHeading3,
	"heading": KindHeading2,
	"how-to":  KindHowTo,
	"how_to":  KindHowTo,
	"youtube": KindVideo,
	"hr":      KindDivider,
}

// Kinds returns the closed set of block kinds in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// Valid reports whether k belongs to the closed kind set.
func (k Kind) Valid() bool {
	for _, known := range kinds {
		if k == known {
			return true
		}
	}
	return false
}

// IsText reports whether the kind carries a plain Text payload.
func (k Kind) IsText() bool {
	switch k {
	case KindParagraph, KindHeading1, KindHeading2, KindHeading3:
		return true
	}
	return false
}

// HeadingLevel returns 1..3 for heading kinds and 0 otherwise.
func (k Kind) HeadingLevel() int {
	switch k {
	case KindHeading1:
		return 1
	case KindHeading2:
		return 2
	case KindHeading3:
		return 3
	}
	return 0
}

// ParseKind resolves a stored type name, including legacy aliases.
func ParseKind(s string) (Kind, bool) {
	if k := Kind(s); k.Valid() {
		return k, true
	}
	if k, ok := kindAliases[s]; ok {
		return k, true
	}
	return Kind(s), false
}

// Content is the payload of a block. The set of implementations is closed.
type Content interface {
	isContent()
	clone() Content
}

// Text is the payload of paragraphs and headings.
type Text struct {
	Text string `json:"text"`
}

type Image struct {
	URL     string `json:"url"`
	Alt     string `json:"alt"`
	Caption string `json:"caption"`
}

type GalleryItem struct {
	URL     string `json:"url"`
	Caption string `json:"caption"`
}

type Gallery struct {
	Items []GalleryItem `json:"items"`
}

type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

type Code struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

type ListStyle string

const (
	ListBullet   ListStyle = "bullet"
	ListNumbered ListStyle = "numbered"
	ListCheck    ListStyle = "check"
)

type List struct {
	Style ListStyle `json:"style" validate:"oneof=bullet numbered check"`
	Items []string  `json:"items"`
}

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeveritySuccess Severity = "success"
)

type Callout struct {
	Severity Severity `json:"severity" validate:"oneof=info warning success"`
	Text     string   `json:"text"`
}

// Divider has no payload.
type Divider struct{}

type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type FAQ struct {
	Items []FAQItem `json:"items"`
}

type HowTo struct {
	Name  string `json:"name"`
	Steps []Step `json:"steps"`
}

// Table keeps len(row) == len(Headers) for every row.
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Video holds an external video identifier.
type Video struct {
	ID string `json:"id"`
}

type Review struct {
	ItemName string `json:"itemName"`
	Rating   int    `json:"rating" validate:"gte=1,lte=5"`
	Author   string `json:"author"`
	Text     string `json:"text"`
}

// Raw preserves a stored block whose type or payload could not be understood.
type Raw struct {
	Type    string
	Payload json.RawMessage
}

func (Text) isContent()    {}
func (Image) isContent()   {}
func (Gallery) isContent() {}
func (Quote) isContent()   {}
func (Code) isContent()    {}
func (List) isContent()    {}
func (Callout) isContent() {}
func (Divider) isContent() {}
func (FAQ) isContent()     {}
func (HowTo) isContent()   {}
func (Table) isContent()   {}
func (Video) isContent()   {}
func (Review) isContent()  {}
func (Raw) isContent()     {}

func (c Text) clone() Content    { return c }
func (c Image) clone() Content   { return c }
func (c Quote) clone() Content   { return c }
func (c Code) clone() Content    { return c }
func (c Callout) clone() Content { return c }
func (c Divider) clone() Content { return c }
func (c Video) clone() Content   { return c }
func (c Review) clone() Content  { return c }

func (c Gallery) clone() Content {
	if c.Items != nil {
		c.Items = append([]GalleryItem{}, c.Items...)
	}
	return c
}

func (c List) clone() Content {
	c.Items = cloneStrings(c.Items)
	return c
}

func (c FAQ) clone() Content {
	if c.Items != nil {
		c.Items = append([]FAQItem{}, c.Items...)
	}
	return c
}

func (c HowTo) clone() Content {
	if c.Steps != nil {
		steps := make([]Step, len(c.Steps))
		for i, s := range c.Steps {
			steps[i] = s.Clone()
		}
		c.Steps = steps
	}
	return c
}

func (c Table) clone() Content {
	c.Headers = cloneStrings(c.Headers)
	if c.Rows != nil {
		rows := make([][]string, len(c.Rows))
		for i, r := range c.Rows {
			rows[i] = cloneStrings(r)
		}
		c.Rows = rows
	}
	return c
}

func (c Raw) clone() Content {
	if c.Payload != nil {
		c.Payload = append(json.RawMessage{}, c.Payload...)
	}
	return c
}

// Clone returns a deep copy of c.
func Clone(c Content) Content {
	if c == nil {
		return nil
	}
	return c.clone()
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string{}, in...)
}

// Accepts reports whether content is the payload type for kind.
func Accepts(kind Kind, content Content) bool {
	switch content.(type) {
	case Text:
		return kind.IsText()
	case Image:
		return kind == KindImage
	case Gallery:
		return kind == KindGallery
	case Quote:
		return kind == KindQuote
	case Code:
		return kind == KindCode
	case List:
		return kind == KindList
	case Callout:
		return kind == KindCallout
	case Divider:
		return kind == KindDivider
	case FAQ:
		return kind == KindFAQ
	case HowTo:
		return kind == KindHowTo
	case Table:
		return kind == KindTable
	case Video:
		return kind == KindVideo
	case Review:
		return kind == KindReview
	case Raw:
		return !kind.Valid()
	}
	return false
}

// Default returns the payload a freshly inserted block of kind starts with.
func Default(kind Kind) Content {
	switch kind {
	case KindParagraph, KindHeading1, KindHeading2, KindHeading3:
		return Text{}
	case KindImage:
		return Image{}
	case KindGallery:
		return Gallery{Items: []GalleryItem{}}
	case KindQuote:
		return Quote{}
	case KindCode:
		return Code{}
	case KindList:
		return List{Style: ListBullet, Items: []string{""}}
	case KindCallout:
		return Callout{Severity: SeverityInfo}
	case KindDivider:
		return Divider{}
	case KindFAQ:
		return FAQ{Items: []FAQItem{{}}}
	case KindHowTo:
		return HowTo{Steps: []Step{{}}}
	case KindTable:
		return Table{Headers: []string{"", ""}, Rows: [][]string{{"", ""}}}
	case KindVideo:
		return Video{}
	case KindReview:
		return Review{Rating: 5}
	}
	return Raw{Type: string(kind)}
}
