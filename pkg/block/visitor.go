package block

// Visitor receives one call per block from Walk. Every kind has a method, so
// adding a kind breaks each implementation until it handles the new case.
type Visitor interface {
	VisitParagraph(b Block, c Text)
	VisitHeading(b Block, level int, c Text)
	VisitImage(b Block, c Image)
	VisitGallery(b Block, c Gallery)
	VisitQuote(b Block, c Quote)
	VisitCode(b Block, c Code)
	VisitList(b Block, c List)
	VisitCallout(b Block, c Callout)
	VisitDivider(b Block)
	VisitFAQ(b Block, c FAQ)
	VisitHowTo(b Block, c HowTo)
	VisitTable(b Block, c Table)
	VisitVideo(b Block, c Video)
	VisitReview(b Block, c Review)
	// VisitUnknown is called for unrecognized kinds and for blocks whose
	// payload does not match their kind.
	VisitUnknown(b Block)
}

// Walk dispatches b to the matching Visitor method.
func Walk(b Block, v Visitor) {
	switch b.Kind {
	case KindParagraph:
		if c, ok := b.Content.(Text); ok {
			v.VisitParagraph(b, c)
			return
		}
	case KindHeading1, KindHeading2, KindHeading3:
		if c, ok := b.Content.(Text); ok {
			v.VisitHeading(b, b.Kind.HeadingLevel(), c)
			return
		}
	case KindImage:
		if c, ok := b.Content.(Image); ok {
			v.VisitImage(b, c)
			return
		}
	case KindGallery:
		if c, ok := b.Content.(Gallery); ok {
			v.VisitGallery(b, c)
			return
		}
	case KindQuote:
		if c, ok := b.Content.(Quote); ok {
			v.VisitQuote(b, c)
			return
		}
	case KindCode:
		if c, ok := b.Content.(Code); ok {
			v.VisitCode(b, c)
			return
		}
	case KindList:
		if c, ok := b.Content.(List); ok {
			v.VisitList(b, c)
			return
		}
	case KindCallout:
		if c, ok := b.Content.(Callout); ok {
			v.VisitCallout(b, c)
			return
		}
	case KindDivider:
		v.VisitDivider(b)
		return
	case KindFAQ:
		if c, ok := b.Content.(FAQ); ok {
			v.VisitFAQ(b, c)
			return
		}
	case KindHowTo:
		if c, ok := b.Content.(HowTo); ok {
			v.VisitHowTo(b, c)
			return
		}
	case KindTable:
		if c, ok := b.Content.(Table); ok {
			v.VisitTable(b, c)
			return
		}
	case KindVideo:
		if c, ok := b.Content.(Video); ok {
			v.VisitVideo(b, c)
			return
		}
	case KindReview:
		if c, ok := b.Content.(Review); ok {
			v.VisitReview(b, c)
			return
		}
	}
	v.VisitUnknown(b)
}

// WalkDocument calls Walk for every block of d in order.
func WalkDocument(d Document, v Visitor) {
	for _, b := range d {
		Walk(b, v)
	}
}
