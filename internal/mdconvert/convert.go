package mdconvert

import (
	"bytes"
	"errors"
	"strings"
	"time"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/rohmanhakim/jsxtree/internal/metadata"
	"github.com/rohmanhakim/jsxtree/pkg/failure"
	"golang.org/x/net/html"
)

/*
Conversion Rules
- Headings map directly (h1-h6 to # - ######)
- Code blocks preserved verbatim
- Tables converted structurally (GFM)
- Links and images preserved as written
- Document order preserved

Input is HTML produced by the renderer. Custom tags that reached the
output unrendered are treated as plain containers.
*/

type Converter interface {
	Convert(renderedHTML []byte) (ConversionResult, failure.ClassifiedError)
}

// Compile-time interface check
var _ Converter = (*MarkdownConverter)(nil)

type MarkdownConverter struct {
	metadataSink metadata.MetadataSink
}

func NewMarkdownConverter(metadataSink metadata.MetadataSink) *MarkdownConverter {
	return &MarkdownConverter{
		metadataSink: metadataSink,
	}
}

func (m *MarkdownConverter) Convert(
	renderedHTML []byte,
) (ConversionResult, failure.ClassifiedError) {
	result, err := convert(renderedHTML)
	if err != nil {
		var conversionError *ConversionError
		errors.As(err, &conversionError)

		m.metadataSink.RecordError(
			time.Now(),
			"mdconvert",
			"MarkdownConverter.Convert",
			mapConversionErrorToMetadataCause(*conversionError),
			err.Error(),
			[]metadata.Attribute{},
		)
		return ConversionResult{}, conversionError
	}
	return result, nil
}

// convert is a stateless pure function from rendered HTML to markdown.
func convert(renderedHTML []byte) (ConversionResult, *ConversionError) {
	doc, err := html.Parse(bytes.NewReader(renderedHTML))
	if err != nil {
		return ConversionResult{}, &ConversionError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseInvalidHTML,
		}
	}

	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)

	markdown, err := conv.ConvertNode(doc)
	if err != nil {
		return ConversionResult{}, &ConversionError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseConversionFailure,
		}
	}

	return NewConversionResult(markdown, extractLinkRefs(doc)), nil
}

// extractLinkRefs returns a[href] and img[src] references in document order.
func extractLinkRefs(doc *html.Node) []LinkRef {
	var linkRefs []LinkRef
	goquery.NewDocumentFromNode(doc).Find("a[href], img[src]").Each(func(i int, s *goquery.Selection) {
		switch goquery.NodeName(s) {
		case "a":
			if href, ok := s.Attr("href"); ok {
				linkRefs = append(linkRefs, toLinkRef("a", href))
			}
		case "img":
			if src, ok := s.Attr("src"); ok {
				linkRefs = append(linkRefs, toLinkRef("img", src))
			}
		}
	})
	return linkRefs
}

func toLinkRef(tagName, raw string) LinkRef {
	var kind LinkKind
	switch {
	case tagName == "img":
		kind = KindImage
	case strings.HasPrefix(raw, "#"):
		kind = KindAnchor
	case strings.HasPrefix(strings.ToLower(raw), "mailto:"):
		kind = KindMail
	default:
		kind = KindNavigation
	}
	return NewLinkRef(raw, kind)
}
