package markup

import (
	"errors"
	"io"
	"strings"

	"github.com/rohmanhakim/jsxtree/internal/tags"
	"golang.org/x/net/html"
)

// ParseHTML tokenizes text with the HTML5 tokenizer and nests the tokens as
// written. It never reports malformed markup: stray close tags are ignored
// and elements open at end of input are closed. Names come back lowercased.
//
// A void element closed by its own end tag keeps the content written between
// the two tags, which the tree builder then drops. A void element that is
// never closed is empty, as in HTML, and what follows it is its sibling.
//
// Text is re-escaped so that entity normalization downstream sees the same
// encoded form the JSX adapter produces. Attribute values are decoded.
func ParseHTML(text string) (*Node, error) {
	root := &Node{Kind: KindDocument}
	b := &htmlNester{open: []*Node{root}}
	z := html.NewTokenizer(strings.NewReader(text))

	offset := 0
	for {
		tt := z.Next()
		size := len(z.Raw())
		switch tt {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				b.closeFrom(1)
				return root, nil
			}
			line, column := position(text, offset)
			return nil, &ParseError{
				Message:   z.Err().Error(),
				Retryable: false,
				Cause:     ErrCauseUnexpectedChar,
				Offset:    offset,
				Line:      line,
				Column:    column,
			}
		case html.TextToken:
			tok := z.Token()
			b.top().appendChild(&Node{Kind: KindText, Data: html.EscapeString(tok.Data), Offset: offset})
		case html.StartTagToken:
			tok := z.Token()
			el := &Node{Kind: KindElement, Name: tok.Data, Attrs: convertHTMLAttrs(tok.Attr), Offset: offset}
			b.top().appendChild(el)
			b.open = append(b.open, el)
		case html.SelfClosingTagToken:
			tok := z.Token()
			b.top().appendChild(&Node{Kind: KindElement, Name: tok.Data, Attrs: convertHTMLAttrs(tok.Attr), Offset: offset})
		case html.EndTagToken:
			tok := z.Token()
			b.closeTag(tok.Data)
		case html.CommentToken:
			tok := z.Token()
			b.top().appendChild(&Node{Kind: KindComment, Data: tok.Data, Offset: offset})
		case html.DoctypeToken:
			tok := z.Token()
			b.top().appendChild(&Node{Kind: KindDoctype, Data: tok.Data, Offset: offset})
		}
		offset += size
	}
}

type htmlNester struct {
	// open[0] is the document root.
	open []*Node
}

func (b *htmlNester) top() *Node {
	return b.open[len(b.open)-1]
}

// closeTag closes the nearest open element named name and everything above
// it. A close tag with no open match is ignored.
func (b *htmlNester) closeTag(name string) {
	for i := len(b.open) - 1; i > 0; i-- {
		if b.open[i].Name == name {
			b.closeFrom(i + 1)
			b.open = b.open[:i]
			return
		}
	}
}

// closeFrom implicitly closes every open element at stack index >= from.
// Implicitly closed void elements hand what they captured to their parent.
func (b *htmlNester) closeFrom(from int) {
	for i := len(b.open) - 1; i >= from; i-- {
		n := b.open[i]
		if len(n.Children) > 0 && tags.IsVoid(n.Name) {
			parent := b.open[i-1]
			parent.Children = append(parent.Children, n.Children...)
			n.Children = nil
		}
	}
	b.open = b.open[:from]
}

// HTML cannot tell <input disabled> from <input disabled="">, so an empty
// value counts as absent.
func convertHTMLAttrs(attrs []html.Attribute) []Attribute {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]Attribute, 0, len(attrs))
	for _, a := range attrs {
		name := a.Key
		if a.Namespace != "" {
			name = a.Namespace + ":" + a.Key
		}
		if a.Val == "" {
			out = append(out, Attribute{Name: name, Kind: ValueAbsent})
			continue
		}
		out = append(out, Attribute{Name: name, Kind: ValueString, Value: a.Val})
	}
	return out
}
