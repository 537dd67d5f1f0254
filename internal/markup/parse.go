/*
Responsibilities
- Turn JSX-flavoured markup text into a raw syntax tree
- Preserve the case of tag and attribute names
- Keep `{...}` sources unevaluated for the expression evaluator

Accepted grammar
- Elements with quoted, unquoted, bracketed or absent attribute values
- Self-closing tags (<Foo />)
- Bracketed child expressions ({1 + 2}); a bracketed block comment is a comment
- HTML comments and <!DOCTYPE ...> declarations
- Raw text content for script and style

Recovery
  - A close tag matching an open ancestor closes the elements in between
  - Elements still open at end of input are closed
  - A void element that is never closed keeps what it captured; the tree
    builder drops it together with any other void content
  - Outer ASCII whitespace of the input is trimmed

Everything else that cannot be tokenized is a ParseError. No partial tree
is returned.
*/
package markup

import (
	"strings"
)

const asciiWhitespace = " \t\n\r\f"

type parser struct {
	src  string
	base int
	pos  int
	root *Node
	// open is the stack of open elements; open[0] is the root.
	open []*Node
}

// Parse parses JSX-flavoured markup. The returned root has KindDocument.
func Parse(text string) (*Node, error) {
	lead := len(text) - len(strings.TrimLeft(text, asciiWhitespace))
	src := strings.TrimRight(text[lead:], asciiWhitespace)

	root := &Node{Kind: KindDocument}
	p := &parser{
		src:  src,
		base: lead,
		root: root,
		open: []*Node{root},
	}
	if err := p.run(text); err != nil {
		return nil, err
	}
	return root, nil
}

func (p *parser) run(original string) error {
	for p.pos < len(p.src) {
		var err error
		switch p.src[p.pos] {
		case '<':
			err = p.parseMarkup()
		case '{':
			err = p.parseChildExpression()
		default:
			p.parseText()
		}
		if err != nil {
			if pe, ok := err.(*ParseError); ok {
				pe.Line, pe.Column = position(original, pe.Offset)
			}
			return err
		}
	}
	p.closeOpenElements(1)
	return nil
}

func (p *parser) top() *Node {
	return p.open[len(p.open)-1]
}

func (p *parser) fail(cause ParseErrorCause, at int, message string) *ParseError {
	return &ParseError{
		Message:   message,
		Retryable: false,
		Cause:     cause,
		Offset:    p.base + at,
	}
}

func (p *parser) parseText() {
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] != '<' && p.src[p.pos] != '{' {
		p.pos++
	}
	p.top().appendChild(&Node{
		Kind:   KindText,
		Data:   p.src[start:p.pos],
		Offset: p.base + start,
	})
}

func (p *parser) parseChildExpression() error {
	start := p.pos
	source, err := p.scanBraced()
	if err != nil {
		return err
	}
	trimmed := strings.TrimSpace(source)
	switch {
	case trimmed == "":
		// {} and { } are empty expressions and produce nothing
	case strings.HasPrefix(trimmed, "/*") && strings.HasSuffix(trimmed, "*/") && len(trimmed) >= 4:
		p.top().appendChild(&Node{
			Kind:   KindComment,
			Data:   trimmed[2 : len(trimmed)-2],
			Offset: p.base + start,
		})
	default:
		p.top().appendChild(&Node{
			Kind:   KindExpression,
			Data:   source,
			Offset: p.base + start,
		})
	}
	return nil
}

// scanBraced consumes a balanced {...} starting at p.pos and returns the
// text between the outer braces. String literals and comments inside the
// expression may contain braces.
func (p *parser) scanBraced() (string, error) {
	start := p.pos
	depth := 0
	i := p.pos
	for i < len(p.src) {
		c := p.src[i]
		switch {
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				p.pos = i + 1
				return p.src[start+1 : i], nil
			}
		case c == '"' || c == '\'' || c == '`':
			end := skipQuoted(p.src, i)
			if end < 0 {
				return "", p.fail(ErrCauseUnterminated, i, "unterminated string literal in expression")
			}
			i = end
			continue
		case c == '/' && i+1 < len(p.src) && p.src[i+1] == '*':
			end := strings.Index(p.src[i+2:], "*/")
			if end < 0 {
				return "", p.fail(ErrCauseUnterminated, i, "unterminated comment in expression")
			}
			i += end + 4
			continue
		}
		i++
	}
	return "", p.fail(ErrCauseUnterminated, start, "unterminated expression")
}

// skipQuoted returns the index just past the string literal opening at i,
// or -1 when it is not closed.
func skipQuoted(src string, i int) int {
	quote := src[i]
	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case quote:
			return j + 1
		}
	}
	return -1
}

func (p *parser) parseMarkup() error {
	rest := p.src[p.pos:]
	switch {
	case strings.HasPrefix(rest, "<!--"):
		return p.parseComment()
	case strings.HasPrefix(rest, "<!"):
		return p.parseDeclaration()
	case strings.HasPrefix(rest, "</"):
		return p.parseCloseTag()
	default:
		return p.parseOpenTag()
	}
}

func (p *parser) parseComment() error {
	start := p.pos
	end := strings.Index(p.src[p.pos+4:], "-->")
	if end < 0 {
		return p.fail(ErrCauseUnterminated, start, "unterminated comment")
	}
	p.top().appendChild(&Node{
		Kind:   KindComment,
		Data:   p.src[start+4 : start+4+end],
		Offset: p.base + start,
	})
	p.pos = start + 4 + end + 3
	return nil
}

func (p *parser) parseDeclaration() error {
	start := p.pos
	end := strings.IndexByte(p.src[start:], '>')
	if end < 0 {
		return p.fail(ErrCauseUnterminated, start, "unterminated declaration")
	}
	body := p.src[start+2 : start+end]
	kind := KindComment
	if len(body) >= 7 && strings.EqualFold(body[:7], "doctype") {
		kind = KindDoctype
		body = strings.TrimSpace(body[7:])
	}
	p.top().appendChild(&Node{
		Kind:   kind,
		Data:   body,
		Offset: p.base + start,
	})
	p.pos = start + end + 1
	return nil
}

func isNameStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' || c == '$'
}

func isNameChar(c byte) bool {
	return isNameStart(c) || c >= '0' && c <= '9' || c == '-' || c == '.' || c == ':'
}

func isSpace(c byte) bool {
	return strings.IndexByte(asciiWhitespace, c) >= 0
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && isSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *parser) scanName() string {
	start := p.pos
	if p.pos >= len(p.src) || !isNameStart(p.src[p.pos]) {
		return ""
	}
	for p.pos < len(p.src) && isNameChar(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) parseCloseTag() error {
	start := p.pos
	p.pos += 2
	name := p.scanName()
	if name == "" {
		return p.fail(ErrCauseInvalidName, p.pos, "close tag without a valid name")
	}
	p.skipSpace()
	if p.pos >= len(p.src) {
		return p.fail(ErrCauseUnterminated, start, "unterminated close tag </"+name)
	}
	if p.src[p.pos] != '>' {
		return p.fail(ErrCauseUnexpectedChar, p.pos, "expected '>' to end close tag </"+name)
	}
	p.pos++

	idx := p.findOpen(name)
	if idx < 0 {
		return p.fail(ErrCauseUnexpectedCloseTag, start, "close tag </"+name+"> has no matching open element")
	}
	// the matched element is closed explicitly, anything above it implicitly
	p.closeOpenElements(idx + 1)
	p.open = p.open[:idx]
	return nil
}

// findOpen returns the stack index of the nearest open element named name.
// An exact match wins; otherwise names compare case-insensitively.
func (p *parser) findOpen(name string) int {
	for i := len(p.open) - 1; i > 0; i-- {
		if p.open[i].Name == name {
			return i
		}
	}
	for i := len(p.open) - 1; i > 0; i-- {
		if strings.EqualFold(p.open[i].Name, name) {
			return i
		}
	}
	return -1
}

// closeOpenElements implicitly closes every open element at stack index >= from.
func (p *parser) closeOpenElements(from int) {
	p.open = p.open[:from]
}

func (p *parser) parseOpenTag() error {
	start := p.pos
	p.pos++
	name := p.scanName()
	if name == "" {
		return p.fail(ErrCauseInvalidName, p.pos, "'<' must be followed by a tag name")
	}

	el := &Node{
		Kind:   KindElement,
		Name:   name,
		Offset: p.base + start,
	}

	selfClosing := false
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return p.fail(ErrCauseUnterminated, start, "unterminated tag <"+name)
		}
		c := p.src[p.pos]
		if c == '>' {
			p.pos++
			break
		}
		if c == '/' {
			if p.pos+1 < len(p.src) && p.src[p.pos+1] == '>' {
				p.pos += 2
				selfClosing = true
				break
			}
			return p.fail(ErrCauseUnexpectedChar, p.pos, "unexpected '/' in tag <"+name)
		}
		attr, err := p.parseAttribute(name)
		if err != nil {
			return err
		}
		el.Attrs = append(el.Attrs, attr)
	}

	p.top().appendChild(el)
	if selfClosing {
		return nil
	}
	if isRawText(name) {
		return p.parseRawText(el)
	}
	p.open = append(p.open, el)
	return nil
}

func (p *parser) parseAttribute(tagName string) (Attribute, error) {
	at := p.pos
	name := p.scanAttrName()
	if name == "" {
		return Attribute{}, p.fail(ErrCauseUnexpectedChar, at, "unexpected character in tag <"+tagName)
	}
	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != '=' {
		return Attribute{Name: name, Kind: ValueAbsent}, nil
	}
	p.pos++
	p.skipSpace()
	if p.pos >= len(p.src) {
		return Attribute{}, p.fail(ErrCauseUnterminated, at, "missing value for attribute "+name)
	}

	switch c := p.src[p.pos]; c {
	case '"', '\'':
		end := strings.IndexByte(p.src[p.pos+1:], c)
		if end < 0 {
			return Attribute{}, p.fail(ErrCauseUnterminated, p.pos, "unterminated value for attribute "+name)
		}
		value := p.src[p.pos+1 : p.pos+1+end]
		p.pos += end + 2
		return Attribute{Name: name, Kind: ValueString, Value: value}, nil
	case '{':
		source, err := p.scanBraced()
		if err != nil {
			return Attribute{}, err
		}
		return Attribute{Name: name, Kind: ValueExpression, Value: source}, nil
	case '>':
		return Attribute{}, p.fail(ErrCauseUnexpectedChar, p.pos, "missing value for attribute "+name)
	default:
		start := p.pos
		for p.pos < len(p.src) && !isSpace(p.src[p.pos]) && p.src[p.pos] != '>' {
			if p.src[p.pos] == '/' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '>' {
				break
			}
			p.pos++
		}
		return Attribute{Name: name, Kind: ValueString, Value: p.src[start:p.pos]}, nil
	}
}

// scanAttrName accepts HTML attribute name characters, which are wider than
// tag name characters (for example @click or v-on:foo).
func (p *parser) scanAttrName() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if isSpace(c) || c == '=' || c == '>' || c == '/' || c == '<' ||
			c == '"' || c == '\'' || c == '{' || c == '}' {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

func isRawText(name string) bool {
	return strings.EqualFold(name, "script") || strings.EqualFold(name, "style")
}

// parseRawText consumes everything up to the matching close tag as a single
// text child. Without a close tag the content runs to end of input.
func (p *parser) parseRawText(el *Node) error {
	start := p.pos
	closing := "</" + strings.ToLower(el.Name)
	end := indexFoldASCII(p.src[start:], closing)
	if end < 0 {
		if start < len(p.src) {
			el.appendChild(&Node{Kind: KindText, Data: p.src[start:], Offset: p.base + start})
		}
		p.pos = len(p.src)
		return nil
	}
	if end > 0 {
		el.appendChild(&Node{Kind: KindText, Data: p.src[start : start+end], Offset: p.base + start})
	}
	p.pos = start + end + len(closing)
	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != '>' {
		return p.fail(ErrCauseUnterminated, start+end, "unterminated close tag "+closing)
	}
	p.pos++
	return nil
}

// indexFoldASCII is strings.Index with ASCII case folding. sub must be ASCII.
func indexFoldASCII(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		match := true
		for j := 0; j < len(sub); j++ {
			if lowerASCII(s[i+j]) != lowerASCII(sub[j]) {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

func lowerASCII(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// position converts a byte offset into a 1-based line and column.
func position(text string, offset int) (int, int) {
	if offset > len(text) {
		offset = len(text)
	}
	line := 1 + strings.Count(text[:offset], "\n")
	col := offset + 1
	if nl := strings.LastIndexByte(text[:offset], '\n'); nl >= 0 {
		col = offset - nl
	}
	return line, col
}
