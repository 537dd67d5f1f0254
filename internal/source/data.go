package source

// Kind is the markup flavour of a loaded document.
type Kind string

const (
	KindJSX      Kind = "jsx"
	KindHTML     Kind = "html"
	KindMarkdown Kind = "markdown"
)

type Document struct {
	path string
	kind Kind
	text string
}

func NewDocument(path string, kind Kind, text string) Document {
	return Document{
		path: path,
		kind: kind,
		text: text,
	}
}

// Path returns the input path, "-" for standard input.
func (d Document) Path() string {
	return d.path
}

func (d Document) Kind() Kind {
	return d.kind
}

// Text returns the markup to compile. Markdown inputs are already rendered
// to HTML with inline tags passed through.
func (d Document) Text() string {
	return d.text
}

// IsHTML reports whether the text should go through the lenient HTML grammar.
func (d Document) IsHTML() bool {
	return d.kind == KindHTML
}
