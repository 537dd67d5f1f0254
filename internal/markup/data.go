package markup

// Kind classifies a raw syntax node.
type Kind int

const (
	// KindDocument is the parse root. Its children are the top-level siblings.
	KindDocument Kind = iota
	KindElement
	KindText
	KindExpression
	KindComment
	KindDoctype
)

func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindElement:
		return "element"
	case KindText:
		return "text"
	case KindExpression:
		return "expression"
	case KindComment:
		return "comment"
	case KindDoctype:
		return "doctype"
	default:
		return "unknown"
	}
}

type AttrValueKind int

const (
	// ValueAbsent marks an attribute written without a value, as in <input disabled>.
	ValueAbsent AttrValueKind = iota
	ValueString
	ValueExpression
)

type Attribute struct {
	Name string
	Kind AttrValueKind
	// Value holds the literal for ValueString and the source between the
	// braces for ValueExpression. It is empty for ValueAbsent.
	Value string
}

/*
Node is a raw syntax node as produced by a grammar adapter.
Nodes are never mutated after Parse returns.

Field use per kind:
  - Element: Name, Attrs, Children
  - Text: Data holds the raw text, character references still encoded
  - Expression: Data holds the source between the braces
  - Comment, Doctype: Data holds the inner text
*/
type Node struct {
	Kind     Kind
	Name     string
	Attrs    []Attribute
	Children []*Node
	Data     string
	// Offset is the byte offset of the node in the input text.
	Offset int
}

func (n *Node) appendChild(c *Node) {
	n.Children = append(n.Children, c)
}
