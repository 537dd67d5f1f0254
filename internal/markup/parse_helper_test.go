package markup_test

import (
	"strings"

	"github.com/rohmanhakim/jsxtree/internal/markup"
)

// dump renders the children of n in a compact, deterministic form:
// elements as name[attrs](children), text as "text", expressions as {src}.
func dump(n *markup.Node) string {
	var b strings.Builder
	for i, c := range n.Children {
		if i > 0 {
			b.WriteString(" ")
		}
		writeNode(&b, c)
	}
	return b.String()
}

func writeNode(b *strings.Builder, n *markup.Node) {
	switch n.Kind {
	case markup.KindElement:
		b.WriteString(n.Name)
		if len(n.Attrs) > 0 {
			b.WriteString("[")
			for i, a := range n.Attrs {
				if i > 0 {
					b.WriteString(" ")
				}
				b.WriteString(a.Name)
				switch a.Kind {
				case markup.ValueString:
					b.WriteString(`="` + a.Value + `"`)
				case markup.ValueExpression:
					b.WriteString("={" + a.Value + "}")
				}
			}
			b.WriteString("]")
		}
		if len(n.Children) > 0 {
			b.WriteString("(")
			b.WriteString(dump(n))
			b.WriteString(")")
		}
	case markup.KindText:
		b.WriteString(`"` + n.Data + `"`)
	case markup.KindExpression:
		b.WriteString("{" + n.Data + "}")
	case markup.KindComment:
		b.WriteString("<!--" + n.Data + "-->")
	case markup.KindDoctype:
		b.WriteString("<!doctype " + n.Data + ">")
	case markup.KindDocument:
		b.WriteString("#document(" + dump(n) + ")")
	}
}
