package tree

import "strings"

// Walk visits nodes depth first, parents before children. Returning false
// from fn skips the children of that node.
func Walk(nodes []Node, fn func(n Node) bool) {
	for _, n := range nodes {
		if !fn(n) {
			continue
		}
		switch x := n.(type) {
		case *Element:
			Walk(x.Children, fn)
		case *Component:
			Walk(x.Children, fn)
		}
	}
}

// Count returns the number of nodes in the forest.
func Count(nodes []Node) int {
	total := 0
	Walk(nodes, func(Node) bool {
		total++
		return true
	})
	return total
}

// TextContent concatenates the text leaves below nodes.
func TextContent(nodes []Node) string {
	var b strings.Builder
	Walk(nodes, func(n Node) bool {
		if t, ok := n.(*Text); ok {
			b.WriteString(t.Text)
		}
		return true
	})
	return b.String()
}

// FirstHeading returns the trimmed text of the first h1-h6 element, or "".
func FirstHeading(nodes []Node) string {
	var heading string
	Walk(nodes, func(n Node) bool {
		if heading != "" {
			return false
		}
		el, ok := n.(*Element)
		if !ok || !isHeading(el.Tag) {
			return true
		}
		heading = strings.TrimSpace(TextContent(el.Children))
		return false
	})
	return heading
}

func isHeading(tag string) bool {
	if len(tag) != 2 || (tag[0] != 'h' && tag[0] != 'H') {
		return false
	}
	return tag[1] >= '1' && tag[1] <= '6'
}
