package render

import (
	"github.com/rohmanhakim/jsxtree/internal/tree"
	g "maragu.dev/gomponents"
)

// Component is a host definition registered under a tag name.
// Errors returned from Render reach the caller of Renderer.Render unchanged.
type Component interface {
	Render(props tree.Props, children []g.Node) (g.Node, error)
}

type ComponentFunc func(props tree.Props, children []g.Node) (g.Node, error)

func (f ComponentFunc) Render(props tree.Props, children []g.Node) (g.Node, error) {
	return f(props, children)
}

// Element is a declarative component: a native tag with default props.
// Instance props win over the defaults.
type Element struct {
	Tag   string
	Props tree.Props
}

func (e Element) Render(props tree.Props, children []g.Node) (g.Node, error) {
	merged := make(tree.Props, len(e.Props)+len(props))
	for k, v := range e.Props {
		merged[k] = v
	}
	for k, v := range props {
		merged[k] = v
	}
	nodes := append(attributes(merged), children...)
	return g.El(e.Tag, nodes...), nil
}

// OnlyChild returns the single child, or ErrNotSingleChild.
func OnlyChild(children []g.Node) (g.Node, error) {
	if len(children) != 1 {
		return nil, ErrNotSingleChild
	}
	return children[0], nil
}
