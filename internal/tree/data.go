package tree

import (
	"sort"

	"github.com/rohmanhakim/jsxtree/internal/attrs"
	"github.com/rohmanhakim/jsxtree/internal/metadata"
	"github.com/rohmanhakim/jsxtree/internal/sanitizer"
)

type (
	Props = attrs.Props
	Style = attrs.Style
)

type NodeKind string

const (
	KindText      NodeKind = "text"
	KindElement   NodeKind = "element"
	KindComponent NodeKind = "component"
)

// Node is an output node: *Text, *Element or *Component.
// The set is closed.
type Node interface {
	Kind() NodeKind
	outputNode()
}

type Text struct {
	Text string
}

type Element struct {
	Tag      string
	Props    Props
	Children []Node
	// Unrecognized is set when Tag is neither a known native element nor a
	// registered component. The host decides whether to warn.
	Unrecognized bool
}

type Component struct {
	Name       string
	Definition any
	Props      Props
	Children   []Node
}

func (*Text) Kind() NodeKind      { return KindText }
func (*Element) Kind() NodeKind   { return KindElement }
func (*Component) Kind() NodeKind { return KindComponent }

func (*Text) outputNode()      {}
func (*Element) outputNode()   {}
func (*Component) outputNode() {}

// Registry maps exact, case-sensitive component names to definitions.
// It is immutable once constructed.
type Registry struct {
	defs map[string]any
}

func NewRegistry(defs map[string]any) Registry {
	copied := make(map[string]any, len(defs))
	for name, def := range defs {
		copied[name] = def
	}
	return Registry{defs: copied}
}

func (r Registry) Lookup(name string) (any, bool) {
	def, ok := r.defs[name]
	return def, ok
}

func (r Registry) Len() int {
	return len(r.defs)
}

// Names returns the registered names in sorted order.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Bindings are default props applied to every element and component,
// with lower precedence than markup attributes.
type Bindings map[string]any

const DefaultMaxDepth = 256

type Options struct {
	Registry  Registry
	Bindings  Bindings
	Blacklist sanitizer.Blacklist
	// Evaluator defaults to a fresh sandboxed evaluator per Build call.
	Evaluator attrs.Evaluator
	// MaxDepth bounds element nesting. <= 0 selects DefaultMaxDepth.
	MaxDepth     int
	MetadataSink metadata.MetadataSink
}
