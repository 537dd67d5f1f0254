/*
Package jsxtree compiles HTML-like markup with custom tags into a filtered
tree of render instructions.

	nodes, err := jsxtree.Compile(`<Card title="x"><p>hi</p></Card>`, jsxtree.Options{
		Components: map[string]any{"Card": cardDefinition},
	})

Compile is pure and synchronous. Everything it uses is built fresh per call,
so concurrent calls need no coordination as long as callers do not mutate
Components or Bindings while a call is running.
*/
package jsxtree

import (
	"github.com/rohmanhakim/jsxtree/internal/evaluate"
	"github.com/rohmanhakim/jsxtree/internal/markup"
	"github.com/rohmanhakim/jsxtree/internal/metadata"
	"github.com/rohmanhakim/jsxtree/internal/sanitizer"
	"github.com/rohmanhakim/jsxtree/internal/tree"
)

type (
	Node      = tree.Node
	Text      = tree.Text
	Element   = tree.Element
	Component = tree.Component
	Props     = tree.Props
	Style     = tree.Style
	Bindings  = tree.Bindings
)

// ErrMalformedMarkup matches every grammar failure returned by Compile.
var ErrMalformedMarkup = markup.ErrMalformedMarkup

type Options struct {
	// Components maps exact, case-sensitive tag names to host definitions.
	Components map[string]any
	// Bindings are default props with the lowest precedence.
	Bindings Bindings
	// BlacklistedTags and BlacklistedAttrs are exact names or regular
	// expressions, unioned with the fixed script and event-handler rules.
	BlacklistedTags  []string
	BlacklistedAttrs []string
	// MaxDepth bounds element nesting. <= 0 selects the default of 256.
	MaxDepth int
	// MaxExpressionLength bounds the source of a single bracketed
	// expression. <= 0 selects the default.
	MaxExpressionLength int
	// Lenient parses with the HTML5 algorithm instead of the JSX grammar.
	// It never fails on malformed markup but lowercases every name, so
	// components must be registered in lowercase to match.
	Lenient bool
	// MetadataSink receives diagnostics. Nil discards them.
	MetadataSink metadata.MetadataSink
}

// Compile parses markupText and builds the output tree. Grammar failures
// are returned unchanged and no partial tree is produced.
func Compile(markupText string, opts Options) ([]Node, error) {
	root, err := parse(markupText, opts.Lenient)
	if err != nil {
		return nil, err
	}

	blacklist, err := sanitizer.Compile(opts.BlacklistedTags, opts.BlacklistedAttrs)
	if err != nil {
		return nil, err
	}

	return tree.Build(root, tree.Options{
		Registry:     tree.NewRegistry(opts.Components),
		Bindings:     opts.Bindings,
		Blacklist:    blacklist,
		Evaluator:    evaluate.NewEvaluator(opts.MaxExpressionLength),
		MaxDepth:     opts.MaxDepth,
		MetadataSink: opts.MetadataSink,
	})
}

func parse(markupText string, lenient bool) (*markup.Node, error) {
	if lenient {
		return markup.ParseHTML(markupText)
	}
	return markup.Parse(markupText)
}

// MarshalJSON encodes nodes as an indented JSON array.
func MarshalJSON(nodes []Node) ([]byte, error) {
	return tree.Marshal(nodes)
}
