/*
Responsibilities
- Walk the raw syntax tree once, depth first
- Classify each element and resolve its props
- Apply the children and whitespace policy of its class
- Produce the ordered list of top-level output nodes

Rules
  - Text is entity-normalized before the whitespace decision
  - Pure-whitespace text under a whitespace-insignificant element is dropped
  - Comments, doctypes and html/head/body framing are skipped; framing
    children are walked in place
  - Blacklisted elements vanish with their subtree
  - Void elements always have zero children; their raw subtree is dropped
  - Bracketed children are evaluated and rendered as text

Build never returns a partial tree: a depth violation fails the whole call.
*/
package tree

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rohmanhakim/jsxtree/internal/attrs"
	"github.com/rohmanhakim/jsxtree/internal/entity"
	"github.com/rohmanhakim/jsxtree/internal/evaluate"
	"github.com/rohmanhakim/jsxtree/internal/markup"
	"github.com/rohmanhakim/jsxtree/internal/metadata"
	"github.com/rohmanhakim/jsxtree/internal/tags"
)

type builder struct {
	registry     Registry
	blacklist    tags.TagBlacklist
	attrCtx      attrs.Context
	evaluator    attrs.Evaluator
	maxDepth     int
	metadataSink metadata.MetadataSink
}

// Build turns a parsed raw tree into output nodes.
func Build(root *markup.Node, opts Options) ([]Node, error) {
	sink := opts.MetadataSink
	if sink == nil {
		sink = &metadata.NoopSink{}
	}
	evaluator := opts.Evaluator
	if evaluator == nil {
		evaluator = evaluate.NewEvaluator(0)
	}
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	b := &builder{
		registry:  opts.Registry,
		blacklist: opts.Blacklist,
		attrCtx: attrs.Context{
			Bindings:     opts.Bindings,
			Blacklist:    opts.Blacklist,
			Evaluator:    evaluator,
			MetadataSink: sink,
		},
		evaluator:    evaluator,
		maxDepth:     maxDepth,
		metadataSink: sink,
	}

	if root == nil {
		return []Node{}, nil
	}

	var raw []*markup.Node
	if root.Kind == markup.KindDocument {
		raw = root.Children
	} else {
		raw = []*markup.Node{root}
	}

	nodes, err := b.buildChildren(raw, false, 1)
	if err != nil {
		var buildErr *BuildError
		if errors.As(err, &buildErr) {
			sink.RecordError(
				time.Now(),
				"tree",
				"Build",
				mapBuildErrorToMetadataCause(buildErr),
				err.Error(),
				[]metadata.Attribute{
					metadata.NewAttr(metadata.AttrDepth, strconv.Itoa(buildErr.Depth)),
					metadata.NewAttr(metadata.AttrOffset, strconv.Itoa(buildErr.Offset)),
				},
			)
		}
		return nil, err
	}
	return nodes, nil
}

func (b *builder) buildChildren(raw []*markup.Node, suppressBlank bool, depth int) ([]Node, error) {
	out := make([]Node, 0, len(raw))
	for _, n := range raw {
		var err error
		out, err = b.appendNode(out, n, suppressBlank, depth)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (b *builder) appendNode(out []Node, n *markup.Node, suppressBlank bool, depth int) ([]Node, error) {
	switch n.Kind {
	case markup.KindText:
		text := entity.Normalize(n.Data)
		if suppressBlank && entity.IsBlank(text) {
			return out, nil
		}
		return append(out, &Text{Text: text}), nil

	case markup.KindExpression:
		return append(out, b.expressionText(n)...), nil

	case markup.KindComment, markup.KindDoctype:
		return out, nil

	case markup.KindDocument:
		if err := b.checkDepth(n, "document", depth); err != nil {
			return nil, err
		}
		children, err := b.buildChildren(n.Children, suppressBlank, depth+1)
		if err != nil {
			return nil, err
		}
		return append(out, children...), nil

	case markup.KindElement:
		return b.appendElement(out, n, suppressBlank, depth)

	default:
		return out, nil
	}
}

func (b *builder) appendElement(out []Node, n *markup.Node, suppressBlank bool, depth int) ([]Node, error) {
	res := tags.Classify(n.Name, b.registry, b.blacklist)

	if res.Class == tags.ClassBlacklisted {
		b.metadataSink.RecordOmission(metadata.OmittedTag, n.Name, []metadata.Attribute{
			metadata.NewAttr(metadata.AttrOffset, strconv.Itoa(n.Offset)),
		})
		return out, nil
	}

	if err := b.checkDepth(n, "element <"+n.Name+">", depth); err != nil {
		return nil, err
	}

	// wrappers count towards depth even though they emit no node
	if res.IsNative() && tags.IsStructuralWrapper(n.Name) {
		children, err := b.buildChildren(n.Children, suppressBlank, depth+1)
		if err != nil {
			return nil, err
		}
		return append(out, children...), nil
	}

	ctx := b.attrCtx
	ctx.Tag = n.Name
	ctx.Native = res.IsNative()
	props := attrs.Resolve(n.Attrs, ctx)

	switch res.Class {
	case tags.ClassComponent:
		children, err := b.buildChildren(n.Children, false, depth+1)
		if err != nil {
			return nil, err
		}
		return append(out, &Component{
			Name:       n.Name,
			Definition: res.Definition,
			Props:      props,
			Children:   children,
		}), nil

	case tags.ClassNativeVoid:
		return append(out, &Element{
			Tag:      n.Name,
			Props:    props,
			Children: []Node{},
		}), nil

	default:
		children, err := b.buildChildren(n.Children, res.SuppressesBlankText(), depth+1)
		if err != nil {
			return nil, err
		}
		unrecognized := res.Class == tags.ClassUnrecognized
		if unrecognized {
			b.metadataSink.RecordUnrecognizedTag(n.Name, []metadata.Attribute{
				metadata.NewAttr(metadata.AttrOffset, strconv.Itoa(n.Offset)),
			})
		}
		return append(out, &Element{
			Tag:          n.Name,
			Props:        props,
			Children:     children,
			Unrecognized: unrecognized,
		}), nil
	}
}

func (b *builder) checkDepth(n *markup.Node, what string, depth int) error {
	if depth <= b.maxDepth {
		return nil
	}
	return &BuildError{
		Message:   fmt.Sprintf("%s is nested deeper than %d", what, b.maxDepth),
		Retryable: false,
		Cause:     ErrCauseDepthExceeded,
		Depth:     depth,
		Offset:    n.Offset,
	}
}

// expressionText evaluates a bracketed child. Strings and numbers become
// text, booleans and nil render nothing, lists of those render each item.
// Anything else is dropped and reported.
func (b *builder) expressionText(n *markup.Node) []Node {
	value, err := b.evaluator.Evaluate(n.Data)
	if err != nil {
		b.reportExpression(n, evaluationCause(err), err.Error())
		return nil
	}

	if list, ok := value.([]any); ok {
		var out []Node
		for _, item := range list {
			text, ok, renderable := scalarText(item)
			if !renderable {
				b.reportExpression(n, metadata.CauseContentInvalid,
					fmt.Sprintf("list item of type %T cannot be rendered as a child", item))
				return nil
			}
			if ok {
				out = append(out, &Text{Text: text})
			}
		}
		return out
	}

	text, ok, renderable := scalarText(value)
	if !renderable {
		b.reportExpression(n, metadata.CauseContentInvalid,
			fmt.Sprintf("value of type %T cannot be rendered as a child", value))
		return nil
	}
	if !ok {
		return nil
	}
	return []Node{&Text{Text: text}}
}

// scalarText returns the text of a scalar child value. ok is false for
// values that render nothing; renderable is false for non-scalars.
func scalarText(v any) (text string, ok bool, renderable bool) {
	switch x := v.(type) {
	case nil, bool:
		return "", false, true
	case string:
		return x, true, true
	case int:
		return strconv.Itoa(x), true, true
	case int64:
		return strconv.FormatInt(x, 10), true, true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true, true
	default:
		return "", false, false
	}
}

func (b *builder) reportExpression(n *markup.Node, cause metadata.ErrorCause, details string) {
	b.metadataSink.RecordError(
		time.Now(),
		"tree",
		"Build",
		cause,
		details,
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrExpression, n.Data),
			metadata.NewAttr(metadata.AttrOffset, strconv.Itoa(n.Offset)),
		},
	)
}

func evaluationCause(err error) metadata.ErrorCause {
	var evalErr *evaluate.EvaluationError
	if errors.As(err, &evalErr) {
		return evaluate.MapToMetadataCause(evalErr)
	}
	return metadata.CauseEvaluationFailure
}
