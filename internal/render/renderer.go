/*
Responsibilities
- Turn output nodes into HTML through gomponents
- Call registered component definitions
- Optionally wrap the result in a container element
- Optionally run the result through a strict HTML sanitizer
- Own the wording of the unrecognized tag warning

Component failures, including arity failures, are returned unchanged.
*/
package render

import (
	"bytes"
	"io"
	"log/slog"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rohmanhakim/jsxtree/internal/tree"
	g "maragu.dev/gomponents"
)

const DefaultWrapperClass = "jsx-parser"

type Options struct {
	// Wrap places the output inside <div class="WrapperClass">.
	Wrap         bool
	WrapperClass string
	// StrictHTML sanitizes the rendered HTML with the bluemonday UGC policy,
	// keeping class attributes.
	StrictHTML bool
	Logger     *slog.Logger
}

type Renderer struct {
	wrap         bool
	wrapperClass string
	policy       *bluemonday.Policy
	logger       *slog.Logger
}

func NewRenderer(opts Options) *Renderer {
	r := &Renderer{
		wrap:         opts.Wrap,
		wrapperClass: opts.WrapperClass,
		logger:       opts.Logger,
	}
	if r.wrapperClass == "" {
		r.wrapperClass = DefaultWrapperClass
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if opts.StrictHTML {
		r.policy = bluemonday.UGCPolicy()
		r.policy.AllowStyling()
	}
	return r
}

// Node converts nodes into a single gomponents node.
func (r *Renderer) Node(nodes []tree.Node) (g.Node, error) {
	children, err := r.nodes(nodes)
	if err != nil {
		return nil, err
	}
	if r.wrap {
		return g.El("div", append([]g.Node{g.Attr("class", r.wrapperClass)}, children...)...), nil
	}
	return g.Group(children), nil
}

// Render writes the HTML for nodes to w.
func (r *Renderer) Render(nodes []tree.Node, w io.Writer) error {
	root, err := r.Node(nodes)
	if err != nil {
		return err
	}

	if r.policy == nil {
		if err := root.Render(w); err != nil {
			return &RenderError{
				Message:   err.Error(),
				Retryable: false,
				Cause:     ErrCauseWriteFailure,
			}
		}
		return nil
	}

	var buf bytes.Buffer
	if err := root.Render(&buf); err != nil {
		return &RenderError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseWriteFailure,
		}
	}
	if _, err := w.Write(r.policy.SanitizeBytes(buf.Bytes())); err != nil {
		return &RenderError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseWriteFailure,
		}
	}
	return nil
}

// RenderString returns the HTML for nodes.
func (r *Renderer) RenderString(nodes []tree.Node) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(nodes, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *Renderer) nodes(nodes []tree.Node) ([]g.Node, error) {
	out := make([]g.Node, 0, len(nodes))
	for _, n := range nodes {
		rendered, err := r.node(n)
		if err != nil {
			return nil, err
		}
		if rendered != nil {
			out = append(out, rendered)
		}
	}
	return out, nil
}

func (r *Renderer) node(n tree.Node) (g.Node, error) {
	switch x := n.(type) {
	case *tree.Text:
		return g.Text(x.Text), nil

	case *tree.Element:
		if x.Unrecognized {
			r.logger.Warn(
				"the tag is unrecognized in this browser, unless it is a custom component; register it to render it as one",
				slog.String("tag", x.Tag),
			)
		}
		children, err := r.nodes(x.Children)
		if err != nil {
			return nil, err
		}
		return g.El(x.Tag, append(attributes(x.Props), children...)...), nil

	case *tree.Component:
		def, ok := x.Definition.(Component)
		if !ok {
			return nil, &RenderError{
				Message:   "definition does not implement render.Component",
				Retryable: false,
				Cause:     ErrCauseUnsupportedDefinition,
				Tag:       x.Name,
			}
		}
		children, err := r.nodes(x.Children)
		if err != nil {
			return nil, err
		}
		return def.Render(x.Props, children)

	default:
		return nil, nil
	}
}
