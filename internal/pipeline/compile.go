package pipeline

import (
	"errors"
	"strconv"
	"time"

	"github.com/rohmanhakim/jsxtree/internal/config"
	"github.com/rohmanhakim/jsxtree/internal/evaluate"
	"github.com/rohmanhakim/jsxtree/internal/markup"
	"github.com/rohmanhakim/jsxtree/internal/metadata"
	"github.com/rohmanhakim/jsxtree/internal/sanitizer"
	"github.com/rohmanhakim/jsxtree/internal/source"
	"github.com/rohmanhakim/jsxtree/internal/tree"
	"github.com/rohmanhakim/jsxtree/pkg/failure"
)

type Compiler interface {
	Compile(doc source.Document) ([]tree.Node, failure.ClassifiedError)
}

// Compile-time interface check
var _ Compiler = (*TreeCompiler)(nil)

// TreeCompiler turns loaded documents into output trees. The blacklist and
// component registry are compiled once and shared by every document.
type TreeCompiler struct {
	metadataSink metadata.MetadataSink
	options      tree.Options
	lenient      bool
}

func NewTreeCompiler(
	metadataSink metadata.MetadataSink,
	cfg config.Config,
) (*TreeCompiler, failure.ClassifiedError) {
	policyCompiler := sanitizer.NewPolicyCompiler(metadataSink)
	blacklist, err := policyCompiler.Compile(cfg.BlacklistedTags(), cfg.BlacklistedAttrs())
	if err != nil {
		return nil, err
	}
	return &TreeCompiler{
		metadataSink: metadataSink,
		options: tree.Options{
			Registry:     tree.NewRegistry(cfg.ComponentDefinitions()),
			Bindings:     cfg.Bindings(),
			Blacklist:    blacklist,
			Evaluator:    evaluate.NewEvaluator(cfg.MaxExpressionLength()),
			MaxDepth:     cfg.MaxDepth(),
			MetadataSink: metadataSink,
		},
		lenient: cfg.LenientHTML(),
	}, nil
}

func (c *TreeCompiler) Compile(doc source.Document) ([]tree.Node, failure.ClassifiedError) {
	root, err := c.parse(doc)
	if err != nil {
		var parseError *markup.ParseError
		if !errors.As(err, &parseError) {
			return nil, &PipelineError{
				Message:   err.Error(),
				Retryable: false,
				Cause:     ErrCauseStageFailure,
				Err:       err,
			}
		}
		c.metadataSink.RecordError(
			time.Now(),
			"markup",
			"TreeCompiler.Compile",
			markup.MapToMetadataCause(parseError),
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrSource, doc.Path()),
				metadata.NewAttr(metadata.AttrOffset, strconv.Itoa(parseError.Offset)),
			},
		)
		return nil, parseError
	}

	// tree.Build records its own failures
	nodes, err := tree.Build(root, c.options)
	if err != nil {
		var buildError *tree.BuildError
		if errors.As(err, &buildError) {
			return nil, buildError
		}
		return nil, &PipelineError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseStageFailure,
			Err:       err,
		}
	}
	return nodes, nil
}

func (c *TreeCompiler) parse(doc source.Document) (*markup.Node, error) {
	if c.lenient || doc.IsHTML() {
		return markup.ParseHTML(doc.Text())
	}
	return markup.Parse(doc.Text())
}
