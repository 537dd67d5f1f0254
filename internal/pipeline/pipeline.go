package pipeline

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/rohmanhakim/jsxtree/internal/config"
	"github.com/rohmanhakim/jsxtree/internal/mdconvert"
	"github.com/rohmanhakim/jsxtree/internal/metadata"
	"github.com/rohmanhakim/jsxtree/internal/normalize"
	"github.com/rohmanhakim/jsxtree/internal/render"
	"github.com/rohmanhakim/jsxtree/internal/source"
	"github.com/rohmanhakim/jsxtree/internal/storage"
	"github.com/rohmanhakim/jsxtree/internal/tree"
	"github.com/rohmanhakim/jsxtree/pkg/failure"
)

/*
 Pipeline drives every input through the stages in order:

	source -> compile -> render -> (mdconvert) -> normalize -> storage

 - Inputs are processed sequentially and independently. A failure in any
   stage ends that input only; the remaining inputs still run.
 - Stages detect, classify and record their own failures. The pipeline
   records failures of stages that cannot (renderer, JSON encoding).
 - Metadata emission is observational only and MUST NOT influence
   which inputs run.
*/

type Renderer interface {
	RenderString(nodes []tree.Node) (string, error)
}

type Normalizer interface {
	Normalize(
		input normalize.Input,
		param normalize.NormalizeParam,
	) (normalize.NormalizedDoc, failure.ClassifiedError)
}

type Pipeline struct {
	metadataSink     metadata.MetadataSink
	compileFinalizer metadata.CompileFinalizer
	loader           source.Loader
	compiler         Compiler
	renderer         Renderer
	converter        mdconvert.Converter
	normalizer       Normalizer
	storageSink      storage.Sink
	param            Param
}

// NewPipeline wires the production stages from cfg.
func NewPipeline(
	cfg config.Config,
	metadataSink metadata.MetadataSink,
	compileFinalizer metadata.CompileFinalizer,
	logger *slog.Logger,
	stdin io.Reader,
	appVersion string,
) (Pipeline, failure.ClassifiedError) {
	compiler, err := NewTreeCompiler(metadataSink, cfg)
	if err != nil {
		return Pipeline{}, err
	}
	loader := source.NewFileLoader(metadataSink, stdin)
	renderer := render.NewRenderer(render.Options{
		Wrap:         cfg.RenderInWrapper(),
		WrapperClass: cfg.WrapperClass(),
		StrictHTML:   cfg.StrictHTML(),
		Logger:       logger,
	})
	normalizer := normalize.NewNormalizer(metadataSink)
	storageSink := storage.NewLocalSink(metadataSink, cfg.DryRun())
	return NewPipelineWithDeps(
		metadataSink,
		compileFinalizer,
		&loader,
		compiler,
		renderer,
		mdconvert.NewMarkdownConverter(metadataSink),
		&normalizer,
		&storageSink,
		Param{
			OutputDir:  cfg.OutputDir(),
			Format:     cfg.OutputFormat(),
			HashAlgo:   cfg.HashAlgo(),
			AppVersion: appVersion,
		},
	), nil
}

// NewPipelineWithDeps creates a Pipeline with injected stages for testing.
func NewPipelineWithDeps(
	metadataSink metadata.MetadataSink,
	compileFinalizer metadata.CompileFinalizer,
	loader source.Loader,
	compiler Compiler,
	renderer Renderer,
	converter mdconvert.Converter,
	normalizer Normalizer,
	storageSink storage.Sink,
	param Param,
) Pipeline {
	return Pipeline{
		metadataSink:     metadataSink,
		compileFinalizer: compileFinalizer,
		loader:           loader,
		compiler:         compiler,
		renderer:         renderer,
		converter:        converter,
		normalizer:       normalizer,
		storageSink:      storageSink,
		param:            param,
	}
}

// Execute runs every path through the pipeline. No paths means standard
// input. The returned error is ErrFilesFailed when any input failed; the
// per-input errors are in the Execution.
func (p *Pipeline) Execute(paths []string) (Execution, error) {
	startTime := time.Now()
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	execution := Execution{Results: make([]Result, 0, len(paths))}

	defer func() {
		p.compileFinalizer.RecordFinalStats(
			len(execution.Results),
			execution.Failed(),
			execution.Written(),
			time.Since(startTime),
		)
	}()

	for _, path := range paths {
		execution.Results = append(execution.Results, p.process(path))
	}

	if execution.Failed() > 0 {
		return execution, ErrFilesFailed
	}
	return execution, nil
}

func (p *Pipeline) process(path string) Result {
	result := Result{SourcePath: path}

	// 1. Load source
	doc, err := p.loader.Load(path)
	if err != nil {
		result.Err = err
		return result
	}
	result.SourcePath = doc.Path()

	// 2. Compile markup into the output tree
	nodes, err := p.compiler.Compile(doc)
	if err != nil {
		result.Err = err
		return result
	}
	result.Nodes = nodes

	// 3. Render into the output format
	content, err := p.content(doc.Path(), nodes)
	if err != nil {
		result.Err = err
		return result
	}

	// 4. Attach frontmatter
	normalized, err := p.normalizer.Normalize(
		normalize.Input{
			SourcePath: doc.Path(),
			Format:     p.param.Format,
			Nodes:      nodes,
			Content:    content,
		},
		normalize.NewNormalizeParam(p.param.AppVersion, p.param.HashAlgo),
	)
	if err != nil {
		result.Err = err
		return result
	}
	result.Doc = normalized

	// 5. Write artifact
	writeResult, err := p.storageSink.Write(p.param.OutputDir, normalized, p.param.HashAlgo)
	if err != nil {
		result.Err = err
		return result
	}
	result.Write = writeResult
	return result
}

func (p *Pipeline) content(sourcePath string, nodes []tree.Node) ([]byte, failure.ClassifiedError) {
	switch p.param.Format {
	case normalize.FormatHTML:
		rendered, err := p.render(sourcePath, nodes)
		if err != nil {
			return nil, err
		}
		return []byte(rendered), nil
	case normalize.FormatMarkdown:
		rendered, err := p.render(sourcePath, nodes)
		if err != nil {
			return nil, err
		}
		conversion, err := p.converter.Convert([]byte(rendered))
		if err != nil {
			return nil, err
		}
		return conversion.GetMarkdownContent(), nil
	default:
		data, err := tree.Marshal(nodes)
		if err != nil {
			return nil, p.recordPipelineError(sourcePath, "Pipeline.encode", &PipelineError{
				Message:   err.Error(),
				Retryable: false,
				Cause:     ErrCauseEncodeFailure,
				Err:       err,
			})
		}
		return data, nil
	}
}

func (p *Pipeline) render(sourcePath string, nodes []tree.Node) (string, failure.ClassifiedError) {
	rendered, err := p.renderer.RenderString(nodes)
	if err == nil {
		return rendered, nil
	}

	var renderError *render.RenderError
	if errors.As(err, &renderError) {
		p.metadataSink.RecordError(
			time.Now(),
			"render",
			"Renderer.RenderString",
			render.MapToMetadataCause(renderError),
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrSource, sourcePath),
				metadata.NewAttr(metadata.AttrTag, renderError.Tag),
			},
		)
		return "", renderError
	}

	// host component failures keep their identity for errors.Is
	return "", p.recordPipelineError(sourcePath, "Renderer.RenderString", &PipelineError{
		Message:   err.Error(),
		Retryable: false,
		Cause:     ErrCauseComponentFailure,
		Err:       err,
	})
}

func (p *Pipeline) recordPipelineError(sourcePath string, action string, err *PipelineError) *PipelineError {
	p.metadataSink.RecordError(
		time.Now(),
		"pipeline",
		action,
		mapPipelineErrorToMetadataCause(err),
		err.Error(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrSource, sourcePath),
		},
	)
	return err
}
