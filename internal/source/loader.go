package source

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/rohmanhakim/jsxtree/internal/metadata"
	"github.com/rohmanhakim/jsxtree/pkg/failure"
	"github.com/rohmanhakim/jsxtree/pkg/fileutil"
)

/*
Responsibilities
- Read an input file, or standard input for "-"
- Choose the markup flavour from the file extension
- Render markdown inputs to HTML, leaving inline tags in place
*/

type Loader interface {
	Load(path string) (Document, failure.ClassifiedError)
}

type FileLoader struct {
	metadataSink metadata.MetadataSink
	stdin        io.Reader
}

func NewFileLoader(
	metadataSink metadata.MetadataSink,
	stdin io.Reader,
) FileLoader {
	return FileLoader{
		metadataSink: metadataSink,
		stdin:        stdin,
	}
}

func (l *FileLoader) Load(path string) (Document, failure.ClassifiedError) {
	doc, err := l.load(path)
	if err != nil {
		var sourceError *SourceError
		errors.As(err, &sourceError)
		l.metadataSink.RecordError(
			time.Now(),
			"source",
			"FileLoader.Load",
			mapSourceErrorToMetadataCause(sourceError),
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrSource, path),
			},
		)
		return Document{}, sourceError
	}
	return doc, nil
}

func (l *FileLoader) load(path string) (Document, failure.ClassifiedError) {
	var (
		data []byte
		err  error
	)
	if fileutil.IsStdin(path) {
		path = "-"
		data, err = io.ReadAll(l.stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		cause := ErrCauseReadFailure
		if errors.Is(err, fs.ErrNotExist) {
			cause = ErrCauseNotFound
		}
		return Document{}, &SourceError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     cause,
			Path:      path,
		}
	}
	if !utf8.Valid(data) {
		return Document{}, &SourceError{
			Message:   "invalid UTF-8 sequence",
			Retryable: false,
			Cause:     ErrCauseNotText,
			Path:      path,
		}
	}

	kind := DetectKind(path)
	if kind == KindMarkdown {
		return NewDocument(path, kind, RenderMarkdown(data)), nil
	}
	return NewDocument(path, kind, string(data)), nil
}

// DetectKind maps a file extension onto a markup flavour. Unknown extensions
// and standard input are treated as JSX.
func DetectKind(path string) Kind {
	switch strings.ToLower(fileutil.GetFileExtension(path)) {
	case "md", "markdown":
		return KindMarkdown
	case "html", "htm":
		return KindHTML
	default:
		return KindJSX
	}
}

// RenderMarkdown converts markdown to HTML. Raw tags in the markdown,
// including custom elements, are kept verbatim in the output. Void tags
// are self-closed so the JSX grammar does not treat them as containers.
func RenderMarkdown(md []byte) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags | mdhtml.UseXHTML})
	return strings.TrimSpace(string(markdown.ToHTML(md, p, renderer)))
}
