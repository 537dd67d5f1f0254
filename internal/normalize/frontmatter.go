package normalize

import (
	"bytes"
	"errors"
	"time"

	"github.com/rohmanhakim/jsxtree/internal/metadata"
	"github.com/rohmanhakim/jsxtree/internal/tree"
	"github.com/rohmanhakim/jsxtree/pkg/failure"
	"github.com/rohmanhakim/jsxtree/pkg/fileutil"
	"github.com/rohmanhakim/jsxtree/pkg/hashutil"
	"gopkg.in/yaml.v3"
)

/*
Responsibilities
- Derive the frontmatter record of a compiled document
- Prepend a YAML frontmatter block to markdown output

Frontmatter Fields
- Title (first heading, else the source file stem)
- Source path
- Output format
- Node count and tree fingerprint
- Content hash
- Compiler version

JSON and HTML content is passed through unchanged; their frontmatter is
only reported to the caller.
*/

type Normalizer struct {
	metadataSink metadata.MetadataSink
}

func NewNormalizer(
	metadataSink metadata.MetadataSink,
) Normalizer {
	return Normalizer{
		metadataSink: metadataSink,
	}
}

func (n *Normalizer) Normalize(
	input Input,
	param NormalizeParam,
) (NormalizedDoc, failure.ClassifiedError) {
	doc, err := normalize(input, param)
	if err != nil {
		var normalizationError *NormalizationError
		errors.As(err, &normalizationError)
		n.metadataSink.RecordError(
			time.Now(),
			"normalize",
			"Normalizer.Normalize",
			mapNormalizationErrorToMetadataCause(*normalizationError),
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrSource, input.SourcePath),
			},
		)
		return NormalizedDoc{}, normalizationError
	}
	return doc, nil
}

func normalize(input Input, param NormalizeParam) (NormalizedDoc, error) {
	fingerprint, err := tree.Fingerprint(input.Nodes, param.hashAlgo)
	if err != nil {
		return NormalizedDoc{}, &NormalizationError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseHashComputationFailed,
		}
	}
	contentHash, err := hashutil.HashBytes(input.Content, param.hashAlgo)
	if err != nil {
		return NormalizedDoc{}, &NormalizationError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseHashComputationFailed,
		}
	}

	fm := NewFrontmatter(
		deriveTitle(input.Nodes, input.SourcePath),
		input.SourcePath,
		input.Format,
		tree.Count(input.Nodes),
		fingerprint,
		contentHash,
		param.appVersion,
	)

	switch input.Format {
	case FormatJSON, FormatHTML:
		return NewNormalizedDoc(fm, input.Content), nil
	case FormatMarkdown:
		content, err := withFrontmatter(fm, input.Content)
		if err != nil {
			return NormalizedDoc{}, err
		}
		return NewNormalizedDoc(fm, content), nil
	default:
		return NormalizedDoc{}, &NormalizationError{
			Message:   string(input.Format),
			Retryable: false,
			Cause:     ErrCauseUnknownFormat,
		}
	}
}

func deriveTitle(nodes []tree.Node, sourcePath string) string {
	if heading := tree.FirstHeading(nodes); heading != "" {
		return heading
	}
	if fileutil.IsStdin(sourcePath) {
		return "stdin"
	}
	return fileutil.Stem(sourcePath)
}

func withFrontmatter(fm Frontmatter, content []byte) ([]byte, error) {
	data, err := yaml.Marshal(frontmatterYAML{
		Title:           fm.title,
		Source:          fm.sourcePath,
		Format:          string(fm.format),
		Nodes:           fm.nodeCount,
		TreeFingerprint: fm.treeFingerprint,
		ContentHash:     fm.contentHash,
		CompilerVersion: fm.compilerVersion,
	})
	if err != nil {
		return nil, &NormalizationError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseFrontmatterMarshalFailed,
		}
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(data)
	buf.WriteString("---\n\n")
	buf.Write(content)
	if len(content) > 0 && content[len(content)-1] != '\n' {
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
