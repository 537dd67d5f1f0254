package tree_test

import (
	"testing"
	"time"

	"github.com/rohmanhakim/jsxtree/internal/markup"
	"github.com/rohmanhakim/jsxtree/internal/metadata"
	"github.com/rohmanhakim/jsxtree/internal/tree"
	"github.com/stretchr/testify/require"
)

// metadataSinkMock is a mock for metadata.MetadataSink
type metadataSinkMock struct {
	errorCauses  []metadata.ErrorCause
	unrecognized []string
	omittedTags  []string
	omittedAttrs []string
}

func (m *metadataSinkMock) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	details string,
	attrs []metadata.Attribute,
) {
	m.errorCauses = append(m.errorCauses, cause)
}

func (m *metadataSinkMock) RecordUnrecognizedTag(tagName string, attrs []metadata.Attribute) {
	m.unrecognized = append(m.unrecognized, tagName)
}

func (m *metadataSinkMock) RecordOmission(kind metadata.OmissionKind, name string, attrs []metadata.Attribute) {
	switch kind {
	case metadata.OmittedTag:
		m.omittedTags = append(m.omittedTags, name)
	case metadata.OmittedAttribute:
		m.omittedAttrs = append(m.omittedAttrs, name)
	}
}

func (m *metadataSinkMock) RecordArtifact(kind metadata.ArtifactKind, path string, attrs []metadata.Attribute) {
}

// build parses input with the JSX adapter and builds it with opts.
func build(t *testing.T, input string, opts tree.Options) []tree.Node {
	t.Helper()
	root, err := markup.Parse(input)
	require.NoError(t, err)
	nodes, err := tree.Build(root, opts)
	require.NoError(t, err)
	return nodes
}

func text(s string) *tree.Text {
	return &tree.Text{Text: s}
}

func el(tag string, props tree.Props, children ...tree.Node) *tree.Element {
	if props == nil {
		props = tree.Props{}
	}
	if children == nil {
		children = []tree.Node{}
	}
	return &tree.Element{Tag: tag, Props: props, Children: children}
}

func comp(name string, def any, props tree.Props, children ...tree.Node) *tree.Component {
	if props == nil {
		props = tree.Props{}
	}
	if children == nil {
		children = []tree.Node{}
	}
	return &tree.Component{Name: name, Definition: def, Props: props, Children: children}
}
