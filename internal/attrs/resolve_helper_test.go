package attrs_test

import (
	"time"

	"github.com/rohmanhakim/jsxtree/internal/metadata"
)

type recordedError struct {
	packageName string
	action      string
	cause       metadata.ErrorCause
	attrs       []metadata.Attribute
}

type recordedOmission struct {
	kind metadata.OmissionKind
	name string
}

// metadataSinkMock is a mock for metadata.MetadataSink
type metadataSinkMock struct {
	errors    []recordedError
	omissions []recordedOmission
}

func (m *metadataSinkMock) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	details string,
	attrs []metadata.Attribute,
) {
	m.errors = append(m.errors, recordedError{
		packageName: packageName,
		action:      action,
		cause:       cause,
		attrs:       attrs,
	})
}

func (m *metadataSinkMock) RecordUnrecognizedTag(tagName string, attrs []metadata.Attribute) {}

func (m *metadataSinkMock) RecordOmission(kind metadata.OmissionKind, name string, attrs []metadata.Attribute) {
	m.omissions = append(m.omissions, recordedOmission{kind: kind, name: name})
}

func (m *metadataSinkMock) RecordArtifact(kind metadata.ArtifactKind, path string, attrs []metadata.Attribute) {
}
