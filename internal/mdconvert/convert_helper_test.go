package mdconvert_test

import (
	"time"

	"github.com/rohmanhakim/jsxtree/internal/metadata"
)

// metadataSinkMock is a mock for metadata.MetadataSink
type metadataSinkMock struct {
	recordErrorCalled bool
	recordErrorCause  metadata.ErrorCause
}

func (m *metadataSinkMock) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	details string,
	attrs []metadata.Attribute,
) {
	m.recordErrorCalled = true
	m.recordErrorCause = cause
}

func (m *metadataSinkMock) RecordUnrecognizedTag(tagName string, attrs []metadata.Attribute) {}

func (m *metadataSinkMock) RecordOmission(kind metadata.OmissionKind, name string, attrs []metadata.Attribute) {
}

func (m *metadataSinkMock) RecordArtifact(kind metadata.ArtifactKind, path string, attrs []metadata.Attribute) {
}
