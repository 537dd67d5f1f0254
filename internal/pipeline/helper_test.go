package pipeline_test

import (
	"testing"
	"time"

	"github.com/rohmanhakim/jsxtree/internal/mdconvert"
	"github.com/rohmanhakim/jsxtree/internal/metadata"
	"github.com/rohmanhakim/jsxtree/internal/normalize"
	"github.com/rohmanhakim/jsxtree/internal/source"
	"github.com/rohmanhakim/jsxtree/internal/storage"
	"github.com/rohmanhakim/jsxtree/internal/tree"
	"github.com/rohmanhakim/jsxtree/pkg/failure"
	"github.com/rohmanhakim/jsxtree/pkg/hashutil"
	"github.com/stretchr/testify/mock"
)

// mockFinalizer is a test double that captures final compile statistics
type mockFinalizer struct {
	recordedStats *capturedStats
}

type capturedStats struct {
	totalFiles     int
	totalErrors    int
	totalArtifacts int
	duration       time.Duration
}

func newMockFinalizer(t *testing.T) *mockFinalizer {
	t.Helper()
	return &mockFinalizer{}
}

func (m *mockFinalizer) RecordFinalStats(
	totalFiles int,
	totalErrors int,
	totalArtifacts int,
	duration time.Duration,
) {
	m.recordedStats = &capturedStats{
		totalFiles:     totalFiles,
		totalErrors:    totalErrors,
		totalArtifacts: totalArtifacts,
		duration:       duration,
	}
}

// metadataSinkMock captures recorded errors
type metadataSinkMock struct {
	errorCauses  []metadata.ErrorCause
	errorActions []string
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
	m.errorActions = append(m.errorActions, action)
}

func (m *metadataSinkMock) RecordUnrecognizedTag(tagName string, attrs []metadata.Attribute) {}

func (m *metadataSinkMock) RecordOmission(kind metadata.OmissionKind, name string, attrs []metadata.Attribute) {
}

func (m *metadataSinkMock) RecordArtifact(kind metadata.ArtifactKind, path string, attrs []metadata.Attribute) {
}

func classified(v any) failure.ClassifiedError {
	if v == nil {
		return nil
	}
	return v.(failure.ClassifiedError)
}

type loaderMock struct {
	mock.Mock
}

func (m *loaderMock) Load(path string) (source.Document, failure.ClassifiedError) {
	args := m.Called(path)
	return args.Get(0).(source.Document), classified(args.Get(1))
}

type compilerMock struct {
	mock.Mock
}

func (m *compilerMock) Compile(doc source.Document) ([]tree.Node, failure.ClassifiedError) {
	args := m.Called(doc)
	var nodes []tree.Node
	if args.Get(0) != nil {
		nodes = args.Get(0).([]tree.Node)
	}
	return nodes, classified(args.Get(1))
}

type rendererMock struct {
	mock.Mock
}

func (m *rendererMock) RenderString(nodes []tree.Node) (string, error) {
	args := m.Called(nodes)
	return args.String(0), args.Error(1)
}

type converterMock struct {
	mock.Mock
}

func (m *converterMock) Convert(renderedHTML []byte) (mdconvert.ConversionResult, failure.ClassifiedError) {
	args := m.Called(renderedHTML)
	return args.Get(0).(mdconvert.ConversionResult), classified(args.Get(1))
}

type normalizerMock struct {
	mock.Mock
}

func (m *normalizerMock) Normalize(
	input normalize.Input,
	param normalize.NormalizeParam,
) (normalize.NormalizedDoc, failure.ClassifiedError) {
	args := m.Called(input, param)
	return args.Get(0).(normalize.NormalizedDoc), classified(args.Get(1))
}

type storageMock struct {
	mock.Mock
}

func (m *storageMock) Write(
	outputDir string,
	normalizedDoc normalize.NormalizedDoc,
	hashAlgo hashutil.HashAlgo,
) (storage.WriteResult, failure.ClassifiedError) {
	args := m.Called(outputDir, normalizedDoc, hashAlgo)
	return args.Get(0).(storage.WriteResult), classified(args.Get(1))
}

type stageMocks struct {
	sink       *metadataSinkMock
	finalizer  *mockFinalizer
	loader     *loaderMock
	compiler   *compilerMock
	renderer   *rendererMock
	converter  *converterMock
	normalizer *normalizerMock
	storage    *storageMock
}

func newStageMocks(t *testing.T) *stageMocks {
	t.Helper()
	return &stageMocks{
		sink:       &metadataSinkMock{},
		finalizer:  newMockFinalizer(t),
		loader:     new(loaderMock),
		compiler:   new(compilerMock),
		renderer:   new(rendererMock),
		converter:  new(converterMock),
		normalizer: new(normalizerMock),
		storage:    new(storageMock),
	}
}

func (s *stageMocks) assertExpectations(t *testing.T) {
	t.Helper()
	s.loader.AssertExpectations(t)
	s.compiler.AssertExpectations(t)
	s.renderer.AssertExpectations(t)
	s.converter.AssertExpectations(t)
	s.normalizer.AssertExpectations(t)
	s.storage.AssertExpectations(t)
}

func sampleNodes() []tree.Node {
	return []tree.Node{&tree.Text{Text: "hello"}}
}

func sampleDoc(path string) normalize.NormalizedDoc {
	return normalize.NewNormalizedDoc(
		normalize.NewFrontmatter("t", path, normalize.FormatJSON, 1, "fp", "ch", "dev"),
		[]byte(`[]`),
	)
}
