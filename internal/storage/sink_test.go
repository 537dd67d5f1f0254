package storage_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rohmanhakim/jsxtree/internal/metadata"
	"github.com/rohmanhakim/jsxtree/internal/normalize"
	"github.com/rohmanhakim/jsxtree/internal/storage"
	"github.com/rohmanhakim/jsxtree/pkg/failure"
	"github.com/rohmanhakim/jsxtree/pkg/hashutil"
)

func TestLocalSink_Write_Success(t *testing.T) {
	tests := []struct {
		name         string
		hashAlgo     hashutil.HashAlgo
		sourcePath   string
		format       normalize.Format
		content      string
		contentHash  string
		expectedExt  string
		expectedKind metadata.ArtifactKind
	}{
		{
			name:         "json output with SHA256",
			hashAlgo:     hashutil.HashAlgoSHA256,
			sourcePath:   "docs/page1.jsx",
			format:       normalize.FormatJSON,
			content:      `[{"type":"text","text":"one"}]`,
			contentHash:  "abc123def456",
			expectedExt:  ".json",
			expectedKind: metadata.ArtifactJSON,
		},
		{
			name:         "markdown output with BLAKE3",
			hashAlgo:     hashutil.HashAlgoBLAKE3,
			sourcePath:   "docs/page2.jsx",
			format:       normalize.FormatMarkdown,
			content:      "# Page 2\n\nThis is the content of page 2.",
			contentHash:  "xyz789uvw012",
			expectedExt:  ".md",
			expectedKind: metadata.ArtifactMarkdown,
		},
		{
			name:         "html output",
			hashAlgo:     hashutil.HashAlgoBLAKE3,
			sourcePath:   "page3.jsx",
			format:       normalize.FormatHTML,
			content:      `<div class="jsx-parser"><p>three</p></div>`,
			contentHash:  "h3",
			expectedExt:  ".html",
			expectedKind: metadata.ArtifactHTML,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			mockSink := &metadataSinkMock{}
			sink := storage.NewLocalSink(mockSink, false)

			doc := createTestNormalizedDoc(tt.sourcePath, tt.format, tt.contentHash, []byte(tt.content))

			result, writeErr := sink.Write(tempDir, doc, tt.hashAlgo)
			if writeErr != nil {
				t.Fatalf("expected no error, got: %v", writeErr)
			}

			expectedHash := computeExpectedSourceHash(tt.sourcePath, tt.hashAlgo)
			if result.SourceHash() != expectedHash {
				t.Errorf("expected SourceHash %s, got %s", expectedHash, result.SourceHash())
			}
			if result.ContentHash() != tt.contentHash {
				t.Errorf("expected ContentHash %s, got %s", tt.contentHash, result.ContentHash())
			}
			if !result.Written() {
				t.Error("expected Written to be true")
			}

			expectedPath := filepath.Join(tempDir, expectedHash+tt.expectedExt)
			if result.Path() != expectedPath {
				t.Errorf("expected Path %s, got %s", expectedPath, result.Path())
			}

			writtenContent, err := os.ReadFile(expectedPath)
			if err != nil {
				t.Fatalf("failed to read written file: %v", err)
			}
			if string(writtenContent) != tt.content {
				t.Errorf("expected content %q, got %q", tt.content, string(writtenContent))
			}

			if mockSink.recordErrorCalled {
				t.Error("expected RecordError not to be called for successful write")
			}
			if !mockSink.recordArtifactCalled {
				t.Error("expected RecordArtifact to be called")
			}
			if mockSink.recordArtifactKind != tt.expectedKind {
				t.Errorf("expected artifact kind %s, got %s", tt.expectedKind, mockSink.recordArtifactKind)
			}
			if mockSink.recordArtifactPath != expectedPath {
				t.Errorf("expected artifact path %s, got %s", expectedPath, mockSink.recordArtifactPath)
			}
			if v := findAttrValue(mockSink.recordArtifactAttrs, metadata.AttrSource); v != tt.sourcePath {
				t.Errorf("expected AttrSource %s, got %s", tt.sourcePath, v)
			}
		})
	}
}

func TestLocalSink_Write_Idempotent(t *testing.T) {
	tempDir := t.TempDir()
	mockSink := &metadataSinkMock{}
	sink := storage.NewLocalSink(mockSink, false)

	doc := createTestNormalizedDoc("page.jsx", normalize.FormatJSON, "hash123", []byte("[]"))

	result1, err1 := sink.Write(tempDir, doc, hashutil.HashAlgoSHA256)
	if err1 != nil {
		t.Fatalf("first write failed: %v", err1)
	}

	mockSink.Reset()

	result2, err2 := sink.Write(tempDir, doc, hashutil.HashAlgoSHA256)
	if err2 != nil {
		t.Fatalf("second write failed: %v", err2)
	}

	if result1.SourceHash() != result2.SourceHash() {
		t.Error("expected same SourceHash for idempotent writes")
	}
	if result1.Path() != result2.Path() {
		t.Error("expected same Path for idempotent writes")
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		t.Fatalf("failed to list output dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected exactly one file, got %d", len(entries))
	}
}

func TestLocalSink_Write_DryRun(t *testing.T) {
	tempDir := filepath.Join(t.TempDir(), "out")
	mockSink := &metadataSinkMock{}
	sink := storage.NewLocalSink(mockSink, true)

	doc := createTestNormalizedDoc("page.jsx", normalize.FormatHTML, "hash123", []byte("<p>x</p>"))

	result, err := sink.Write(tempDir, doc, hashutil.HashAlgoBLAKE3)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if result.Written() {
		t.Error("expected Written to be false in dry-run mode")
	}
	if !strings.HasSuffix(result.Path(), ".html") {
		t.Errorf("expected planned path to end with .html, got %s", result.Path())
	}
	if _, statErr := os.Stat(tempDir); !os.IsNotExist(statErr) {
		t.Errorf("expected output dir not to be created, stat err: %v", statErr)
	}
	if mockSink.recordArtifactCalled {
		t.Error("expected RecordArtifact not to be called in dry-run mode")
	}
}

func TestLocalSink_Write_UnsupportedHashAlgo(t *testing.T) {
	mockSink := &metadataSinkMock{}
	sink := storage.NewLocalSink(mockSink, false)

	doc := createTestNormalizedDoc("page.jsx", normalize.FormatJSON, "h", []byte("[]"))

	_, err := sink.Write(t.TempDir(), doc, hashutil.HashAlgo("md5"))
	if err == nil {
		t.Fatal("expected error for unsupported hash algorithm")
	}

	storageErr, ok := err.(*storage.StorageError)
	if !ok {
		t.Fatalf("expected *storage.StorageError, got %T", err)
	}
	if storageErr.Cause != storage.ErrCauseHashComputationFailed {
		t.Errorf("expected cause %s, got %s", storage.ErrCauseHashComputationFailed, storageErr.Cause)
	}
	if !mockSink.recordErrorCalled {
		t.Error("expected RecordError to be called")
	}
	if mockSink.recordErrorCause != metadata.CauseInvariantViolation {
		t.Errorf("expected cause %v, got %v", metadata.CauseInvariantViolation, mockSink.recordErrorCause)
	}
}

func TestLocalSink_Write_OutputDirIsFile(t *testing.T) {
	tempDir := t.TempDir()
	blocker := filepath.Join(tempDir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create blocker file: %v", err)
	}

	mockSink := &metadataSinkMock{}
	sink := storage.NewLocalSink(mockSink, false)
	doc := createTestNormalizedDoc("page.jsx", normalize.FormatJSON, "h", []byte("[]"))

	_, err := sink.Write(filepath.Join(blocker, "out"), doc, hashutil.HashAlgoSHA256)
	if err == nil {
		t.Fatal("expected error when output dir is below a regular file")
	}
	if err.Severity() != failure.SeverityFatal {
		t.Errorf("expected fatal severity, got %v", err.Severity())
	}
	if !mockSink.recordErrorCalled {
		t.Error("expected RecordError to be called")
	}
	if mockSink.recordErrorCause != metadata.CauseStorageFailure {
		t.Errorf("expected cause %v, got %v", metadata.CauseStorageFailure, mockSink.recordErrorCause)
	}
	if mockSink.recordErrorPackageName != "storage" || mockSink.recordErrorAction != "LocalSink.Write" {
		t.Errorf("unexpected origin %s %s", mockSink.recordErrorPackageName, mockSink.recordErrorAction)
	}
	if findAttrValue(mockSink.recordErrorAttrs, metadata.AttrWritePath) == "" {
		t.Error("expected AttrWritePath to be recorded")
	}
}
