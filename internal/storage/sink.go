package storage

import (
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rohmanhakim/jsxtree/internal/metadata"
	"github.com/rohmanhakim/jsxtree/internal/normalize"
	"github.com/rohmanhakim/jsxtree/pkg/failure"
	"github.com/rohmanhakim/jsxtree/pkg/fileutil"
	"github.com/rohmanhakim/jsxtree/pkg/hashutil"
)

/*
Responsibilities
- Persist compiled documents
- Ensure deterministic filenames

Output Characteristics
- Stable directory layout: <outputDir>/<source hash>.<format extension>
- Idempotent writes
- Overwrite-safe reruns
*/

type Sink interface {
	Write(
		outputDir string,
		normalizedDoc normalize.NormalizedDoc,
		hashAlgo hashutil.HashAlgo,
	) (WriteResult, failure.ClassifiedError)
}

type LocalSink struct {
	metadataSink metadata.MetadataSink
	dryRun       bool
}

func NewLocalSink(
	metadataSink metadata.MetadataSink,
	dryRun bool,
) LocalSink {
	return LocalSink{
		metadataSink: metadataSink,
		dryRun:       dryRun,
	}
}

func (s *LocalSink) Write(
	outputDir string,
	normalizedDoc normalize.NormalizedDoc,
	hashAlgo hashutil.HashAlgo,
) (WriteResult, failure.ClassifiedError) {
	sourcePath := normalizedDoc.Frontmatter().SourcePath()
	writeResult, err := write(outputDir, normalizedDoc, hashAlgo, s.dryRun)
	if err != nil {
		var storageError *StorageError
		errors.As(err, &storageError)
		s.metadataSink.RecordError(
			time.Now(),
			"storage",
			"LocalSink.Write",
			mapStorageErrorToMetadataCause(storageError),
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrSource, sourcePath),
				metadata.NewAttr(metadata.AttrWritePath, storageError.Path),
			},
		)
		return WriteResult{}, storageError
	}
	if !writeResult.Written() {
		return writeResult, nil
	}
	s.metadataSink.RecordArtifact(
		artifactKind(normalizedDoc.Frontmatter().Format()),
		writeResult.Path(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrWritePath, writeResult.Path()),
			metadata.NewAttr(metadata.AttrSource, sourcePath),
			metadata.NewAttr(metadata.AttrSourceHash, writeResult.SourceHash()),
			metadata.NewAttr(metadata.AttrContentHash, writeResult.ContentHash()),
		},
	)
	return writeResult, nil
}

func write(
	outputDir string,
	normalizedDoc normalize.NormalizedDoc,
	hashAlgo hashutil.HashAlgo,
	dryRun bool,
) (WriteResult, failure.ClassifiedError) {
	frontmatter := normalizedDoc.Frontmatter()

	sourceHash, err := hashutil.ShortHash([]byte(frontmatter.SourcePath()), hashAlgo)
	if err != nil {
		return WriteResult{}, &StorageError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseHashComputationFailed,
			Path:      "",
		}
	}

	filename := sourceHash + "." + frontmatter.Format().Extension()
	fullPath := filepath.Join(outputDir, filename)

	if dryRun {
		return NewWriteResult(sourceHash, fullPath, frontmatter.ContentHash(), false), nil
	}

	if err := fileutil.EnsureDir(outputDir); err != nil {
		return WriteResult{}, &StorageError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCausePathError,
			Path:      outputDir,
		}
	}

	if err := os.WriteFile(fullPath, normalizedDoc.Content(), 0644); err != nil {
		cause := ErrCauseWriteFailure
		retryable := false
		if errors.Is(err, syscall.ENOSPC) {
			cause = ErrCauseDiskFull
			retryable = true
		}
		return WriteResult{}, &StorageError{
			Message:   err.Error(),
			Retryable: retryable,
			Cause:     cause,
			Path:      fullPath,
		}
	}

	return NewWriteResult(sourceHash, fullPath, frontmatter.ContentHash(), true), nil
}

func artifactKind(format normalize.Format) metadata.ArtifactKind {
	switch format {
	case normalize.FormatHTML:
		return metadata.ArtifactHTML
	case normalize.FormatMarkdown:
		return metadata.ArtifactMarkdown
	default:
		return metadata.ArtifactJSON
	}
}
