package storage

// Persistence

type WriteResult struct {
	sourceHash  string // identity (filename without extension)
	path        string
	contentHash string
	written     bool
}

func NewWriteResult(
	sourceHash string,
	path string,
	contentHash string,
	written bool,
) WriteResult {
	return WriteResult{
		sourceHash:  sourceHash,
		path:        path,
		contentHash: contentHash,
		written:     written,
	}
}

func (w *WriteResult) SourceHash() string {
	return w.sourceHash
}

func (w *WriteResult) Path() string {
	return w.path
}

func (w *WriteResult) ContentHash() string {
	return w.contentHash
}

// Written is false when the sink ran in dry-run mode.
func (w *WriteResult) Written() bool {
	return w.written
}
