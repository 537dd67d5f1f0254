package pipeline

import (
	"github.com/rohmanhakim/jsxtree/internal/normalize"
	"github.com/rohmanhakim/jsxtree/internal/storage"
	"github.com/rohmanhakim/jsxtree/internal/tree"
	"github.com/rohmanhakim/jsxtree/pkg/failure"
	"github.com/rohmanhakim/jsxtree/pkg/hashutil"
)

type Param struct {
	OutputDir  string
	Format     normalize.Format
	HashAlgo   hashutil.HashAlgo
	AppVersion string
}

// Result is the outcome for one input. Err is set when any stage failed;
// the fields after the failing stage are zero.
type Result struct {
	SourcePath string
	Nodes      []tree.Node
	Doc        normalize.NormalizedDoc
	Write      storage.WriteResult
	Err        failure.ClassifiedError
}

type Execution struct {
	Results []Result
}

// Failed returns the number of inputs that did not produce a document.
func (e Execution) Failed() int {
	failed := 0
	for _, r := range e.Results {
		if r.Err != nil {
			failed++
		}
	}
	return failed
}

// Written returns the number of artifacts written to disk.
func (e Execution) Written() int {
	written := 0
	for _, r := range e.Results {
		if r.Err == nil && r.Write.Written() {
			written++
		}
	}
	return written
}
