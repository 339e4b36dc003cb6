package driving

import (
	"context"

	"github.com/mindsonic-labs/mindsonic/internal/core/domain"
)

// FileStatus is the per-file outcome of one processing attempt.
// Every discovered file gets exactly one status line.
type FileStatus struct {
	// Record is the file that was processed.
	Record domain.FileRecord

	// Err is nil on success. Failed files are left in place under the
	// knowledge root for retry; only successful files are archived.
	Err error
}

// OK returns true if the file was processed and archived.
func (s FileStatus) OK() bool {
	return s.Err == nil
}

// BucketReport summarises processing of one file-type bucket.
type BucketReport struct {
	// Type is the bucket's file type.
	Type domain.FileType

	// Statuses holds one entry per file, in Finder listing order.
	Statuses []FileStatus
}

// Processed returns how many files in the bucket succeeded.
func (r BucketReport) Processed() int {
	n := 0
	for _, s := range r.Statuses {
		if s.OK() {
			n++
		}
	}
	return n
}

// Failed returns how many files in the bucket failed.
func (r BucketReport) Failed() int {
	return len(r.Statuses) - r.Processed()
}

// RunReport aggregates a full pipeline run.
type RunReport struct {
	// Buckets holds one report per non-empty file-type bucket, in the
	// stable bucket order of domain.AllFileTypes.
	Buckets []BucketReport

	// Answer is the research answer produced by the terminal step,
	// empty when no LLM is configured.
	Answer string

	// Poem is the closing poem, empty when no LLM is configured.
	Poem string
}

// PipelineRunner executes the fixed three-stage ingestion flow:
// find files, process each type bucket concurrently, then run the
// terminal creative step once every bucket has finished.
type PipelineRunner interface {
	// Run executes the pipeline. Per-file failures never abort the run;
	// the error return is reserved for configuration and discovery
	// failures that prevent the batch from starting.
	Run(ctx context.Context, query string) (*RunReport, error)
}

// Watcher observes the knowledge tree and ingests files as they appear.
type Watcher interface {
	// Watch blocks until ctx is cancelled, processing files on arrival.
	Watch(ctx context.Context) error
}
