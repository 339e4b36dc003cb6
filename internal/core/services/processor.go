package services

import (
	"context"
	"fmt"

	"github.com/mindsonic-labs/mindsonic/internal/core/domain"
	"github.com/mindsonic-labs/mindsonic/internal/core/ports/driven"
	"github.com/mindsonic-labs/mindsonic/internal/core/ports/driving"
	"github.com/mindsonic-labs/mindsonic/internal/logger"
)

// Processor ingests one bucket of files: resolve a loader, hand the
// file to the sink, archive on success. Failures are recorded per file
// and never stop the rest of the bucket.
type Processor struct {
	registry driven.LoaderRegistry
	chunker  driven.Chunker
	sink     driven.IngestionSink
	archiver *Archiver
}

// NewProcessor creates a processor. The chunker is the default applied
// to every file type; the sink may override it per call if nil.
func NewProcessor(
	registry driven.LoaderRegistry,
	chunker driven.Chunker,
	sink driven.IngestionSink,
	archiver *Archiver,
) *Processor {
	return &Processor{
		registry: registry,
		chunker:  chunker,
		sink:     sink,
		archiver: archiver,
	}
}

// ProcessBucket ingests every file in the bucket sequentially and
// returns one status per file, in the order the records were given.
func (p *Processor) ProcessBucket(ctx context.Context, fileType domain.FileType, records []domain.FileRecord) driving.BucketReport {
	report := driving.BucketReport{
		Type:     fileType,
		Statuses: make([]driving.FileStatus, 0, len(records)),
	}

	for _, record := range records {
		err := p.processOne(ctx, record)
		if err != nil {
			logger.Error("process %s: %v", record.RelPath, err)
		} else {
			logger.Debug("processed %s", record.RelPath)
		}
		report.Statuses = append(report.Statuses, driving.FileStatus{
			Record: record,
			Err:    err,
		})
	}

	return report
}

// ProcessFile ingests a single file outside of a bucket run. The watch
// loop uses this for files that appear after the initial scan.
func (p *Processor) ProcessFile(ctx context.Context, record domain.FileRecord) error {
	return p.processOne(ctx, record)
}

func (p *Processor) processOne(ctx context.Context, record domain.FileRecord) error {
	loader, err := p.registry.LoaderFor(record.Type)
	if err != nil {
		return fmt.Errorf("resolve loader: %w", err)
	}

	if err := p.sink.Add(ctx, record.Path, record.Type, loader, p.chunker); err != nil {
		return fmt.Errorf("ingest: %w", err)
	}

	// Only successfully ingested files leave the knowledge tree.
	if err := p.archiver.Archive(record); err != nil {
		logger.Warn("archive %s: %v (file left in place)", record.RelPath, err)
	}
	return nil
}
