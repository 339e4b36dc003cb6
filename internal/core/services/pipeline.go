package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/mindsonic-labs/mindsonic/internal/core/domain"
	"github.com/mindsonic-labs/mindsonic/internal/core/ports/driven"
	"github.com/mindsonic-labs/mindsonic/internal/core/ports/driving"
	"github.com/mindsonic-labs/mindsonic/internal/logger"
)

// Ensure Runner implements the interface.
var _ driving.PipelineRunner = (*Runner)(nil)

// Runner executes the three-stage ingestion flow: scan the knowledge
// tree, process each file-type bucket in its own goroutine, then run
// the terminal creative step once every bucket has drained.
type Runner struct {
	finder    *Finder
	processor *Processor
	llm       driven.LLMService
}

// NewRunner creates a pipeline runner. The LLM service is optional;
// when nil the terminal step is skipped with a warning.
func NewRunner(finder *Finder, processor *Processor, llm driven.LLMService) *Runner {
	return &Runner{
		finder:    finder,
		processor: processor,
		llm:       llm,
	}
}

// Run executes the pipeline. Per-file failures are recorded in the
// report and never abort the run; the error return covers discovery
// failures only.
func (r *Runner) Run(ctx context.Context, query string) (*driving.RunReport, error) {
	buckets, err := r.finder.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan knowledge tree: %w", err)
	}

	total := 0
	for _, records := range buckets {
		total += len(records)
	}
	logger.Section(fmt.Sprintf("Processing %d files across %d buckets", total, len(buckets)))

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		reports = make(map[domain.FileType]driving.BucketReport, len(buckets))
	)

	for ft, records := range buckets {
		if len(records) == 0 {
			continue
		}
		wg.Add(1)
		go func(ft domain.FileType, records []domain.FileRecord) {
			defer wg.Done()
			report := r.processor.ProcessBucket(ctx, ft, records)
			mu.Lock()
			reports[ft] = report
			mu.Unlock()
		}(ft, records)
	}
	wg.Wait()

	result := &driving.RunReport{}

	// Stable bucket order in the report regardless of goroutine timing.
	for _, ft := range domain.AllFileTypes() {
		if report, ok := reports[ft]; ok {
			result.Buckets = append(result.Buckets, report)
		}
	}

	r.terminalStep(ctx, query, result)
	return result, nil
}

// terminalStep produces the research answer and closing poem. It runs
// strictly after every bucket has finished, so the answer can draw on
// everything ingested in this run. The step is best effort: by this
// point files have been processed and archived, so a provider failure
// here is logged and must never discard the batch report.
func (r *Runner) terminalStep(ctx context.Context, query string, result *driving.RunReport) {
	if r.llm == nil {
		logger.Warn("no language model configured, skipping the research step")
		return
	}
	if query == "" {
		logger.Warn("no query provided, skipping the research step")
		return
	}

	answer, err := r.llm.Generate(ctx, researchPrompt(query), driven.GenerateOptions{
		MaxTokens:   1024,
		Temperature: 0.2,
	})
	if err != nil {
		logger.Error("research answer: %v", err)
		return
	}
	result.Answer = answer

	poem, err := r.llm.Generate(ctx, poemPrompt(query), driven.GenerateOptions{
		MaxTokens:   512,
		Temperature: 0.9,
	})
	if err != nil {
		logger.Error("closing poem: %v", err)
		return
	}
	result.Poem = poem
}

func researchPrompt(query string) string {
	return fmt.Sprintf(
		"You are a meticulous research assistant. Answer the following "+
			"request as thoroughly and accurately as you can.\n\nRequest:\n%s",
		query,
	)
}

func poemPrompt(query string) string {
	return fmt.Sprintf(
		"Write a short poem, at most twelve lines, inspired by the "+
			"following topic.\n\nTopic:\n%s",
		query,
	)
}
