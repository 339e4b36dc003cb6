package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mindsonic-labs/mindsonic/internal/adapters/driven/config/file"
	embeddingopenai "github.com/mindsonic-labs/mindsonic/internal/adapters/driven/embedding/openai"
	llmopenai "github.com/mindsonic-labs/mindsonic/internal/adapters/driven/llm/openai"
	"github.com/mindsonic-labs/mindsonic/internal/adapters/driven/rag/sqlite"
	"github.com/mindsonic-labs/mindsonic/internal/chunkers"
	"github.com/mindsonic-labs/mindsonic/internal/core/ports/driven"
	"github.com/mindsonic-labs/mindsonic/internal/core/services"
	"github.com/mindsonic-labs/mindsonic/internal/loaders"
	"github.com/mindsonic-labs/mindsonic/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	flagVerbose   bool
	flagConfigDir string
)

var rootCmd = &cobra.Command{
	Use:   "mindsonic",
	Short: "Ingest a knowledge tree into a local RAG store",
	Long: `MindSonic scans a knowledge directory, extracts text from the files it
finds (text, csv, docx, html, markdown, pdf, pptx, xlsx), chunks and
stores the content in a local database, and archives processed files.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(flagVerbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config", "", "config directory (default ~/.mindsonic)")
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// loadSettings opens the config store and resolves runtime settings.
func loadSettings() (file.Settings, error) {
	store, err := file.NewConfigStore(flagConfigDir)
	if err != nil {
		return file.Settings{}, fmt.Errorf("open config: %w", err)
	}
	return file.LoadSettings(store)
}

// pipeline bundles the wired components of one run.
type pipeline struct {
	runner    *services.Runner
	processor *services.Processor
	store     *sqlite.Store
	llm       driven.LLMService
}

// close releases the pipeline's resources.
func (p *pipeline) close() {
	if p.llm != nil {
		_ = p.llm.Close()
	}
	_ = p.store.Close()
}

// buildPipeline wires the full ingestion pipeline from settings.
// Without an API key the embedder and LLM stay nil and the affected
// steps degrade gracefully.
func buildPipeline(settings file.Settings) (*pipeline, error) {
	registry := loaders.NewRegistry()
	loaders.RegisterDefaults(registry)

	chunkerRegistry := chunkers.NewRegistry()
	if err := chunkers.RegisterDefaults(chunkerRegistry, settings.ChunkSize, settings.ChunkOverlap); err != nil {
		return nil, fmt.Errorf("configure chunker: %w", err)
	}
	chunker, err := chunkerRegistry.Default()
	if err != nil {
		return nil, fmt.Errorf("configure chunker: %w", err)
	}

	var embedder driven.EmbeddingService
	var llm driven.LLMService
	if settings.APIKey != "" {
		embedder, err = embeddingopenai.NewEmbeddingService(embeddingopenai.Config{
			APIKey: settings.APIKey,
			Model:  settings.EmbeddingModel,
		})
		if err != nil {
			return nil, fmt.Errorf("configure embedding service: %w", err)
		}
		llm, err = llmopenai.NewLLMService(llmopenai.Config{
			APIKey: settings.APIKey,
			Model:  settings.LLMModel,
		})
		if err != nil {
			return nil, fmt.Errorf("configure language model: %w", err)
		}
	} else {
		logger.Warn("no API key configured: chunks are stored without embeddings")
	}

	store, err := sqlite.NewStore(
		settings.StorageDir,
		settings.Collection,
		settings.AllowReset,
		registry,
		chunker,
		embedder,
	)
	if err != nil {
		return nil, fmt.Errorf("open ingestion store: %w", err)
	}

	archiver := services.NewArchiver(settings.ArchiveDir)
	processor := services.NewProcessor(registry, chunker, store, archiver)
	runner := services.NewRunner(services.NewFinder(settings.KnowledgeDir), processor, llm)

	return &pipeline{
		runner:    runner,
		processor: processor,
		store:     store,
		llm:       llm,
	}, nil
}
