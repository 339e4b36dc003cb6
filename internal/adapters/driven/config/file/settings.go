package file

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/mindsonic-labs/mindsonic/internal/core/domain"
	"github.com/mindsonic-labs/mindsonic/internal/core/ports/driven"
	"github.com/mindsonic-labs/mindsonic/internal/logger"
)

// Default settings values.
const (
	DefaultKnowledgeDir = "knowledge"
	DefaultArchiveDir   = "archive"
	DefaultOutputDir    = "output"
	DefaultCollection   = "mindsonic"
	DefaultChunkSize    = 400
	DefaultChunkOverlap = 100
)

// Settings is the resolved runtime configuration for a pipeline run.
// Values come from the config store, overridden by environment
// variables where noted. No package-level state: the settings travel
// explicitly to whatever component needs them.
type Settings struct {
	// KnowledgeDir is the root of the tree to ingest.
	KnowledgeDir string

	// ArchiveDir receives processed files, mirroring KnowledgeDir paths.
	ArchiveDir string

	// OutputDir receives generated artefacts such as narration audio.
	OutputDir string

	// StorageDir holds the ingestion database. Empty uses the default
	// under the user's home directory.
	StorageDir string

	// Collection names the document collection in the store.
	Collection string

	// AllowReset permits destructive collection resets.
	AllowReset bool

	// ChunkSize is the maximum chunk length in bytes.
	ChunkSize int

	// ChunkOverlap is the overlap between consecutive chunks in bytes.
	ChunkOverlap int

	// APIKey is the OpenAI credential. Empty disables embedding, the
	// terminal research step and narration.
	APIKey string

	// EmbeddingModel selects the embedding model. Empty uses the default.
	EmbeddingModel string

	// LLMModel selects the chat model. Empty uses the default.
	LLMModel string

	// TTSModel selects the speech model. Empty uses the default.
	TTSModel string

	// TTSVoice forces a voice. Empty selects one by language.
	TTSVoice string
}

// LoadSettings resolves settings from the config store and the
// environment. A .env file in the working directory is honoured; the
// OPENAI_API_KEY environment variable wins over the stored key.
func LoadSettings(store driven.ConfigStore) (Settings, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Debug("settings: no .env loaded: %v", err)
	}

	s := Settings{
		KnowledgeDir:   stringOr(store, "paths.knowledge", DefaultKnowledgeDir),
		ArchiveDir:     stringOr(store, "paths.archive", DefaultArchiveDir),
		OutputDir:      stringOr(store, "paths.output", DefaultOutputDir),
		StorageDir:     store.GetString("paths.storage"),
		Collection:     stringOr(store, "rag.collection", DefaultCollection),
		AllowReset:     store.GetBool("rag.allow_reset"),
		ChunkSize:      intOr(store, "rag.chunk_size", DefaultChunkSize),
		ChunkOverlap:   intOr(store, "rag.chunk_overlap", DefaultChunkOverlap),
		APIKey:         store.GetString("openai.api_key"),
		EmbeddingModel: store.GetString("openai.embedding_model"),
		LLMModel:       store.GetString("openai.llm_model"),
		TTSModel:       store.GetString("openai.tts_model"),
		TTSVoice:       store.GetString("openai.tts_voice"),
	}

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		s.APIKey = key
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate rejects settings the pipeline cannot run with.
func (s Settings) Validate() error {
	if s.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk size %d must be positive", domain.ErrInvalidChunkConfig, s.ChunkSize)
	}
	if s.ChunkOverlap < 0 || s.ChunkOverlap >= s.ChunkSize {
		return fmt.Errorf("%w: overlap %d must be in [0, %d)", domain.ErrInvalidChunkConfig, s.ChunkOverlap, s.ChunkSize)
	}
	return nil
}

func stringOr(store driven.ConfigStore, key, fallback string) string {
	if v := store.GetString(key); v != "" {
		return v
	}
	return fallback
}

func intOr(store driven.ConfigStore, key string, fallback int) int {
	if _, ok := store.Get(key); ok {
		return store.GetInt(key)
	}
	return fallback
}
