package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/mindsonic-labs/mindsonic/internal/core/domain"
	"github.com/mindsonic-labs/mindsonic/internal/core/ports/driven"
	"github.com/mindsonic-labs/mindsonic/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.IngestionSink = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	doc_id     TEXT NOT NULL,
	collection TEXT NOT NULL,
	source     TEXT NOT NULL,
	file_type  TEXT NOT NULL,
	content    TEXT NOT NULL,
	metadata   TEXT NOT NULL DEFAULT '{}',
	ingested_at DATETIME NOT NULL,
	PRIMARY KEY (doc_id, collection)
);

CREATE TABLE IF NOT EXISTS chunks (
	id         TEXT PRIMARY KEY,
	doc_id     TEXT NOT NULL,
	collection TEXT NOT NULL,
	content    TEXT NOT NULL,
	position   INTEGER NOT NULL,
	embedding  BLOB,
	metadata   TEXT NOT NULL DEFAULT '{}'
);

CREATE INDEX IF NOT EXISTS idx_chunks_doc ON chunks(doc_id, collection);
`

// Store persists ingested documents and chunks in a SQLite database.
// Re-ingesting a source replaces its previous document and chunks, so
// repeated runs over the same file stay idempotent.
type Store struct {
	db         *sql.DB
	path       string
	collection string
	allowReset bool

	registry driven.LoaderRegistry
	chunker  driven.Chunker
	embedder driven.EmbeddingService
}

// NewStore opens (or creates) the ingestion database under dataDir.
// The registry and chunker are the defaults used when Add is called
// with nil overrides. The embedder is optional; when nil chunks are
// stored without vectors.
func NewStore(
	dataDir, collection string,
	allowReset bool,
	registry driven.LoaderRegistry,
	chunker driven.Chunker,
	embedder driven.EmbeddingService,
) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".mindsonic", "data")
	}
	if collection == "" {
		collection = "default"
	}

	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "ingest.db")

	// WAL mode for better concurrency between bucket workers.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{
		db:         db,
		path:       dbPath,
		collection: collection,
		allowReset: allowReset,
		registry:   registry,
		chunker:    chunker,
		embedder:   embedder,
	}, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add ingests one source file: load, chunk, embed and persist. The
// loader and chunker arguments override the store defaults when
// non-nil.
func (s *Store) Add(ctx context.Context, source string, dataType domain.FileType, loader driven.Loader, chunker driven.Chunker) error {
	if loader == nil {
		var err error
		loader, err = s.registry.LoaderFor(dataType)
		if err != nil {
			return fmt.Errorf("resolve loader for %s: %w", dataType, err)
		}
	}
	if chunker == nil {
		chunker = s.chunker
	}
	if chunker == nil {
		return fmt.Errorf("%w: no chunker configured", domain.ErrInvalidInput)
	}

	doc, err := loader.Load(ctx, source)
	if err != nil {
		return fmt.Errorf("load %s: %w", source, err)
	}

	chunks, err := chunker.Chunk(ctx, doc)
	if err != nil {
		return fmt.Errorf("chunk %s: %w", source, err)
	}

	if s.embedder != nil && len(chunks) > 0 {
		if err := s.embedChunks(ctx, chunks); err != nil {
			return fmt.Errorf("embed %s: %w", source, err)
		}
	}

	if err := s.persist(ctx, doc, dataType, source, chunks); err != nil {
		return fmt.Errorf("persist %s: %w", source, err)
	}

	logger.Debug("sink: stored %s as %d chunks", source, len(chunks))
	return nil
}

// Reset drops every document and chunk in the collection.
func (s *Store) Reset(ctx context.Context) error {
	if !s.allowReset {
		return fmt.Errorf("%w: collection %s", domain.ErrResetNotAllowed, s.collection)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks WHERE collection = ?", s.collection); err != nil {
		return fmt.Errorf("deleting chunks: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM documents WHERE collection = ?", s.collection); err != nil {
		return fmt.Errorf("deleting documents: %w", err)
	}
	return tx.Commit()
}

// DocumentCount returns the number of documents in the collection.
func (s *Store) DocumentCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM documents WHERE collection = ?", s.collection,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return n, nil
}

// ChunksForDocument returns the stored chunks of a document in
// position order, embeddings included.
func (s *Store) ChunksForDocument(ctx context.Context, docID string) ([]domain.Chunk, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, doc_id, content, position, embedding, metadata
		FROM chunks WHERE doc_id = ? AND collection = ?
		ORDER BY position
	`, docID, s.collection)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.Chunk
	for rows.Next() {
		var (
			chunk         domain.Chunk
			embeddingBlob []byte
			metadataJSON  string
		)
		if err := rows.Scan(&chunk.ID, &chunk.DocID, &chunk.Content,
			&chunk.Index, &embeddingBlob, &metadataJSON); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		chunk.Embedding = bytesToFloat32Slice(embeddingBlob)
		if metadataJSON != "" {
			if err := json.Unmarshal([]byte(metadataJSON), &chunk.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshaling chunk metadata: %w", err)
			}
		}
		chunks = append(chunks, chunk)
	}
	return chunks, rows.Err()
}

// ChunkCount returns the number of chunks in the collection.
func (s *Store) ChunkCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM chunks WHERE collection = ?", s.collection,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return n, nil
}

func (s *Store) embedChunks(ctx context.Context, chunks []domain.Chunk) error {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return err
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("embedding count mismatch: %d vectors for %d chunks", len(vectors), len(chunks))
	}
	for i := range chunks {
		chunks[i].Embedding = vectors[i]
	}
	return nil
}

// persist replaces the document and its chunks in one transaction.
func (s *Store) persist(ctx context.Context, doc *domain.ExtractedDocument, dataType domain.FileType, source string, chunks []domain.Chunk) error {
	docMeta, err := marshalMetadata(doc.Metadata)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM chunks WHERE doc_id = ? AND collection = ?",
		doc.DocID, s.collection,
	); err != nil {
		return fmt.Errorf("deleting stale chunks: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO documents (doc_id, collection, source, file_type, content, metadata, ingested_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (doc_id, collection) DO UPDATE SET
			source = excluded.source,
			file_type = excluded.file_type,
			content = excluded.content,
			metadata = excluded.metadata,
			ingested_at = excluded.ingested_at
	`, doc.DocID, s.collection, source, dataType.String(), doc.Content, docMeta, time.Now().UTC()); err != nil {
		return fmt.Errorf("upserting document: %w", err)
	}

	for _, chunk := range chunks {
		chunkMeta, err := marshalMetadata(chunk.Metadata)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO chunks (id, doc_id, collection, content, position, embedding, metadata)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, chunk.ID, chunk.DocID, s.collection, chunk.Content, chunk.Index,
			float32SliceToBytes(chunk.Embedding), chunkMeta); err != nil {
			return fmt.Errorf("inserting chunk %d: %w", chunk.Index, err)
		}
	}

	return tx.Commit()
}

func marshalMetadata(m map[string]any) (string, error) {
	if m == nil {
		return "{}", nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("marshaling metadata: %w", err)
	}
	return string(data), nil
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
