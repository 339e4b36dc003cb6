// Package sqlite implements the ingestion sink on top of a local
// SQLite database. Documents and their chunks are stored per
// collection; chunk embeddings are serialised as little-endian float32
// blobs alongside JSON metadata.
package sqlite
