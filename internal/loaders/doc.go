// Package loaders provides format-specific document loaders and the
// registry that selects one per file type.
//
// Each subpackage implements driven.Loader for one format. A loader
// reads a file from disk and produces a domain.ExtractedDocument whose
// metadata carries at least source, file_type and url. Chunking is a
// separate concern handled by the chunkers packages.
package loaders
