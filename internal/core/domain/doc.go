// Package domain defines the core business entities for MindSonic.
//
// This package is part of the hexagonal architecture's innermost layer.
// It holds the file type enumeration, the document and chunk entities
// that flow through the ingestion pipeline, and the domain errors.
// It has no dependencies on adapters or external services.
package domain
