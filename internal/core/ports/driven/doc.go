// Package driven defines the outbound ports of the ingestion core.
//
// Driven ports are implemented by adapters (loaders, chunkers, the RAG
// store, AI providers) and consumed by the core services. The core never
// imports an adapter package directly.
package driven
