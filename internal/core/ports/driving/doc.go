// Package driving defines the inbound ports of the ingestion core.
//
// Driving ports are the use-cases the CLI invokes: running the batch
// pipeline, watching the knowledge tree, narrating a script.
package driving
