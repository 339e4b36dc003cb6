// Package file provides file-based configuration: a TOML key-value
// store plus the resolved runtime settings for the pipeline.
package file
