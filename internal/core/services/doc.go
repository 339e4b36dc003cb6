// Package services contains the core orchestration logic: scanning the
// knowledge tree, processing file buckets, archiving and the pipeline
// runner that ties the stages together.
package services
