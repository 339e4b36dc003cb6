// Package cli implements the mindsonic command line interface.
package cli
