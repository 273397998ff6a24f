// Package model defines the domain types and value objects for the
// logoshrink CLI.
//
// This package contains plain data structures with no image codec
// dependencies beyond the standard image package. The single entity,
// Image, is transient: it is decoded once at start, superseded by resized
// copies, and discarded at process exit. Nothing is persisted.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
