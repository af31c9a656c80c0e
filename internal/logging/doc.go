// Package logging provides a unified logging interface for the converter.
// It abstracts the underlying logging implementation, allowing consistent logging
// across components while supporting multiple backends.
//
// Diagnostic logs written here are separate from the user-facing log lines
// delivered through the orchestration Observer.
package logging
