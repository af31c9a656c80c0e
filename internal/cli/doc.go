// Package cli renders batch progress and summaries for command-line mode.
//
// # Naming Conventions
//
//   - Display* functions write formatted output to an [io.Writer].
//     Examples: [DisplaySummary], [DisplayQuietSummary].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatSummaryLine], [FormatFileLine].
//
//   - Print* functions announce what is about to happen.
//     Example: [PrintExecutionConfig].
package cli
