// Package orchestration runs one Excel-to-PDF batch at a time: it validates
// the request, starts exactly one engine, converts each workbook in order and
// reports through the Observer callbacks. It decouples conversion from
// presentation, so the terminal UI and the command line share the same core.
package orchestration
