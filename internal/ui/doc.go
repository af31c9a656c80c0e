// Package ui provides theme and color support for terminal output and the
// interactive shell. It defines color schemes and ANSI escape helpers shared
// by the cli and tui packages.
package ui
