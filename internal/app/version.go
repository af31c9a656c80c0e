package app

import (
	"fmt"
	"io"
	"runtime"
)

// Version is set at build time with
// -ldflags "-X github.com/agbru/xl2pdf/internal/app.Version=v1.2.3".
var Version = "dev"

// HasVersionFlag reports whether args request the version. Arguments after
// "--" are positional and never match.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--":
			return false
		case "-version", "--version", "-V", "--V":
			return true
		}
	}
	return false
}

// PrintVersion writes the program version and build platform.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "xl2pdf %s (%s %s/%s)\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
