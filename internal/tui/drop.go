package tui

import (
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"
)

// escapable lists the characters terminals escape with a backslash when a
// file is dropped onto them.
const escapable = ` '"()&;!$#*?[]{}<>|~` + "`"

// ParseDroppedPath turns the text a terminal pastes when a file or folder is
// dropped onto it into a filesystem path. Quotes, file:// URLs and
// backslash escapes are undone. When several items are dropped, the first
// one wins. ok is false when the result does not exist on disk; isFolder
// reports whether it is a directory.
func ParseDroppedPath(raw string) (path string, isFolder bool, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false, false
	}

	// A single unquoted path containing spaces is pasted verbatim by some
	// terminals.
	candidates := []string{raw}
	if fields := splitDropped(raw); len(fields) > 0 {
		candidates = append(candidates, fields[0])
	}

	for _, c := range candidates {
		p := fromFileURL(c)
		if p == "" {
			continue
		}
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		return p, info.IsDir(), true
	}
	return "", false, false
}

// splitDropped splits pasted text into items, honoring single and double
// quotes and backslash escapes of the characters in escapable.
func splitDropped(s string) []string {
	var (
		items   []string
		current strings.Builder
		quote   rune
		started bool
	)
	runes := []rune(s)
	flush := func() {
		if started {
			items = append(items, current.String())
		}
		current.Reset()
		started = false
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			current.WriteRune(r)
		case r == '\'' || r == '"':
			quote = r
			started = true
		case r == '\\' && i+1 < len(runes) && strings.ContainsRune(escapable, runes[i+1]):
			i++
			current.WriteRune(runes[i])
			started = true
		case unicode.IsSpace(r):
			flush()
		default:
			current.WriteRune(r)
			started = true
		}
	}
	flush()
	return items
}

// fromFileURL converts a file:// URL to a local path. Other input is
// returned unchanged.
func fromFileURL(s string) string {
	if !strings.HasPrefix(strings.ToLower(s), "file://") {
		return s
	}
	u, err := url.Parse(s)
	if err != nil {
		return ""
	}
	p := u.Path
	// file:///C:/Users/... on Windows.
	if runtime.GOOS == "windows" && len(p) >= 3 && p[0] == '/' && p[2] == ':' {
		p = p[1:]
	}
	return filepath.FromSlash(p)
}
