//go:build windows

package assets

import "strings"

// longPathAware prepends the \\?\ extended-length prefix to an absolute
// path on Windows so that filesystem calls aren't truncated by MAX_PATH
// when crawling a deep scenery-object or texture tree. The pack's Windows
// IPC library (github.com/Microsoft/go-winio) doesn't expose a long-path
// helper for ordinary file opens, so this uses the documented Windows
// convention directly against the standard library rather than reaching
// for a library that doesn't actually cover this case.
func longPathAware(path string) string {
	if strings.HasPrefix(path, `\\?\`) {
		return path
	}
	if len(path) < 248 {
		return path
	}
	if strings.HasPrefix(path, `\\`) {
		return `\\?\UNC\` + path[2:]
	}
	return `\\?\` + path
}
