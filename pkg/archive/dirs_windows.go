//go:build windows

package archive

import "github.com/hectane/go-acl"

// ensurePermissions applies a permissive ACL to dir on Windows, the same
// top-level go-acl entry point pkg/filesystem/permissions_windows.go uses,
// scoped here to just the staging/output tree rather than per-file
// ownership specification.
func ensurePermissions(dir string) error {
	return acl.Chmod(dir, 0o755)
}
