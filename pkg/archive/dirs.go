package archive

import (
	"os"

	"github.com/pkg/errors"
)

// PrepareOutputDir creates dir (and any missing parents) and, on Windows,
// applies a permissive ACL so the bundled output is accessible regardless of
// inherited ACLs on the parent folder.
func PrepareOutputDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "unable to create output directory")
	}
	if err := ensurePermissions(dir); err != nil {
		return errors.Wrap(err, "unable to set output directory permissions")
	}
	return nil
}
