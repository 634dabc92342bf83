package bundler

import (
	"github.com/pkg/errors"

	"github.com/omsi-tools/mapbundler/pkg/assets"
)

// requiredMapFiles are the files a valid OMSI map folder must contain,
// grounded directly on original_source/src-tauri/src/validation.rs's
// validate_map_folder checklist.
var requiredMapFiles = []string{"global.cfg", "ailists.cfg", "drivers.txt", "parklist_p.txt"}

// ValidateMapFolder confirms mapDir exists and contains every file
// requiredMapFiles names, tolerating on-disk case differences through
// probe. It is the pre-flight check a complete CLI runs before Phase 1.
func ValidateMapFolder(probe *assets.Probe, mapDir string) error {
	if !probe.Exists(mapDir) {
		return errors.Errorf("map folder does not exist: %s", mapDir)
	}
	for _, name := range requiredMapFiles {
		if _, ok := probe.FindFile(mapDir, name); !ok {
			return errors.Errorf("map folder is missing required file %s", name)
		}
	}
	return nil
}
