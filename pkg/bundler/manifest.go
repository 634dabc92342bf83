package bundler

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/omsi-tools/mapbundler/pkg/assets"
)

// Manifest records what a single bundling run produced. It's written as
// <archive name>.manifest.yaml alongside the archive, restoring a durable equivalent of the
// original desktop app's BundleResult failed-file-count string as a
// structured sidecar (see SPEC_FULL.md's "Bundle manifest" feature).
type Manifest struct {
	RunID             string   `yaml:"run_id"`
	MapFolder         string   `yaml:"map_folder"`
	ArchivePath       string   `yaml:"archive_path"`
	CompressionMethod string   `yaml:"compression_method"`
	CompressionLevel  int      `yaml:"compression_level"`
	Files             []string `yaml:"files"`
	Folders           []string `yaml:"folders"`
	FailedCount       int      `yaml:"failed_count"`
}

// newManifest builds a Manifest from a resolved dependency set.
func newManifest(runID, mapFolder, archivePath, method string, level int, resolved *assets.Set, failed int) *Manifest {
	m := &Manifest{
		RunID:             runID,
		MapFolder:         mapFolder,
		ArchivePath:       archivePath,
		CompressionMethod: method,
		CompressionLevel:  level,
		FailedCount:       failed,
	}
	for _, e := range resolved.Entries() {
		if e.Kind == assets.KindFolder {
			m.Folders = append(m.Folders, e.Path)
		} else {
			m.Files = append(m.Files, e.Path)
		}
	}
	return m
}

// WriteManifest serializes m as YAML to path.
func WriteManifest(path string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return errors.Wrap(err, "unable to marshal manifest")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "unable to write manifest")
	}
	return nil
}
