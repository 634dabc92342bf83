// Package bundler orchestrates the two-phase dependency resolution in
// pkg/assets into a finished archive: validate the map folder, collect and
// resolve its dependency set, then copy the map folder and every resolved
// path into a compressed archive alongside a YAML manifest.
package bundler

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/omsi-tools/mapbundler/pkg/archive"
	"github.com/omsi-tools/mapbundler/pkg/assets"
	"github.com/omsi-tools/mapbundler/pkg/logging"
)

// progressFileInterval is how often (in copied files) the copy phase invokes
// the progress callback, per spec.md §6 ("every ~100 files during copy
// phases").
const progressFileInterval = 100

// defaultCompressionLevel is used when Parameters.CompressionLevel is left
// at its zero value, matching spec.md §6's stated default.
const defaultCompressionLevel = 1

// ProgressFunc receives coarse-phase and fine-grained copy progress. message
// describes the current activity; fraction is in [0,1].
type ProgressFunc func(message string, fraction float64)

// Parameters configures a single bundling run.
type Parameters struct {
	// MapFolder is the path to the map to bundle. Its grandparent directory
	// is taken as the asset root, unless AssetRoot overrides that.
	MapFolder string
	// AssetRoot, if set, is used as the asset root instead of MapFolder's
	// grandparent directory. This lets a map folder be bundled from a
	// location that doesn't follow the Maps/<name> convention.
	AssetRoot string
	// OutputFolder is where the archive and manifest are written. If empty,
	// it defaults to a "bundled" folder alongside MapFolder.
	OutputFolder string
	// ArchiveName overrides the default archive filename (the map folder's
	// base name plus the run ID).
	ArchiveName string
	// ReadmePath, if set, names a file copied into the archive root as
	// README.txt.
	ReadmePath string
	// CompressionMethod is "deflate" or "stored". Empty defaults to deflate.
	CompressionMethod string
	// CompressionLevel is the DEFLATE level passed to flate, 1-9. Zero or a
	// negative value falls back to defaultCompressionLevel, so flate's level 0
	// (no compression) cannot be selected here. It has no effect with
	// "stored".
	CompressionLevel int
	// DebugPaths writes every Phase 1 seed path to a sidecar file before
	// Phase 2 resolves anything (SPEC_FULL.md's "Collected-path debug dump").
	DebugPaths bool
	// Logger receives warnings encountered during resolution and copying. A
	// nil Logger is safe.
	Logger *logging.Logger
	// Progress, if set, is invoked at phase boundaries and during copying.
	Progress ProgressFunc
}

// Result reports the outcome of a bundling run.
type Result struct {
	Success      bool
	OutputPath   string
	ManifestPath string
	FailedCount  int
	TotalBytes   int64
	Error        string
}

// Bundle runs the full pipeline for params, never panicking on recoverable
// failures: precondition failures (spec.md §7, kind 1) come back as a
// failed Result rather than an error return, matching the "success bool,
// optional output_path, optional error string" external interface.
func Bundle(params Parameters) Result {
	mapDir, err := filepath.Abs(filepath.Clean(params.MapFolder))
	if err != nil {
		return fail(errors.Wrap(err, "unable to resolve map folder path"))
	}
	root := filepath.Dir(filepath.Dir(mapDir))
	if params.AssetRoot != "" {
		root, err = filepath.Abs(filepath.Clean(params.AssetRoot))
		if err != nil {
			return fail(errors.Wrap(err, "unable to resolve asset root path"))
		}
	}

	probe := assets.NewProbe()
	report(params.Progress, "validating map folder", 0.0)
	if err := ValidateMapFolder(probe, mapDir); err != nil {
		return fail(err)
	}

	report(params.Progress, "collecting seed paths", 0.05)
	seeds, err := assets.CollectSeeds(probe, root, mapDir)
	if err != nil {
		return fail(errors.Wrap(err, "unable to collect seed paths"))
	}

	runID := newRunID()

	if params.DebugPaths {
		if err := writeDebugPaths(params.OutputFolder, mapDir, seeds); err != nil && params.Logger != nil {
			params.Logger.Warn(errors.Wrap(err, "unable to write debug path dump"))
		}
	}

	report(params.Progress, "resolving dependencies", 0.15)
	resolved, err := assets.Resolve(seeds, root, params.Logger)
	if err != nil {
		return fail(errors.Wrap(err, "unable to resolve dependencies"))
	}

	// The map folder itself (global.cfg, tile maps, AI and parking lists)
	// travels with the bundle as a whole subtree.
	if rel, ok := assets.MakeRelative(mapDir, root); ok {
		resolved.AddFolder(rel)
	}

	outputFolder := params.OutputFolder
	if outputFolder == "" {
		outputFolder = filepath.Join(filepath.Dir(mapDir), "bundled")
	}
	if err := archive.PrepareOutputDir(outputFolder); err != nil {
		return fail(err)
	}

	method, level := resolveCompressionSettings(params.CompressionMethod, params.CompressionLevel)

	archiveName := params.ArchiveName
	if archiveName == "" {
		archiveName = fmt.Sprintf("%s_%s.ombundle", filepath.Base(mapDir), runID)
	}
	outputPath := filepath.Join(outputFolder, archiveName)

	report(params.Progress, "writing archive", 0.4)
	failedCount, totalBytes, err := writeArchive(outputPath, root, resolved, method, level, params)
	if err != nil {
		return fail(errors.Wrap(err, "unable to write archive"))
	}

	manifestPath := outputPath + ".manifest.yaml"
	manifest := newManifest(runID, mapDir, outputPath, method.String(), level, resolved, failedCount)
	if err := WriteManifest(manifestPath, manifest); err != nil {
		if params.Logger != nil {
			params.Logger.Warn(errors.Wrap(err, "unable to write manifest"))
		}
	}

	report(params.Progress, "done", 1.0)
	return Result{
		Success:      true,
		OutputPath:   outputPath,
		ManifestPath: manifestPath,
		FailedCount:  failedCount,
		TotalBytes:   totalBytes,
	}
}

// writeArchive copies every entry in resolved into a new archive at
// outputPath, expanding FOLDER: markers into their full subtree and
// optionally prepending a README. It returns the number of files that could
// not be stat'ed, opened or written into the archive (spec.md §7's aggregated
// failure count) and the total number of bytes archived.
func writeArchive(outputPath, root string, resolved *assets.Set, method archive.Method, level int, params Parameters) (int, int64, error) {
	out, err := os.Create(outputPath)
	if err != nil {
		return 0, 0, errors.Wrap(err, "unable to create archive file")
	}
	defer out.Close()

	writer, err := archive.NewWriter(out, method, level)
	if err != nil {
		return 0, 0, err
	}

	failed := 0
	copied := 0
	var totalBytes int64

	addFile := func(relPath string) {
		abs := filepath.Join(root, toOSPath(relPath))
		info, err := os.Stat(abs)
		if err != nil || info.IsDir() {
			failed++
			if params.Logger != nil {
				params.Logger.Warn(errors.Errorf("unable to stat %s for archiving", relPath))
			}
			return
		}
		f, err := os.Open(abs)
		if err != nil {
			failed++
			if params.Logger != nil {
				params.Logger.Warn(errors.Wrap(err, fmt.Sprintf("unable to open %s for archiving", relPath)))
			}
			return
		}
		defer f.Close()

		name := assets.ToArchiveName(relPath)
		if err := writer.WriteEntry(name, f, info.Size()); err != nil {
			failed++
			if params.Logger != nil {
				params.Logger.Warn(errors.Wrap(err, fmt.Sprintf("unable to write %s to archive", relPath)))
			}
			return
		}

		totalBytes += info.Size()
		copied++
		if copied%progressFileInterval == 0 {
			report(params.Progress, fmt.Sprintf("copied %d files (%s)", copied, humanize.Bytes(uint64(totalBytes))), 0.4)
		}
	}

	if params.ReadmePath != "" {
		if f, err := os.Open(params.ReadmePath); err == nil {
			if info, err := f.Stat(); err == nil {
				if err := writer.WriteEntry("README.txt", f, info.Size()); err != nil && params.Logger != nil {
					params.Logger.Warn(errors.Wrap(err, "unable to write README into archive"))
				} else {
					totalBytes += info.Size()
				}
			}
			f.Close()
		} else if params.Logger != nil {
			params.Logger.Warn(errors.Wrap(err, "unable to open README"))
		}
	}

	for _, entry := range resolved.Entries() {
		if entry.Kind == assets.KindFile {
			addFile(entry.Path)
			continue
		}

		// Folder dominance (spec.md §8): copy the entire on-disk subtree.
		dir := filepath.Join(root, toOSPath(entry.Path))
		filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil || info.IsDir() {
				return nil
			}
			rel, ok := assets.MakeRelative(path, root)
			if !ok {
				return nil
			}
			addFile(rel)
			return nil
		})
	}

	if err := writer.Close(); err != nil {
		return failed, totalBytes, err
	}
	return failed, totalBytes, nil
}

// writeDebugPaths dumps every seed path collected in Phase 1 to a sidecar
// file before Phase 2 runs, mirroring phase1_collection.rs's always-on
// DEBUG logging.
func writeDebugPaths(outputFolder, mapDir string, seeds *assets.Set) error {
	dir := outputFolder
	if dir == "" {
		dir = filepath.Dir(mapDir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "unable to create debug output folder")
	}

	var lines []string
	for _, e := range seeds.Entries() {
		lines = append(lines, e.String())
	}
	path := filepath.Join(dir, "debug_collected_paths.txt")
	return errors.Wrap(
		ioutil.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644),
		"unable to write debug path dump",
	)
}

// resolveCompressionSettings applies spec.md §6's defaults: "deflate" at
// level 1 unless the caller asked for "stored" or a specific level.
func resolveCompressionSettings(method string, level int) (archive.Method, int) {
	if level <= 0 {
		level = defaultCompressionLevel
	}
	if strings.EqualFold(method, "stored") {
		return archive.MethodStored, level
	}
	return archive.MethodDeflate, level
}

func report(progress ProgressFunc, message string, fraction float64) {
	if progress != nil {
		progress(message, fraction)
	}
}

func fail(err error) Result {
	return Result{Success: false, Error: err.Error()}
}

func toOSPath(rel string) string {
	if filepath.Separator == '\\' {
		return rel
	}
	return strings.ReplaceAll(rel, `\`, string(filepath.Separator))
}
