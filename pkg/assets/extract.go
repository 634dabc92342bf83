package assets

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/omsi-tools/mapbundler/pkg/logging"
)

// Extractor yields the immediate dependency set for a single asset path.
// Extractors are pure functions of (context, path): they read the
// filesystem but never mutate shared state outside the set they return,
// which is what makes them trivially parallelizable (spec.md §9).
type Extractor func(ctx *ExtractContext, relPath string) *Set

// ExtractContext carries the read-only state shared by every extractor
// invocation during a resolution run.
type ExtractContext struct {
	// Probe performs cached, case-insensitive filesystem lookups.
	Probe *Probe
	// Root is the absolute asset root (the map folder's grandparent).
	Root string
	// Logger receives non-fatal warnings (missing references, unreadable
	// files). A nil Logger is safe and simply discards them.
	Logger *logging.Logger
}

// warnf logs a warning through ctx.Logger if one is set.
func (ctx *ExtractContext) warnf(format string, args ...interface{}) {
	if ctx.Logger != nil {
		ctx.Logger.Warn(errors.Errorf(format, args...))
	}
}

// AbsPath resolves a normalized, asset-root-relative path to an absolute
// filesystem path under ctx.Root.
func (ctx *ExtractContext) AbsPath(rel string) string {
	return filepath.Join(ctx.Root, toOSPath(rel))
}

// Dir returns the absolute directory containing rel.
func (ctx *ExtractContext) Dir(rel string) string {
	dir, _ := splitRelative(rel)
	return ctx.AbsPath(dir)
}

// extractorFor returns the extractor registered for relPath's extension and
// whether one exists, per spec.md §4.8's dispatch table. Extensions not
// present here (textures, meshes, sounds, scripts, sidecars) are leaves.
func extractorFor(relPath string) (Extractor, bool) {
	switch strings.ToLower(filepath.Ext(relPath)) {
	case ".sco":
		return extractSco, true
	case ".sli":
		return extractSli, true
	case ".hum":
		return extractHum, true
	case ".bus":
		return extractBus, true
	case ".ovh":
		return extractOvh, true
	case ".zug":
		return extractZug, true
	case ".cfg":
		return extractCfgModel, true
	}
	return nil, false
}

// findInDirs tries each candidate directory in order, returning the first
// match for name.
func findInDirs(probe *Probe, dirs []string, name string) (string, bool) {
	for _, dir := range dirs {
		if abs, ok := probe.FindFile(dir, name); ok {
			return abs, true
		}
	}
	return "", false
}

// resolveOrFallback resolves name against dirs in order. If no candidate
// exists on disk, it still returns a relative path computed against the
// first candidate directory (spec.md §7's "missing reference" policy: the
// bundle writer should fail visibly on the missing file rather than have
// the resolver silently omit it), with existed=false so the caller can log
// a warning and skip any further extraction that depends on content.
func resolveOrFallback(ctx *ExtractContext, dirs []string, name string) (rel string, existed bool) {
	if abs, ok := findInDirs(ctx.Probe, dirs, name); ok {
		if r, ok := MakeRelative(abs, ctx.Root); ok {
			return r, true
		}
	}
	fallback := filepath.Join(dirs[0], name)
	if r, ok := MakeRelative(fallback, ctx.Root); ok {
		return r, false
	}
	return "", false
}

// readDirEntries lists the regular file names directly inside dir.
func readDirEntries(dir string) ([]string, error) {
	entries, err := os.ReadDir(longPathAware(dir))
	if err != nil {
		return nil, err
	}
	var out []string
	for _, entry := range entries {
		if !entry.IsDir() {
			out = append(out, entry.Name())
		}
	}
	return out, nil
}
