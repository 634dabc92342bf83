package assets

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandTextureVariants implements L4: given a base filename stem (no
// extension), a context folder (the referencing config's directory,
// absolute on disk), the asset root, and a mutable dependency set, it
// discovers and inserts every on-disk texture variant plus its sidecars.
//
// Search roots, in order: <context>/texture, <context>, and the global
// Texture folder under root. Each root is searched for extension matches,
// then its seasonal subfolders, then every other immediate subdirectory one
// level deep (spec.md §4.4).
func ExpandTextureVariants(probe *Probe, root, context, baseName string, set *Set) {
	if baseName == "" {
		return
	}

	var roots []string
	if texDir, ok := probe.FindDir(context, "texture"); ok {
		roots = append(roots, texDir)
	}
	roots = append(roots, context)
	if globalTex, ok := probe.FindDir(root, "Texture"); ok {
		roots = append(roots, globalTex)
	}

	for _, searchRoot := range roots {
		expandAt(probe, root, searchRoot, baseName, set)
	}
}

// expandAt performs steps 2-4 of L4's search procedure rooted at dir.
func expandAt(probe *Probe, root, dir, baseName string, set *Set) {
	matchAt(probe, root, dir, baseName, set)

	visited := make(map[string]bool, len(seasonalSubfolders))
	for _, seasonal := range seasonalSubfolders {
		if sub, ok := probe.FindDir(dir, seasonal); ok {
			visited[strings.ToLower(filepath.Base(sub))] = true
			matchAt(probe, root, sub, baseName, set)
		}
	}

	for _, sub := range subdirectories(dir) {
		if visited[strings.ToLower(sub)] {
			continue
		}
		matchAt(probe, root, filepath.Join(dir, sub), baseName, set)
	}
}

// matchAt probes a single directory for baseName under every recognized
// image extension, recording matches and their .cfg/.surf sidecars.
func matchAt(probe *Probe, root, dir, baseName string, set *Set) {
	listing := probe.ListFiles(dir)
	if len(listing) == 0 {
		return
	}

	lowerBase := strings.ToLower(baseName)
	for _, ext := range textureExtensions {
		actual, ok := listing[lowerBase+"."+ext]
		if !ok {
			continue
		}
		abs := filepath.Join(dir, actual)
		if rel, ok := MakeRelative(abs, root); ok {
			set.AddFile(rel)
		}
		for _, sidecarExt := range textureSidecarExtensions {
			if sidecarActual, ok := listing[strings.ToLower(actual)+"."+sidecarExt]; ok {
				if rel, ok := MakeRelative(filepath.Join(dir, sidecarActual), root); ok {
					set.AddFile(rel)
				}
			}
		}
	}
}

// subdirectories returns the immediate subdirectory names of dir, or nil if
// dir can't be read.
func subdirectories(dir string) []string {
	entries, err := os.ReadDir(longPathAware(dir))
	if err != nil {
		return nil
	}
	var out []string
	for _, entry := range entries {
		if entry.IsDir() {
			out = append(out, entry.Name())
		}
	}
	return out
}
