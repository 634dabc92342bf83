package assets

import (
	"path/filepath"
	"strings"
)

// extractSco implements the .sco (scenery object) extractor (spec.md
// §4.7). It always includes its own input path, then walks the file
// section by section, dispatching each recognized header to its fixed
// look-ahead action.
func extractSco(ctx *ExtractContext, relPath string) *Set {
	result := NewSet()
	result.AddFile(relPath)

	scoDir := ctx.Dir(relPath)
	text, ok := ReadText(ctx.AbsPath(relPath))
	if !ok {
		ctx.warnf("unable to read scenery object %s", relPath)
		return result
	}

	lines := Lines(text)
	for i := 0; i < len(lines); i++ {
		header := strings.ToLower(strings.TrimSpace(lines[i]))
		switch header {
		case "[model]":
			_, next := nextNonEmptyLines(lines, i+1, 1)
			i = next - 1
			if rel, ok := MakeRelative(scoDir, ctx.Root); ok {
				result.AddFolder(rel)
			}

		case "[mesh]", "[collision_mesh]":
			payload, next := nextNonEmptyLines(lines, i+1, 1)
			i = next - 1
			scoExtractMesh(ctx, scoDir, payload, result)

		case "[matl]", "[matl_change]", "[matl_lightmap]", "[tree]":
			payload, next := nextNonEmptyLines(lines, i+1, 1)
			i = next - 1
			scoExtractTexture(ctx, scoDir, payload, result)

		case "[matl_envmap]":
			payload, next := nextNonEmptyLines(lines, i+1, 2)
			i = next - 1
			if len(payload) >= 1 {
				scoExtractTexture(ctx, scoDir, payload[:1], result)
			}

		case "[ctc]":
			payload, next := nextNonEmptyLines(lines, i+1, 2)
			i = next - 1
			if len(payload) < 2 {
				continue
			}
			scoExtractCTCFolder(ctx, scoDir, payload[1], result)

		case "[ctctexture]":
			payload, next := nextNonEmptyLines(lines, i+1, 2)
			i = next - 1
			if len(payload) < 2 {
				continue
			}
			scoExtractTexture(ctx, scoDir, payload[1:], result)

		case "[script]":
			payload, next := nextNonEmptyLines(lines, i+1, 2)
			i = next - 1
			if len(payload) < 2 {
				continue
			}
			scoResolveAndAdd(ctx, []string{filepath.Join(scoDir, "script"), scoDir}, payload[1], relPath, result)

		case "[varnamelist]":
			payload, next := nextNonEmptyLines(lines, i+1, 2)
			i = next - 1
			if len(payload) < 2 {
				continue
			}
			scoResolveAndAdd(ctx, []string{filepath.Join(scoDir, "script"), scoDir}, payload[1], relPath, result)

		case "[sound]":
			payload, next := nextNonEmptyLines(lines, i+1, 1)
			i = next - 1
			if len(payload) < 1 {
				continue
			}
			name := strings.TrimSpace(payload[0])
			rel, existed := resolveOrFallback(ctx, []string{filepath.Join(scoDir, "sound"), filepath.Join(scoDir, "Sound"), scoDir}, name)
			if rel == "" {
				continue
			}
			result.AddFile(rel)
			if !existed {
				ctx.warnf("sound cfg %s referenced from %s could not be resolved", name, relPath)
			}
			result.Union(extractCfgSound(ctx, rel))

		case "[passengercabin]":
			payload, next := nextNonEmptyLines(lines, i+1, 1)
			i = next - 1
			if len(payload) < 1 {
				continue
			}
			name := strings.TrimSpace(payload[0])
			scoResolveAndAdd(ctx, []string{filepath.Join(scoDir, "model"), scoDir}, name, relPath, result)
		}
	}

	scoPrefixTextureSearch(ctx, scoDir, relPath, result)

	return result
}

// scoExtractMesh handles [mesh]/[collision_mesh]: resolve the named mesh,
// scavenge it for embedded texture names, expand each via L4, and fall
// back to both-cased Texture folder markers when an .o3d yields nothing.
func scoExtractMesh(ctx *ExtractContext, scoDir string, payload []string, result *Set) {
	if len(payload) < 1 {
		return
	}
	name := strings.TrimSpace(payload[0])
	if name == "" {
		return
	}

	rel, existed := resolveOrFallback(ctx, []string{filepath.Join(scoDir, "model"), scoDir}, name)
	if rel == "" {
		return
	}
	result.AddFile(rel)
	if !existed {
		ctx.warnf("mesh %s could not be resolved under %s", name, scoDir)
		return
	}

	isO3D := strings.EqualFold(filepath.Ext(name), ".o3d")
	textures := scavengeMeshTextures(ctx.AbsPath(rel))
	for _, texName := range textures {
		stem := strings.TrimSuffix(texName, filepath.Ext(texName))
		ExpandTextureVariants(ctx.Probe, ctx.Root, scoDir, stem, result)
	}

	if isO3D && len(textures) == 0 {
		if folder, ok := MakeRelative(filepath.Join(scoDir, "Texture"), ctx.Root); ok {
			result.AddFolder(folder)
		}
		if folder, ok := MakeRelative(filepath.Join(scoDir, "texture"), ctx.Root); ok {
			result.AddFolder(folder)
		}
	}
}

// scoExtractTexture expands the texture named in payload[0] via L4 at the
// .sco's own folder.
func scoExtractTexture(ctx *ExtractContext, scoDir string, payload []string, result *Set) {
	if len(payload) < 1 {
		return
	}
	name := strings.TrimSpace(payload[0])
	if name == "" {
		return
	}
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	ExpandTextureVariants(ctx.Probe, ctx.Root, scoDir, stem, result)
}

// scoExtractCTCFolder adds every immediate file inside the folder named by
// path, if it exists as a directory.
func scoExtractCTCFolder(ctx *ExtractContext, scoDir string, path string, result *Set) {
	path = strings.TrimSpace(path)
	if path == "" {
		return
	}
	dir := filepath.Join(scoDir, toOSPath(strings.ReplaceAll(path, "/", `\`)))
	entries, err := readDirEntries(dir)
	if err != nil {
		ctx.warnf("ctc folder %s not found under %s", path, scoDir)
		return
	}
	for _, name := range entries {
		if rel, ok := MakeRelative(filepath.Join(dir, name), ctx.Root); ok {
			result.AddFile(rel)
		}
	}
}

// scoResolveAndAdd resolves name against dirs and adds the result,
// logging a warning via relPath's context if no candidate exists.
func scoResolveAndAdd(ctx *ExtractContext, dirs []string, name string, relPath string, result *Set) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	rel, existed := resolveOrFallback(ctx, dirs, name)
	if rel == "" {
		return
	}
	result.AddFile(rel)
	if !existed {
		ctx.warnf("%s referenced from %s could not be resolved", name, relPath)
	}
}

// scoPrefixTextureSearch runs the post-parse filename-prefix texture
// search: using the .sco's stem as a prefix, every file in each of L4's
// three search roots (and their seasonal subfolders) whose name starts
// with that stem and ends with a texture extension is included.
func scoPrefixTextureSearch(ctx *ExtractContext, scoDir string, relPath string, result *Set) {
	_, file := splitRelative(relPath)
	stem := strings.ToLower(strings.TrimSuffix(file, filepath.Ext(file)))
	if stem == "" {
		return
	}

	var roots []string
	if texDir, ok := ctx.Probe.FindDir(scoDir, "texture"); ok {
		roots = append(roots, texDir)
	}
	roots = append(roots, scoDir)
	if globalTex, ok := ctx.Probe.FindDir(ctx.Root, "Texture"); ok {
		roots = append(roots, globalTex)
	}

	for _, root := range roots {
		prefixMatchAt(ctx, root, stem, result)
		for _, seasonal := range seasonalSubfolders {
			if sub, ok := ctx.Probe.FindDir(root, seasonal); ok {
				prefixMatchAt(ctx, sub, stem, result)
			}
		}
	}
}

// prefixMatchAt adds every file in dir whose lower-cased name starts with
// stem and ends with a recognized texture extension.
func prefixMatchAt(ctx *ExtractContext, dir string, stem string, result *Set) {
	for lowerName, actualName := range ctx.Probe.ListFiles(dir) {
		if !strings.HasPrefix(lowerName, stem) {
			continue
		}
		ext := strings.TrimPrefix(filepath.Ext(lowerName), ".")
		if !containsExt(textureExtensions, ext) {
			continue
		}
		if rel, ok := MakeRelative(filepath.Join(dir, actualName), ctx.Root); ok {
			result.AddFile(rel)
		}
	}
}

func containsExt(exts []string, ext string) bool {
	for _, e := range exts {
		if e == ext {
			return true
		}
	}
	return false
}
