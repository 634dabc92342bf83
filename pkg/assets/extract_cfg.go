package assets

import (
	"path/filepath"
	"strings"
)

// extractCfgModel implements the "Model cfg" mode of the .cfg extractor
// (spec.md §4.7), reached from a human model's CTC-based texture
// configuration. [CTC] names a texture base folder whose contents are all
// included; [mesh] names a mesh file joined directly under the cfg's
// folder; [CTCTexture] resolves a texture against three candidate
// locations.
func extractCfgModel(ctx *ExtractContext, relPath string) *Set {
	result := NewSet()
	result.AddFile(relPath)

	cfgDir := ctx.Dir(relPath)
	text, ok := ReadText(ctx.AbsPath(relPath))
	if !ok {
		ctx.warnf("unable to read cfg %s", relPath)
		return result
	}

	var ctcBase string
	lines := Lines(text)
	for i := 0; i < len(lines); i++ {
		header := strings.ToLower(strings.TrimSpace(lines[i]))
		switch header {
		case "[ctc]":
			payload, next := nextNonEmptyLines(lines, i+1, 1)
			i = next - 1
			if len(payload) < 1 {
				continue
			}
			base := stripTexturePrefix(strings.TrimSpace(payload[0]))
			if base == "" || isAllDigits(base) {
				continue
			}
			ctcBase = base
			cfgAddCTCFolder(ctx, cfgDir, base, result)

		case "[mesh]":
			payload, next := nextNonEmptyLines(lines, i+1, 1)
			i = next - 1
			if len(payload) < 1 {
				continue
			}
			name := strings.TrimSpace(payload[0])
			if name == "" {
				continue
			}
			if rel, ok := MakeRelative(filepath.Join(cfgDir, toOSPath(name)), ctx.Root); ok {
				result.AddFile(rel)
			}

		case "[ctctexture]":
			payload, next := nextNonEmptyLines(lines, i+1, 2)
			i = next - 1
			if len(payload) < 2 {
				continue
			}
			cfgAddCTCTexture(ctx, cfgDir, ctcBase, strings.TrimSpace(payload[1]), result)
		}
	}

	return result
}

// extractCfgSound implements the "Sound cfg" mode: every .wav-terminated
// line is a sample resolved against <cfg_dir>/sound then <cfg_dir>.
func extractCfgSound(ctx *ExtractContext, relPath string) *Set {
	result := NewSet()
	result.AddFile(relPath)

	cfgDir := ctx.Dir(relPath)
	text, ok := ReadText(ctx.AbsPath(relPath))
	if !ok {
		ctx.warnf("unable to read sound cfg %s", relPath)
		return result
	}

	for _, raw := range Lines(text) {
		line := strings.TrimSpace(raw)
		if line == "" || !strings.HasSuffix(strings.ToLower(line), ".wav") {
			continue
		}
		scoResolveAndAdd(ctx, []string{filepath.Join(cfgDir, "sound"), cfgDir}, line, relPath, result)
	}

	return result
}

func stripTexturePrefix(s string) string {
	for _, prefix := range []string{`Texture\`, "Texture/", `texture\`, "texture/"} {
		if strings.HasPrefix(s, prefix) {
			return s[len(prefix):]
		}
	}
	return s
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// cfgAddCTCFolder includes every recognized texture file, one level deep,
// under <cfgDir>/texture/<base>.
func cfgAddCTCFolder(ctx *ExtractContext, cfgDir, base string, result *Set) {
	dir := filepath.Join(cfgDir, "texture", toOSPath(base))
	for lowerName, actual := range ctx.Probe.ListFiles(dir) {
		ext := strings.TrimPrefix(filepath.Ext(lowerName), ".")
		if !containsExt(textureExtensions, ext) {
			continue
		}
		if rel, ok := MakeRelative(filepath.Join(dir, actual), ctx.Root); ok {
			result.AddFile(rel)
		}
	}
}

// cfgAddCTCTexture resolves texFile against three candidate locations in
// order, falling back to a canonical (possibly non-existent) path so the
// reference isn't silently dropped.
func cfgAddCTCTexture(ctx *ExtractContext, cfgDir, base, texFile string, result *Set) {
	if texFile == "" {
		return
	}

	var candidates []string
	if base != "" {
		candidates = append(candidates, filepath.Join(cfgDir, "texture", toOSPath(base)))
	}
	candidates = append(candidates, filepath.Join(cfgDir, "texture"))
	if base != "" {
		candidates = append(candidates, filepath.Join(cfgDir, toOSPath(base)))
	}

	if abs, ok := findInDirs(ctx.Probe, candidates, texFile); ok {
		if rel, ok := MakeRelative(abs, ctx.Root); ok {
			result.AddFile(rel)
		}
		return
	}

	fallbackDir := filepath.Join(cfgDir, "texture")
	if base != "" {
		fallbackDir = filepath.Join(cfgDir, "texture", toOSPath(base))
	}
	if rel, ok := MakeRelative(filepath.Join(fallbackDir, texFile), ctx.Root); ok {
		result.AddFile(rel)
		ctx.warnf("ctctexture %s could not be resolved under %s", texFile, cfgDir)
	}
}
