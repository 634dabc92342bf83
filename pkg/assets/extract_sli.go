package assets

import (
	"path/filepath"
	"strings"
)

// extractSli implements the .sli (spline) extractor (spec.md §4.7). A
// [texture] header's payload is the texture's filename. When the reference
// embeds a directory component, L4 runs at both the referenced directory
// (resolved against the asset root) and the same directory resolved against
// the spline's own folder; a bare filename expands only at the spline's
// folder.
func extractSli(ctx *ExtractContext, relPath string) *Set {
	result := NewSet()
	result.AddFile(relPath)

	sliDir := ctx.Dir(relPath)
	text, ok := ReadText(ctx.AbsPath(relPath))
	if !ok {
		ctx.warnf("unable to read spline %s", relPath)
		return result
	}

	lines := Lines(text)
	for i := 0; i < len(lines); i++ {
		header := strings.ToLower(strings.TrimSpace(lines[i]))
		if header != "[texture]" {
			continue
		}
		payload, next := nextNonEmptyLines(lines, i+1, 1)
		i = next - 1
		if len(payload) < 1 {
			continue
		}
		sliExtractTexture(ctx, sliDir, strings.TrimSpace(payload[0]), result)
	}

	return result
}

// sliExtractTexture resolves a single [texture] reference. A reference with
// an embedded directory is expanded against both the directory taken
// relative to the asset root and the same directory taken relative to the
// spline's own folder; a bare filename expands only at the spline's folder.
func sliExtractTexture(ctx *ExtractContext, sliDir string, ref string, result *Set) {
	if ref == "" {
		return
	}

	normalized := strings.ReplaceAll(ref, "/", `\`)
	dir, file := splitRelative(normalized)
	stem := strings.TrimSuffix(file, filepath.Ext(file))
	if stem == "" {
		return
	}

	if dir == "" {
		ExpandTextureVariants(ctx.Probe, ctx.Root, sliDir, stem, result)
		return
	}

	ExpandTextureVariants(ctx.Probe, ctx.Root, filepath.Join(ctx.Root, toOSPath(dir)), stem, result)
	ExpandTextureVariants(ctx.Probe, ctx.Root, filepath.Join(sliDir, toOSPath(dir)), stem, result)
}
