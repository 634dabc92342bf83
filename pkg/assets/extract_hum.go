package assets

import (
	"strings"
)

// extractHum implements the .hum (human model) extractor (spec.md §4.7): a
// [model] header names a .cfg file relative to the human's own folder. That
// cfg is added and recursed into through the "Model cfg" extractor mode.
func extractHum(ctx *ExtractContext, relPath string) *Set {
	result := NewSet()
	result.AddFile(relPath)

	humDir := ctx.Dir(relPath)
	text, ok := ReadText(ctx.AbsPath(relPath))
	if !ok {
		ctx.warnf("unable to read human %s", relPath)
		return result
	}

	lines := Lines(text)
	for i := 0; i < len(lines); i++ {
		header := strings.ToLower(strings.TrimSpace(lines[i]))
		if header != "[model]" {
			continue
		}
		payload, next := nextNonEmptyLines(lines, i+1, 1)
		i = next - 1
		if len(payload) < 1 {
			continue
		}
		name := strings.TrimSpace(payload[0])
		if name == "" {
			continue
		}

		rel, existed := resolveOrFallback(ctx, []string{humDir}, name)
		if rel == "" {
			continue
		}
		result.AddFile(rel)
		if !existed {
			ctx.warnf("human model cfg %s referenced from %s could not be resolved", name, relPath)
			continue
		}
		result.Union(extractCfgModel(ctx, rel))
	}

	return result
}
