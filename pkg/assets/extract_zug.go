package assets

import "strings"

// extractZug implements the .zug (train) extractor. It scans content line
// by line for vehicle references (lines ending in .ovh or .bus); a matched
// line's parent folder is recorded with a FOLDER marker and the line
// following it (the per-car configuration number) is skipped. Any other
// line just advances normally (DESIGN.md resolution #3 — follows the
// original extractor's content-based scan rather than a strict alternating
// index, since it degrades to the same behavior when every other line is a
// vehicle reference and tolerates malformed files better).
func extractZug(ctx *ExtractContext, relPath string) *Set {
	result := NewSet()
	result.AddFile(relPath)

	text, ok := ReadText(ctx.AbsPath(relPath))
	if !ok {
		ctx.warnf("unable to read train %s", relPath)
		return result
	}

	lines := Lines(text)
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		if !strings.HasSuffix(lower, ".ovh") && !strings.HasSuffix(lower, ".bus") {
			continue
		}

		if rel, ok := Normalize(line); ok {
			if dir, _ := splitRelative(rel); dir != "" {
				result.AddFolder(dir)
			}
		}

		i++ // skip the per-car configuration number line
	}

	return result
}
