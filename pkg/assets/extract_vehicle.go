package assets

import (
	"path/filepath"
	"strconv"
	"strings"
)

// extractBus implements the .bus extractor (spec.md §4.7). A bus's
// dependencies live entirely in the sibling files its .sco/.ovh/.zug
// references already pull in; the .bus file itself only anchors its own
// folder as a unit (DESIGN.md resolution #2 — unlike the original Rust
// extractor, this one also keeps its own path per spec.md's general
// per-extractor contract).
func extractBus(ctx *ExtractContext, relPath string) *Set {
	result := NewSet()
	result.AddFile(relPath)

	busDir := ctx.Dir(relPath)
	if rel, ok := MakeRelative(busDir, ctx.Root); ok {
		result.AddFolder(rel)
	}

	return result
}

// extractOvh implements the .ovh (AI vehicle) extractor (spec.md §4.7).
// [model] names a cfg recursed into through the "Model cfg" mode; [sound]
// names a sound cfg recursed into through the "Sound cfg" mode;
// [varnamelist]/[script]/[constfile] each give a count followed by that many
// filenames. References starting with ".." are joined directly against the
// .ovh's own folder rather than resolved through the usual candidate
// directories, matching the original extractor.
func extractOvh(ctx *ExtractContext, relPath string) *Set {
	result := NewSet()
	result.AddFile(relPath)

	ovhDir := ctx.Dir(relPath)
	text, ok := ReadText(ctx.AbsPath(relPath))
	if !ok {
		ctx.warnf("unable to read ai vehicle %s", relPath)
		return result
	}

	lines := Lines(text)
	for i := 0; i < len(lines); i++ {
		header := strings.ToLower(strings.TrimSpace(lines[i]))
		switch header {
		case "[model]":
			payload, next := nextNonEmptyLines(lines, i+1, 1)
			i = next - 1
			if len(payload) < 1 {
				continue
			}
			name := strings.TrimSpace(payload[0])
			rel, existed := ovhResolve(ctx, ovhDir, []string{ovhDir}, name)
			if rel == "" {
				continue
			}
			result.AddFile(rel)
			if !existed {
				ctx.warnf("model cfg %s referenced from %s could not be resolved", name, relPath)
				continue
			}
			result.Union(extractCfgModel(ctx, rel))

		case "[sound]":
			payload, next := nextNonEmptyLines(lines, i+1, 1)
			i = next - 1
			if len(payload) < 1 {
				continue
			}
			name := strings.TrimSpace(payload[0])
			rel, existed := ovhResolve(ctx, ovhDir, []string{filepath.Join(ovhDir, "sound"), ovhDir}, name)
			if rel == "" {
				continue
			}
			result.AddFile(rel)
			if !existed {
				ctx.warnf("sound cfg %s referenced from %s could not be resolved", name, relPath)
				continue
			}
			result.Union(extractCfgSound(ctx, rel))

		case "[varnamelist]", "[script]", "[constfile]":
			countPayload, next := nextNonEmptyLines(lines, i+1, 1)
			i = next - 1
			if len(countPayload) < 1 {
				continue
			}
			count, ok := parseCount(countPayload[0])
			if !ok || count <= 0 {
				continue
			}
			names, next2 := nextNonEmptyLines(lines, next, count)
			i = next2 - 1
			for _, n := range names {
				ovhResolveAndAdd(ctx, ovhDir, []string{filepath.Join(ovhDir, "script"), ovhDir}, strings.TrimSpace(n), relPath, result)
			}
		}
	}

	if rel, ok := MakeRelative(ovhDir, ctx.Root); ok {
		result.AddFolder(rel)
	}

	return result
}

// ovhResolve resolves name against dirs, except for references starting
// with ".." which are joined directly against ovhDir and cleaned instead.
func ovhResolve(ctx *ExtractContext, ovhDir string, dirs []string, name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	if strings.HasPrefix(name, "..") {
		abs := filepath.Clean(filepath.Join(ovhDir, toOSPath(strings.ReplaceAll(name, "/", `\`))))
		existed := ctx.Probe.Exists(abs)
		if rel, ok := MakeRelative(abs, ctx.Root); ok {
			return rel, existed
		}
		return "", false
	}
	return resolveOrFallback(ctx, dirs, name)
}

func ovhResolveAndAdd(ctx *ExtractContext, ovhDir string, dirs []string, name, relPath string, result *Set) {
	if name == "" {
		return
	}
	rel, existed := ovhResolve(ctx, ovhDir, dirs, name)
	if rel == "" {
		return
	}
	result.AddFile(rel)
	if !existed {
		ctx.warnf("%s referenced from %s could not be resolved", name, relPath)
	}
}

// parseCount parses the leading integer token of a count line.
func parseCount(s string) (int, bool) {
	token := firstWhitespaceToken(strings.TrimSpace(s))
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, false
	}
	return n, true
}
