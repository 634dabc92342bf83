package assets

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
)

// globalHeaderPayload gives the fixed look-ahead length (in non-empty
// lines) for each recognized global.cfg section header, matching spec.md
// §4.6 ("each header's payload is the next N non-empty lines").
var globalHeaderPayload = map[string]int{
	"[map]":         3, // two tile coordinates (ignored) then the tile filename
	"[groundtex]":   2, // main texture then detail texture
	"[humans]":      1,
	"[splines]":     1,
	"[moneysystem]": 1,
	"[ticketpack]":  1,
}

// CollectSeeds implements P1: it parses mapDir's root configuration files
// into a deduplicated set of normalized, asset-root-relative seed paths.
// mapDir and root are both absolute filesystem paths; root is mapDir's
// grandparent (the asset root).
func CollectSeeds(probe *Probe, root, mapDir string) (*Set, error) {
	seeds := NewSet()

	globalPath, ok := probe.FindFile(mapDir, "global.cfg")
	if !ok {
		return nil, errors.New("global.cfg not found in map folder")
	}
	globalText, ok := ReadText(globalPath)
	if !ok {
		return nil, errors.New("unable to read global.cfg")
	}

	tileNames := parseGlobalConfig(probe, globalText, root, seeds)
	genericScan(globalText, seeds)

	var tilePaths []string
	for _, name := range tileNames {
		if abs, ok := probe.FindFile(mapDir, name); ok {
			tilePaths = append(tilePaths, abs)
		}
	}
	if chronoDir, ok := probe.FindDir(mapDir, "Chrono"); ok {
		tilePaths = append(tilePaths, findFilesByExtension(chronoDir, ".map")...)
	}
	for _, abs := range tilePaths {
		if rel, ok := MakeRelative(abs, root); ok {
			seeds.AddFile(rel)
		}
	}

	tileSets := make([]*Set, len(tilePaths))
	runParallel(len(tilePaths), func(i int) {
		local := NewSet()
		if text, ok := ReadText(tilePaths[i]); ok {
			parseTileMap(text, root, local)
			genericScan(text, local)
		}
		tileSets[i] = local
	})
	for _, s := range tileSets {
		seeds.Union(s)
	}

	if p, ok := probe.FindFile(mapDir, "ailists.cfg"); ok {
		if text, ok := ReadText(p); ok {
			parseAIList(text, seeds)
			genericScan(text, seeds)
		}
	}

	if p, ok := probe.FindFile(mapDir, "parklist_p.txt"); ok {
		if text, ok := ReadText(p); ok {
			parseLineListByExtension(text, ".sco", seeds)
			genericScan(text, seeds)
		}
	}

	for _, name := range []string{"humans.txt", "drivers.txt"} {
		if p, ok := probe.FindFile(mapDir, name); ok {
			if text, ok := ReadText(p); ok {
				parseLineListByExtension(text, ".hum", seeds)
				genericScan(text, seeds)
			}
		}
	}

	exclude := map[string]bool{
		"parklist_p.txt":          true,
		"humans.txt":              true,
		"drivers.txt":             true,
		"debug_collected_paths.txt": true,
	}
	others := findOtherTextFiles(mapDir, exclude)
	otherSets := make([]*Set, len(others))
	runParallel(len(others), func(i int) {
		local := NewSet()
		if text, ok := ReadText(others[i]); ok {
			genericScan(text, local)
		}
		otherSets[i] = local
	})
	for _, s := range otherSets {
		seeds.Union(s)
	}

	return seeds, nil
}

// parseGlobalConfig parses global.cfg's recognized headers, inserting
// directly-referenced seeds (ground textures, humans/splines/money/ticket
// pack headers) into seeds, and returns the list of per-tile map filenames
// named by [map] sections for the caller to resolve and parse.
func parseGlobalConfig(probe *Probe, text string, root string, seeds *Set) []string {
	lines := Lines(text)
	var tiles []string

	for i := 0; i < len(lines); i++ {
		header := strings.ToLower(strings.TrimSpace(lines[i]))
		n, ok := globalHeaderPayload[header]
		if !ok {
			continue
		}
		payload, next := nextNonEmptyLines(lines, i+1, n)
		i = next - 1
		if len(payload) < n {
			continue
		}

		switch header {
		case "[map]":
			tile := strings.TrimSpace(payload[2])
			if strings.HasSuffix(strings.ToLower(tile), ".map") {
				tiles = append(tiles, tile)
			}
		case "[groundtex]":
			for _, line := range payload {
				addGroundTexture(probe, line, root, seeds)
			}
		default:
			if rel, ok := Normalize(payload[0]); ok {
				seeds.AddFile(rel)
			}
		}
	}

	return tiles
}

// addGroundTexture resolves a [groundtex] payload line (an asset-root
// relative texture reference) and expands its on-disk variants via L4.
func addGroundTexture(probe *Probe, line string, root string, seeds *Set) {
	rel, ok := Normalize(line)
	if !ok {
		return
	}
	dir, file := splitRelative(rel)
	stem := strings.TrimSuffix(file, filepath.Ext(file))
	context := filepath.Join(root, toOSPath(dir))
	ExpandTextureVariants(probe, root, context, stem, seeds)
}

// parseTileMap parses a per-tile .map file's [spline]/[spline_h] and
// [object]/[splineAttachement] sections (spec.md §4.6).
func parseTileMap(text string, root string, seeds *Set) {
	lines := Lines(text)
	for i := 0; i < len(lines); i++ {
		header := strings.ToLower(strings.TrimSpace(lines[i]))
		switch header {
		case "[spline]", "[spline_h]":
			payload, next := nextNonEmptyLines(lines, i+1, 2)
			i = next - 1
			if len(payload) < 2 {
				continue
			}
			if rel, ok := Normalize(payload[1]); ok && strings.HasSuffix(strings.ToLower(rel), ".sli") {
				seeds.AddFile(rel)
			}
		case "[object]", "[splineattachement]":
			payload, next := nextNonEmptyLines(lines, i+1, 2)
			i = next - 1
			if len(payload) < 2 {
				continue
			}
			if rel, ok := Normalize(payload[1]); ok && strings.HasSuffix(strings.ToLower(rel), ".sco") {
				seeds.AddFile(rel)
			}
		}
	}
}

// parseAIList parses ailists.cfg (spec.md §4.6): ordinary entries are
// "<path><whitespace><count>"; entries immediately following a
// "[aigroup_depot_typgroup...]" header take the first matching vehicle
// line and then stop looking (the flag is reset unconditionally — see
// DESIGN.md's Open Question resolution #5).
func parseAIList(text string, seeds *Set) {
	inDepotGroup := false
	depotGroupDone := false
	for _, raw := range Lines(text) {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		if strings.HasPrefix(lower, "[aigroup_depot_typgroup") {
			inDepotGroup = true
			depotGroupDone = false
			continue
		}
		if strings.HasPrefix(line, "[") {
			inDepotGroup = false
			depotGroupDone = false
			continue
		}
		if depotGroupDone {
			continue
		}

		token := firstWhitespaceToken(line)
		if !hasVehicleExtension(token) {
			continue
		}
		if rel, ok := Normalize(token); ok {
			seeds.AddFile(rel)
		}
		if inDepotGroup {
			inDepotGroup = false
			depotGroupDone = true
		}
	}
}

// parseLineListByExtension inserts every line ending in ext (case
// insensitive) as a normalized seed path, used for parklist_p.txt,
// humans.txt, and drivers.txt.
func parseLineListByExtension(text string, ext string, seeds *Set) {
	for _, raw := range Lines(text) {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(line), ext) {
			continue
		}
		if rel, ok := Normalize(line); ok {
			seeds.AddFile(rel)
		}
	}
}

// nextNonEmptyLines collects the next n non-blank lines starting at index
// from, returning them along with the index just past the last one
// consumed (including any blank lines skipped along the way).
func nextNonEmptyLines(lines []string, from int, n int) ([]string, int) {
	var out []string
	i := from
	for i < len(lines) && len(out) < n {
		if strings.TrimSpace(lines[i]) != "" {
			out = append(out, lines[i])
		}
		i++
	}
	return out, i
}

// firstWhitespaceToken returns the first whitespace-delimited field of
// line.
func firstWhitespaceToken(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// hasVehicleExtension reports whether token ends in one of the recognized
// vehicle extensions.
func hasVehicleExtension(token string) bool {
	lower := strings.ToLower(token)
	for _, ext := range vehicleExtensions {
		if strings.HasSuffix(lower, "."+ext) {
			return true
		}
	}
	return false
}

// genericScan implements the fallback path scanner of spec.md §4.6: it
// walks the raw decoded text for substrings ending in any known extension,
// recovering the full candidate by walking outward over valid path bytes,
// and accepts it only if it looks like a real asset reference.
func genericScan(text string, seeds *Set) {
	data := []byte(text)
	seen := make(map[string]bool)

	for _, ext := range genericScanExtensions {
		for _, variant := range []string{ext, strings.ToUpper(ext)} {
			needle := []byte("." + variant)
			offset := 0
			for {
				idx := bytes.Index(data[offset:], needle)
				if idx < 0 {
					break
				}
				pos := offset + idx
				end := pos + len(needle)

				begin := pos
				for begin > 0 && isValidFilenameByte(data[begin-1]) {
					begin--
				}
				offset = pos + 1

				candidate := string(data[begin:end])
				if !genericScanCandidateAccepted(candidate) {
					continue
				}
				rel, ok := Normalize(candidate)
				if !ok {
					continue
				}
				key := strings.ToLower(rel)
				if seen[key] {
					continue
				}
				seen[key] = true
				seeds.AddFile(rel)
			}
		}
	}
}

// genericScanCandidateAccepted reports whether a scavenged candidate
// contains a path separator or begins with a known top-level folder name,
// per spec.md §4.6.
func genericScanCandidateAccepted(candidate string) bool {
	if strings.ContainsAny(candidate, `\/`) {
		return true
	}
	return isKnownRoot(strings.ToLower(candidate))
}

// findFilesByExtension recursively collects every file under dir whose
// extension matches ext, case-insensitively.
func findFilesByExtension(dir string, ext string) []string {
	var out []string
	filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ext) {
			out = append(out, path)
		}
		return nil
	})
	return out
}

// findOtherTextFiles recursively collects every .txt file under mapDir
// whose base name (lower-cased) isn't in exclude. Matching is done with
// doublestar so that the map's tile/scenery subtree depth doesn't matter,
// the same recursive glob style the teacher uses for ignore patterns.
func findOtherTextFiles(mapDir string, exclude map[string]bool) []string {
	fsys := os.DirFS(mapDir)
	var matches []string
	for _, pattern := range []string{"**/*.txt", "**/*.TXT", "**/*.Txt"} {
		found, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			continue
		}
		matches = append(matches, found...)
	}

	seen := make(map[string]bool, len(matches))
	var out []string
	for _, rel := range matches {
		if seen[strings.ToLower(rel)] {
			continue
		}
		seen[strings.ToLower(rel)] = true
		if exclude[strings.ToLower(filepath.Base(rel))] {
			continue
		}
		out = append(out, filepath.Join(mapDir, filepath.FromSlash(rel)))
	}
	return out
}

// splitRelative splits a backslash-separated relative path into its
// directory and file components.
func splitRelative(rel string) (dir, file string) {
	if idx := strings.LastIndexByte(rel, '\\'); idx >= 0 {
		return rel[:idx], rel[idx+1:]
	}
	return "", rel
}

// toOSPath converts a backslash-separated relative path to the host OS's
// path separator for use with filepath.Join.
func toOSPath(rel string) string {
	if filepath.Separator == '\\' {
		return rel
	}
	return strings.ReplaceAll(rel, `\`, string(filepath.Separator))
}
