package assets

import (
	"bytes"
	"io/ioutil"
	"strings"
	"unicode/utf8"
)

// ScavengeBinaryTextures implements L5: it scans a raw byte buffer (a mesh
// file of unknown internal structure) for embedded texture filenames by
// locating known extension byte-sequences and walking backward over valid
// filename bytes until an invalid one is found.
func ScavengeBinaryTextures(data []byte) []string {
	seen := make(map[string]bool)
	var out []string

	for _, ext := range textureExtensions {
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

				if name, ok := cleanCandidate(data[begin:end], len(variant)); ok {
					key := strings.ToLower(name)
					if !seen[key] {
						seen[key] = true
						out = append(out, name)
					}
				}

				offset = pos + 1
			}
		}
	}

	return out
}

// isValidFilenameByte reports whether b may appear within an embedded path
// reference: ASCII alphanumerics plus `_ - . \ / #`.
func isValidFilenameByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '_' || b == '-' || b == '.' || b == '\\' || b == '/' || b == '#':
		return true
	}
	return false
}

// cleanCandidate validates and trims a scavenged span, dropping any
// directory prefix and rejecting spans that don't actually look like a
// filename once cleaned up.
func cleanCandidate(span []byte, extLen int) (string, bool) {
	if len(span) == 0 {
		return "", false
	}
	if span[0] == '.' || span[0] == '\\' || span[0] == '/' {
		return "", false
	}

	name := span
	if idx := lastPathSeparator(name); idx >= 0 {
		name = name[idx+1:]
	}

	// Drop any leftover leading bytes that aren't alphanumeric or
	// underscore (mirrors the original scavenger's cleanup pass).
	start := 0
	for start < len(name) && !isAlnumOrUnderscore(name[start]) {
		start++
	}
	name = name[start:]

	if len(name) <= extLen {
		return "", false
	}
	if !isAlnumOrUnderscore(name[0]) {
		return "", false
	}

	return string(name), true
}

func lastPathSeparator(span []byte) int {
	for i := len(span) - 1; i >= 0; i-- {
		if span[i] == '\\' || span[i] == '/' {
			return i
		}
	}
	return -1
}

func isAlnumOrUnderscore(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '_':
		return true
	}
	return false
}

// ExtractXTextures handles the DirectX `.x` mesh format (spec.md §4.5): if
// the file decodes cleanly as UTF-8 text, it scans line by line for
// TextureFilename blocks and pulls the quoted name out of each. If the
// bytes aren't valid UTF-8 (a binary `.x` container), it falls back to the
// generic binary scavenger.
func ExtractXTextures(path string) []string {
	data, err := ioutil.ReadFile(longPathAware(path))
	if err != nil {
		return nil
	}

	if !utf8.Valid(data) {
		return ScavengeBinaryTextures(data)
	}

	var out []string
	for _, line := range Lines(string(data)) {
		if !strings.Contains(line, "TextureFilename") {
			continue
		}
		if name, ok := firstQuoted(line); ok {
			name = strings.ReplaceAll(name, "/", `\`)
			if idx := strings.LastIndexByte(name, '\\'); idx >= 0 {
				name = name[idx+1:]
			}
			if name != "" {
				out = append(out, name)
			}
		}
	}
	return out
}

// scavengeMeshTextures applies L5 to a resolved mesh file: DirectX `.x`
// meshes go through ExtractXTextures (text-first, binary fallback); every
// other mesh extension is scavenged directly as a binary blob.
func scavengeMeshTextures(absPath string) []string {
	if strings.HasSuffix(strings.ToLower(absPath), ".x") {
		return ExtractXTextures(absPath)
	}
	data, err := ioutil.ReadFile(longPathAware(absPath))
	if err != nil {
		return nil
	}
	return ScavengeBinaryTextures(data)
}

// firstQuoted extracts the text between the first two double-quote
// characters on a line.
func firstQuoted(line string) (string, bool) {
	first := strings.IndexByte(line, '"')
	if first < 0 {
		return "", false
	}
	second := strings.IndexByte(line[first+1:], '"')
	if second < 0 {
		return "", false
	}
	return line[first+1 : first+1+second], true
}
