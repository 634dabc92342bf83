package assets

import "strings"

// trimCutset is the set of quote and punctuation characters stripped from
// both ends of a raw reference before validation, for references lifted out
// of quoted contexts (DirectX TextureFilename blocks, comma-separated
// lists, and the like).
const trimCutset = `;,)]"'»“”’(['`

// Normalize applies L2's canonicalization rules to a raw string pulled from
// a config file, returning the canonical backslash-separated relative path
// and true, or false if the string must be rejected.
func Normalize(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}
	s = strings.Trim(s, trimCutset)
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}

	s = strings.ReplaceAll(s, "/", "\\")

	for strings.HasPrefix(s, `.\`) {
		s = s[2:]
	}
	if s == "" {
		return "", false
	}

	if strings.HasPrefix(s, `\`) {
		return "", false
	}

	first := firstSegment(s)
	if !isKnownRoot(strings.ToLower(first)) {
		return "", false
	}

	return s, true
}

// firstSegment returns the characters of s up to (not including) the first
// backslash, or the whole string if there is none.
func firstSegment(s string) string {
	if idx := strings.IndexByte(s, '\\'); idx >= 0 {
		return s[:idx]
	}
	return s
}

// JoinPath joins relative path segments using backslash separators, the
// convention asset paths use throughout this package.
func JoinPath(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, strings.Trim(p, `\`))
		}
	}
	return strings.Join(nonEmpty, `\`)
}

// ToArchiveName converts an internal backslash-separated asset path to the
// forward-slash form used for archive entry names (spec.md §6).
func ToArchiveName(path string) string {
	return strings.ReplaceAll(path, `\`, "/")
}
