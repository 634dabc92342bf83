package assets

import (
	"bytes"
	"io/ioutil"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadText reads path and decodes it to text under BOM detection, falling
// back to a lossy Windows-1252 interpretation when the content isn't valid
// UTF-8. It never returns an error for malformed content; the second return
// value is false only when the file itself could not be read.
func ReadText(path string) (string, bool) {
	data, err := ioutil.ReadFile(longPathAware(path))
	if err != nil {
		return "", false
	}
	return DecodeText(data), true
}

// DecodeText applies the BOM-detection / lossy-fallback decoding rules to an
// in-memory byte slice, matching L1's contract for callers that already
// have file contents in hand (for example the binary scavenger's DirectX
// text-mode attempt).
func DecodeText(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		return stripNUL(decodeWith(unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder(), data[2:]))
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		return stripNUL(decodeWith(unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder(), data[2:]))
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return stripNUL(string(data[3:]))
	}

	// No BOM. Prefer UTF-8 if the bytes are already valid; otherwise fall
	// back to the legacy Windows-1252 ecosystem default. Both paths are
	// lossy: garbage characters are preferable to a hard failure.
	if utf8.Valid(data) {
		return stripNUL(string(data))
	}
	return stripNUL(decodeWith(charmap.Windows1252.NewDecoder(), data))
}

// decodeWith runs data through a decoder, replacing any unsupported or
// malformed byte sequences with the Unicode replacement character rather
// than aborting. This is what makes the reader lossy-tolerant per spec.md
// §4.1 and §9.
func decodeWith(decoder *encoding.Decoder, data []byte) string {
	lossy := transform.NewReader(bytes.NewReader(data), encoding.ReplaceUnsupported(decoder))
	out, err := ioutil.ReadAll(lossy)
	if err != nil && len(out) == 0 {
		return string(data)
	}
	return string(out)
}

// stripNUL removes stray NUL bytes that show up in mis-encoded legacy
// config files before any line-oriented parsing happens.
func stripNUL(s string) string {
	if !strings.ContainsRune(s, 0) {
		return s
	}
	return strings.ReplaceAll(s, "\x00", "")
}

// Lines splits decoded text into lines, tolerating both CRLF and bare LF
// terminators, and trims any trailing carriage return left behind.
func Lines(text string) []string {
	raw := strings.Split(text, "\n")
	out := make([]string, len(raw))
	for i, line := range raw {
		out[i] = strings.TrimSuffix(line, "\r")
	}
	return out
}
