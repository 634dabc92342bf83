package assets

import "testing"

func TestDecodeTextUTF16LEWithBOM(t *testing.T) {
	data := []byte{0xFF, 0xFE, 'h', 0, 'i', 0}
	if got := DecodeText(data); got != "hi" {
		t.Errorf("got %q, want %q", got, "hi")
	}
}

func TestDecodeTextUTF8BOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("global")...)
	if got := DecodeText(data); got != "global" {
		t.Errorf("got %q, want %q", got, "global")
	}
}

func TestDecodeTextUnknownBOMlessFallsBackToWindows1252(t *testing.T) {
	// 0xE9 is "e" + acute accent in Windows-1252 but not valid standalone
	// UTF-8, so an unadorned legacy file with no BOM must decode via the
	// Windows-1252 fallback rather than fail outright.
	data := []byte{'c', 'a', 'f', 0xE9}
	got := DecodeText(data)
	if got == "" {
		t.Fatal("expected a lossy decode, not an empty result")
	}
	if len(got) < 4 {
		t.Errorf("got %q, decode appears to have dropped bytes", got)
	}
}

func TestDecodeTextValidUTF8PassesThrough(t *testing.T) {
	if got := DecodeText([]byte("plain ascii text")); got != "plain ascii text" {
		t.Errorf("got %q", got)
	}
}

func TestDecodeTextStripsNUL(t *testing.T) {
	data := []byte("a\x00b\x00c")
	if got := DecodeText(data); got != "abc" {
		t.Errorf("got %q, want NUL bytes stripped", got)
	}
}

func TestLinesTrimsCarriageReturns(t *testing.T) {
	lines := Lines("one\r\ntwo\nthree\r\n")
	want := []string{"one", "two", "three", ""}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %v", len(lines), len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, lines[i], want[i])
		}
	}
}
