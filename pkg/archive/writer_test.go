package archive

import (
	"bytes"
	"io"
	"io/ioutil"
	"testing"
)

func TestWriterReaderRoundTrip(t *testing.T) {
	contents := map[string][]byte{
		"Sceneryobjects/A/a.sco":        []byte("[mesh]\nm.o3d\n"),
		"Sceneryobjects/A/texture/t.dds": bytes.Repeat([]byte{0xAB}, 4096),
		"Vehicles/SOR/bus1.bus":         []byte{},
	}
	names := []string{
		"Sceneryobjects/A/a.sco",
		"Sceneryobjects/A/texture/t.dds",
		"Vehicles/SOR/bus1.bus",
	}

	var buf bytes.Buffer
	w, err := NewWriter(&buf, MethodDeflate, 1)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	for _, name := range names {
		data := contents[name]
		if err := w.WriteEntry(name, bytes.NewReader(data), int64(len(data))); err != nil {
			t.Fatalf("WriteEntry(%s) failed: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	r, err := NewReader(&buf)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}

	var got []string
	for {
		entry, content, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		data, err := ioutil.ReadAll(content)
		if err != nil {
			t.Fatalf("reading entry %s failed: %v", entry.Name, err)
		}
		if !bytes.Equal(data, contents[entry.Name]) {
			t.Errorf("entry %s: content mismatch (got %d bytes, want %d)", entry.Name, len(data), len(contents[entry.Name]))
		}
		if entry.Size != int64(len(contents[entry.Name])) {
			t.Errorf("entry %s: size mismatch (got %d, want %d)", entry.Name, entry.Size, len(contents[entry.Name]))
		}
		got = append(got, entry.Name)
	}

	if len(got) != len(names) {
		t.Fatalf("got %d entries, want %d", len(got), len(names))
	}
	for i, name := range names {
		if got[i] != name {
			t.Errorf("entry %d: got %s, want %s", i, got[i], name)
		}
	}
}

func TestWriterStoredMethod(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, MethodStored, 0)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	data := []byte("plain bytes, no compression")
	if err := w.WriteEntry("Sound/horn.wav", bytes.NewReader(data), int64(len(data))); err != nil {
		t.Fatalf("WriteEntry failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	r, err := NewReader(&buf)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	entry, content, err := r.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if entry.Method != MethodStored {
		t.Errorf("got method %v, want MethodStored", entry.Method)
	}
	got, err := ioutil.ReadAll(content)
	if err != nil {
		t.Fatalf("reading entry failed: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("content mismatch: got %q, want %q", got, data)
	}

	if _, _, err := r.Next(); err != io.EOF {
		t.Errorf("expected io.EOF at end of archive, got %v", err)
	}
}

func TestMethodString(t *testing.T) {
	cases := map[Method]string{
		MethodStored:  "stored",
		MethodDeflate: "deflate",
		Method(99):    "unknown",
	}
	for method, want := range cases {
		if got := method.String(); got != want {
			t.Errorf("Method(%d).String() = %q, want %q", method, got, want)
		}
	}
}
