// Package archive implements a minimal streaming archive format for bundled
// map assets: a sequence of uvarint-length-prefixed entries, each either
// stored verbatim or DEFLATE-compressed, terminated by a zero-length name.
// The framing style (a small header encoded with encoding/binary's uvarint
// helpers ahead of each payload) mirrors pkg/frame's message framing.
package archive

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/pkg/errors"
)

// Method identifies how an entry's payload is encoded on disk.
type Method uint8

const (
	// MethodStored copies the entry's bytes verbatim.
	MethodStored Method = iota
	// MethodDeflate compresses the entry's bytes with DEFLATE.
	MethodDeflate
)

// String returns the manifest/CLI name for m ("stored" or "deflate").
func (m Method) String() string {
	switch m {
	case MethodStored:
		return "stored"
	case MethodDeflate:
		return "deflate"
	default:
		return "unknown"
	}
}

// magic identifies the archive format and its version.
var magic = [4]byte{'O', 'M', 'B', 1}

// Writer appends entries to an underlying stream. It is not safe for
// concurrent use; entries must be written to completion one at a time.
type Writer struct {
	out    *bufio.Writer
	method Method
	level  int
	closed bool
}

// NewWriter creates a Writer that compresses every entry with method at the
// given DEFLATE level (ignored for MethodStored). level follows flate's
// convention: 0 disables compression, 1 favors speed, up to 9 for best
// compression; the default used by pkg/bundler is 1.
func NewWriter(w io.Writer, method Method, level int) (*Writer, error) {
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(magic[:]); err != nil {
		return nil, errors.Wrap(err, "unable to write archive header")
	}
	return &Writer{out: bw, method: method, level: level}, nil
}

// WriteEntry appends a single file entry. name must use forward-slash
// separators (spec.md §6's archive entry name convention).
func (w *Writer) WriteEntry(name string, r io.Reader, size int64) error {
	if w.closed {
		return errors.New("writer is closed")
	}

	if err := writeString(w.out, name); err != nil {
		return errors.Wrap(err, "unable to write entry name")
	}
	if err := writeUvarint(w.out, uint64(w.method)); err != nil {
		return errors.Wrap(err, "unable to write entry method")
	}
	if err := writeUvarint(w.out, uint64(size)); err != nil {
		return errors.Wrap(err, "unable to write entry size")
	}

	switch w.method {
	case MethodStored:
		if _, err := io.Copy(w.out, r); err != nil {
			return errors.Wrap(err, "unable to write stored entry data")
		}
	case MethodDeflate:
		compressor, err := flate.NewWriter(w.out, w.level)
		if err != nil {
			return errors.Wrap(err, "unable to construct deflate compressor")
		}
		if _, err := io.Copy(compressor, r); err != nil {
			compressor.Close()
			return errors.Wrap(err, "unable to write compressed entry data")
		}
		if err := compressor.Close(); err != nil {
			return errors.Wrap(err, "unable to flush compressed entry data")
		}
	default:
		return errors.New("unknown archive method")
	}

	return nil
}

// Close writes the archive's terminating marker and flushes the underlying
// stream. It does not close the wrapped io.Writer.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := writeString(w.out, ""); err != nil {
		return errors.Wrap(err, "unable to write archive terminator")
	}
	return errors.Wrap(w.out.Flush(), "unable to flush archive")
}

func writeString(w io.Writer, s string) error {
	if err := writeUvarint(w, uint64(len(s))); err != nil {
		return err
	}
	if len(s) == 0 {
		return nil
	}
	_, err := io.WriteString(w, s)
	return err
}

func writeUvarint(w io.Writer, v uint64) error {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], v)
	_, err := w.Write(buf[:n])
	return err
}
