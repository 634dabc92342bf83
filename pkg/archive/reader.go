package archive

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/pkg/errors"
)

// Entry describes one decoded archive entry's header.
type Entry struct {
	// Name is the entry's forward-slash-separated path.
	Name string
	// Method is how the entry's payload was encoded.
	Method Method
	// Size is the entry's uncompressed size in bytes.
	Size int64
}

// Reader reads entries from a stream written by Writer, in order.
type Reader struct {
	in *bufio.Reader
}

// NewReader validates r's archive header and returns a Reader positioned at
// the first entry.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)
	var header [4]byte
	if _, err := io.ReadFull(br, header[:]); err != nil {
		return nil, errors.Wrap(err, "unable to read archive header")
	}
	if header != magic {
		return nil, errors.New("not a recognized archive (bad magic)")
	}
	return &Reader{in: br}, nil
}

// Next reads the next entry's header and returns a reader over its
// decompressed content. It returns io.EOF once the archive's terminating
// marker is reached. The returned content reader must be fully drained
// before calling Next again.
func (r *Reader) Next() (Entry, io.Reader, error) {
	name, err := readString(r.in)
	if err != nil {
		return Entry{}, nil, errors.Wrap(err, "unable to read entry name")
	}
	if name == "" {
		return Entry{}, nil, io.EOF
	}

	methodValue, err := binary.ReadUvarint(r.in)
	if err != nil {
		return Entry{}, nil, errors.Wrap(err, "unable to read entry method")
	}
	size, err := binary.ReadUvarint(r.in)
	if err != nil {
		return Entry{}, nil, errors.Wrap(err, "unable to read entry size")
	}

	entry := Entry{Name: name, Method: Method(methodValue), Size: int64(size)}

	switch entry.Method {
	case MethodStored:
		return entry, io.LimitReader(r.in, entry.Size), nil
	case MethodDeflate:
		return entry, flate.NewReader(r.in), nil
	default:
		return Entry{}, nil, errors.New("unknown archive method")
	}
}

func readString(r io.ByteReader) (string, error) {
	n, err := binary.ReadUvarint(r)
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}
	buf := make([]byte, n)
	br, ok := r.(io.Reader)
	if !ok {
		return "", errors.New("reader does not support bulk reads")
	}
	if _, err := io.ReadFull(br, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}
