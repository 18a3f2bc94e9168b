package memcached

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
)

// Payloads are zlib streams, the format other memcache clients write under
// the same compressed flag.

func compress(level int, value []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, fmt.Errorf("new zlib writer: %w", err)
	}
	if _, err = w.Write(value); err != nil {
		return nil, fmt.Errorf("compress value: %w", err)
	}
	if err = w.Close(); err != nil {
		return nil, fmt.Errorf("close zlib writer: %w", err)
	}
	return buf.Bytes(), nil
}

func decompress(value []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(value))
	if err != nil {
		return nil, fmt.Errorf("open zlib stream: %w", err)
	}
	defer func() { _ = r.Close() }()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decompress value: %w", err)
	}
	return out, nil
}
