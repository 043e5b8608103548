package seqio

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
)

var gzipMagic = []byte{0x1f, 0x8b}

// source is an opened sequence input. Closing it releases the decompressor
// and then the underlying file.
type source struct {
	io.Reader
	closers []io.Closer
}

func (s *source) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// openReader opens path for reading; "-" is stdin. Gzip input is detected by
// its magic bytes, so piped and misnamed files decompress too. Errors name
// the path.
func openReader(path string) (io.ReadCloser, error) {
	var (
		raw     io.Reader
		closers []io.Closer
	)
	if path == "-" {
		raw = os.Stdin
	} else {
		fh, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open sequence %s: %w", path, err)
		}
		raw = fh
		closers = append(closers, fh)
	}
	return sniff(path, raw, closers)
}

// sniff wraps r in a gzip reader when it starts with the gzip magic.
func sniff(name string, r io.Reader, closers []io.Closer) (io.ReadCloser, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(len(gzipMagic))
	if !bytes.Equal(head, gzipMagic) {
		return &source{Reader: br, closers: closers}, nil
	}
	gr, err := gzip.NewReader(br)
	if err != nil {
		for _, c := range closers {
			_ = c.Close()
		}
		return nil, fmt.Errorf("%s: gzip: %w", name, err)
	}
	return &source{Reader: gr, closers: append([]io.Closer{gr}, closers...)}, nil
}
