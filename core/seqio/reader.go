// Package seqio imports a single top-strand sequence from FASTA, GenBank or
// plain text. Only letters survive: numbering, whitespace and punctuation in
// the sequence body are dropped and the result is lowercased.
package seqio

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Format is the detected input format.
type Format string

const (
	FormatFASTA   Format = "fasta"
	FormatGenBank Format = "genbank"
	FormatRaw     Format = "raw"
)

// ErrEmpty is returned when no sequence letters were found.
var ErrEmpty = errors.New("no sequence found")

// Record is one imported sequence.
type Record struct {
	ID     string
	Seq    string
	Format Format
}

// Parse imports from an in-memory string.
func Parse(text string) (Record, error) {
	return Read(context.Background(), strings.NewReader(text))
}

// ReadPath imports from a file (gzip ok) or "-" for stdin.
func ReadPath(ctx context.Context, path string) (Record, error) {
	rc, err := openReader(path)
	if err != nil {
		return Record{}, err
	}
	defer rc.Close()
	rec, err := Read(ctx, rc)
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

// Read scans r. FASTA input yields its first record; GenBank input yields
// the ORIGIN block; anything else is read as raw sequence text.
// Cancellation via ctx is checked between lines.
func Read(ctx context.Context, r io.Reader) (Record, error) {
	sc := bufio.NewScanner(r)
	const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences (64 MiB)
	buf := make([]byte, 64*1024)
	sc.Buffer(buf, maxLine)

	var (
		rec      Record
		seq      = make([]byte, 0, 1<<16)
		inOrigin bool
		started  bool
	)
scan:
	for sc.Scan() {
		select {
		case <-ctx.Done():
			return Record{}, ctx.Err()
		default:
		}
		line := bytes.TrimRight(sc.Bytes(), "\r")
		trimmed := bytes.TrimSpace(line)
		if !started {
			if len(trimmed) == 0 {
				continue
			}
			started = true
			switch {
			case trimmed[0] == '>':
				rec.Format = FormatFASTA
				rec.ID = parseHeaderID(trimmed[1:])
				continue
			case bytes.HasPrefix(trimmed, []byte("LOCUS")):
				rec.Format = FormatGenBank
				if f := bytes.Fields(trimmed); len(f) > 1 {
					rec.ID = string(f[1])
				}
				continue
			default:
				rec.Format = FormatRaw
			}
		}
		switch rec.Format {
		case FormatFASTA:
			if len(trimmed) > 0 && trimmed[0] == '>' {
				break scan // first record only
			}
			seq = appendLetters(seq, trimmed)
		case FormatGenBank:
			if bytes.HasPrefix(trimmed, []byte("//")) {
				break scan
			}
			if !inOrigin {
				inOrigin = bytes.HasPrefix(line, []byte("ORIGIN"))
				continue
			}
			seq = appendLetters(seq, trimmed)
		default:
			seq = appendLetters(seq, trimmed)
		}
	}
	if err := sc.Err(); err != nil {
		return Record{}, fmt.Errorf("sequence scan: %w", err)
	}
	if len(seq) == 0 {
		return Record{}, ErrEmpty
	}
	rec.Seq = string(seq)
	return rec, nil
}

func appendLetters(dst, line []byte) []byte {
	for _, c := range line {
		switch {
		case c >= 'a' && c <= 'z':
			dst = append(dst, c)
		case c >= 'A' && c <= 'Z':
			dst = append(dst, c+('a'-'A'))
		}
	}
	return dst
}

func parseHeaderID(hdr []byte) string {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i])
	}
	return string(hdr)
}
