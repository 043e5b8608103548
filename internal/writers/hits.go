package writers

import (
	"bufio"
	"io"

	"bsprimer-core/bases"
	"bsprimer-core/strand"

	"bsprimer/pkg/api"
)

func isReverseDisplayed(name string) bool {
	t, err := strand.ParseType(name)
	return err == nil && t.ReverseDisplayed()
}

func reverseString(s string) string { return bases.Reverse(s) }

// StartHitWriter spins up a writer goroutine for search hits. Text and
// pretty output stream as hits arrive; JSON is collected into meta and
// written once the channel closes. The returned error channel yields exactly
// one value after the input is drained.
func StartHitWriter(out io.Writer, format string, meta api.SearchV1, header bool, bufSize int) (chan<- api.HitV1, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan api.HitV1, bufSize)
	errCh := make(chan error, 1)

	go func() {
		var err error
		switch format {
		case "json":
			meta.Hits = []api.HitV1{}
			for h := range in {
				meta.Hits = append(meta.Hits, h)
			}
			err = Write(Search, format, out, meta)

		case "text", "pretty":
			bw := bufio.NewWriter(out)
			if header && format == "text" {
				_, err = bw.WriteString(hitHeader())
			}
			n := 0
			for h := range in {
				if err != nil {
					continue // drain
				}
				if format == "text" {
					_, err = bw.WriteString(hitRow(h))
				} else {
					if n > 0 {
						_, err = bw.WriteString("#\n")
					}
					if err == nil {
						_, err = bw.WriteString(hitBlock(meta.Query, h))
					}
				}
				n++
			}
			if ferr := bw.Flush(); err == nil {
				err = ferr
			}

		default:
			for range in {
			}
			err = Write(Search, format, out, meta)
		}
		errCh <- err
		close(errCh)
	}()
	return in, errCh
}
