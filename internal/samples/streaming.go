package samples

// streaming.go wraps CSV input so that extracts exported by Windows tools
// and legacy cores read cleanly without buffering the whole file:
//
//   - a UTF-8 byte-order mark at the start is dropped
//   - bytes that are not valid UTF-8 become '?'
//   - bytes consumed are counted for progress reporting

import (
	"bufio"
	"bytes"
	"io"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// skipBOM returns a reader over r without a leading UTF-8 BOM.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}

// utf8Sanitizer replaces invalid UTF-8 bytes with '?'. A multi-byte
// sequence split across two reads is held back until it is complete.
type utf8Sanitizer struct {
	r       io.Reader
	pending []byte
}

func newUTF8Sanitizer(r io.Reader) *utf8Sanitizer {
	return &utf8Sanitizer{r: r, pending: make([]byte, 0, utf8.UTFMax)}
}

func (s *utf8Sanitizer) Read(p []byte) (int, error) {
	if len(p) <= len(s.pending) {
		// Too small to make progress safely; hand out raw pending bytes.
		n := copy(p, s.pending)
		s.pending = s.pending[n:]
		return n, nil
	}

	off := copy(p, s.pending)
	s.pending = s.pending[:0]

	n, err := s.r.Read(p[off:])
	n += off
	if n == 0 {
		return 0, err
	}
	atEOF := err == io.EOF

	w := 0
	for i := 0; i < n; {
		c := p[i]
		if c < utf8.RuneSelf {
			p[w] = c
			w++
			i++
			continue
		}
		if !atEOF && !utf8.FullRune(p[i:n]) {
			s.pending = append(s.pending, p[i:n]...)
			break
		}
		r, size := utf8.DecodeRune(p[i:n])
		if r == utf8.RuneError && size == 1 {
			p[w] = '?'
			w++
			i++
			continue
		}
		copy(p[w:], p[i:i+size])
		w += size
		i += size
	}

	if w == 0 && err == nil {
		// Only an incomplete sequence so far; read again.
		return s.Read(p)
	}
	return w, err
}

// CountingReader tracks how many bytes have passed through it.
type CountingReader struct {
	r         io.Reader
	BytesRead int64
	Total     int64 // 0 when unknown
}

// NewCountingReader wraps r. total may be 0.
func NewCountingReader(r io.Reader, total int64) *CountingReader {
	return &CountingReader{r: r, Total: total}
}

func (c *CountingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.BytesRead += int64(n)
	return n, err
}

// Progress returns the share read so far as 0-100, or 0 when Total is unknown.
func (c *CountingReader) Progress() int {
	if c.Total <= 0 {
		return 0
	}
	p := int(c.BytesRead * 100 / c.Total)
	if p > 100 {
		p = 100
	}
	return p
}

// cleanInput applies BOM removal and UTF-8 sanitising to r.
func cleanInput(r io.Reader) io.Reader {
	return newUTF8Sanitizer(skipBOM(r))
}
