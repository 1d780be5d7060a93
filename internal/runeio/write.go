package runeio

import (
	"io"
	"unicode"
	"unicode/utf8"
)

// Rune converts a cell value to a rune; anything outside the unicode range
// becomes the replacement character rather than wrapping around.
func Rune(c int) rune {
	if c < 0 || c > unicode.MaxRune {
		return utf8.RuneError
	}
	return rune(c)
}

// AppendRune appends r to buf in the form a terminal expects. NEL becomes
// "\r\n", other C1 controls take their 7-bit escape form (CSI is "\x1b["),
// and everything else is utf8.
func AppendRune(buf []byte, r rune) []byte {
	switch {
	case r == 0x85:
		return append(buf, '\r', '\n')
	case r >= 0x80 && r <= 0x9f:
		return append(buf, 0x1b, byte(r^0xc0))
	}
	return utf8.AppendRune(buf, r)
}

// WriteRune writes a single rune with one call to w.Write.
func WriteRune(w io.Writer, r rune) (int, error) {
	var tmp [utf8.UTFMax]byte
	return w.Write(AppendRune(tmp[:0], r))
}

// WriteString writes every rune of s with one call to w.Write.
func WriteString(w io.Writer, s string) (int, error) {
	buf := make([]byte, 0, len(s))
	for _, r := range s {
		buf = AppendRune(buf, r)
	}
	return w.Write(buf)
}

// WriteCells writes cells holding one rune each, as stored by s" in the heap.
func WriteCells(w io.Writer, cells []int) (int, error) {
	buf := make([]byte, 0, len(cells))
	for _, c := range cells {
		buf = AppendRune(buf, Rune(c))
	}
	return w.Write(buf)
}
