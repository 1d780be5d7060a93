package forth

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jcorbin/goforth/internal/fileinput"
)

// reader pulls tokens and characters from a line buffer. When the buffer
// runs dry it returns errNeedInput, and the caller decides where the next
// line comes from by calling feed.
type reader struct {
	buf string
	pos int
	loc fileinput.Location
}

func (rd *reader) feed(line fileinput.Line) {
	rd.buf = line.Text + "\n"
	rd.pos = 0
	rd.loc = line.Location
}

func (rd *reader) skipLine() { rd.pos = len(rd.buf) }

// token returns the next whitespace delimited token, consuming exactly one
// delimiter after it.
func (rd *reader) token() (string, error) {
	for rd.pos < len(rd.buf) {
		r, n := utf8.DecodeRuneInString(rd.buf[rd.pos:])
		if !unicode.IsSpace(r) {
			break
		}
		rd.pos += n
	}
	if rd.pos >= len(rd.buf) {
		return "", errNeedInput
	}
	start := rd.pos
	for rd.pos < len(rd.buf) {
		r, n := utf8.DecodeRuneInString(rd.buf[rd.pos:])
		if unicode.IsSpace(r) {
			tok := rd.buf[start:rd.pos]
			rd.pos += n
			return tok, nil
		}
		rd.pos += n
	}
	return rd.buf[start:], nil
}

// word is token, case folded.
func (rd *reader) word() (string, error) {
	tok, err := rd.token()
	return strings.ToLower(tok), err
}

// char returns the next raw rune.
func (rd *reader) char() (rune, error) {
	if rd.pos >= len(rd.buf) {
		return 0, errNeedInput
	}
	r, n := utf8.DecodeRuneInString(rd.buf[rd.pos:])
	rd.pos += n
	return r, nil
}
