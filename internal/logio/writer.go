package logio

import (
	"bytes"
	"unicode"
)

// Writer logs whatever is written to it one line at a time, so that
// interpreter output can be traced alongside execution. Lines that carry
// control characters, like prompt styling escapes, are logged quoted.
//
// Writer implements Flush, so output streams that flush at prompts and halts
// also log any partial line then.
type Writer struct {
	Logf func(mess string, args ...interface{})

	buf []byte
}

// Write logs every line completed by p, holding any trailing partial line.
func (lw *Writer) Write(p []byte) (int, error) {
	lw.buf = append(lw.buf, p...)
	line := lw.buf
	for {
		i := bytes.IndexByte(line, '\n')
		if i < 0 {
			break
		}
		lw.logLine(line[:i])
		line = line[i+1:]
	}
	lw.buf = append(lw.buf[:0], line...)
	return len(p), nil
}

// Flush logs any partial line.
func (lw *Writer) Flush() error {
	if len(lw.buf) > 0 {
		lw.logLine(lw.buf)
		lw.buf = lw.buf[:0]
	}
	return nil
}

// Close flushes any partial line.
func (lw *Writer) Close() error { return lw.Flush() }

func (lw *Writer) logLine(line []byte) {
	if bytes.IndexFunc(line, isControl) >= 0 {
		lw.Logf("%q", line)
	} else {
		lw.Logf("%s", line)
	}
}

func isControl(r rune) bool { return r != '\t' && unicode.IsControl(r) }
