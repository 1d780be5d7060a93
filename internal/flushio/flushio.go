// Package flushio provides the buffered output stream behind an interpreter:
// one primary writer, swappable at any time, plus tees that see a copy of
// everything written.
package flushio

import (
	"bufio"
	"bytes"
	"io"
	"strings"
)

// WriteFlusher is a flush-able io.Writer.
type WriteFlusher interface {
	io.Writer
	Flush() error
}

type nopFlusher struct{ io.Writer }

func (nopFlusher) Flush() error { return nil }

// NewWriteFlusher creates a new flushable writer. A nil writer discards,
// existing WriteFlushers are returned as is, in-memory buffers write through,
// and anything else is wrapped in a bufio.Writer.
func NewWriteFlusher(w io.Writer) WriteFlusher {
	switch impl := w.(type) {
	case nil:
		return nopFlusher{io.Discard}
	case WriteFlusher:
		return impl
	case *strings.Builder, *bytes.Buffer:
		return nopFlusher{w}
	}
	if w == io.Discard {
		return nopFlusher{w}
	}
	return bufio.NewWriter(w)
}

// Output is a primary writer plus any number of tees. Its zero value
// discards everything.
type Output struct {
	primary WriteFlusher
	tees    []WriteFlusher
}

// SetPrimary flushes the current primary writer and replaces it; tees are
// kept, so option order does not matter.
func (out *Output) SetPrimary(w io.Writer) error {
	var err error
	if out.primary != nil {
		err = out.primary.Flush()
	}
	out.primary = NewWriteFlusher(w)
	return err
}

// AddTee adds a writer that receives a copy of all subsequent output.
func (out *Output) AddTee(w io.Writer) {
	if w != nil {
		out.tees = append(out.tees, NewWriteFlusher(w))
	}
}

// Write writes p to the primary writer, then to every tee, stopping at the
// first error.
func (out *Output) Write(p []byte) (int, error) {
	if out.primary != nil {
		if n, err := out.primary.Write(p); err != nil {
			return n, err
		}
	}
	for _, tee := range out.tees {
		if _, err := tee.Write(p); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

// Flush flushes every writer, returning the first error.
func (out *Output) Flush() (err error) {
	if out.primary != nil {
		err = out.primary.Flush()
	}
	for _, tee := range out.tees {
		if ferr := tee.Flush(); err == nil {
			err = ferr
		}
	}
	return err
}
