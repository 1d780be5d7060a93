// Package fileinput reads source lines sequentially from a queue of
// input streams, tracking where each line came from.
package fileinput

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Location names a line in an Input file.
type Location struct {
	Name string
	Line int
}

// Line combines a Location with the text read from it, sans line ending.
type Line struct {
	Location
	Text string
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v", loc.Name, loc.Line) }
func (il Line) String() string      { return fmt.Sprintf("%v %q", il.Location, il.Text) }

// Named wraps a reader so that Input reports lines from it under name.
func Named(name string, r io.Reader) io.Reader { return namedReader{r, name} }

type namedReader struct {
	io.Reader
	name string
}

func (nr namedReader) Name() string { return nr.name }

// Input implements sequential line reading through a Queue of one or more
// input streams. The last read line is tracked to facilitate user feedback.
type Input struct {
	Queue []io.Reader
	Last  Line

	cur  io.Reader
	br   *bufio.Reader
	scan Location
}

// ReadLine reads the next line from the current input stream, moving on
// through Queue as each stream runs dry. Returns io.EOF only once every
// stream has been consumed.
func (in *Input) ReadLine() (Line, error) {
	for {
		if in.br == nil && !in.nextIn() {
			return Line{}, io.EOF
		}
		s, err := in.br.ReadString('\n')
		if s != "" {
			in.scan.Line++
			in.Last = Line{in.scan, strings.TrimRight(s, "\r\n")}
			if err == io.EOF {
				err = nil
			}
			return in.Last, err
		}
		if err != io.EOF {
			return Line{}, err
		}
		in.closeIn()
	}
}

// Close closes any remaining queued inputs that implement io.Closer.
func (in *Input) Close() (err error) {
	in.closeIn()
	for _, r := range in.Queue {
		if cl, ok := r.(io.Closer); ok {
			if cerr := cl.Close(); err == nil {
				err = cerr
			}
		}
	}
	in.Queue = nil
	return err
}

func (in *Input) closeIn() {
	if cl, ok := in.cur.(io.Closer); ok {
		cl.Close()
	}
	in.cur, in.br = nil, nil
}

func (in *Input) nextIn() bool {
	in.closeIn()
	if len(in.Queue) == 0 {
		return false
	}
	r := in.Queue[0]
	in.Queue = in.Queue[1:]
	in.cur = r
	in.br = bufio.NewReader(r)
	in.scan = Location{Name: nameOf(r)}
	return true
}

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}
