// Package flushio provides buffered writers for streamed sample output.
package flushio

import (
	"bufio"
	"io"
)

// WriteFlusher is a flush-able io.Writer.
type WriteFlusher interface {
	io.Writer
	Flush() error
}

// NewWriteFlusher returns w if it can already flush, a noop-Flush wrapper if
// it is an in-memory buffer or io.Discard, and a bufio.Writer of at least
// size bytes otherwise.
func NewWriteFlusher(w io.Writer, size int) WriteFlusher {
	if w == io.Discard {
		return nopFlusher{w}
	}

	if wf, is := w.(WriteFlusher); is {
		return wf
	}

	// in memory buffers, as implemented by types like bytes.Buffer and
	// strings.Builder, do not need to be flushed
	type buffer interface {
		io.Writer
		Cap() int
		Len() int
		Grow(n int)
		Reset()
	}
	if _, isBuffer := w.(buffer); isBuffer {
		return nopFlusher{w}
	}

	return bufio.NewWriterSize(w, size)
}

type nopFlusher struct{ io.Writer }

func (nf nopFlusher) Flush() error { return nil }

// CountingWriter counts bytes written through it, so that a stream writer can
// report how much reached the sink.
type CountingWriter struct {
	WriteFlusher
	N int64
}

func (cw *CountingWriter) Write(p []byte) (n int, err error) {
	n, err = cw.WriteFlusher.Write(p)
	cw.N += int64(n)
	return n, err
}
