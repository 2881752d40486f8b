package logio

import (
	"bytes"
	"sync"
)

// Writer is an io.Writer that hands each complete line to Logf, e.g. to send
// a program listing or an interpreter dump into a Logger or testing.T.Logf.
type Writer struct {
	Logf func(string, ...interface{})

	// Prefix, if set, starts every line passed to Logf.
	Prefix string

	mu  sync.Mutex
	buf bytes.Buffer
}

// Write buffers p and passes on any completed lines; it never fails.
func (lw *Writer) Write(p []byte) (n int, err error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	lw.buf.Write(p)
	lw.flushLines(false)
	return len(p), nil
}

// Sync passes on any trailing partial line.
func (lw *Writer) Sync() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	lw.flushLines(true)
	return nil
}

// Close calls Sync.
func (lw *Writer) Close() error {
	return lw.Sync()
}

func (lw *Writer) flushLines(all bool) {
	for lw.buf.Len() > 0 {
		var line []byte
		if i := bytes.IndexByte(lw.buf.Bytes(), '\n'); i >= 0 {
			line = lw.buf.Next(i)
			lw.buf.Next(1)
		} else if all {
			line = lw.buf.Next(lw.buf.Len())
		} else {
			break
		}
		lw.Logf("%s%s", lw.Prefix, line)
	}
}
