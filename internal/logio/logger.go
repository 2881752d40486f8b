package logio

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// Logger is a leveled, line oriented logger shared by concurrent renders.
// Every line is written whole while holding a lock, so that output from
// several goroutines never interleaves mid-line.
type Logger struct {
	mu       sync.Mutex
	output   io.Writer
	buf      bytes.Buffer
	trace    bool
	exitCode int
}

// SetOutput sets the logger's output stream, closing the prior one if it
// was an io.Closer.
func (log *Logger) SetOutput(out io.Writer) {
	log.mu.Lock()
	defer log.mu.Unlock()
	if cl, ok := log.output.(io.Closer); ok && log.output != out {
		cl.Close()
	}
	log.output = out
}

// SetTrace enables or disables TRACE level output.
func (log *Logger) SetTrace(trace bool) {
	log.mu.Lock()
	defer log.mu.Unlock()
	log.trace = trace
}

// ExitCode returns a code to pass to os.Exit: 1 if anything was logged
// through Errorf, 2 if writing a log line failed, 0 otherwise.
func (log *Logger) ExitCode() int {
	log.mu.Lock()
	defer log.mu.Unlock()
	return log.exitCode
}

// Leveledf returns a printf-style function that logs at the given level.
// The TRACE level is dropped unless SetTrace(true) was called; it is decided
// at call time, so hooks may be handed out before flags are parsed.
func (log *Logger) Leveledf(level string) func(mess string, args ...interface{}) {
	return func(mess string, args ...interface{}) { log.Printf(level, mess, args...) }
}

// Prefixed returns a Leveledf function whose messages start with prefix,
// e.g. the source file name of one render among several.
func (log *Logger) Prefixed(level, prefix string) func(mess string, args ...interface{}) {
	return func(mess string, args ...interface{}) {
		log.Printf(level, prefix+": "+mess, args...)
	}
}

// ErrorIf logs any non-nil error through Errorf.
func (log *Logger) ErrorIf(err error) {
	if err != nil {
		log.Errorf("%v", err)
	}
}

// Errorf is like Printf("ERROR", ...) but also makes ExitCode non-zero.
func (log *Logger) Errorf(mess string, args ...interface{}) {
	log.mu.Lock()
	defer log.mu.Unlock()
	if log.exitCode == 0 {
		log.exitCode = 1
	}
	if err := log.printf("ERROR", mess, args...); err != nil {
		log.exitCode = 2
	}
}

// Printf prints a line like "level: message...\n". A write failure is
// retained for ExitCode.
func (log *Logger) Printf(level, mess string, args ...interface{}) {
	log.mu.Lock()
	defer log.mu.Unlock()
	if level == "TRACE" && !log.trace {
		return
	}
	if err := log.printf(level, mess, args...); err != nil {
		log.exitCode = 2
	}
}

func (log *Logger) printf(level, mess string, args ...interface{}) error {
	if log.output == nil {
		return nil
	}
	log.buf.Reset()
	if level != "" {
		log.buf.WriteString(level)
		log.buf.WriteString(": ")
	}
	if len(args) > 0 {
		fmt.Fprintf(&log.buf, mess, args...)
	} else {
		log.buf.WriteString(mess)
	}
	if b := log.buf.Bytes(); len(b) > 0 && b[len(b)-1] != '\n' {
		log.buf.WriteByte('\n')
	}
	_, err := log.buf.WriteTo(log.output)
	return err
}
