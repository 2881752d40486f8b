// Package preprocess reads the "#" directives of a forthbyte source. The
// forth lexer skips these lines; they choose how the rest is compiled.
//
// A directive must be the first word on its line:
//
//	#samplerate N       evaluation rate of t in Hz (default 8000)
//	#byte               integer arithmetic, output is the low 8 bits
//	#float              floating point arithmetic, output in [-1, 1] (default)
//	#initmemory v...    initial memory contents, starting at address 0
package preprocess

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultSampleRate is used when no #samplerate directive is present.
const DefaultSampleRate = 8000

// Settings collects the directives of one source.
type Settings struct {
	Float      bool
	SampleRate uint64
	InitMemory []string
}

// Directive errors; match them with errors.Is.
var (
	ErrUnknownDirective = errors.New("unknown preprocessor directive")
	ErrBadSampleRate    = errors.New("sample rate must be a positive integer")
)

// Error locates a bad directive.
type Error struct {
	Line      int
	Directive string
	Err       error
}

func (err *Error) Error() string {
	return fmt.Sprintf("%v: %v: %v", err.Line, err.Directive, err.Err)
}

func (err *Error) Unwrap() error { return err.Err }

// Scan reads every directive in src. When a mode directive is repeated the
// last one wins; #initmemory lines accumulate.
func Scan(src string) (Settings, error) {
	set := Settings{
		Float:      true,
		SampleRate: DefaultSampleRate,
	}
	for i, line := range strings.Split(src, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 || !strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch directive, args := fields[0], fields[1:]; directive {
		case "#samplerate":
			var rate uint64
			var err error = ErrBadSampleRate
			if len(args) > 0 {
				rate, err = strconv.ParseUint(leadingDigits(args[0]), 10, 64)
			}
			if err != nil || rate == 0 {
				return set, &Error{Line: i + 1, Directive: directive, Err: ErrBadSampleRate}
			}
			set.SampleRate = rate
		case "#byte":
			set.Float = false
		case "#float":
			set.Float = true
		case "#initmemory":
			set.InitMemory = append(set.InitMemory, args...)
		default:
			return set, &Error{Line: i + 1, Directive: directive, Err: ErrUnknownDirective}
		}
	}
	return set, nil
}

// leadingDigits returns the decimal digits that s starts with, so that
// "44100.5" or "44100Hz" read as 44100.
func leadingDigits(s string) string {
	i := 0
	for i < len(s) && '0' <= s[i] && s[i] <= '9' {
		i++
	}
	return s[:i]
}
