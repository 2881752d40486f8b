// Package render drives compiled programs to produce audio: it advances the
// timer t at the program's own sample rate, holds each value across output
// frames, and writes either a raw 8-bit stream or a 16-bit WAV file.
package render

import (
	"context"
	"errors"
	"math"

	"github.com/jcorbin/forthbyte/internal/compiler"
)

// Source supplies the Program to render. It is consulted once per block, so
// a rebuilt program takes effect at the next block boundary.
type Source interface {
	Program() compiler.Program
}

// Static returns a Source that always supplies prog, e.g. one obtained
// from compiler.Load.
func Static(prog compiler.Program) Source { return staticSource{prog} }

type staticSource struct{ prog compiler.Program }

func (s staticSource) Program() compiler.Program { return s.prog }

// ErrNoProgram is returned when the Source has nothing to render.
var ErrNoProgram = errors.New("no program to render")

// Defaults for Renderer.
const (
	DefaultOutputRate = 44100
	DefaultBlockSize  = 4096
)

// Renderer evaluates programs from a Source. Rendering calls on the same
// Renderer must not overlap, since Programs are not safe for concurrent use.
type Renderer struct {
	src Source

	outputRate uint64
	volume     float64
	blockSize  int
	logfn      func(mess string, args ...interface{})

	// hold state
	prog  compiler.Program
	lastT int64
	last  [2]float64
	evals int64
}

// New returns a Renderer over src.
func New(src Source, opts ...Option) *Renderer {
	r := &Renderer{
		src:        src,
		outputRate: DefaultOutputRate,
		volume:     1,
		blockSize:  DefaultBlockSize,
	}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(r)
		}
	}
	return r
}

// OutputRate is the WAV frame rate in Hz.
func (r *Renderer) OutputRate() uint64 { return r.outputRate }

// Evaluations counts program evaluations so far, one per channel per
// distinct t.
func (r *Renderer) Evaluations() int64 { return r.evals }

func (r *Renderer) logf(mess string, args ...interface{}) {
	if r.logfn != nil {
		r.logfn(mess, args...)
	}
}

// program refreshes the current Program from the Source, dropping any held
// value if it changed.
func (r *Renderer) program() (compiler.Program, error) {
	prog := r.src.Program()
	if prog == nil {
		return nil, ErrNoProgram
	}
	if prog != r.prog {
		if r.prog != nil {
			r.logf("switched to new program of %v statements", prog.Len())
		}
		r.prog = prog
		r.lastT = -1
	}
	return prog, nil
}

// frame returns the left and right sample for output frame i, holding the
// previous value while t = i*SampleRate/OutputRate is unchanged.
func (r *Renderer) frame(prog compiler.Program, i int64) [2]float64 {
	t := timer(i, prog.SampleRate(), r.outputRate)
	if t != r.lastT {
		r.lastT = t
		r.last[0] = prog.Sample(t, 0)
		if prog.Stereo() {
			r.last[1] = prog.Sample(t, 1)
			r.evals += 2
		} else {
			r.last[1] = r.last[0]
			r.evals++
		}
	}
	return r.last
}

// timer maps output frame i to the program timer, as i*sr/rate without
// overflowing for long renders.
func timer(i int64, sr, rate uint64) int64 {
	if sr == rate {
		return i
	}
	q, rem := i/int64(rate), i%int64(rate)
	return q*int64(sr) + rem*int64(sr)/int64(rate)
}

// pcm16 scales a sample in [-1, 1] by volume into a signed 16-bit value.
func (r *Renderer) pcm16(s float64) int {
	return int(math.Round(s * r.volume * math.MaxInt16))
}

// byte8 scales an unsigned 8-bit sample around its midpoint by volume.
func (r *Renderer) byte8(b uint8) uint8 {
	if r.volume == 1 {
		return b
	}
	return uint8(math.Round(128 + (float64(b)-128)*r.volume))
}

func (r *Renderer) blocks(ctx context.Context, total int64, each func(prog compiler.Program, off int64, n int) error) error {
	for off := int64(0); off < total; {
		if err := ctx.Err(); err != nil {
			return err
		}
		prog, err := r.program()
		if err != nil {
			return err
		}
		n := r.blockSize
		if rem := total - off; rem < int64(n) {
			n = int(rem)
		}
		if err := each(prog, off, n); err != nil {
			return err
		}
		off += int64(n)
	}
	return nil
}
