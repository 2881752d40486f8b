package compiler

import (
	"fmt"
	"io"
	"math"

	"github.com/jcorbin/forthbyte/internal/forth"
	"github.com/jcorbin/forthbyte/internal/preprocess"
)

// Program is a compiled source, ready to produce samples.
//
// A Program owns its interpreter, so it is not safe for concurrent use;
// Engine hands the same Program to whoever renders.
type Program interface {
	// Float reports whether the source asked for "#float" evaluation.
	Float() bool

	// SampleRate is the rate in Hz at which t advances.
	SampleRate() uint64

	// Stereo reports whether the source refers to the channel variable c.
	Stereo() bool

	// Len is the number of statements evaluated per sample.
	Len() int

	// Byte evaluates the program for timer t and channel c, returning an
	// unsigned 8-bit sample.
	Byte(t int64, c int) uint8

	// Sample evaluates the program for timer t and channel c, returning a
	// sample in [-1, 1].
	Sample(t int64, c int) float64

	// Dump writes the settings and statement listing.
	Dump(w io.Writer)

	// Encode serializes the program for Load.
	Encode() ([]byte, error)
}

// Names of the variables every program can use, in slot order.
const (
	TimerVariable      = "t"
	SampleRateVariable = "sr"
	ChannelVariable    = "c"
)

// unit is the state shared by both element types.
type unit[T forth.Number, A forth.Arith[T]] struct {
	set  preprocess.Settings
	in   *forth.Interpreter[T, A]
	prog *forth.Program[T]

	t, c   int
	stereo bool
}

func newUnit[T forth.Number, A forth.Arith[T]](pp preprocess.Settings, set settings) (*unit[T, A], error) {
	u := &unit[T, A]{
		set: pp,
		in:  forth.New[T, A](set.forthOptions()),
	}
	var err error
	if u.t, err = u.in.MakeVariable(TimerVariable); err != nil {
		return nil, err
	}
	if _, err = u.in.MakeVariable(SampleRateVariable); err != nil {
		return nil, err
	}
	if u.c, err = u.in.MakeVariable(ChannelVariable); err != nil {
		return nil, err
	}
	if err = u.in.SetVariable(SampleRateVariable, T(pp.SampleRate)); err != nil {
		return nil, err
	}
	if err = u.in.InitMemory(pp.InitMemory); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *unit[T, A]) use(prog *forth.Program[T]) {
	u.prog = prog
	u.stereo = prog.Uses(u.c)
}

func (u *unit[T, A]) Float() bool        { return u.set.Float }
func (u *unit[T, A]) SampleRate() uint64 { return u.set.SampleRate }
func (u *unit[T, A]) Stereo() bool       { return u.stereo }
func (u *unit[T, A]) Len() int           { return u.prog.Len() }

func (u *unit[T, A]) run(t int64, c int) T {
	u.in.Globals[u.t] = T(t)
	u.in.Globals[u.c] = T(c)
	u.in.Eval(u.prog)
	return u.in.Pop()
}

func (u *unit[T, A]) Dump(w io.Writer) {
	mode := "float"
	if !u.set.Float {
		mode = "byte"
	}
	fmt.Fprintf(w, "# %v mode @%vHz stereo:%v\n", mode, u.set.SampleRate, u.stereo)
	forth.Dump(w, u.prog, u.in.VariableNames())
}

// byteProgram wraps the low 8 bits of an integer result.
type byteProgram struct {
	*unit[int64, forth.Integer[int64]]
}

func (p byteProgram) Byte(t int64, c int) uint8 { return uint8(p.run(t, c)) }

func (p byteProgram) Sample(t int64, c int) float64 {
	return float64(p.Byte(t, c))/127.5 - 1
}

// floatProgram clamps a floating point result to [-1, 1].
type floatProgram struct {
	*unit[float64, forth.Float[float64]]
}

func (p floatProgram) Sample(t int64, c int) float64 {
	v := p.run(t, c)
	switch {
	case math.IsNaN(v):
		return 0
	case v < -1:
		return -1
	case v > 1:
		return 1
	}
	return v
}

func (p floatProgram) Byte(t int64, c int) uint8 {
	v := math.Floor((p.Sample(t, c) + 1) * 127.5)
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return uint8(v)
}

// Preview writes prog's Dump followed by its first n byte samples, one line
// per channel.
func Preview(w io.Writer, prog Program, n int) {
	prog.Dump(w)
	chans := 1
	if prog.Stereo() {
		chans = 2
	}
	for c := 0; c < chans; c++ {
		fmt.Fprintf(w, "# Bytes c=%v:", c)
		for t := 0; t < n; t++ {
			fmt.Fprintf(w, " %v", prog.Byte(int64(t), c))
		}
		fmt.Fprintln(w)
	}
}
