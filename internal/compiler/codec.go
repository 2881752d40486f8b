package compiler

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/jcorbin/forthbyte/internal/forth"
	"github.com/jcorbin/forthbyte/internal/preprocess"
)

var (
	// ErrVersion is returned by Load for data written by an incompatible Encode.
	ErrVersion = errors.New("unsupported program encoding version")

	// ErrCapacity is returned by Load for an encoded capacity outside
	// [1, MaxCapacity].
	ErrCapacity = errors.New("invalid interpreter capacity")
)

// MaxCapacity bounds the capacity Load accepts from encoded data.
const MaxCapacity = 1 << 20

const wireVersion = 1

// wireProgram is the CBOR form of a Program: the directives, the variable
// table and the forth program itself, which carries its own encoding.
type wireProgram struct {
	Version    int             `cbor:"1,keyasint"`
	Float      bool            `cbor:"2,keyasint"`
	SampleRate uint64          `cbor:"3,keyasint"`
	Capacity   int             `cbor:"4,keyasint"`
	Variables  []string        `cbor:"5,keyasint"`
	InitMemory []string        `cbor:"6,keyasint,omitempty"`
	Program    cbor.RawMessage `cbor:"7,keyasint"`
}

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("compiler: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

func (u *unit[T, A]) Encode() ([]byte, error) {
	prog, err := forth.EncodeProgram(u.prog)
	if err != nil {
		return nil, err
	}
	return cborEncMode.Marshal(wireProgram{
		Version:    wireVersion,
		Float:      u.set.Float,
		SampleRate: u.set.SampleRate,
		Capacity:   u.in.Capacity(),
		Variables:  u.in.VariableNames(),
		InitMemory: u.set.InitMemory,
		Program:    prog,
	})
}

// Load rebuilds a Program from the output of Program.Encode. The decoded
// statements are checked against the interpreter before use. The encoded
// capacity takes precedence over WithCapacity.
func Load(data []byte, opts ...Option) (Program, error) {
	set := newSettings(opts)

	var wire wireProgram
	if err := cbor.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("compiler: decode program: %w", err)
	}
	if wire.Version != wireVersion {
		return nil, fmt.Errorf("%w: %v", ErrVersion, wire.Version)
	}
	if wire.Capacity < 1 || wire.Capacity > MaxCapacity {
		return nil, fmt.Errorf("%w: %v", ErrCapacity, wire.Capacity)
	}
	if wire.SampleRate == 0 {
		return nil, fmt.Errorf("compiler: decode program: %w", preprocess.ErrBadSampleRate)
	}
	set.capacity = wire.Capacity

	pp := preprocess.Settings{
		Float:      wire.Float,
		SampleRate: wire.SampleRate,
		InitMemory: wire.InitMemory,
	}
	var prog Program
	var err error
	if pp.Float {
		var u *unit[float64, forth.Float[float64]]
		if u, err = loadUnit[float64, forth.Float[float64]](wire, pp, set); err == nil {
			prog = floatProgram{u}
		}
	} else {
		var u *unit[int64, forth.Integer[int64]]
		if u, err = loadUnit[int64, forth.Integer[int64]](wire, pp, set); err == nil {
			prog = byteProgram{u}
		}
	}
	if err != nil {
		return nil, err
	}

	set.logf("loaded %v statements, float:%v sr:%v stereo:%v",
		prog.Len(), prog.Float(), prog.SampleRate(), prog.Stereo())
	return prog, nil
}

func loadUnit[T forth.Number, A forth.Arith[T]](wire wireProgram, pp preprocess.Settings, set settings) (*unit[T, A], error) {
	u, err := newUnit[T, A](pp, set)
	if err != nil {
		return nil, err
	}
	for _, name := range wire.Variables {
		if _, err := u.in.MakeVariable(name); err != nil {
			return nil, err
		}
	}
	prog, err := forth.DecodeProgram[T](wire.Program)
	if err != nil {
		return nil, err
	}
	if err := u.in.Check(prog); err != nil {
		return nil, err
	}
	u.use(prog)
	return u, nil
}
