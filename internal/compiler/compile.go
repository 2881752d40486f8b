// Package compiler turns forthbyte sources into Programs: it reads the
// preprocessor directives, picks the integer or floating point interpreter,
// registers the host variables t, sr and c, and compiles the source.
package compiler

import (
	"github.com/jcorbin/forthbyte/internal/forth"
	"github.com/jcorbin/forthbyte/internal/panicerr"
	"github.com/jcorbin/forthbyte/internal/preprocess"
)

// Compile builds a Program from source text. Errors are either a
// *preprocess.Error or a *forth.Error; a panic anywhere in compilation comes
// back as a *panicerr.Error instead of crashing the host.
func Compile(src string, opts ...Option) (Program, error) {
	set := newSettings(opts)

	pp, err := preprocess.Scan(src)
	if err != nil {
		return nil, err
	}

	var prog Program
	if err := panicerr.Recover("compile", func() (err error) {
		if pp.Float {
			prog, err = compileFloat(src, pp, set)
		} else {
			prog, err = compileByte(src, pp, set)
		}
		return err
	}); err != nil {
		return nil, err
	}

	set.logf("compiled %v statements, float:%v sr:%v stereo:%v",
		prog.Len(), prog.Float(), prog.SampleRate(), prog.Stereo())
	return prog, nil
}

func compileByte(src string, pp preprocess.Settings, set settings) (Program, error) {
	u, err := compileUnit[int64, forth.Integer[int64]](src, pp, set)
	if err != nil {
		return nil, err
	}
	return byteProgram{u}, nil
}

func compileFloat(src string, pp preprocess.Settings, set settings) (Program, error) {
	u, err := compileUnit[float64, forth.Float[float64]](src, pp, set)
	if err != nil {
		return nil, err
	}
	return floatProgram{u}, nil
}

func compileUnit[T forth.Number, A forth.Arith[T]](src string, pp preprocess.Settings, set settings) (*unit[T, A], error) {
	u, err := newUnit[T, A](pp, set)
	if err != nil {
		return nil, err
	}
	prog, err := u.in.Compile(src)
	if err != nil {
		return nil, err
	}
	u.use(prog)
	return u, nil
}
