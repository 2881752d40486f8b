package compiler

import "sync/atomic"

// Engine holds the Program currently in use and replaces it as sources are
// rebuilt. A failed build never replaces a working Program.
type Engine struct {
	opts    []Option
	logfn   func(mess string, args ...interface{})
	current atomic.Pointer[Program]
	builds  atomic.Uint64
}

// NewEngine returns an Engine with no Program; opts apply to every Build.
func NewEngine(opts ...Option) *Engine {
	set := newSettings(opts)
	return &Engine{opts: opts, logfn: set.logfn}
}

// Program returns the most recently published Program, or nil.
func (eng *Engine) Program() Program {
	if p := eng.current.Load(); p != nil {
		return *p
	}
	return nil
}

// Generation counts the Programs published so far.
func (eng *Engine) Generation() uint64 { return eng.builds.Load() }

// Build compiles src and, if that succeeds, publishes the result. On error
// the previous Program stays current.
func (eng *Engine) Build(src string) error {
	prog, err := Compile(src, eng.opts...)
	if err != nil {
		if eng.logfn != nil && eng.Program() != nil {
			eng.logfn("build failed, keeping previous program: %v", err)
		}
		return err
	}
	eng.Set(prog)
	return nil
}

// Set publishes prog, e.g. one obtained from Load.
func (eng *Engine) Set(prog Program) {
	eng.current.Store(&prog)
	eng.builds.Add(1)
}
