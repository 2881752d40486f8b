package compiler

import "github.com/jcorbin/forthbyte/internal/forth"

// Option configures Compile, Load and Engine.
type Option interface{ apply(set *settings) }

type settings struct {
	capacity int
	logfn    func(mess string, args ...interface{})
}

func (set settings) logf(mess string, args ...interface{}) {
	if set.logfn != nil {
		set.logfn(mess, args...)
	}
}

func (set settings) forthOptions() forth.Option {
	return forth.Options(
		forth.WithCapacity(set.capacity),
		forth.WithLogf(set.logfn),
	)
}

func newSettings(opts []Option) (set settings) {
	set.capacity = forth.DefaultCapacity
	for _, opt := range opts {
		if opt != nil {
			opt.apply(&set)
		}
	}
	return set
}

// WithCapacity sets the interpreter's stack, variable and memory size.
func WithCapacity(n int) Option { return capacityOption(n) }

// WithLogf sets a hook for compile summaries and parser traces.
func WithLogf(logfn func(mess string, args ...interface{})) Option { return logfnOption(logfn) }

type capacityOption int
type logfnOption func(mess string, args ...interface{})

func (n capacityOption) apply(set *settings) {
	if n > 0 {
		set.capacity = int(n)
	}
}

func (logfn logfnOption) apply(set *settings) { set.logfn = logfn }
