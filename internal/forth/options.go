package forth

// DefaultCapacity is the size of the stack, return stack, global and memory
// arrays unless WithCapacity says otherwise.
const DefaultCapacity = 256

// Option configures an Interpreter at construction.
type Option interface{ apply(set *settings) }

type settings struct {
	capacity int
	logfn    func(mess string, args ...interface{})
}

var defaults = []Option{
	WithCapacity(DefaultCapacity),
}

// Options combines any number of options into one; nil options are skipped.
func Options(opts ...Option) Option {
	var all options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case options:
			all = append(all, impl...)
		default:
			all = append(all, impl)
		}
	}
	return all
}

type options []Option

func (opts options) apply(set *settings) {
	for _, opt := range opts {
		opt.apply(set)
	}
}

// WithCapacity sets the size of every fixed array; values below 1 are ignored.
func WithCapacity(n int) Option { return capacityOption(n) }

// WithLogf sets a trace hook called while parsing, never while evaluating.
func WithLogf(logfn func(mess string, args ...interface{})) Option { return logfnOption(logfn) }

type capacityOption int
type logfnOption func(mess string, args ...interface{})

func (n capacityOption) apply(set *settings) {
	if n > 0 {
		set.capacity = int(n)
	}
}

func (logfn logfnOption) apply(set *settings) {
	set.logfn = logfn
}
