package forth

import (
	"sort"
	"strconv"
)

// Interpreter compiles source into Programs and evaluates them on a machine
// of fixed size arrays: a data stack, a return stack, global variable slots
// and addressable memory. All four hold Capacity() elements of type T.
//
// The stacks are circular: pushing past the end wraps to slot 0 and popping
// below slot 0 wraps to the last slot. Nothing about evaluation can fail.
//
// An Interpreter is not safe for concurrent use. Hosts that recompile while
// audio is running should build a fresh Interpreter and swap it in.
type Interpreter[T Number, A Arith[T]] struct {
	arith A
	logfn func(mess string, args ...interface{})

	vars       variables
	dictionary map[string][]Statement[T]

	stack []T
	sp    int

	rstack []T
	rp     int

	// Globals holds variable values, indexed by the slot a variable was
	// registered at.
	Globals []T

	// Memory is the storage behind @ and !; addresses wrap modulo its length.
	Memory []T
}

// Bytebeat is the integer interpreter used for "#byte" sources.
type Bytebeat = Interpreter[int64, Integer[int64]]

// Floatbeat is the floating point interpreter used for "#float" sources.
type Floatbeat = Interpreter[float64, Float[float64]]

// NewBytebeat returns a new int64 interpreter.
func NewBytebeat(opts ...Option) *Bytebeat { return New[int64, Integer[int64]](opts...) }

// NewFloatbeat returns a new float64 interpreter.
func NewFloatbeat(opts ...Option) *Floatbeat { return New[float64, Float[float64]](opts...) }

// New returns an interpreter over element type T with its arrays allocated.
func New[T Number, A Arith[T]](opts ...Option) *Interpreter[T, A] {
	var set settings
	Options(Options(defaults...), Options(opts...)).apply(&set)
	n := set.capacity
	return &Interpreter[T, A]{
		logfn:      set.logfn,
		dictionary: make(map[string][]Statement[T]),
		stack:      make([]T, n),
		rstack:     make([]T, n),
		Globals:    make([]T, n),
		Memory:     make([]T, n),
	}
}

func (in *Interpreter[T, A]) logf(mess string, args ...interface{}) {
	if in.logfn != nil {
		in.logfn(mess, args...)
	}
}

// Capacity returns the length shared by the stacks, globals and memory.
func (in *Interpreter[T, A]) Capacity() int { return len(in.stack) }

// MakeVariable registers name and returns its global slot. Registering a
// name twice returns the original slot. Variables must be registered before
// Parse for source to refer to them.
func (in *Interpreter[T, A]) MakeVariable(name string) (int, error) {
	index, err := in.vars.define(name, len(in.Globals))
	if err == nil {
		in.logf("variable %v @%v", name, index)
	}
	return index, err
}

// Variable returns the global slot of a registered name.
func (in *Interpreter[T, A]) Variable(name string) (int, bool) {
	return in.vars.lookup(name)
}

// VariableNames lists the registered names in slot order.
func (in *Interpreter[T, A]) VariableNames() []string {
	return append([]string(nil), in.vars.names...)
}

// SetVariable stores value into the slot registered for name.
func (in *Interpreter[T, A]) SetVariable(name string, value T) error {
	index, ok := in.vars.lookup(name)
	if !ok {
		return &Error{Kind: ErrUnknownVariable, Extra: name}
	}
	in.Globals[index] = value
	return nil
}

// InitMemory parses values and stores them into memory starting at address
// 0, cycling around when there are more values than memory slots.
func (in *Interpreter[T, A]) InitMemory(values []string) error {
	for i, s := range values {
		v, err := in.arith.Parse(s)
		if err != nil {
			return &Error{Kind: ErrValueExpected, Extra: s}
		}
		in.Memory[i%len(in.Memory)] = v
	}
	return nil
}

// Words lists the names of all user defined words, sorted.
func (in *Interpreter[T, A]) Words() []string {
	names := make([]string, 0, len(in.dictionary))
	for name := range in.dictionary {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Definition returns the inlined body of a user defined word.
func (in *Interpreter[T, A]) Definition(name string) ([]Statement[T], bool) {
	stmts, ok := in.dictionary[name]
	return stmts, ok
}

// Check verifies that prog only refers to known primitives and to global
// slots within capacity, as is needed for programs not built by Parse.
func (in *Interpreter[T, A]) Check(prog *Program[T]) error {
	for i, stmt := range prog.Statements {
		switch stmt.Kind {
		case ValueStatement:
		case PrimitiveStatement:
			if !stmt.Prim.Valid() {
				return &Error{Kind: ErrUnknownWord, Extra: stmt.Prim.String()}
			}
		case VariableStatement:
			if stmt.Index < 0 || stmt.Index >= len(in.Globals) {
				return &Error{Kind: ErrUnknownVariable, Extra: VariableOf[T](stmt.Index).String()}
			}
		default:
			return &Error{Kind: ErrBadSyntax, Extra: "statement " + strconv.Itoa(i) + " is " + stmt.Kind.String()}
		}
	}
	return nil
}

// Push pushes v onto the data stack.
func (in *Interpreter[T, A]) Push(v T) { in.push(v) }

// Pop pops the data stack.
func (in *Interpreter[T, A]) Pop() T { return in.pop() }

// Peek returns the top of the data stack without moving the stack pointer.
func (in *Interpreter[T, A]) Peek() T {
	i := in.sp - 1
	if i < 0 {
		i = len(in.stack) - 1
	}
	return in.stack[i]
}

// StackPointer returns the index the next push will write to.
func (in *Interpreter[T, A]) StackPointer() int { return in.sp }

// ReturnStackPointer returns the index the next >r will write to.
func (in *Interpreter[T, A]) ReturnStackPointer() int { return in.rp }

func (in *Interpreter[T, A]) push(v T) {
	in.stack[in.sp] = v
	in.sp++
	if in.sp >= len(in.stack) {
		in.sp = 0
	}
}

func (in *Interpreter[T, A]) pop() T {
	in.sp--
	if in.sp < 0 {
		in.sp = len(in.stack) - 1
	}
	return in.stack[in.sp]
}

func (in *Interpreter[T, A]) pushr(v T) {
	in.rstack[in.rp] = v
	in.rp++
	if in.rp >= len(in.rstack) {
		in.rp = 0
	}
}

func (in *Interpreter[T, A]) popr() T {
	in.rp--
	if in.rp < 0 {
		in.rp = len(in.rstack) - 1
	}
	return in.rstack[in.rp]
}

// wrap reduces any element value to a valid index into an array of length n.
func wrap[T Number](v T, n int) int {
	i := int(int64(v) % int64(n))
	if i < 0 {
		i += n
	}
	return i
}
