package forth

import (
	"math"
	"strconv"

	"golang.org/x/exp/constraints"
)

// Number is the set of element types an Interpreter may be built over.
type Number interface {
	constraints.Integer | constraints.Float
}

// Arith supplies the handful of primitives whose meaning depends on the
// element type. Implementations are zero-sized; the Interpreter holds one by
// value so that no type switch happens while evaluating.
type Arith[T Number] interface {
	// True is the value pushed by a comparison that holds.
	True() T

	Div(a, b T) T
	Mod(a, b T) T
	Not(a T) T
	Floor(a T) T
	Ceil(a T) T

	// Bits and FromBits convert through unsigned 64-bit for the shift and
	// bitwise primitives.
	Bits(a T) uint64
	FromBits(u uint64) T

	// Parse converts the text of a VALUE token.
	Parse(s string) (T, error)
}

// Integer implements Arith for integral element types (bytebeat).
//
// Division or remainder by zero yields 0 rather than trapping, so that
// evaluation stays panic free inside an audio callback.
type Integer[T constraints.Integer] struct{}

func (Integer[T]) True() T { return ^T(0) }

func (Integer[T]) Div(a, b T) T {
	if b == 0 {
		return 0
	}
	return a / b
}

func (Integer[T]) Mod(a, b T) T {
	if b == 0 {
		return 0
	}
	return a % b
}

func (Integer[T]) Not(a T) T             { return ^a }
func (Integer[T]) Floor(a T) T           { return a }
func (Integer[T]) Ceil(a T) T            { return a }
func (Integer[T]) Bits(a T) uint64       { return uint64(a) }
func (Integer[T]) FromBits(u uint64) T   { return T(u) }

func (Integer[T]) Parse(s string) (T, error) { return parseInteger[T](s) }

// parseInteger accepts anything the lexer classifies as a number; fractional
// and scientific literals are truncated toward zero.
func parseInteger[T constraints.Integer](s string) (T, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return T(n), nil
	}
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return T(n), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return T(f), nil
}

// Float implements Arith for floating point element types (floatbeat).
type Float[T constraints.Float] struct{}

func (Float[T]) True() T { return 1 }

// Div yields positive infinity for any division by zero.
func (Float[T]) Div(a, b T) T {
	if b == 0 {
		return T(math.Inf(1))
	}
	return a / b
}

func (Float[T]) Mod(a, b T) T { return T(math.Mod(float64(a), float64(b))) }

func (Float[T]) Not(a T) T {
	if a == 0 {
		return 1
	}
	return 0
}

func (Float[T]) Floor(a T) T         { return T(math.Floor(float64(a))) }
func (Float[T]) Ceil(a T) T          { return T(math.Ceil(float64(a))) }
func (Float[T]) Bits(a T) uint64     { return uint64(int64(a)) }
func (Float[T]) FromBits(u uint64) T { return T(u) }

func (Float[T]) Parse(s string) (T, error) {
	f, err := strconv.ParseFloat(s, 64)
	return T(f), err
}
