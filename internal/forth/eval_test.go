package forth

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/forthbyte/internal/logio"
)

type evalTestCases []interface {
	testName() string
	run(t *testing.T)
}

func (ets evalTestCases) run(t *testing.T) {
	for _, et := range ets {
		if !t.Run(et.testName(), et.run) {
			return
		}
	}
}

func byteTest(name string) evalTestCase[int64, Integer[int64]] {
	return evalTestCase[int64, Integer[int64]]{name: name}
}

func floatTest(name string) evalTestCase[float64, Float[float64]] {
	return evalTestCase[float64, Float[float64]]{name: name}
}

type evalTestCase[T Number, A Arith[T]] struct {
	name    string
	opts    []Option
	setup   []func(in *Interpreter[T, A])
	src     string
	evals   int
	expect  []func(t *testing.T, in *Interpreter[T, A])
	wantErr error
}

func (et evalTestCase[T, A]) testName() string { return et.name }

func (et evalTestCase[T, A]) withCapacity(n int) evalTestCase[T, A] {
	et.opts = append(et.opts, WithCapacity(n))
	return et
}

func (et evalTestCase[T, A]) withStack(values ...T) evalTestCase[T, A] {
	et.setup = append(et.setup, func(in *Interpreter[T, A]) {
		for _, v := range values {
			in.Push(v)
		}
	})
	return et
}

func (et evalTestCase[T, A]) withMemAt(addr int, values ...T) evalTestCase[T, A] {
	et.setup = append(et.setup, func(in *Interpreter[T, A]) {
		copy(in.Memory[addr:], values)
	})
	return et
}

func (et evalTestCase[T, A]) withVariable(name string, value T) evalTestCase[T, A] {
	et.setup = append(et.setup, func(in *Interpreter[T, A]) {
		if _, err := in.MakeVariable(name); err != nil {
			panic(err)
		}
		if err := in.SetVariable(name, value); err != nil {
			panic(err)
		}
	})
	return et
}

func (et evalTestCase[T, A]) do(src string) evalTestCase[T, A] {
	et.src = src
	return et
}

func (et evalTestCase[T, A]) times(n int) evalTestCase[T, A] {
	et.evals = n
	return et
}

func (et evalTestCase[T, A]) expectError(err error) evalTestCase[T, A] {
	et.wantErr = err
	return et
}

func (et evalTestCase[T, A]) expectStack(values ...T) evalTestCase[T, A] {
	et.expect = append(et.expect, func(t *testing.T, in *Interpreter[T, A]) {
		if values == nil {
			values = []T{}
		}
		assert.Equal(t, values, append([]T{}, in.stack[:in.sp]...), "expected stack values")
	})
	return et
}

func (et evalTestCase[T, A]) expectRStack(values ...T) evalTestCase[T, A] {
	et.expect = append(et.expect, func(t *testing.T, in *Interpreter[T, A]) {
		if values == nil {
			values = []T{}
		}
		assert.Equal(t, values, append([]T{}, in.rstack[:in.rp]...), "expected return stack values")
	})
	return et
}

func (et evalTestCase[T, A]) expectMemAt(addr int, values ...T) evalTestCase[T, A] {
	et.expect = append(et.expect, func(t *testing.T, in *Interpreter[T, A]) {
		assert.Equal(t, values, in.Memory[addr:addr+len(values)], "expected memory values @%v", addr)
	})
	return et
}

func (et evalTestCase[T, A]) expectSP(sp int) evalTestCase[T, A] {
	et.expect = append(et.expect, func(t *testing.T, in *Interpreter[T, A]) {
		assert.Equal(t, sp, in.StackPointer(), "expected stack pointer")
	})
	return et
}

func (et evalTestCase[T, A]) run(t *testing.T) {
	in := New[T, A](append(et.opts, WithLogf(t.Logf))...)
	defer func() {
		if t.Failed() {
			lw := &logio.Writer{Logf: t.Logf}
			in.Dump(lw)
			lw.Close()
		}
	}()

	for _, setup := range et.setup {
		setup(in)
	}

	prog, err := in.Compile(et.src)
	if et.wantErr != nil {
		assert.True(t, errors.Is(err, et.wantErr), "expected error: %v\ngot: %+v", et.wantErr, err)
		assert.Nil(t, prog, "expected no program on error")
		return
	}
	require.NoError(t, err, "unexpected compile error")

	n := et.evals
	if n == 0 {
		n = 1
	}
	for i := 0; i < n; i++ {
		in.Eval(prog)
	}

	for _, expect := range et.expect {
		expect(t, in)
	}
}

func Test_Eval(t *testing.T) {
	evalTestCases{
		// arithmetic, second popped is the left operand
		byteTest("add").do(`1 2 +`).expectStack(3),
		byteTest("sub").do(`7 3 -`).expectStack(4),
		byteTest("preloaded").withStack(7, 3).do(`-`).expectStack(4),
		byteTest("mul").do(`6 7 *`).expectStack(42),
		byteTest("div").do(`7 2 /`).expectStack(3),
		byteTest("div by zero").do(`7 0 /`).expectStack(0),
		byteTest("mod").do(`7 3 %`).expectStack(1),
		byteTest("mod by zero").do(`7 0 %`).expectStack(0),
		byteTest("negative mod").do(`-7 3 %`).expectStack(-1),

		// bitwise
		byteTest("shl").do(`1 4 <<`).expectStack(16),
		byteTest("shr").do(`256 4 >>`).expectStack(16),
		byteTest("shr is unsigned").do(`-1 60 >>`).expectStack(15),
		byteTest("and").do(`12 10 &`).expectStack(8),
		byteTest("or").do(`12 10 |`).expectStack(14),
		byteTest("xor").do(`12 10 ^`).expectStack(6),
		byteTest("not").do(`0 not`).expectStack(-1),
		byteTest("not not").do(`5 not not`).expectStack(5),
		byteTest("hex literal").do(`0xff 0x0F &`).expectStack(15),

		// comparison yields all bits set
		byteTest("less").do(`1 2 <`).expectStack(-1),
		byteTest("not less").do(`2 1 <`).expectStack(0),
		byteTest("greater").do(`2 1 >`).expectStack(-1),
		byteTest("less eq").do(`2 2 <=`).expectStack(-1),
		byteTest("greater eq").do(`1 2 >=`).expectStack(0),
		byteTest("equal").do(`3 3 =`).expectStack(-1),
		byteTest("not equal").do(`3 3 <>`).expectStack(0),

		// math
		byteTest("abs").do(`-5 abs 5 abs`).expectStack(5, 5),
		byteTest("negate").do(`5 negate`).expectStack(-5),
		byteTest("min").do(`3 9 min 9 3 min`).expectStack(3, 3),
		byteTest("max").do(`3 9 max 9 3 max`).expectStack(9, 9),
		byteTest("pow").do(`2 10 pow`).expectStack(1024),
		byteTest("floor and ceil").do(`7 floor 7 ceil`).expectStack(7, 7),
		byteTest("sqrt").do(`17 sqrt`).expectStack(4),
		byteTest("integer literal truncates").do(`3.9`).expectStack(3),

		// stack shuffling
		byteTest("dup").do(`5 dup`).expectStack(5, 5),
		byteTest("drop").do(`1 2 drop`).expectStack(1),
		byteTest("2dup").do(`1 2 2dup`).expectStack(1, 2, 1, 2),
		byteTest("over").do(`1 2 over`).expectStack(1, 2, 1),
		byteTest("nip").do(`1 2 nip`).expectStack(2),
		byteTest("tuck").do(`1 2 tuck`).expectStack(2, 1, 2),
		byteTest("swap").do(`1 2 swap`).expectStack(2, 1),
		byteTest("rot").do(`1 2 3 rot`).expectStack(2, 3, 1),
		byteTest("-rot").do(`1 2 3 -rot`).expectStack(3, 1, 2),
		byteTest("pick 0").do(`1 2 3 0 pick`).expectStack(1, 2, 3, 3),
		byteTest("pick 1").do(`1 2 3 1 pick`).expectStack(1, 2, 3, 2),
		byteTest("pick 2").do(`1 2 3 2 pick`).expectStack(1, 2, 3, 1),

		// memory
		byteTest("store").do(`42 5 !`).expectStack().expectMemAt(4, 0, 42, 0),
		byteTest("fetch").withMemAt(5, 99).do(`5 @`).expectStack(99),
		byteTest("store fetch").do(`42 5 ! 5 @`).expectStack(42),
		byteTest("store wraps").withCapacity(8).do(`7 13 !`).expectMemAt(5, 7),
		byteTest("fetch negative wraps").withCapacity(8).withMemAt(7, 11).do(`-1 @`).expectStack(11),

		// return stack
		byteTest(">r r>").do(`1 2 >r 3 r>`).expectStack(1, 3, 2).expectRStack(),
		byteTest(">r").do(`1 2 >r`).expectStack(1).expectRStack(2),

		// variables and words
		byteTest("variable").withVariable("t", 41).do(`t 1 +`).expectStack(42),
		byteTest("word").do(`: sq dup * ; 3 sq`).expectStack(9),
		byteTest("nested words").do(`: sq dup * ; : quad sq sq ; 3 quad`).expectStack(81),
		byteTest("bytebeat").withVariable("t", 1000).do(`t t 8 >> |`).expectStack(1000 | 1000>>8),

		// repeated evaluation
		byteTest("net zero").do(`1 2 + drop`).times(10).expectSP(0),
		byteTest("net one").do(`1`).times(3).expectStack(1, 1, 1),

		byteTest("unknown word").do(`1 frob`).expectError(ErrUnknownWord),
	}.run(t)
}

func Test_Eval_float(t *testing.T) {
	evalTestCases{
		floatTest("add").do(`1.5 2.25 +`).expectStack(3.75),
		floatTest("div").do(`1 4 /`).expectStack(0.25),
		floatTest("div by zero").do(`1 0 /`).expectStack(math.Inf(1)),
		floatTest("negative div by zero").do(`-1 0 /`).expectStack(math.Inf(1)),
		floatTest("mul by zero").do(`1 0 / 0 *`).expectStack(0),
		floatTest("zero mul").do(`0 1 0 / *`).expectStack(0),
		floatTest("mod").do(`7.5 2 %`).expectStack(1.5),
		floatTest("not zero").do(`0 not`).expectStack(1),
		floatTest("not nonzero").do(`3 not`).expectStack(0),
		floatTest("less").do(`1 2 <`).expectStack(1),
		floatTest("not less").do(`2 1 <`).expectStack(0),
		floatTest("floor").do(`2.7 floor -2.5 floor`).expectStack(2, -3),
		floatTest("ceil").do(`2.2 ceil`).expectStack(3),
		floatTest("sin").do(`0 sin`).expectStack(0),
		floatTest("cos").do(`0 cos`).expectStack(1),
		floatTest("sqrt").do(`16 sqrt`).expectStack(4),
		floatTest("log exp").do(`1 exp log`).expectStack(math.Log(math.Exp(1))),
		floatTest("tan").do(`1 tan`).expectStack(math.Tan(1)),
		floatTest("pow").do(`2 0.5 pow`).expectStack(math.Pow(2, 0.5)),
		floatTest("atan2").do(`1 2 atan2`).expectStack(math.Atan2(1, 2)),
		floatTest("shl").do(`1 3 <<`).expectStack(8),
		floatTest("and").do(`7.9 3 &`).expectStack(3),
		floatTest("scientific").do(`0.5e1 2e1 *`).expectStack(100),
		floatTest("fractional address").withMemAt(3, 0.5).do(`3.7 @`).expectStack(0.5),
		floatTest("sine").withVariable("t", 2).withVariable("sr", 8).do(
			`t sr / 2 * 3.141592653589793 * sin`,
		).expectStack(math.Sin(2.0 / 8 * 2 * 3.141592653589793)),
	}.run(t)
}

func Test_Eval_repeat(t *testing.T) {
	in := NewBytebeat()
	prog, err := in.Compile(`1 2 +`)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		in.Eval(prog)
		assert.Equal(t, int64(3), in.Pop(), "expected result #%v", i)
		assert.Equal(t, 0, in.StackPointer(), "expected stack pointer #%v", i)
	}
}

func Test_Eval_noAllocs(t *testing.T) {
	in := NewFloatbeat()
	_, err := in.MakeVariable("t")
	require.NoError(t, err)
	prog, err := in.Compile(`
		: saw t 100 % 50 / 1 - ;
		saw dup 2 pick sin * >r 3 ! 3 @ r> + 0.5 max -0.5 min
	`)
	require.NoError(t, err)

	allocs := testing.AllocsPerRun(100, func() {
		in.Globals[0]++
		in.Eval(prog)
		in.Pop()
	})
	assert.Equal(t, 0.0, allocs, "expected no allocations per evaluation")
}

func Test_stack_wrap(t *testing.T) {
	t.Run("push past capacity", func(t *testing.T) {
		in := NewBytebeat(WithCapacity(4))
		for v := int64(1); v <= 5; v++ {
			in.Push(v)
		}
		assert.Equal(t, 1, in.StackPointer(), "expected pointer to wrap")
		assert.Equal(t, []int64{5, 2, 3, 4}, in.stack, "expected slot 0 overwritten")
		assert.Equal(t, int64(5), in.Pop())
		assert.Equal(t, int64(4), in.Pop(), "expected pop to wrap to the last slot")
		assert.Equal(t, 3, in.StackPointer())
	})

	t.Run("pop from empty", func(t *testing.T) {
		in := NewBytebeat(WithCapacity(4))
		assert.Equal(t, int64(0), in.Pop())
		assert.Equal(t, 3, in.StackPointer(), "expected pointer to wrap to N-1")
	})

	t.Run("push pop", func(t *testing.T) {
		in := NewFloatbeat()
		for _, x := range []float64{0, -1, 3.25, math.Inf(-1), math.MaxFloat64} {
			sp := in.StackPointer()
			in.Push(x)
			assert.Equal(t, x, in.Peek(), "expected peek to see %v", x)
			assert.Equal(t, x, in.Pop(), "expected to pop %v", x)
			assert.Equal(t, sp, in.StackPointer(), "expected pointer restored")
		}
	})

	t.Run("drop from empty", func(t *testing.T) {
		in := NewBytebeat(WithCapacity(8))
		prog, err := in.Compile(`drop drop 1`)
		require.NoError(t, err)
		in.Eval(prog)
		assert.Equal(t, 7, in.StackPointer())
		assert.Equal(t, int64(1), in.Pop())
	})

	t.Run("return stack", func(t *testing.T) {
		in := NewBytebeat(WithCapacity(4))
		prog, err := in.Compile(`r> 9 >r`)
		require.NoError(t, err)
		in.Eval(prog)
		assert.Equal(t, 0, in.ReturnStackPointer(), "expected return pointer to wrap back")
		assert.Equal(t, int64(9), in.rstack[3])
	})

	t.Run("pick 0 is dup", func(t *testing.T) {
		in := NewBytebeat()
		dup, err := in.Compile(`7 dup`)
		require.NoError(t, err)
		pick, err := in.Compile(`7 0 pick`)
		require.NoError(t, err)

		in.Eval(dup)
		sp := in.StackPointer()
		a, b := in.Pop(), in.Pop()

		in.Eval(pick)
		assert.Equal(t, sp, in.StackPointer(), "expected the same depth")
		assert.Equal(t, []int64{a, b}, []int64{in.Pop(), in.Pop()})
	})
}
