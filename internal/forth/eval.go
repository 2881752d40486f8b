package forth

import "math"

// Eval runs every statement of prog once, in order. The result, if any, is
// left on the data stack for the caller to Pop.
//
// Eval does not allocate and cannot fail: stacks wrap around, memory
// addresses wrap modulo capacity, and numeric edge cases produce whatever the
// element type's arithmetic produces.
func (in *Interpreter[T, A]) Eval(prog *Program[T]) {
	for i := range prog.Statements {
		stmt := &prog.Statements[i]
		switch stmt.Kind {
		case ValueStatement:
			in.push(stmt.Value)
		case VariableStatement:
			in.push(in.Globals[stmt.Index])
		case PrimitiveStatement:
			in.prim(stmt.Prim)
		}
	}
}

func (in *Interpreter[T, A]) prim(prim Prim) {
	switch prim {

	// arithmetic
	case PrimAdd:
		b, a := in.pop(), in.pop()
		in.push(a + b)
	case PrimSub:
		b, a := in.pop(), in.pop()
		in.push(a - b)
	case PrimMul:
		// exact zero even against Inf or NaN, so silence stays silent
		b, a := in.pop(), in.pop()
		if a == 0 || b == 0 {
			in.push(0)
		} else {
			in.push(a * b)
		}
	case PrimDiv:
		b, a := in.pop(), in.pop()
		in.push(in.arith.Div(a, b))
	case PrimMod:
		b, a := in.pop(), in.pop()
		in.push(in.arith.Mod(a, b))

	// bitwise
	case PrimShl:
		b, a := in.pop(), in.pop()
		in.push(in.arith.FromBits(in.arith.Bits(a) << in.arith.Bits(b)))
	case PrimShr:
		b, a := in.pop(), in.pop()
		in.push(in.arith.FromBits(in.arith.Bits(a) >> in.arith.Bits(b)))
	case PrimAnd:
		b, a := in.pop(), in.pop()
		in.push(in.arith.FromBits(in.arith.Bits(a) & in.arith.Bits(b)))
	case PrimOr:
		b, a := in.pop(), in.pop()
		in.push(in.arith.FromBits(in.arith.Bits(a) | in.arith.Bits(b)))
	case PrimXor:
		b, a := in.pop(), in.pop()
		in.push(in.arith.FromBits(in.arith.Bits(a) ^ in.arith.Bits(b)))
	case PrimNot:
		in.push(in.arith.Not(in.pop()))

	// comparison
	case PrimLess:
		b, a := in.pop(), in.pop()
		in.push(in.truth(a < b))
	case PrimGreater:
		b, a := in.pop(), in.pop()
		in.push(in.truth(a > b))
	case PrimLessEq:
		b, a := in.pop(), in.pop()
		in.push(in.truth(a <= b))
	case PrimGreaterEq:
		b, a := in.pop(), in.pop()
		in.push(in.truth(a >= b))
	case PrimEqual:
		b, a := in.pop(), in.pop()
		in.push(in.truth(a == b))
	case PrimNotEqual:
		b, a := in.pop(), in.pop()
		in.push(in.truth(a != b))

	// math
	case PrimSin:
		in.push(T(math.Sin(float64(in.pop()))))
	case PrimCos:
		in.push(T(math.Cos(float64(in.pop()))))
	case PrimTan:
		in.push(T(math.Tan(float64(in.pop()))))
	case PrimLog:
		in.push(T(math.Log(float64(in.pop()))))
	case PrimExp:
		in.push(T(math.Exp(float64(in.pop()))))
	case PrimSqrt:
		in.push(T(math.Sqrt(float64(in.pop()))))
	case PrimFloor:
		in.push(in.arith.Floor(in.pop()))
	case PrimCeil:
		in.push(in.arith.Ceil(in.pop()))
	case PrimAbs:
		if a := in.pop(); a < 0 {
			in.push(0 - a)
		} else {
			in.push(a)
		}
	case PrimNegate:
		in.push(0 - in.pop())
	case PrimMin:
		b, a := in.pop(), in.pop()
		if b < a {
			a = b
		}
		in.push(a)
	case PrimMax:
		b, a := in.pop(), in.pop()
		if b > a {
			a = b
		}
		in.push(a)
	case PrimPow:
		b, a := in.pop(), in.pop()
		in.push(T(math.Pow(float64(a), float64(b))))
	case PrimAtan2:
		b, a := in.pop(), in.pop()
		in.push(T(math.Atan2(float64(a), float64(b))))

	// stack
	case PrimDup:
		a := in.pop()
		in.push(a)
		in.push(a)
	case PrimDrop:
		in.pop()
	case Prim2Dup:
		b, a := in.pop(), in.pop()
		in.push(a)
		in.push(b)
		in.push(a)
		in.push(b)
	case PrimOver:
		b, a := in.pop(), in.pop()
		in.push(a)
		in.push(b)
		in.push(a)
	case PrimNip:
		b, _ := in.pop(), in.pop()
		in.push(b)
	case PrimTuck:
		b, a := in.pop(), in.pop()
		in.push(b)
		in.push(a)
		in.push(b)
	case PrimSwap:
		b, a := in.pop(), in.pop()
		in.push(b)
		in.push(a)
	case PrimRot:
		c, b, a := in.pop(), in.pop(), in.pop()
		in.push(b)
		in.push(c)
		in.push(a)
	case PrimMinusRot:
		c, b, a := in.pop(), in.pop(), in.pop()
		in.push(c)
		in.push(a)
		in.push(b)
	case PrimPick:
		k := wrap(in.pop(), len(in.stack))
		i := in.sp - 1 - k
		if i < 0 {
			i += len(in.stack)
		}
		in.push(in.stack[i])

	// memory
	case PrimFetch:
		addr := wrap(in.pop(), len(in.Memory))
		in.push(in.Memory[addr])
	case PrimStore:
		addr := wrap(in.pop(), len(in.Memory))
		in.Memory[addr] = in.pop()

	// return stack
	case PrimToR:
		in.pushr(in.pop())
	case PrimFromR:
		in.push(in.popr())
	}
}

func (in *Interpreter[T, A]) truth(b bool) T {
	if b {
		return in.arith.True()
	}
	return 0
}
