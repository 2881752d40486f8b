package forth

import "fmt"

// StatementKind discriminates the variants of Statement.
type StatementKind uint8

// Statement variants.
const (
	ValueStatement StatementKind = iota
	PrimitiveStatement
	VariableStatement
)

func (kind StatementKind) String() string {
	switch kind {
	case ValueStatement:
		return "value"
	case PrimitiveStatement:
		return "prim"
	case VariableStatement:
		return "var"
	default:
		return fmt.Sprintf("StatementKind(%d)", uint8(kind))
	}
}

// Statement is one executable step: push a literal, run a primitive, or push
// a global variable. Only the field selected by Kind is meaningful.
type Statement[T Number] struct {
	Kind  StatementKind `cbor:"1,keyasint"`
	Value T             `cbor:"2,keyasint,omitempty"`
	Prim  Prim          `cbor:"3,keyasint,omitempty"`
	Index int           `cbor:"4,keyasint,omitempty"`
}

// ValueOf returns a statement that pushes v.
func ValueOf[T Number](v T) Statement[T] {
	return Statement[T]{Kind: ValueStatement, Value: v}
}

// PrimitiveOf returns a statement that runs prim.
func PrimitiveOf[T Number](prim Prim) Statement[T] {
	return Statement[T]{Kind: PrimitiveStatement, Prim: prim}
}

// VariableOf returns a statement that pushes global slot index.
func VariableOf[T Number](index int) Statement[T] {
	return Statement[T]{Kind: VariableStatement, Index: index}
}

func (stmt Statement[T]) String() string {
	switch stmt.Kind {
	case ValueStatement:
		return fmt.Sprintf("value(%v)", stmt.Value)
	case PrimitiveStatement:
		return fmt.Sprintf("prim(%v)", stmt.Prim)
	case VariableStatement:
		return fmt.Sprintf("var(%v)", stmt.Index)
	default:
		return stmt.Kind.String()
	}
}

// Program is a fully inlined statement list, ready for Interpreter.Eval.
type Program[T Number] struct {
	Statements []Statement[T] `cbor:"1,keyasint"`
}

// Len returns the number of statements.
func (prog *Program[T]) Len() int { return len(prog.Statements) }

// Uses reports whether any statement reads the given global slot.
func (prog *Program[T]) Uses(index int) bool {
	for _, stmt := range prog.Statements {
		if stmt.Kind == VariableStatement && stmt.Index == index {
			return true
		}
	}
	return false
}
