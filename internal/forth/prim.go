package forth

import "fmt"

// Prim names one of the built-in operations.
type Prim uint8

// Built-in operations; the trailing comment gives each one's stack effect.
const (
	PrimAdd        Prim = iota // +       ( a b -- a+b )
	PrimSub                    // -       ( a b -- a-b )
	PrimMul                    // *       ( a b -- a*b ) exactly 0 if either is 0
	PrimDiv                    // /       ( a b -- a/b )
	PrimMod                    // %       ( a b -- a%b )
	PrimShl                    // <<      ( a b -- a<<b )
	PrimShr                    // >>      ( a b -- a>>b )
	PrimAnd                    // &       ( a b -- a&b )
	PrimOr                     // |       ( a b -- a|b )
	PrimXor                    // ^       ( a b -- a^b )
	PrimNot                    // not     ( a -- ~a )
	PrimLess                   // <       ( a b -- a<b )
	PrimGreater                // >       ( a b -- a>b )
	PrimLessEq                 // <=      ( a b -- a<=b )
	PrimGreaterEq              // >=      ( a b -- a>=b )
	PrimEqual                  // =       ( a b -- a=b )
	PrimNotEqual               // <>      ( a b -- a<>b )
	PrimSin                    // sin     ( a -- sin(a) )
	PrimCos                    // cos     ( a -- cos(a) )
	PrimTan                    // tan     ( a -- tan(a) )
	PrimLog                    // log     ( a -- log(a) )
	PrimExp                    // exp     ( a -- exp(a) )
	PrimSqrt                   // sqrt    ( a -- sqrt(a) )
	PrimFloor                  // floor   ( a -- floor(a) )
	PrimCeil                   // ceil    ( a -- ceil(a) )
	PrimAbs                    // abs     ( a -- |a| )
	PrimNegate                 // negate  ( a -- -a )
	PrimMin                    // min     ( a b -- min )
	PrimMax                    // max     ( a b -- max )
	PrimPow                    // pow     ( a b -- a^b )
	PrimAtan2                  // atan2   ( a b -- atan2(a,b) )
	PrimDup                    // dup     ( a -- a a )
	PrimDrop                   // drop    ( a -- )
	Prim2Dup                   // 2dup    ( a b -- a b a b )
	PrimOver                   // over    ( a b -- a b a )
	PrimNip                    // nip     ( a b -- b )
	PrimTuck                   // tuck    ( a b -- b a b )
	PrimSwap                   // swap    ( a b -- b a )
	PrimRot                    // rot     ( a b c -- b c a )
	PrimMinusRot               // -rot    ( a b c -- c a b )
	PrimPick                   // pick    ( xk ... x0 k -- xk ... x0 xk )
	PrimFetch                  // @       ( addr -- x )
	PrimStore                  // !       ( x addr -- )
	PrimToR                    // >r      ( x -- ) ( R: -- x )
	PrimFromR                  // r>      ( -- x ) ( R: x -- )

	primMax
)

var primNames = [primMax]string{
	PrimAdd:       "+",
	PrimSub:       "-",
	PrimMul:       "*",
	PrimDiv:       "/",
	PrimMod:       "%",
	PrimShl:       "<<",
	PrimShr:       ">>",
	PrimAnd:       "&",
	PrimOr:        "|",
	PrimXor:       "^",
	PrimNot:       "not",
	PrimLess:      "<",
	PrimGreater:   ">",
	PrimLessEq:    "<=",
	PrimGreaterEq: ">=",
	PrimEqual:     "=",
	PrimNotEqual:  "<>",
	PrimSin:       "sin",
	PrimCos:       "cos",
	PrimTan:       "tan",
	PrimLog:       "log",
	PrimExp:       "exp",
	PrimSqrt:      "sqrt",
	PrimFloor:     "floor",
	PrimCeil:      "ceil",
	PrimAbs:       "abs",
	PrimNegate:    "negate",
	PrimMin:       "min",
	PrimMax:       "max",
	PrimPow:       "pow",
	PrimAtan2:     "atan2",
	PrimDup:       "dup",
	PrimDrop:      "drop",
	Prim2Dup:      "2dup",
	PrimOver:      "over",
	PrimNip:       "nip",
	PrimTuck:      "tuck",
	PrimSwap:      "swap",
	PrimRot:       "rot",
	PrimMinusRot:  "-rot",
	PrimPick:      "pick",
	PrimFetch:     "@",
	PrimStore:     "!",
	PrimToR:       ">r",
	PrimFromR:     "r>",
}

// primTable is built once and only read afterwards.
var primTable = func() map[string]Prim {
	table := make(map[string]Prim, len(primNames))
	for prim, name := range primNames {
		table[name] = Prim(prim)
	}
	return table
}()

// LookupPrim finds the built-in operation with the given name.
func LookupPrim(name string) (Prim, bool) {
	prim, ok := primTable[name]
	return prim, ok
}

// PrimNames lists every built-in name, in Prim order.
func PrimNames() []string {
	return append([]string(nil), primNames[:]...)
}

// Valid reports whether prim names a known operation.
func (prim Prim) Valid() bool { return prim < primMax }

func (prim Prim) String() string {
	if prim.Valid() {
		return primNames[prim]
	}
	return fmt.Sprintf("Prim(%d)", uint8(prim))
}
