package forth

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Canonical mode keeps the encoding of a given Program deterministic.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("forth: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// EncodeProgram serializes prog to CBOR.
func EncodeProgram[T Number](prog *Program[T]) ([]byte, error) {
	return cborEncMode.Marshal(prog)
}

// DecodeProgram deserializes a Program from CBOR. The result is not validated;
// pass it through Interpreter.Check before evaluating it.
func DecodeProgram[T Number](data []byte) (*Program[T], error) {
	var prog Program[T]
	if err := cbor.Unmarshal(data, &prog); err != nil {
		return nil, fmt.Errorf("forth: decode program: %w", err)
	}
	return &prog, nil
}
