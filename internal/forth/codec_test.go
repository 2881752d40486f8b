package forth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_codec(t *testing.T) {
	in := NewFloatbeat()
	_, err := in.MakeVariable("t")
	require.NoError(t, err)
	prog, err := in.Compile(`: saw t 64 % 32 / 1 - ; saw 0 sin 0.5 * swap 7 ! 7 @ +`)
	require.NoError(t, err)

	data, err := EncodeProgram(prog)
	require.NoError(t, err)

	again, err := EncodeProgram(prog)
	require.NoError(t, err)
	assert.Equal(t, data, again, "expected deterministic encoding")

	back, err := DecodeProgram[float64](data)
	require.NoError(t, err)
	assert.Equal(t, prog, back)
	require.NoError(t, in.Check(back))

	in.Globals[0] = 80
	in.Eval(back)
	assert.Equal(t, -0.5, in.Pop())
}

func Test_codec_invalid(t *testing.T) {
	_, err := DecodeProgram[int64]([]byte{0xff, 0x00})
	assert.Error(t, err)

	data, err := EncodeProgram(&Program[int64]{Statements: []Statement[int64]{
		PrimitiveOf[int64](Prim(200)),
	}})
	require.NoError(t, err)
	prog, err := DecodeProgram[int64](data)
	require.NoError(t, err, "decoding does not validate")
	assert.Error(t, NewBytebeat().Check(prog))
}
