package render

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/forthbyte/internal/compiler"
)

// rampProgram counts up one byte step per t; channel 1 is inverted.
type rampProgram struct {
	rate   uint64
	stereo bool
	calls  []int64
}

func (p *rampProgram) Float() bool             { return false }
func (p *rampProgram) SampleRate() uint64      { return p.rate }
func (p *rampProgram) Stereo() bool            { return p.stereo }
func (p *rampProgram) Len() int                { return 1 }
func (p *rampProgram) Dump(w io.Writer)        {}
func (p *rampProgram) Encode() ([]byte, error) { return nil, nil }

func (p *rampProgram) Byte(t int64, c int) uint8 {
	p.calls = append(p.calls, t)
	if c == 1 {
		return 255 - uint8(t)
	}
	return uint8(t)
}

func (p *rampProgram) Sample(t int64, c int) float64 {
	return float64(p.Byte(t, c))/127.5 - 1
}

func tempFile(t *testing.T, name string) *os.File {
	f, err := os.Create(filepath.Join(t.TempDir(), name))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func readWAV(t *testing.T, f *os.File) (rate, chans int, data []int) {
	_, err := f.Seek(0, io.SeekStart)
	require.NoError(t, err)
	dec := wav.NewDecoder(f)
	require.True(t, dec.IsValidFile(), "expected a valid wav file")
	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)
	assert.Equal(t, 16, int(dec.BitDepth))
	return buf.Format.SampleRate, buf.Format.NumChannels, buf.Data
}

func TestRenderer_WriteWAV(t *testing.T) {
	prog := &rampProgram{rate: 8000}
	r := New(Static(prog), WithOutputRate(16000), WithBlockSize(3), WithLogf(t.Logf))

	f := tempFile(t, "ramp.wav")
	require.NoError(t, r.WriteWAV(context.Background(), f, 8))

	assert.Equal(t, []int64{0, 1, 2, 3}, prog.calls, "expected each t evaluated once")
	assert.Equal(t, int64(4), r.Evaluations())

	rate, chans, data := readWAV(t, f)
	assert.Equal(t, 16000, rate)
	assert.Equal(t, 2, chans)

	var want []int
	for _, b := range []uint8{0, 0, 1, 1, 2, 2, 3, 3} {
		s := r.pcm16(float64(b)/127.5 - 1)
		want = append(want, s, s)
	}
	assert.Equal(t, want, data)
	assert.Equal(t, -32767, data[0])
}

func TestRenderer_WriteWAV_stereo(t *testing.T) {
	prog := &rampProgram{rate: 44100, stereo: true}
	r := New(Static(prog), WithVolume(0.5))

	f := tempFile(t, "stereo.wav")
	require.NoError(t, r.WriteWAV(context.Background(), f, 2))
	assert.Equal(t, []int64{0, 0, 1, 1}, prog.calls)

	pcm := func(b uint8) int { return r.pcm16(float64(b)/127.5 - 1) }
	_, _, data := readWAV(t, f)
	assert.Equal(t, []int{pcm(0), pcm(255), pcm(1), pcm(254)}, data)
	assert.Equal(t, -16384, data[0])
}

func TestRenderer_WriteRaw(t *testing.T) {
	prog := &rampProgram{rate: 8000, stereo: true}
	r := New(Static(prog), WithBlockSize(4))

	var buf bytes.Buffer
	require.NoError(t, r.WriteRaw(context.Background(), &buf, 10))
	assert.Equal(t, []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, buf.Bytes())
	assert.Equal(t, []int64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, prog.calls, "expected channel 0 only")

	buf.Reset()
	r = New(Static(&rampProgram{rate: 8000}), WithVolume(0.5))
	require.NoError(t, r.WriteRaw(context.Background(), &buf, 1))
	assert.Equal(t, []byte{64}, buf.Bytes())
}

func TestRenderer_compiled(t *testing.T) {
	eng := compiler.NewEngine()
	require.NoError(t, eng.Build("#byte\n#samplerate 44100\nt 4 *"))

	var buf bytes.Buffer
	r := New(eng)
	require.NoError(t, r.WriteRaw(context.Background(), &buf, 70))
	assert.Equal(t, uint8(0), buf.Bytes()[0])
	assert.Equal(t, uint8(4), buf.Bytes()[1])
	assert.Equal(t, uint8(4), buf.Bytes()[65], "expected wrap to the low 8 bits")
}

// swapSource hands out a new program after a number of calls.
type swapSource struct {
	progs []compiler.Program
	calls int
}

func (s *swapSource) Program() compiler.Program {
	s.calls++
	if s.calls > 1 {
		return s.progs[1]
	}
	return s.progs[0]
}

func TestRenderer_programSwitch(t *testing.T) {
	a, b := &rampProgram{rate: 100}, &rampProgram{rate: 100}
	src := &swapSource{progs: []compiler.Program{a, b}}
	r := New(src, WithOutputRate(100), WithBlockSize(2), WithLogf(t.Logf))

	f := tempFile(t, "switch.wav")
	require.NoError(t, r.WriteWAV(context.Background(), f, 4))
	assert.Equal(t, []int64{0, 1}, a.calls)
	assert.Equal(t, []int64{2, 3}, b.calls)
}

func TestRenderer_errors(t *testing.T) {
	var buf bytes.Buffer
	err := New(compiler.NewEngine()).WriteRaw(context.Background(), &buf, 10)
	assert.True(t, errors.Is(err, ErrNoProgram), "got %v", err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	prog := &rampProgram{rate: 8000}
	f := tempFile(t, "cancel.wav")
	err = New(Static(prog)).WriteWAV(ctx, f, 1000)
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
	assert.Empty(t, prog.calls)
}

func TestTimer(t *testing.T) {
	for _, tc := range []struct {
		i        int64
		sr, rate uint64
		want     int64
	}{
		{0, 8000, 44100, 0},
		{5, 8000, 44100, 0},
		{6, 8000, 44100, 1},
		{44100, 8000, 44100, 8000},
		{44100*3600*24 + 6, 8000, 44100, 8000*3600*24 + 1},
		{7, 44100, 44100, 7},
		{3, 88200, 44100, 6},
	} {
		assert.Equal(t, tc.want, timer(tc.i, tc.sr, tc.rate), "timer(%v, %v, %v)", tc.i, tc.sr, tc.rate)
	}
}

func TestFrames(t *testing.T) {
	assert.Equal(t, int64(441000), Frames(10, 44100))
	assert.Equal(t, int64(4000), Frames(0.5, 8000))
	assert.Equal(t, int64(0), Frames(-1, 8000))
}
