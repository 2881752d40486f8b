package render

import (
	"context"
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/jcorbin/forthbyte/internal/compiler"
	"github.com/jcorbin/forthbyte/internal/flushio"
)

// WriteRaw streams frames unsigned 8-bit mono samples at the program's own
// rate, channel 0 only, as consumed by e.g. "aplay -f U8 -r 8000".
func (r *Renderer) WriteRaw(ctx context.Context, w io.Writer, frames int64) (err error) {
	out := &flushio.CountingWriter{WriteFlusher: flushio.NewWriteFlusher(w, r.blockSize)}
	r.logf("raw render of %v samples", frames)
	defer func() {
		if ferr := out.Flush(); err == nil {
			err = ferr
		}
		r.logf("raw render wrote %v bytes, err:%v", out.N, err)
	}()

	buf := make([]byte, r.blockSize)
	return r.blocks(ctx, frames, func(prog compiler.Program, off int64, n int) error {
		for j := 0; j < n; j++ {
			buf[j] = r.byte8(prog.Byte(off+int64(j), 0))
		}
		r.evals += int64(n)
		_, err := out.Write(buf[:n])
		return err
	})
}

// WriteWAV writes frames 16-bit stereo PCM frames at OutputRate to w. The
// file is finalized even when ctx ends the render early, in which case the
// context's error is returned.
func (r *Renderer) WriteWAV(ctx context.Context, w io.WriteSeeker, frames int64) (err error) {
	const bitDepth, numChans = 16, 2

	enc := wav.NewEncoder(w, int(r.outputRate), bitDepth, numChans, 1)
	r.logf("wav render of %v frames @%vHz", frames, r.outputRate)
	defer func() {
		if cerr := enc.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("render: finalize wav: %w", cerr)
		}
		r.logf("wav render done after %v evaluations, err:%v", r.evals, err)
	}()

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: numChans,
			SampleRate:  int(r.outputRate),
		},
		Data:           make([]int, numChans*r.blockSize),
		SourceBitDepth: bitDepth,
	}
	data := buf.Data
	return r.blocks(ctx, frames, func(prog compiler.Program, off int64, n int) error {
		buf.Data = data[:numChans*n]
		for j := 0; j < n; j++ {
			lr := r.frame(prog, off+int64(j))
			buf.Data[2*j] = r.pcm16(lr[0])
			buf.Data[2*j+1] = r.pcm16(lr[1])
		}
		return enc.Write(buf)
	})
}

// Frames returns how many frames last the given number of seconds at rate.
func Frames(seconds float64, rate uint64) int64 {
	if seconds <= 0 {
		return 0
	}
	return int64(seconds * float64(rate))
}
