package render

// Option configures a Renderer.
type Option interface{ apply(r *Renderer) }

// WithOutputRate sets the WAV frame rate; zero is ignored.
func WithOutputRate(rate uint64) Option { return outputRateOption(rate) }

// WithVolume scales output; it is clamped to [0, 1].
func WithVolume(volume float64) Option { return volumeOption(volume) }

// WithBlockSize sets how many frames are produced between checks of the
// context and the Source; values below 1 are ignored.
func WithBlockSize(n int) Option { return blockSizeOption(n) }

// WithLogf sets a hook for render start, stop and program switches.
func WithLogf(logfn func(mess string, args ...interface{})) Option { return logfnOption(logfn) }

type outputRateOption uint64
type volumeOption float64
type blockSizeOption int
type logfnOption func(mess string, args ...interface{})

func (rate outputRateOption) apply(r *Renderer) {
	if rate > 0 {
		r.outputRate = uint64(rate)
	}
}

func (volume volumeOption) apply(r *Renderer) {
	switch v := float64(volume); {
	case v < 0:
		r.volume = 0
	case v > 1:
		r.volume = 1
	default:
		r.volume = v
	}
}

func (n blockSizeOption) apply(r *Renderer) {
	if n > 0 {
		r.blockSize = int(n)
	}
}

func (logfn logfnOption) apply(r *Renderer) { r.logfn = logfn }
