package sound

import (
	"math"
	"sync"
)

const (
	// FFTSize is the analysis window length in samples.
	FFTSize = 64
	// BinCount is the number of frequency bins produced per window.
	BinCount = FFTSize / 2

	DefaultSmoothing   = 0.8
	DefaultMinDecibels = -100.0
	DefaultMaxDecibels = -30.0
)

// Analyser keeps the most recent FFTSize mono samples and reports their spectrum as bytes,
// the way a browser AnalyserNode does. Write is called from the audio thread and
// ByteFrequencyData from the frame thread.
type Analyser struct {
	Smoothing   float64
	MinDecibels float64
	MaxDecibels float64

	mu       sync.Mutex
	ring     [FFTSize]float64
	pos      int
	window   [FFTSize]float64
	smoothed [BinCount]float64
}

// NewAnalyser returns an analyser with browser defaults.
func NewAnalyser() *Analyser {
	a := &Analyser{
		Smoothing:   DefaultSmoothing,
		MinDecibels: DefaultMinDecibels,
		MaxDecibels: DefaultMaxDecibels,
	}
	a.window = blackman()
	return a
}

// blackman returns the Blackman window with alpha 0.16.
func blackman() [FFTSize]float64 {
	const alpha = 0.16
	a0, a1, a2 := 0.5*(1-alpha), 0.5, 0.5*alpha
	var w [FFTSize]float64
	for n := range w {
		x := float64(n) / FFTSize
		w[n] = a0 - a1*math.Cos(2*math.Pi*x) + a2*math.Cos(4*math.Pi*x)
	}
	return w
}

// Write appends interleaved samples, averaging channels down to mono.
func (a *Analyser) Write(samples []float32, channels int) {
	if channels < 1 {
		channels = 1
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := 0; i+channels <= len(samples); i += channels {
		var sum float64
		for c := 0; c < channels; c++ {
			sum += float64(samples[i+c])
		}
		a.ring[a.pos] = sum / float64(channels)
		a.pos = (a.pos + 1) % FFTSize
	}
}

// Reset clears buffered samples and smoothing history.
func (a *Analyser) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ring = [FFTSize]float64{}
	a.smoothed = [BinCount]float64{}
	a.pos = 0
}

// ByteFrequencyData fills dst with up to BinCount spectrum values in [0, 255] and returns
// how many were written. Every call advances the smoothing state.
func (a *Analyser) ByteFrequencyData(dst []uint8) int {
	a.mu.Lock()
	var frame [FFTSize]float64
	for n := range frame {
		frame[n] = a.ring[(a.pos+n)%FFTSize] * a.window[n]
	}

	tau := a.Smoothing
	for k := range a.smoothed {
		var re, im float64
		for n, x := range frame {
			phi := -2 * math.Pi * float64(k*n) / FFTSize
			re += x * math.Cos(phi)
			im += x * math.Sin(phi)
		}
		mag := math.Hypot(re, im) / FFTSize
		a.smoothed[k] = tau*a.smoothed[k] + (1-tau)*mag
	}
	mags := a.smoothed
	a.mu.Unlock()

	span := a.MaxDecibels - a.MinDecibels
	n := min(len(dst), BinCount)
	for k := 0; k < n; k++ {
		dst[k] = toByte(20*math.Log10(mags[k]), a.MinDecibels, span)
	}
	return n
}

func toByte(db, minDB, span float64) uint8 {
	if math.IsInf(db, -1) || math.IsNaN(db) || span <= 0 {
		return 0
	}
	v := math.Floor((db - minDB) * 255 / span)
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}
