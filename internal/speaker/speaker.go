// Package speaker plays sound.Player streams on the raylib audio device and feeds the
// mixed output into a sound.Analyser for the visualizer.
package speaker

import (
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"coffee-edition/internal/sound"
)

// mixChannels is the channel count of the raylib mixer output.
const mixChannels = 2

// Backend is a sound.Backend on top of raylib's audio device.
type Backend struct {
	analyser *sound.Analyser
	tap      rl.AudioCallback
	open     bool
}

// New returns a backend that writes mixed output into a (may be nil).
func New(a *sound.Analyser) *Backend {
	return &Backend{analyser: a}
}

// Open initialises the audio device and attaches the analyser tap.
func (b *Backend) Open() error {
	if b.open {
		return nil
	}
	rl.InitAudioDevice()
	if !rl.IsAudioDeviceReady() {
		return fmt.Errorf("speaker: audio device not ready")
	}
	if b.analyser != nil {
		a := b.analyser
		b.tap = func(data []float32, frames int) {
			a.Write(data, mixChannels)
		}
		rl.AttachAudioMixedProcessor(b.tap)
	}
	b.open = true
	return nil
}

// Load opens a music stream from a local file.
func (b *Backend) Load(path string) (sound.Stream, error) {
	if !b.open {
		return nil, fmt.Errorf("speaker: load %s: device closed", path)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("speaker: load: %w", err)
	}
	m := rl.LoadMusicStream(path)
	if !rl.IsMusicValid(m) {
		return nil, fmt.Errorf("speaker: load %s: unsupported or corrupt stream", path)
	}
	return &stream{music: m}, nil
}

// Close detaches the tap and shuts the device down.
func (b *Backend) Close() error {
	if !b.open {
		return nil
	}
	if b.tap != nil {
		rl.DetachAudioMixedProcessor(b.tap)
		b.tap = nil
	}
	if b.analyser != nil {
		b.analyser.Reset()
	}
	rl.CloseAudioDevice()
	b.open = false
	return nil
}

type stream struct {
	music   rl.Music
	started bool
}

func (s *stream) Play() error {
	if s.started {
		rl.ResumeMusicStream(s.music)
	} else {
		rl.PlayMusicStream(s.music)
		s.started = true
	}
	if !rl.IsMusicStreamPlaying(s.music) {
		return fmt.Errorf("speaker: stream did not start")
	}
	return nil
}

func (s *stream) Pause() { rl.PauseMusicStream(s.music) }

func (s *stream) Seek(seconds float64) error {
	length := float64(rl.GetMusicTimeLength(s.music))
	if length > 0 && seconds >= length {
		seconds = 0
	}
	rl.SeekMusicStream(s.music, float32(seconds))
	return nil
}

func (s *stream) SetVolume(v float64) { rl.SetMusicVolume(s.music, float32(v)) }

func (s *stream) SetLooping(loop bool) { s.music.Looping = loop }

func (s *stream) Update() { rl.UpdateMusicStream(s.music) }

func (s *stream) Close() error {
	rl.StopMusicStream(s.music)
	rl.UnloadMusicStream(s.music)
	return nil
}
