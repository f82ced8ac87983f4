// Package sound plays the background playlist and turns the output into the sound bar's
// four-bar visualizer.
package sound

import (
	"fmt"

	"coffee-edition/internal/catalog"
)

const (
	// DefaultVolume is applied whenever a track starts.
	DefaultVolume = 0.7
	// DefaultSkipIntro is where playback starts, past the tracks' intro tags.
	DefaultSkipIntro = 6.0
)

// Warner receives recoverable playback failures.
type Warner interface {
	Warn(format string, args ...any)
}

type nopWarner struct{}

func (nopWarner) Warn(string, ...any) {}

// Option configures a Player.
type Option func(*Player)

// WithLogger routes playback warnings to w.
func WithLogger(w Warner) Option {
	return func(p *Player) { p.log = w }
}

// WithVolume overrides DefaultVolume.
func WithVolume(v float64) Option {
	return func(p *Player) { p.volume = v }
}

// WithLocator maps a track's src onto something the backend can load (a local path).
func WithLocator(fn func(src string) string) Option {
	return func(p *Player) { p.locate = fn }
}

// Player owns the audio device from the first Play until Close. It is not safe for
// concurrent use; the frame loop drives it.
type Player struct {
	backend Backend
	tracks  []catalog.Track
	log     Warner
	locate  func(string) string
	volume  float64

	index    int
	playing  bool
	muted    bool
	open     bool
	stream   Stream
	streamOf int
}

// NewPlayer returns a paused player positioned on the first track.
func NewPlayer(b Backend, tracks []catalog.Track, opts ...Option) (*Player, error) {
	if len(tracks) == 0 {
		return nil, ErrNoTracks
	}
	p := &Player{
		backend:  b,
		tracks:   tracks,
		log:      nopWarner{},
		locate:   func(src string) string { return src },
		volume:   DefaultVolume,
		streamOf: -1,
	}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

// Current returns the selected track.
func (p *Player) Current() catalog.Track { return p.tracks[p.index] }

// Index returns the selected track's position in the playlist.
func (p *Player) Index() int { return p.index }

// Playing reports whether playback is running.
func (p *Player) Playing() bool { return p.playing }

// Muted reports whether output is silenced.
func (p *Player) Muted() bool { return p.muted }

// Toggle flips between playing and paused.
func (p *Player) Toggle() error {
	if p.playing {
		p.Pause()
		return nil
	}
	return p.Play()
}

// Play starts the selected track at the intro skip point. On failure the player stays
// paused and the error is logged and returned.
func (p *Player) Play() error {
	if err := p.start(); err != nil {
		p.playing = false
		p.log.Warn("sound: play %q blocked: %v", p.Current().Name, err)
		return err
	}
	p.playing = true
	return nil
}

func (p *Player) start() error {
	if !p.open {
		if err := acquireDevice(); err != nil {
			return err
		}
		if err := p.backend.Open(); err != nil {
			releaseDevice()
			return fmt.Errorf("sound: open device: %w", err)
		}
		p.open = true
	}
	if p.stream == nil || p.streamOf != p.index {
		p.closeStream()
		src := p.locate(p.Current().Src)
		s, err := p.backend.Load(src)
		if err != nil {
			return fmt.Errorf("sound: load %s: %w", src, err)
		}
		p.stream, p.streamOf = s, p.index
	}
	p.stream.SetVolume(p.effectiveVolume())
	p.stream.SetLooping(true)
	if err := p.stream.Seek(DefaultSkipIntro); err != nil {
		return fmt.Errorf("sound: seek: %w", err)
	}
	return p.stream.Play()
}

// Pause stops playback, keeping the stream loaded.
func (p *Player) Pause() {
	if p.stream != nil {
		p.stream.Pause()
	}
	p.playing = false
}

// Next selects the following track, wrapping at the end. A playing player restarts on
// the new track.
func (p *Player) Next() error {
	return p.switchTo((p.index + 1) % len(p.tracks))
}

// Prev selects the preceding track, wrapping at the start.
func (p *Player) Prev() error {
	return p.switchTo((p.index - 1 + len(p.tracks)) % len(p.tracks))
}

func (p *Player) switchTo(i int) error {
	was := p.playing
	p.Pause()
	p.index = i
	if was {
		return p.Play()
	}
	return nil
}

// SetMuted silences or restores output without changing the play state.
func (p *Player) SetMuted(m bool) {
	p.muted = m
	if p.stream != nil {
		p.stream.SetVolume(p.effectiveVolume())
	}
}

func (p *Player) effectiveVolume() float64 {
	if p.muted {
		return 0
	}
	return p.volume
}

// Update feeds the device. Call once per frame.
func (p *Player) Update() {
	if p.playing && p.stream != nil {
		p.stream.Update()
	}
}

// Close unloads the stream and releases the device. It is safe to call more than once.
func (p *Player) Close() error {
	p.playing = false
	err := p.closeStream()
	if !p.open {
		return err
	}
	p.open = false
	if cerr := p.backend.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("sound: close device: %w", cerr)
	}
	releaseDevice()
	return err
}

func (p *Player) closeStream() error {
	if p.stream == nil {
		return nil
	}
	err := p.stream.Close()
	p.stream, p.streamOf = nil, -1
	if err != nil {
		return fmt.Errorf("sound: close stream: %w", err)
	}
	return nil
}
