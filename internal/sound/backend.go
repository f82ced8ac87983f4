package sound

import (
	"errors"
	"sync/atomic"
)

var (
	// ErrDeviceBusy is returned when another player already owns the output device.
	ErrDeviceBusy = errors.New("sound: audio device is owned by another player")
	// ErrNoTracks is returned when a player is built with an empty playlist.
	ErrNoTracks = errors.New("sound: playlist is empty")
)

// Stream is one loaded track on the output device.
type Stream interface {
	Play() error
	Pause()
	Seek(seconds float64) error
	SetVolume(v float64)
	SetLooping(loop bool)
	// Update refills the device buffer. It is called once per frame while playing.
	Update()
	Close() error
}

// Backend opens the output device and decodes tracks into streams.
type Backend interface {
	Open() error
	Load(path string) (Stream, error)
	Close() error
}

// deviceHeld guards the process-wide output device.
var deviceHeld atomic.Bool

func acquireDevice() error {
	if !deviceHeld.CompareAndSwap(false, true) {
		return ErrDeviceBusy
	}
	return nil
}

func releaseDevice() {
	deviceHeld.Store(false)
}
