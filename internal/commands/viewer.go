package commands

import (
	"errors"
	"fmt"
)

// Viewer is what the console can change at runtime.
type Viewer interface {
	AutoRotate() (on bool, speed float64)
	SetAutoRotate(on bool, speed float64)
	ShowLines() bool
	SetShowLines(show bool)
	ShowFPS() bool
	SetShowFPS(show bool)
	ShowMem() bool
	SetShowMem(show bool)
	Muted() bool
	SetMuted(muted bool)
	NextTrack() error
	PrevTrack() error
	ToggleTrack() error
	// Anchor returns the latched panel anchor in pixels, ok false before the latch.
	Anchor() (x, y float64, ok bool)
}

// RegisterViewer adds the viewer commands to r. Output lines go to out.
func RegisterViewer(r *Registry, v Viewer, out func(string)) {
	{
		fs := NewFlagSet("rotate")
		auto := fs.Bool("auto", true, "auto-rotate the camera")
		speed := fs.Float64("speed", 0, "auto-rotate speed in rad/s")
		r.Register("rotate", "-auto=true|false -speed=0.08", fs, func(given map[string]bool) error {
			on, sp := v.AutoRotate()
			if given["auto"] {
				on = *auto
			}
			if given["speed"] {
				if *speed < 0 {
					return fmt.Errorf("rotate: speed must not be negative")
				}
				sp = *speed
			}
			v.SetAutoRotate(on, sp)
			out(fmt.Sprintf("rotate: auto=%t speed=%.3f", on, sp))
			return nil
		})
	}

	toggle := func(name, flagName string, get func() bool, put func(bool)) {
		fs := NewFlagSet(name)
		val := fs.Bool(flagName, false, "set instead of toggling")
		usage := fmt.Sprintf("[-%s=true|false]", flagName)
		r.Register(name, usage, fs, func(given map[string]bool) error {
			next := !get()
			if given[flagName] {
				next = *val
			}
			put(next)
			out(fmt.Sprintf("%s: %t", name, next))
			return nil
		})
	}
	toggle("lines", "show", v.ShowLines, v.SetShowLines)
	toggle("fps", "show", v.ShowFPS, v.SetShowFPS)
	toggle("mem", "show", v.ShowMem, v.SetShowMem)
	toggle("mute", "on", v.Muted, v.SetMuted)

	{
		fs := NewFlagSet("track")
		next := fs.Bool("next", false, "next track")
		prev := fs.Bool("prev", false, "previous track")
		tog := fs.Bool("toggle", false, "play or pause")
		r.Register("track", "-next|-prev|-toggle", fs, func(map[string]bool) error {
			switch {
			case *next && !*prev && !*tog:
				return v.NextTrack()
			case *prev && !*next && !*tog:
				return v.PrevTrack()
			case *tog && !*next && !*prev:
				return v.ToggleTrack()
			}
			return errors.New("track: pass exactly one of -next, -prev, -toggle")
		})
	}

	r.Register("anchor", "", NewFlagSet("anchor"), func(map[string]bool) error {
		x, y, ok := v.Anchor()
		if !ok {
			out("anchor: not latched")
			return nil
		}
		out(fmt.Sprintf("anchor: %.1f, %.1f", x, y))
		return nil
	})

	r.Register("help", "", NewFlagSet("help"), func(map[string]bool) error {
		for _, l := range r.Help() {
			out(l)
		}
		return nil
	})
}
