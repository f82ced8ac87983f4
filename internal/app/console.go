package app

// console exposes the viewer to the ESC console. Every change that maps to a preference
// is saved right away.
type console struct{ a *App }

func (c console) AutoRotate() (bool, float64) {
	r := c.a.scene.Rig
	return r.AutoRotate, r.AutoSpeed
}

func (c console) SetAutoRotate(on bool, speed float64) {
	r := c.a.scene.Rig
	r.AutoRotate, r.AutoSpeed = on, speed
	c.a.prefs.AutoRotate = on
	c.a.savePrefs()
}

func (c console) ShowLines() bool { return c.a.prefs.ShowLines }

func (c console) SetShowLines(show bool) {
	c.a.prefs.ShowLines = show
	c.a.savePrefs()
}

func (c console) ShowFPS() bool { return c.a.debug.ShowFPS }

func (c console) SetShowFPS(show bool) {
	c.a.debug.ShowFPS = show
	c.a.prefs.ShowFPS = show
	c.a.savePrefs()
}

func (c console) ShowMem() bool { return c.a.debug.ShowMemAlloc }

func (c console) SetShowMem(show bool) {
	c.a.debug.ShowMemAlloc = show
	c.a.prefs.ShowMemAlloc = show
	c.a.savePrefs()
}

func (c console) Muted() bool { return c.a.player.Muted() }

func (c console) SetMuted(muted bool) {
	c.a.player.SetMuted(muted)
	c.a.prefs.Muted = muted
	c.a.savePrefs()
}

func (c console) NextTrack() error   { return c.a.player.Next() }
func (c console) PrevTrack() error   { return c.a.player.Prev() }
func (c console) ToggleTrack() error { return c.a.player.Toggle() }

func (c console) Anchor() (float64, float64, bool) {
	p, ok := c.a.scene.Anchor.Point()
	return p.X, p.Y, ok
}
