// Package scene owns the per-frame state of the model view: the model transform, the
// camera rig, drag inertia, marker projection and the panel anchor. It has no rendering
// dependency; the render package draws whatever the scene says.
package scene

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"coffee-edition/internal/curve"
	"coffee-edition/internal/drag"
	"coffee-edition/internal/layout"
	"coffee-edition/internal/projector"
	"coffee-edition/internal/rig"
)

// Options are the tunable parameters of a scene.
type Options struct {
	AutoRotate      bool
	AutoSpeed       float64
	ModelScale      float64
	DragSensitivity float64
	InertiaDecay    float64
}

// DefaultOptions returns the stock tuning.
func DefaultOptions() Options {
	return Options{
		AutoRotate:      true,
		AutoSpeed:       rig.DefaultAutoSpeed,
		ModelScale:      DefaultModelScale,
		DragSensitivity: drag.DefaultSensitivity,
		InertiaDecay:    drag.DefaultDecay,
	}
}

// ModelState tracks where the displayed model comes from.
type ModelState int

const (
	// ModelPending: the asset probe has not answered yet. The placeholder box is shown.
	ModelPending ModelState = iota
	// ModelPlaceholder: no asset was reachable. The placeholder box stays.
	ModelPlaceholder
	// ModelLoaded: a model URL was resolved and the renderer should load it.
	ModelLoaded
)

func (s ModelState) String() string {
	switch s {
	case ModelPlaceholder:
		return "placeholder"
	case ModelLoaded:
		return "loaded"
	default:
		return "pending"
	}
}

// ModelResult is the outcome of resolving the model asset.
type ModelResult struct {
	URL  string
	Path string // local file, if the model was fetched
	Err  error
}

// Scene is driven from a single goroutine: pointer handlers and Advance must not run
// concurrently.
type Scene struct {
	Camera    rig.Camera
	Rig       *rig.Rig
	Drag      *drag.Controller
	Projector *projector.Projector
	Anchor    layout.Anchor
	Stack     layout.Stack
	Transform Transform

	opts      Options
	panels    int
	elapsed   float64
	frame     projector.Frame
	placement layout.Placement
	viewport  projector.Viewport

	state  ModelState
	model  ModelResult
	result <-chan ModelResult
}

// New returns a scene showing the placeholder box with panels item panels.
func New(opts Options, panels int) *Scene {
	if opts.ModelScale <= 0 {
		opts.ModelScale = DefaultModelScale
	}
	r := rig.New()
	r.AutoRotate = opts.AutoRotate
	if opts.AutoSpeed != 0 {
		r.AutoSpeed = opts.AutoSpeed
	}
	d := drag.New()
	if opts.DragSensitivity != 0 {
		d.Sensitivity = opts.DragSensitivity
	}
	if opts.InertiaDecay != 0 {
		d.Decay = opts.InertiaDecay
	}
	return &Scene{
		Camera:    rig.DefaultCamera(),
		Rig:       r,
		Drag:      d,
		Projector: projector.New(projector.DefaultMarkers()),
		Stack:     layout.DefaultStack(),
		Transform: Transform{Group: GroupOffset, Scale: 1},
		opts:      opts,
		panels:    panels,
	}
}

// Options returns the options the scene was built with (after defaults).
func (s *Scene) Options() Options { return s.opts }

// Watch registers the channel the model resolution arrives on. The first value received
// is applied; the channel is not read again.
func (s *Scene) Watch(ch <-chan ModelResult) {
	s.result = ch
}

// State returns the current model state.
func (s *Scene) State() ModelState { return s.state }

// Model returns the applied resolution. It is only meaningful once State is not pending.
func (s *Scene) Model() ModelResult { return s.model }

// SetModelBounds switches the transform from the placeholder box to a loaded model with
// the given local bounds: the model is scaled and its feet are moved to the group origin.
func (s *Scene) SetModelBounds(b Bounds) {
	s.Transform.Scale = s.opts.ModelScale
	s.Transform.Position = FeetOffset(b, s.opts.ModelScale)
}

// ModelMatrix returns the current model-to-world matrix.
func (s *Scene) ModelMatrix() mgl64.Mat4 { return s.Transform.Matrix() }

// Elapsed returns the scene clock in seconds.
func (s *Scene) Elapsed() float64 { return s.elapsed }

// Frame returns the last published marker frame.
func (s *Scene) Frame() projector.Frame { return s.frame }

// Placement returns the panel layout computed by the last Advance.
func (s *Scene) Placement() layout.Placement { return s.placement }

// Advance runs one frame: probe result, rig, inertia, projection, anchor, layout.
func (s *Scene) Advance(dt float64, vp projector.Viewport) {
	s.poll()
	s.elapsed += dt

	s.Rig.Update(s.elapsed, dt, &s.Transform.RotationY, &s.Camera)
	s.Transform.RotationY += s.Drag.Step(dt)

	if !vp.Empty() {
		s.viewport = vp
		s.Camera.SetViewport(vp.Width, vp.Height)
	}
	s.frame, _ = s.Projector.Update(s.ModelMatrix(), s.Camera.ViewProjection(), vp)
	s.Anchor.Latch(s.frame)
	s.placement = s.Stack.Place(s.Anchor.Resolve(s.viewport), s.viewport, s.panels)
}

func (s *Scene) poll() {
	if s.result == nil {
		return
	}
	select {
	case r, ok := <-s.result:
		s.result = nil
		if !ok || r.Err != nil || r.URL == "" {
			s.model = r
			s.state = ModelPlaceholder
			return
		}
		s.model = r
		s.state = ModelLoaded
	default:
	}
}

// PointerDown starts a drag.
func (s *Scene) PointerDown(x float64, at time.Duration) { s.Drag.PointerDown(x, at) }

// PointerMove rotates the model while dragging.
func (s *Scene) PointerMove(x float64, at time.Duration) {
	s.Transform.RotationY += s.Drag.PointerMove(x, at)
}

// PointerUp releases the drag and lets inertia take over.
func (s *Scene) PointerUp() { s.Drag.PointerUp() }

// PointerLeave ends a drag when the pointer leaves the window.
func (s *Scene) PointerLeave() { s.Drag.PointerLeave() }

// PointerCancel ends a drag whose release will never arrive, e.g. when the console takes
// the input.
func (s *Scene) PointerCancel() { s.Drag.PointerCancel() }

// OutfitLines returns one callout curve per marker, from the marker's world position
// toward the camera.
func (s *Scene) OutfitLines() [projector.MarkerCount][]mgl64.Vec3 {
	var lines [projector.MarkerCount][]mgl64.Vec3
	model := s.ModelMatrix()
	for _, m := range projector.Markers() {
		start := s.Projector.Markers.World(m, model)
		lines[m] = curve.Outfit(start, s.Camera.Position, s.elapsed, int(m))
	}
	return lines
}
