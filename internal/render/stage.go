// Package render draws the scene with raylib: the lit model (or its placeholder box), the
// outfit callout lines and the 2D overlay through a ui.Painter.
package render

import (
	"fmt"
	"image/color"
	"os"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"coffee-edition/internal/projector"
	"coffee-edition/internal/scene"
)

var (
	Background   = color.RGBA{0x3b, 0x2f, 0x2f, 255}
	placeholder  = color.RGBA{0xd2, 0xb4, 0x8c, 255}
	lineColor    = color.RGBA{0xe0, 0xb9, 0x94, 255}
	faintAlpha   = uint8(60)
	brightAlpha  = uint8(230)
	lineRadius   = float32(0.012)
	hotspotSize  = float32(0.035)
	cylinderSide = int32(6)
)

// Stage holds GPU resources for the 3D part of a frame. Resources are created on the first
// Draw so they are allocated after the window and GL context exist.
type Stage struct {
	light lighting

	box      rl.Mesh
	boxMtl   rl.Material
	boxSize  mgl64.Vec3
	boxReady bool

	model  rl.Model
	loaded bool
	path   string
}

// NewStage returns a stage that draws the placeholder box until a model is loaded.
func NewStage() *Stage {
	return &Stage{}
}

// Loaded reports whether a model file is on the GPU.
func (s *Stage) Loaded() bool { return s.loaded }

// LoadModel loads a glTF/GLB file and returns its model-space bounds.
func (s *Stage) LoadModel(path string) (scene.Bounds, error) {
	if _, err := os.Stat(path); err != nil {
		return scene.Bounds{}, fmt.Errorf("render: load model: %w", err)
	}
	m := rl.LoadModel(path)
	if !rl.IsModelValid(m) {
		return scene.Bounds{}, fmt.Errorf("render: load model %s: invalid model", path)
	}
	s.light.load()
	if s.light.valid() {
		mats := m.GetMaterials()
		for i := range mats {
			mats[i].Shader = s.light.shader
		}
	}
	if s.loaded {
		rl.UnloadModel(s.model)
	}
	s.model, s.loaded, s.path = m, true, path

	bb := rl.GetModelBoundingBox(m)
	return scene.Bounds{
		Min: mgl64.Vec3{float64(bb.Min.X), float64(bb.Min.Y), float64(bb.Min.Z)},
		Max: mgl64.Vec3{float64(bb.Max.X), float64(bb.Max.Y), float64(bb.Max.Z)},
	}, nil
}

func (s *Stage) ensureBox(size mgl64.Vec3) {
	if s.boxReady && s.boxSize == size {
		return
	}
	if s.boxReady {
		rl.UnloadMesh(&s.box)
	} else {
		s.boxMtl = rl.LoadMaterialDefault()
	}
	s.box = rl.GenMeshCube(float32(size[0]), float32(size[1]), float32(size[2]))
	s.boxSize = size
	if albedo := s.boxMtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = placeholder
	}
	if s.light.valid() {
		s.boxMtl.Shader = s.light.shader
	}
	s.boxReady = true
}

// Draw renders the 3D part of the frame: model or placeholder, then the outfit lines when
// showLines is set. Call between BeginDrawing and EndDrawing.
func (s *Stage) Draw(sc *scene.Scene, showLines bool) {
	s.light.load()
	cam := camera3D(sc.Camera)

	rl.BeginMode3D(cam)
	s.light.apply(cam.Position)
	transform := matrix(sc.ModelMatrix())
	if s.loaded {
		s.model.Transform = transform
		rl.DrawModel(s.model, rl.NewVector3(0, 0, 0), 1, rl.White)
	} else {
		s.ensureBox(scene.PlaceholderSize(sc.Options().ModelScale))
		rl.DrawMesh(s.box, s.boxMtl, transform)
	}
	if showLines {
		drawOutfitLines(sc.OutfitLines(), float32(sc.Elapsed()))
	}
	rl.EndMode3D()
}

// drawOutfitLines draws each callout twice: a wide faint tube, then a thin bright line,
// with a pulsing hotspot at the marker end.
func drawOutfitLines(lines [projector.MarkerCount][]mgl64.Vec3, t float32) {
	faint := lineColor
	faint.A = faintAlpha
	bright := lineColor
	bright.A = brightAlpha

	for i, pts := range lines {
		if len(pts) < 2 {
			continue
		}
		for j := 1; j < len(pts); j++ {
			rl.DrawCylinderEx(vec3(pts[j-1]), vec3(pts[j]), lineRadius, lineRadius, cylinderSide, faint)
		}
		for j := 1; j < len(pts); j++ {
			rl.DrawLine3D(vec3(pts[j-1]), vec3(pts[j]), bright)
		}
		pulse := 1 + 0.25*math32.Sin(t*3+float32(i))
		rl.DrawSphere(vec3(pts[0]), hotspotSize*pulse, bright)
	}
}

// Unload frees GPU resources. The stage can be drawn again afterwards.
func (s *Stage) Unload() {
	if s.loaded {
		rl.UnloadModel(s.model)
		s.loaded = false
	}
	if s.boxReady {
		rl.UnloadMesh(&s.box)
		s.boxReady = false
	}
	s.light.unload()
}
