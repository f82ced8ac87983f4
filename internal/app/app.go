// Package app wires the viewer together: configuration, the scene core, audio, overlay,
// console and the raylib loop.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/jinzhu/copier"

	"coffee-edition/internal/assets"
	"coffee-edition/internal/catalog"
	"coffee-edition/internal/commands"
	"coffee-edition/internal/config"
	"coffee-edition/internal/debug"
	"coffee-edition/internal/download"
	"coffee-edition/internal/fonts"
	"coffee-edition/internal/googlefonts"
	"coffee-edition/internal/graphics"
	"coffee-edition/internal/logger"
	"coffee-edition/internal/overlay"
	"coffee-edition/internal/prefs"
	"coffee-edition/internal/probe"
	"coffee-edition/internal/projector"
	"coffee-edition/internal/render"
	"coffee-edition/internal/scene"
	"coffee-edition/internal/sound"
	"coffee-edition/internal/speaker"
	"coffee-edition/internal/terminal"
)

const (
	windowTitle = "Coffee Edition"
	targetFPS   = 60
)

// App is the running viewer. All fields are owned by the frame goroutine.
type App struct {
	cfg   config.Config
	log   *logger.Logger
	cat   *catalog.Catalog
	store *prefs.Store
	prefs prefs.Prefs

	scene    *scene.Scene
	player   *sound.Player
	analyser *sound.Analyser
	viz      *sound.Visualizer
	bins     []uint8
	overlay  *overlay.Overlay

	stage   *render.Stage
	painter *render.Painter
	term    *terminal.Terminal
	debug   *debug.Debug

	fonts      <-chan map[fonts.Role]string
	modelTried bool
	input      pointer
	start      time.Time
}

// SceneOptions maps the configured tuning onto scene options.
func SceneOptions(t config.Tuning) (scene.Options, error) {
	var opts scene.Options
	if err := copier.Copy(&opts, &t); err != nil {
		return scene.Options{}, fmt.Errorf("app: scene options: %w", err)
	}
	return opts, nil
}

// New builds the viewer. Nothing touches the window or the audio device until Run.
func New(ctx context.Context, cfg config.Config, log *logger.Logger) (*App, error) {
	a := &App{
		cfg:   cfg,
		log:   log,
		cat:   catalog.Default(),
		store: prefs.NewStore(cfg.PrefsFile),
		start: time.Now(),
	}
	a.prefs = a.store.Load()

	opts, err := SceneOptions(cfg.Tuning)
	if err != nil {
		return nil, err
	}
	opts.AutoRotate = opts.AutoRotate && a.prefs.AutoRotate
	a.scene = scene.New(opts, len(a.cat.Items))

	p := probe.New(cfg.AssetBaseURL, cfg.AssetsDir)
	p.Log = log
	resolver := &assets.Resolver{Probe: p, Download: download.New(), CacheDir: cfg.CacheDir, Log: log}
	a.scene.Watch(resolver.Start(ctx, cfg.PrimaryModel, cfg.FallbackModel))

	a.analyser = sound.NewAnalyser()
	a.bins = make([]uint8, sound.BinCount)
	a.player, err = sound.NewPlayer(speaker.New(a.analyser), a.cat.Tracks,
		sound.WithLogger(log),
		sound.WithVolume(cfg.Tuning.Volume),
		sound.WithLocator(assets.Locator(cfg.AssetsDir)),
	)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	a.player.SetMuted(a.prefs.Muted)
	a.viz = sound.NewVisualizer(targetFPS)

	a.overlay, err = overlay.New(a.cat.Items, targetFPS)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	images := &assets.Images{Catalog: a.cat, Dir: cfg.AssetsDir, Log: log}
	a.stage = render.NewStage()
	a.painter = render.NewPainter(images.Image)

	reg := commands.NewRegistry()
	commands.RegisterViewer(reg, console{a}, func(s string) { log.Info("%s", s) })
	a.term = terminal.New(log, reg)
	a.debug = debug.New()
	a.debug.ShowFPS = a.prefs.ShowFPS
	a.debug.ShowMemAlloc = a.prefs.ShowMemAlloc

	a.fonts = a.fetchFonts(ctx)
	return a, nil
}

func (a *App) fetchFonts(ctx context.Context) <-chan map[fonts.Role]string {
	ch := make(chan map[fonts.Role]string, 1)
	loc := fonts.NewLocator(filepath.Join(a.cfg.AssetsDir, "fonts"))
	go func() {
		defer close(ch)
		ch <- assets.EnsureFonts(ctx, loc, googlefonts.New(), download.New(), a.log)
	}()
	return ch
}

// Run opens the window and blocks until it is closed.
func (a *App) Run() error {
	defer a.close()
	graphics.Run(graphics.Window{
		Title:      windowTitle,
		Width:      a.cfg.Width,
		Height:     a.cfg.Height,
		TargetFPS:  targetFPS,
		Background: render.Background,
	}, a.update, a.draw)
	return nil
}

func (a *App) close() {
	if err := a.player.Close(); err != nil {
		a.log.Warn("app: %v", err)
	}
	a.painter.Unload()
	a.stage.Unload()
}

func (a *App) viewport() projector.Viewport {
	return projector.Viewport{Width: float64(rl.GetScreenWidth()), Height: float64(rl.GetScreenHeight())}
}

func (a *App) update(dt float64) {
	a.pollFonts()
	a.term.Update()

	vp := a.viewport()
	if a.term.IsOpen() {
		a.cancelDrag()
	} else {
		a.handlePointer()
	}
	a.scene.Advance(dt, vp)
	a.loadModel()

	a.player.Update()
	if a.player.Playing() {
		n := a.analyser.ByteFrequencyData(a.bins)
		a.viz.SetTarget(sound.Sample(a.bins[:n]))
	} else {
		a.viz.Silence()
	}
	a.viz.Update()

	mx, my := a.input.x, a.input.y
	if a.term.IsOpen() {
		mx, my = -1, -1
	}
	a.overlay.Update(overlay.State{
		Placement: a.scene.Placement(),
		Frame:     a.scene.Frame(),
		Track:     a.player.Current(),
		Playing:   a.player.Playing(),
		Bars:      a.viz.Heights(),
		Loading:   a.scene.State() == scene.ModelPending,
		Mouse:     uiPoint(mx, my),
	}, vp.Width, vp.Height)
}

// loadModel uploads the resolved model once. A file raylib cannot load keeps the
// placeholder box.
func (a *App) loadModel() {
	if a.modelTried || a.scene.State() != scene.ModelLoaded {
		return
	}
	a.modelTried = true
	m := a.scene.Model()
	b, err := a.stage.LoadModel(m.Path)
	if err != nil {
		a.log.Warn("app: %v", err)
		return
	}
	a.scene.SetModelBounds(b)
	a.log.Info("app: showing %s", m.URL)
}

func (a *App) pollFonts() {
	if a.fonts == nil {
		return
	}
	select {
	case paths, ok := <-a.fonts:
		a.fonts = nil
		if !ok {
			return
		}
		for role, path := range paths {
			if err := a.painter.LoadFont(role.String(), path); err != nil {
				a.log.Warn("app: %v", err)
			}
		}
		mono := a.painter.Font(fonts.Mono.String())
		a.term.SetFont(mono)
		a.debug.SetFont(mono)
	default:
	}
}

func (a *App) draw() {
	a.stage.Draw(a.scene, a.prefs.ShowLines)
	a.overlay.Draw(a.painter)
	a.debug.Draw()
	a.term.Draw()
}

func (a *App) savePrefs() {
	if err := a.store.Save(a.prefs); err != nil {
		a.log.Warn("app: %v", err)
	}
}
