// Command orbitals runs one terminal viewport onto a scene shared by every
// orbitals process on the machine
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/lixenwraith/orbitals/audio"
	"github.com/lixenwraith/orbitals/config"
	"github.com/lixenwraith/orbitals/core"
	"github.com/lixenwraith/orbitals/engine"
	"github.com/lixenwraith/orbitals/registry"
	"github.com/lixenwraith/orbitals/render"
	"github.com/lixenwraith/orbitals/status"
)

func main() {
	fs := pflag.NewFlagSet("orbitals", pflag.ExitOnError)
	config.RegisterFlags(fs)
	clearFlag := fs.Bool("clear", false, "delete every viewport from the shared registry and exit")
	listFlag := fs.Bool("list", false, "print the live viewports and exit")
	soloFlag := fs.Bool("solo", false, "run without the shared registry")
	fs.Parse(os.Args[1:])

	cfg, err := config.Load(fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "orbitals: %v\n", err)
		os.Exit(2)
	}

	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	switch {
	case *clearFlag:
		err = clearRegistry(cfg.Registry.Path)
	case *listFlag:
		err = listRegistry(cfg.Registry.Path)
	default:
		err = run(cfg, *soloFlag)
	}
	if err != nil {
		log.Printf("orbitals: %v", err)
		fmt.Fprintf(os.Stderr, "orbitals: %v\n", err)
		os.Exit(1)
	}
}

func clearRegistry(path string) error {
	db, err := registry.OpenStore(path)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := registry.Clear(context.Background(), db)
	if err != nil {
		return err
	}
	fmt.Printf("cleared %d viewport(s) from %s\n", n, path)
	return nil
}

func listRegistry(path string) error {
	db, err := registry.OpenStore(path)
	if err != nil {
		return err
	}
	defer db.Close()

	vs, err := registry.List(context.Background(), db)
	if err != nil {
		return err
	}
	fmt.Print(formatList(vs))
	return nil
}

// processMeta identifies this process to peers listing the registry
func processMeta() map[string]string {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	return map[string]string{"host": host, "pid": strconv.Itoa(os.Getpid())}
}

func run(cfg config.Config, solo bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	core.RegisterScreen(screen)
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	stats := status.NewRegistry()
	renderer := render.NewRenderer(screen, stats, cfg.Viewport.CellWidth, cfg.Viewport.CellHeight)

	w, h := renderer.SurfaceSize(screen.Size())
	shape := registry.Shape{X: cfg.Viewport.X, Y: cfg.Viewport.Y, W: int(w), H: int(h)}

	var adapter registry.Adapter
	if solo {
		adapter = registry.NewStatic(0, registry.Viewport{ID: uuid.NewString(), Shape: shape})
	} else {
		db, err := registry.OpenStore(cfg.Registry.Path)
		if err != nil {
			return err
		}
		defer db.Close()

		opts := registry.DefaultOptions()
		opts.HeartbeatInterval = cfg.Registry.HeartbeatInterval
		opts.StaleAfter = cfg.Registry.StaleAfter
		opts.PollInterval = cfg.Registry.PollInterval
		adapter = registry.NewSQLRegistry(ctx, db, shape, opts)
	}

	clock := engine.NewRealClock()
	eng := engine.New(adapter, clock, stats, engine.Config{
		Falloff:     cfg.Animation.Falloff,
		IdleTimeout: cfg.Animation.IdleTimeout,
	})

	if cfg.Audio.Enabled {
		sounds := audio.NewSoundManager()
		if err := sounds.Initialize(); err != nil {
			log.Printf("orbitals: audio disabled: %v", err)
		} else {
			defer sounds.Cleanup()
			eng.OnRebuild(func(before, after int) {
				if c, ok := audio.ChimeForChange(before, after); ok {
					sounds.Play(c)
				}
			})
		}
	}

	eng.Init(processMeta())
	defer eng.Close()
	log.Printf("orbitals: viewport %s at %s", shape, cfg.Registry.Path)

	input := &inputHandler{
		sink:   eng,
		cells:  renderer,
		step:   cfg.Viewport.MoveStep,
		quit:   cancel,
		resync: screen.Sync,
	}
	core.Go(func() { runInput(screen, input) })

	sched := engine.NewScheduler(eng, clock, cfg.Animation.FPS, func() {
		renderer.Render(eng.Scene, eng.Camera)
	})

	began := time.Now()
	err = sched.Run(ctx)
	log.Printf("orbitals: stopped after %d frames in %v", sched.Frames(), time.Since(began).Round(time.Millisecond))
	return err
}
