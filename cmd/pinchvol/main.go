package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/ayusman/pinchvol/internal/app"
	"github.com/ayusman/pinchvol/internal/audio"
	"github.com/ayusman/pinchvol/internal/capture"
	"github.com/ayusman/pinchvol/internal/config"
	"github.com/ayusman/pinchvol/internal/detector"
	"github.com/ayusman/pinchvol/internal/log"
	"github.com/ayusman/pinchvol/internal/overlay"
	"github.com/ayusman/pinchvol/internal/store"
)

const windowTitle = "Hand Volume Control"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "pinchvol: %v\n", err)
		os.Exit(2)
	}

	log.Init(cfg.LogLevel, expandHome(cfg.LogFile))
	defer log.Close()

	if err := run(cfg); err != nil {
		log.Error("pinchvol failed", "error", err)
		log.Close()
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sink, err := audio.New(ctx, cfg.AudioBackend, audio.NewExecRunner(cfg.AudioTimeout))
	if err != nil {
		return err
	}

	det, err := detector.NewMediaPipeDetector(detector.DefaultConfig())
	if err != nil {
		sink.Close()
		return fmt.Errorf("hand tracker: %w", err)
	}

	var journal *store.Store
	if cfg.JournalPath != "" {
		journal, err = openJournal(expandHome(cfg.JournalPath))
		if err != nil {
			det.Close()
			sink.Close()
			return err
		}
	}

	var display overlay.Display = overlay.NewNopDisplay()
	if cfg.ShowWindow {
		display = overlay.NewWindow(windowTitle)
	}

	a, err := app.New(ctx, cfg.Controller(), app.Deps{
		Camera:   capture.NewCamera(cfg.Camera()),
		Detector: det,
		Sink:     sink,
		Display:  display,
		Journal:  journal,
		Backend:  audio.ResolveBackend(cfg.AudioBackend),
	})
	if err != nil {
		return err
	}
	defer a.Close()

	log.Info("pinchvol running", "camera", cfg.CameraID, "backend", cfg.AudioBackend, "window", cfg.ShowWindow)
	if err := a.Run(ctx); err != nil {
		return err
	}
	return a.Close()
}

func openJournal(path string) (*store.Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}
	return store.New(path)
}

// expandHome resolves a leading "~/" against the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
