// Package app runs the camera-to-volume control loop.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ayusman/pinchvol/internal/audio"
	"github.com/ayusman/pinchvol/internal/capture"
	"github.com/ayusman/pinchvol/internal/detector"
	"github.com/ayusman/pinchvol/internal/gesture"
	"github.com/ayusman/pinchvol/internal/log"
	"github.com/ayusman/pinchvol/internal/overlay"
	"github.com/ayusman/pinchvol/internal/store"
	"github.com/ayusman/pinchvol/internal/volume"
)

// Deps are the collaborators the App drives. The App owns them once New
// is called and releases them in Close.
type Deps struct {
	Camera   capture.Camera
	Detector detector.Detector
	Sink     audio.Sink
	Display  overlay.Display
	// Journal is optional.
	Journal *store.Store
	// Backend names the sink in the journal.
	Backend string
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// App is the single-threaded control loop.
type App struct {
	config     ControllerConfig
	camera     capture.Camera
	detector   detector.Detector
	sink       audio.Sink
	display    overlay.Display
	journal    *store.Store
	controller *Controller
	fps        overlay.FPSCounter
	now        func() time.Time

	sessionID string
	frames    int
	lastLevel int
	hasLevel  bool

	closeOnce sync.Once
	closeErr  error
}

// New prepares the loop: it reads the sink's level range and mute state,
// opens the camera and starts a journal session. On failure every
// collaborator in deps is released.
func New(ctx context.Context, config ControllerConfig, deps Deps) (*App, error) {
	a := &App{
		config:   config,
		camera:   deps.Camera,
		detector: deps.Detector,
		sink:     deps.Sink,
		display:  deps.Display,
		journal:  deps.Journal,
		now:      deps.Clock,
	}
	if a.now == nil {
		a.now = time.Now
	}
	if a.display == nil {
		a.display = overlay.NewNopDisplay()
	}

	if err := a.init(ctx, deps.Backend); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) init(ctx context.Context, backend string) error {
	if a.camera == nil || a.detector == nil || a.sink == nil {
		return errors.New("app: camera, detector and sink are required")
	}

	lo, hi, err := a.sink.LevelRange()
	if err != nil {
		return fmt.Errorf("failed to read level range: %w", err)
	}
	a.controller = NewController(a.config, volume.Range{Min: float64(lo), Max: float64(hi)})

	muted, err := a.sink.Muted(ctx)
	if err != nil {
		return fmt.Errorf("failed to read mute state: %w", err)
	}
	a.controller.SetMuted(muted)

	if err := a.camera.Open(); err != nil {
		return fmt.Errorf("failed to open camera: %w", err)
	}

	if a.journal != nil {
		session := &store.Session{
			Backend:   backend,
			LevelMin:  lo,
			LevelMax:  hi,
			StartedAt: a.now(),
		}
		if err := a.journal.Sessions().Start(session); err != nil {
			return fmt.Errorf("failed to start journal session: %w", err)
		}
		a.sessionID = session.ID
	}

	log.Info("controller ready", "level_min", lo, "level_max", hi, "muted", muted, "session", a.sessionID)
	return nil
}

// Run processes frames until a quit key is pressed, ctx is cancelled or
// the camera runs out of frames.
func (a *App) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			log.Info("stopping", "reason", ctx.Err())
			return nil
		default:
		}

		stop, err := a.Step(ctx)
		if err != nil {
			return err
		}
		if stop {
			return nil
		}
	}
}

// Step processes a single frame and reports whether the loop should stop.
func (a *App) Step(ctx context.Context) (bool, error) {
	frame, err := a.camera.ReadFrame()
	if err != nil {
		if errors.Is(err, capture.ErrNoMoreFrames) {
			log.Info("camera stream ended")
			return true, nil
		}
		if errors.Is(err, capture.ErrCameraNotOpen) {
			return true, err
		}
		log.Warn("skipping frame", "error", err)
		a.record(store.KindFrameError, 0, err.Error())
		return overlay.IsQuit(a.display.PollKey()), nil
	}
	defer frame.Close()
	a.frames++

	hands, err := a.detector.Detect(frame)
	if err != nil {
		log.Warn("hand detection failed", "error", err)
		a.record(store.KindFrameError, 0, err.Error())
		hands = nil
	}

	now := a.now()
	res := a.controller.Process(hands, frame.Cols(), frame.Rows(), now)

	if res.Detected {
		a.applyLevel(ctx, res.Level.Value)
	}
	if res.ToggleMute {
		a.toggleMute(ctx)
	}

	overlay.Draw(frame, overlay.HUD{
		Hands:    hands,
		Detected: res.Detected,
		Thumb:    res.Thumb.Pos,
		Index:    res.Index.Pos,
		Distance: res.Distance,
		Level:    res.Level,
		HasLevel: res.Detected,
		Muted:    a.controller.Muted(),
		FPS:      a.fps.Tick(now),
	})

	if err := a.display.Show(frame); err != nil {
		log.Debug("show failed", "error", err)
	}

	return overlay.IsQuit(a.display.PollKey()), nil
}

// applyLevel writes level to the sink unless it is already there.
func (a *App) applyLevel(ctx context.Context, level int) {
	if a.hasLevel && level == a.lastLevel {
		return
	}

	if err := a.sink.SetLevel(ctx, level); err != nil {
		log.Warn("set level failed", "level", level, "error", err)
		return
	}

	a.lastLevel = level
	a.hasLevel = true
	log.Debug("level set", "level", level)
	a.record(store.KindLevelChange, level, "")
}

func (a *App) toggleMute(ctx context.Context) {
	muted, err := audio.ToggleMute(ctx, a.sink)
	if err != nil {
		log.Warn("mute toggle failed", "error", err)
		return
	}

	a.controller.SetMuted(muted)
	log.Info("mute toggled", "muted", muted)
	a.record(store.KindMuteToggle, a.lastLevel, "")
}

func (a *App) record(kind store.Kind, level int, detail string) {
	if a.journal == nil || a.sessionID == "" {
		return
	}

	err := a.journal.Events().Record(&store.Event{
		SessionID: a.sessionID,
		Kind:      kind,
		Level:     level,
		Muted:     a.controller.Muted(),
		Detail:    detail,
		At:        a.now(),
	})
	if err != nil {
		log.Warn("journal write failed", "kind", kind, "error", err)
	}
}

// Muted returns the mute state last confirmed by the sink.
func (a *App) Muted() bool {
	return a.controller.Muted()
}

// Gesture returns the debouncer state.
func (a *App) Gesture() gesture.State {
	return a.controller.Gesture()
}

// Frames returns the number of frames read so far.
func (a *App) Frames() int {
	return a.frames
}

// SessionID returns the journal session, or "" when journaling is off.
func (a *App) SessionID() string {
	return a.sessionID
}

// Close ends the journal session and releases every collaborator.
// It is safe to call more than once.
func (a *App) Close() error {
	a.closeOnce.Do(func() {
		var errs []error

		if a.journal != nil {
			if a.sessionID != "" {
				if err := a.journal.Sessions().End(a.sessionID, a.now(), a.frames); err != nil {
					errs = append(errs, fmt.Errorf("end session: %w", err))
				}
			}
			if err := a.journal.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close journal: %w", err))
			}
		}

		if a.display != nil {
			if err := a.display.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close display: %w", err))
			}
		}
		if a.detector != nil {
			if err := a.detector.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close detector: %w", err))
			}
		}
		if a.camera != nil {
			if err := a.camera.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close camera: %w", err))
			}
		}
		if a.sink != nil {
			if err := a.sink.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close sink: %w", err))
			}
		}

		a.closeErr = errors.Join(errs...)
	})
	return a.closeErr
}
