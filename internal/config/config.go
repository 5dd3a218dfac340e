// Package config loads pinchvol settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ayusman/pinchvol/internal/app"
	"github.com/ayusman/pinchvol/internal/audio"
	"github.com/ayusman/pinchvol/internal/capture"
	"github.com/ayusman/pinchvol/internal/gesture"
	"github.com/ayusman/pinchvol/internal/volume"
)

// Environment variable names.
const (
	EnvCameraID         = "PINCHVOL_CAMERA"
	EnvWidth            = "PINCHVOL_WIDTH"
	EnvHeight           = "PINCHVOL_HEIGHT"
	EnvMirror           = "PINCHVOL_MIRROR"
	EnvDistanceMin      = "PINCHVOL_DISTANCE_MIN"
	EnvDistanceMax      = "PINCHVOL_DISTANCE_MAX"
	EnvWindowSize       = "PINCHVOL_SMOOTHING_WINDOW"
	EnvGestureThreshold = "PINCHVOL_GESTURE_THRESHOLD"
	EnvGestureHold      = "PINCHVOL_GESTURE_HOLD"
	EnvMuteCooldown     = "PINCHVOL_MUTE_COOLDOWN"
	EnvAudioBackend     = "PINCHVOL_AUDIO_BACKEND"
	EnvAudioTimeout     = "PINCHVOL_AUDIO_TIMEOUT"
	EnvShowWindow       = "PINCHVOL_SHOW_WINDOW"
	EnvJournal          = "PINCHVOL_JOURNAL"
	EnvLogLevel         = "PINCHVOL_LOG_LEVEL"
	EnvLogFile          = "PINCHVOL_LOG_FILE"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Config is the full runtime configuration.
type Config struct {
	CameraID int
	Width    int
	Height   int
	Mirror   bool

	DistanceMin float64
	DistanceMax float64
	WindowSize  int

	GestureThreshold float64
	GestureHold      time.Duration
	MuteCooldown     time.Duration

	AudioBackend string
	AudioTimeout time.Duration

	ShowWindow  bool
	JournalPath string

	LogLevel string
	LogFile  string
}

// Default returns the built-in configuration.
func Default() Config {
	cam := capture.DefaultConfig()
	vol := volume.DefaultConfig()
	gst := gesture.DefaultConfig()

	return Config{
		CameraID:         cam.DeviceID,
		Width:            cam.Width,
		Height:           cam.Height,
		Mirror:           cam.Mirror,
		DistanceMin:      vol.DistanceRange.Min,
		DistanceMax:      vol.DistanceRange.Max,
		WindowSize:       vol.WindowSize,
		GestureThreshold: gst.Threshold,
		GestureHold:      gst.Hold,
		MuteCooldown:     app.DefaultMuteCooldown,
		AudioBackend:     audio.BackendAuto,
		AudioTimeout:     audio.DefaultTimeout,
		ShowWindow:       true,
		LogLevel:         "info",
	}
}

// Load reads a .env file if present, then overlays PINCHVOL_* variables on
// the defaults. The result is validated.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config using getenv for lookups.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()
	p := parser{getenv: getenv}

	cfg.CameraID = p.asInt(EnvCameraID, cfg.CameraID)
	cfg.Width = p.asInt(EnvWidth, cfg.Width)
	cfg.Height = p.asInt(EnvHeight, cfg.Height)
	cfg.Mirror = p.asBool(EnvMirror, cfg.Mirror)
	cfg.DistanceMin = p.asFloat(EnvDistanceMin, cfg.DistanceMin)
	cfg.DistanceMax = p.asFloat(EnvDistanceMax, cfg.DistanceMax)
	cfg.WindowSize = p.asInt(EnvWindowSize, cfg.WindowSize)
	cfg.GestureThreshold = p.asFloat(EnvGestureThreshold, cfg.GestureThreshold)
	cfg.GestureHold = p.asDuration(EnvGestureHold, cfg.GestureHold)
	cfg.MuteCooldown = p.asDuration(EnvMuteCooldown, cfg.MuteCooldown)
	cfg.AudioBackend = p.asString(EnvAudioBackend, cfg.AudioBackend)
	cfg.AudioTimeout = p.asDuration(EnvAudioTimeout, cfg.AudioTimeout)
	cfg.ShowWindow = p.asBool(EnvShowWindow, cfg.ShowWindow)
	cfg.JournalPath = p.asString(EnvJournal, cfg.JournalPath)
	cfg.LogLevel = p.asString(EnvLogLevel, cfg.LogLevel)
	cfg.LogFile = p.asString(EnvLogFile, cfg.LogFile)

	if len(p.errs) > 0 {
		return cfg, errors.Join(p.errs...)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects inconsistent settings.
func (c Config) Validate() error {
	switch {
	case c.CameraID < 0:
		return fmt.Errorf("%w: camera id %d is negative", ErrInvalid, c.CameraID)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: resolution %dx%d", ErrInvalid, c.Width, c.Height)
	case c.DistanceMin >= c.DistanceMax:
		return fmt.Errorf("%w: distance range [%g, %g] is empty", ErrInvalid, c.DistanceMin, c.DistanceMax)
	case c.WindowSize < 1:
		return fmt.Errorf("%w: smoothing window %d must be at least 1", ErrInvalid, c.WindowSize)
	case c.GestureThreshold <= 0:
		return fmt.Errorf("%w: gesture threshold %g must be positive", ErrInvalid, c.GestureThreshold)
	case c.GestureHold < 0:
		return fmt.Errorf("%w: gesture hold %s is negative", ErrInvalid, c.GestureHold)
	case c.MuteCooldown < 0:
		return fmt.Errorf("%w: mute cooldown %s is negative", ErrInvalid, c.MuteCooldown)
	case c.AudioTimeout <= 0:
		return fmt.Errorf("%w: audio timeout %s must be positive", ErrInvalid, c.AudioTimeout)
	}

	switch c.AudioBackend {
	case audio.BackendAuto, audio.BackendOSAScript, audio.BackendPactl:
	default:
		return fmt.Errorf("%w: audio backend %q", ErrInvalid, c.AudioBackend)
	}
	return nil
}

// Camera returns the capture settings.
func (c Config) Camera() capture.Config {
	return capture.Config{
		DeviceID: c.CameraID,
		Width:    c.Width,
		Height:   c.Height,
		FPS:      capture.DefaultFPS,
		Mirror:   c.Mirror,
	}
}

// Volume returns the smoother settings.
func (c Config) Volume() volume.Config {
	return volume.Config{
		DistanceRange: volume.Range{Min: c.DistanceMin, Max: c.DistanceMax},
		WindowSize:    c.WindowSize,
	}
}

// Controller returns the per-frame decision settings.
func (c Config) Controller() app.ControllerConfig {
	return app.ControllerConfig{
		Volume:       c.Volume(),
		Gesture:      c.Gesture(),
		MuteCooldown: c.MuteCooldown,
	}
}

// Gesture returns the debouncer settings.
func (c Config) Gesture() gesture.Config {
	return gesture.Config{
		Threshold: c.GestureThreshold,
		Hold:      c.GestureHold,
	}
}

type parser struct {
	getenv func(string) string
	errs   []error
}

func (p *parser) lookup(key string) (string, bool) {
	v := strings.TrimSpace(p.getenv(key))
	return v, v != ""
}

func (p *parser) fail(key, value string, err error) {
	p.errs = append(p.errs, fmt.Errorf("%w: %s=%q: %v", ErrInvalid, key, value, err))
}

func (p *parser) asString(key, def string) string {
	if v, ok := p.lookup(key); ok {
		return v
	}
	return def
}

func (p *parser) asInt(key string, def int) int {
	v, ok := p.lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return n
}

func (p *parser) asFloat(key string, def float64) float64 {
	v, ok := p.lookup(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return f
}

func (p *parser) asBool(key string, def bool) bool {
	v, ok := p.lookup(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return b
}

func (p *parser) asDuration(key string, def time.Duration) time.Duration {
	v, ok := p.lookup(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return d
}
