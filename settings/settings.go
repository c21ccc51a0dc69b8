// Package settings is the explicit, user-editable configuration of the
// toolchain: sampling resolution, solver tolerance and logging.
//
// Settings are plain values. Load and Save are functions over a caller-given
// path; nothing is cached in package state.
package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/wavechain/tendency"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("settings: invalid settings")

var validate = validator.New()

// Settings is the persisted configuration.
type Settings struct {
	Sampling  Sampling `yaml:"sampling"`
	Tolerance float64  `yaml:"tolerance" validate:"gt=0,lte=0.001"`
	Log       Log      `yaml:"log"`
}

// Sampling mirrors tendency.Sampling.
type Sampling struct {
	SinePointsPerPeriod int     `yaml:"sine_points_per_period" validate:"gte=2,lte=100000"`
	SmoothPoints        int     `yaml:"smooth_points" validate:"gte=2,lte=100000"`
	EdgeEpsilon         float64 `yaml:"edge_epsilon" validate:"gt=0,lt=1"`
	MaxPoints           int     `yaml:"max_points" validate:"gte=2,lte=100000000"`
}

// Log selects the log level and handler.
type Log struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// Default returns the built-in settings.
func Default() Settings {
	s := tendency.DefaultSampling()

	return Settings{
		Sampling: Sampling{
			SinePointsPerPeriod: s.SinePointsPerPeriod,
			SmoothPoints:        s.SmoothPoints,
			EdgeEpsilon:         s.EdgeEpsilon,
			MaxPoints:           s.MaxPoints,
		},
		Tolerance: tendency.DefaultTolerance,
		Log:       Log{Level: "info", Format: "text"},
	}
}

// Validate checks every field against its constraints.
func (s Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	return nil
}

// TendencySampling converts to the tendency package's type.
func (s Settings) TendencySampling() tendency.Sampling {
	return tendency.Sampling{
		SinePointsPerPeriod: s.Sampling.SinePointsPerPeriod,
		SmoothPoints:        s.Sampling.SmoothPoints,
		EdgeEpsilon:         s.Sampling.EdgeEpsilon,
		MaxPoints:           s.Sampling.MaxPoints,
	}
}

// Level maps Log.Level to a slog level; unknown names mean info.
func (s Settings) Level() slog.Level {
	switch s.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	return slog.LevelInfo
}

// Logger builds a logger writing to w in the configured format.
func (s Settings) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: s.Level()}
	if s.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// Decode reads settings from r. Missing keys keep their defaults and unknown
// keys are rejected.
func Decode(r io.Reader) (Settings, error) {
	s := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, fmt.Errorf("settings: decode: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}

	return s, nil
}

// Load reads the settings file at path.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("settings: %w", err)
	}

	return Decode(bytes.NewReader(data))
}

// LoadOrDefault is Load, except that a missing file yields Default.
func LoadOrDefault(path string) (Settings, error) {
	s, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	return s, err
}

// Save validates s and writes it to path, creating parent directories.
func Save(path string, s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("settings: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("settings: %w", err)
	}

	return nil
}
