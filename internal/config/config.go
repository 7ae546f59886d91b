package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings holds the analysis configuration. A Settings value is built once
// and passed explicitly into every component; nothing reads it from package
// state, so tests can vary it per case.
type Settings struct {
	// FundamentalHz is the base AC frequency all harmonic orders are
	// multiples of.
	FundamentalHz float64 `yaml:"fundamental_hz"`

	// Harmonics are the harmonic orders extracted from the spectrum.
	// Order 1 is the fundamental.
	Harmonics []int `yaml:"harmonics"`

	// ResampleSeconds is the uniform grid width used when normalizing
	// irregular exports.
	ResampleSeconds float64 `yaml:"resample_seconds"`

	// DefaultPhase is used when the CSV carries no phase column.
	DefaultPhase string `yaml:"default_phase"`
}

// Default returns the stock settings: 60 Hz fundamental, odd harmonics
// through the 13th, 1-second resample grid, phase "A".
func Default() Settings {
	return Settings{
		FundamentalHz:   60.0,
		Harmonics:       []int{1, 3, 5, 7, 9, 11, 13},
		ResampleSeconds: 1.0,
		DefaultPhase:    "A",
	}
}

// Load reads a YAML settings file and overlays it on the defaults. Fields
// absent from the file keep their default values.
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("failed to read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to parse settings YAML: %w", err)
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// Validate rejects settings the pipeline cannot run with.
func (s Settings) Validate() error {
	if s.FundamentalHz <= 0 {
		return fmt.Errorf("fundamental_hz must be positive, got %g", s.FundamentalHz)
	}
	if s.ResampleSeconds <= 0 {
		return fmt.Errorf("resample_seconds must be positive, got %g", s.ResampleSeconds)
	}
	if len(s.Harmonics) == 0 {
		return fmt.Errorf("harmonics list is empty")
	}
	for _, h := range s.Harmonics {
		if h < 1 {
			return fmt.Errorf("harmonic orders must be >= 1, got %d", h)
		}
	}
	if s.DefaultPhase == "" {
		return fmt.Errorf("default_phase is empty")
	}
	return nil
}
