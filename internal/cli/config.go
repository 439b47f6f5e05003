package cli

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mixkraft/seqmix/camelot"
	"github.com/mixkraft/seqmix/sequence"
)

// Config mirrors the optimize flags in YAML form. Zero values mean
// "not set": only present fields override the built-in defaults, and
// explicit command-line flags override the file.
type Config struct {
	BPMTolerance  *float64           `yaml:"bpm_tolerance,omitempty"`
	HalfDouble    *bool              `yaml:"half_double,omitempty"`
	HarmonicLevel string             `yaml:"harmonic_level,omitempty"`
	MaxViolations *float64           `yaml:"max_violations,omitempty"`
	EnergyFlow    *bool              `yaml:"energy_flow,omitempty"`
	EnergyWeight  *float64           `yaml:"energy_weight,omitempty"`
	TimeLimit     *float64           `yaml:"time_limit,omitempty"`
	MaxDuration   *float64           `yaml:"max_duration,omitempty"`
	TargetLength  *int               `yaml:"target_length,omitempty"`
	MustInclude   []string           `yaml:"must_include,omitempty"`
	StartTrack    string             `yaml:"start_track,omitempty"`
	EndTrack      string             `yaml:"end_track,omitempty"`
	Priorities    map[string]float64 `yaml:"priorities,omitempty"`
}

// LoadConfig reads an optimize configuration from a YAML file.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("cli: read config: %w", err)
	}
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("cli: parse config: %w", err)
	}

	return cfg, nil
}

// apply translates the set fields into functional options.
func (c Config) apply() ([]sequence.Option, error) {
	var opts []sequence.Option

	if c.BPMTolerance != nil {
		opts = append(opts, sequence.WithBPMTolerance(*c.BPMTolerance))
	}
	if c.HalfDouble != nil {
		opts = append(opts, sequence.WithHalfDouble(*c.HalfDouble))
	}
	if c.HarmonicLevel != "" {
		level, err := camelot.ParseLevel(c.HarmonicLevel)
		if err != nil {
			return nil, err
		}
		opts = append(opts, sequence.WithLevel(level))
	}
	if c.MaxViolations != nil {
		opts = append(opts, sequence.WithMaxViolationFraction(*c.MaxViolations))
	}
	if c.EnergyFlow != nil {
		opts = append(opts, sequence.WithEnergyFlow(*c.EnergyFlow))
	}
	if c.EnergyWeight != nil {
		opts = append(opts, sequence.WithEnergyWeight(*c.EnergyWeight))
	}
	if c.TimeLimit != nil {
		opts = append(opts, sequence.WithTimeBudget(time.Duration(*c.TimeLimit*float64(time.Second))))
	}
	if c.MaxDuration != nil {
		opts = append(opts, sequence.WithMaxDuration(*c.MaxDuration))
	}
	if c.TargetLength != nil {
		opts = append(opts, sequence.WithTargetLength(*c.TargetLength))
	}
	if len(c.MustInclude) > 0 {
		opts = append(opts, sequence.WithMustInclude(c.MustInclude...))
	}
	if c.StartTrack != "" {
		opts = append(opts, sequence.WithStartTrack(c.StartTrack))
	}
	if c.EndTrack != "" {
		opts = append(opts, sequence.WithEndTrack(c.EndTrack))
	}
	for id, w := range c.Priorities {
		opts = append(opts, sequence.WithPriority(id, w))
	}

	return opts, nil
}
