package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/san-kum/sortviz/internal/pacing"
	"github.com/san-kum/sortviz/internal/session"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTheme    = "cyberpunk"
	DefaultDataDir  = ".sortviz"
	DefaultLogLevel = "info"
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Algorithm string       `yaml:"algorithm"`
	Values    []int        `yaml:"values"`
	Speed     int          `yaml:"speed"`
	Theme     string       `yaml:"theme"`
	DataDir   string       `yaml:"data_dir"`
	Pacing    PacingConfig `yaml:"pacing"`
	Log       LogConfig    `yaml:"log"`
}

type PacingConfig struct {
	Base  time.Duration `yaml:"base"`
	Step  time.Duration `yaml:"step"`
	Floor time.Duration `yaml:"floor"`
}

type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

func DefaultConfig() *Config {
	return &Config{
		Values:  GetPreset("classic"),
		Speed:   session.DefaultSpeed,
		Theme:   DefaultTheme,
		DataDir: DefaultDataDir,
		Pacing: PacingConfig{
			Base:  pacing.DefaultCurve.Base,
			Step:  pacing.DefaultCurve.Step,
			Floor: pacing.DefaultCurve.Floor,
		},
		Log: LogConfig{Level: DefaultLogLevel},
	}
}

// Load reads path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Algorithm != "" {
		if _, err := session.ParseAlgorithm(c.Algorithm); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalid, err)
		}
	}
	if c.Speed < session.MinSpeed || c.Speed > session.MaxSpeed {
		return fmt.Errorf("%w: speed %d outside [%d, %d]", ErrInvalid, c.Speed, session.MinSpeed, session.MaxSpeed)
	}
	if err := c.Curve().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// SelectedAlgorithm returns the configured algorithm, AlgorithmNone when unset.
func (c *Config) SelectedAlgorithm() (session.Algorithm, error) {
	if c.Algorithm == "" {
		return session.AlgorithmNone, nil
	}
	return session.ParseAlgorithm(c.Algorithm)
}

func (c *Config) Curve() pacing.Curve {
	return pacing.Curve{
		Base:  c.Pacing.Base,
		Step:  c.Pacing.Step,
		Floor: c.Pacing.Floor,
	}
}
