// Package config holds the solver parameters used to bootstrap curves.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds solver and curve construction parameters.
type Config struct {
	// ConvergenceTolerance is the root-finding tolerance on the implied quote, relative to
	// max(|quote|, 1).
	ConvergenceTolerance float64 `yaml:"convergenceTolerance" json:"convergenceTolerance" validate:"gt=0,lt=1"`

	// MaxIterations caps root-finder iterations per pillar.
	MaxIterations int `yaml:"maxIterations" json:"maxIterations" validate:"gte=1,lte=10000"`

	// MaxPasses caps full sweeps over the pillars. Local interpolations converge after
	// the first pass; spline-based ones need a few more. 1 runs the plain sequential fold.
	MaxPasses int `yaml:"maxPasses" json:"maxPasses" validate:"gte=1,lte=1000"`

	// PassTolerance is the largest discount factor change that ends the pass loop.
	PassTolerance float64 `yaml:"passTolerance" json:"passTolerance" validate:"gt=0,lt=1"`

	// MinDiscountFactor and MaxDiscountFactor bracket the pillar solve.
	MinDiscountFactor float64 `yaml:"minDiscountFactor" json:"minDiscountFactor" validate:"gt=0,ltfield=MaxDiscountFactor"`
	MaxDiscountFactor float64 `yaml:"maxDiscountFactor" json:"maxDiscountFactor" validate:"gt=1"`
}

// DefaultConfig provides production-ready default values.
var DefaultConfig = Config{
	ConvergenceTolerance: 1e-10,
	MaxIterations:        100,
	MaxPasses:            50,
	PassTolerance:        1e-10,
	MinDiscountFactor:    1e-8,
	MaxDiscountFactor:    1.2,
}

var validate = validator.New()

// Validate checks every field against its bounds.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config: %s fails %q (value %v)", fe.Field(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Load reads a YAML file over DefaultConfig. Fields absent from the file keep their defaults.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads YAML (or JSON) from r over DefaultConfig and validates the result.
func Decode(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("config.Decode: %w", err)
	}
	cfg := DefaultConfig
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config.Decode: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
