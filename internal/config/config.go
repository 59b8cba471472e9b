// Package config holds the training configuration, loaded from a TOML
// file with every field optional on top of sane defaults.
package config

import (
	"os"
	"runtime"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

// Config drives the train command.
type Config struct {
	HiddenLayers []int   `toml:"hidden_layers"`
	LearningRate float64 `toml:"learning_rate"`
	BatchSize    int     `toml:"batch_size"`
	Epochs       int     `toml:"epochs"`
	Workers      int     `toml:"workers"`
	DataDir      string  `toml:"data_dir"`
	ModelPath    string  `toml:"model_path"`
	Download     bool    `toml:"download"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		HiddenLayers: []int{16, 16},
		LearningRate: 0.01,
		BatchSize:    100,
		Epochs:       30,
		Workers:      runtime.NumCPU(),
		DataDir:      "data",
		ModelPath:    "model.bin",
		Download:     true,
	}
}

// Load reads a TOML file on top of the defaults. Unknown keys are
// rejected so typos fail loudly instead of silently training with
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "read config %s", path)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.Newf("unknown config key %q in %s", undecoded[0].String(), path)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

// Validate rejects values the trainer cannot work with.
func (c Config) Validate() error {
	if c.LearningRate <= 0 {
		return errors.Newf("learning_rate must be positive, got %v", c.LearningRate)
	}
	if c.BatchSize <= 0 {
		return errors.Newf("batch_size must be positive, got %d", c.BatchSize)
	}
	if c.Epochs <= 0 {
		return errors.Newf("epochs must be positive, got %d", c.Epochs)
	}
	if c.Workers <= 0 {
		return errors.Newf("workers must be positive, got %d", c.Workers)
	}
	for _, h := range c.HiddenLayers {
		if h <= 0 {
			return errors.Newf("hidden layer sizes must be positive, got %d", h)
		}
	}
	if c.ModelPath == "" {
		return errors.New("model_path must not be empty")
	}
	return nil
}
