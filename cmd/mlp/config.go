package main

import (
	"io"
	"os"

	"github.com/born-ml/mlp/mlp"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	dataXOR   = "xor"
	dataMNIST = "mnist"
)

// fileConfig captures the knobs of a training run.
type fileConfig struct {
	Data     string `yaml:"data"`
	MNISTDir string `yaml:"mnist_dir"`
	Samples  int    `yaml:"samples"` // xor points to generate, or MNIST cap (0 = all)
	Valid    int    `yaml:"valid"`   // examples held out for validation
	Workers  int    `yaml:"workers"` // 0 = one per CPU

	Hidden        int     `yaml:"hidden"`
	L2            float64 `yaml:"l2"`
	Epochs        int     `yaml:"epochs"`
	Eta           float64 `yaml:"eta"`
	Shuffle       bool    `yaml:"shuffle"`
	MinibatchSize int     `yaml:"minibatch_size"`
	Seed          *int64  `yaml:"seed"`
}

// overrides captures flags the user set explicitly. Nil fields keep the
// file value.
type overrides struct {
	Data          *string
	MNISTDir      *string
	Samples       *int
	Valid         *int
	Workers       *int
	Hidden        *int
	L2            *float64
	Epochs        *int
	Eta           *float64
	Shuffle       *bool
	MinibatchSize *int
	Seed          *int64
}

// defaultFileConfig returns settings that learn the XOR problem in a few
// seconds.
func defaultFileConfig() *fileConfig {
	return &fileConfig{
		Data:          dataXOR,
		Samples:       1000,
		Valid:         200,
		Hidden:        10,
		L2:            0,
		Epochs:        200,
		Eta:           0.1,
		Shuffle:       true,
		MinibatchSize: 5,
	}
}

// loadConfig reads a YAML file over the defaults. An empty path returns the
// defaults unchanged.
func loadConfig(path string) (*fileConfig, error) {
	cfg := defaultFileConfig()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open config")
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

// ApplyOverrides copies every non-nil override into c.
func (c *fileConfig) ApplyOverrides(o overrides) {
	if o.Data != nil {
		c.Data = *o.Data
	}
	if o.MNISTDir != nil {
		c.MNISTDir = *o.MNISTDir
	}
	if o.Samples != nil {
		c.Samples = *o.Samples
	}
	if o.Valid != nil {
		c.Valid = *o.Valid
	}
	if o.Workers != nil {
		c.Workers = *o.Workers
	}
	if o.Hidden != nil {
		c.Hidden = *o.Hidden
	}
	if o.L2 != nil {
		c.L2 = *o.L2
	}
	if o.Epochs != nil {
		c.Epochs = *o.Epochs
	}
	if o.Eta != nil {
		c.Eta = *o.Eta
	}
	if o.Shuffle != nil {
		c.Shuffle = *o.Shuffle
	}
	if o.MinibatchSize != nil {
		c.MinibatchSize = *o.MinibatchSize
	}
	if o.Seed != nil {
		c.Seed = mlp.Seed(*o.Seed)
	}
}

// Validate verifies the config is runnable.
func (c *fileConfig) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	switch c.Data {
	case dataXOR:
		if c.Samples <= 0 {
			return errors.Errorf("samples must be > 0 for xor data (got %d)", c.Samples)
		}
	case dataMNIST:
		if c.MNISTDir == "" {
			return errors.New("mnist_dir must be set for mnist data")
		}
		if c.Samples < 0 {
			return errors.Errorf("samples must be >= 0 (got %d)", c.Samples)
		}
	default:
		return errors.Errorf("data must be %q or %q (got %q)", dataXOR, dataMNIST, c.Data)
	}
	if c.Valid <= 0 {
		return errors.Errorf("valid must be > 0 (got %d)", c.Valid)
	}
	if c.Samples > 0 && c.Valid >= c.Samples {
		return errors.Errorf("valid must be < samples (got %d >= %d)", c.Valid, c.Samples)
	}
	if c.Workers < 0 {
		return errors.Errorf("workers must be >= 0 (got %d)", c.Workers)
	}
	return errors.WithMessage(c.classifierConfig().Validate(), "classifier")
}

func (c *fileConfig) classifierConfig() mlp.Config {
	return mlp.Config{
		Hidden:        c.Hidden,
		L2:            c.L2,
		Epochs:        c.Epochs,
		Eta:           c.Eta,
		Shuffle:       c.Shuffle,
		MinibatchSize: c.MinibatchSize,
		Seed:          c.Seed,
	}
}
