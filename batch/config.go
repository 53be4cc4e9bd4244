package batch

import (
	"math"
	"os"
	"runtime"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Config describes a batch run.
type Config struct {
	Count     int    `yaml:"count"`      // Number of formulas
	Out       string `yaml:"out"`        // Output directory
	FirstSeed *int64 `yaml:"first_seed"` // Seed of the first formula; nil derives one from the clock
	QBF       bool   `yaml:"qbf"`
	Options   string `yaml:"options"` // Option file path, if any
	Workers   int    `yaml:"workers"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Count:   1000,
		Out:     "outputs",
		Workers: runtime.NumCPU(),
	}
}

// LoadConfig reads a YAML configuration file.
// Keys missing from the file keep their default value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	content, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "could not read config %q", path)
	}
	if err := yaml.UnmarshalStrict(content, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "could not parse config %q", path)
	}
	return cfg, nil
}

// Validate checks the configuration can be run.
func (c Config) Validate() error {
	switch {
	case c.Count < 0:
		return errors.Errorf("invalid count %d", c.Count)
	case c.Out == "":
		return errors.New("no output directory")
	case c.FirstSeed != nil && *c.FirstSeed < 0:
		return errors.Errorf("invalid first seed %d", *c.FirstSeed)
	case c.FirstSeed != nil && *c.FirstSeed > math.MaxInt64-int64(c.Count):
		return errors.Errorf("seeds overflow from first seed %d", *c.FirstSeed)
	case c.Workers < 1:
		return errors.Errorf("invalid number of workers %d", c.Workers)
	}
	return nil
}
