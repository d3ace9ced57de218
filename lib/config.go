package lib

import (
	"io/ioutil"
	"unicode/utf8"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Config is the on-disk configuration for the lineq tools.
type Config struct {
	Variable    string  `yaml:"variable"`
	Lenient     bool    `yaml:"lenient"`
	Tolerance   float64 `yaml:"tolerance"`
	Database    string  `yaml:"database"`
	Migrations  string  `yaml:"migrations"`
	MetricsAddr string  `yaml:"metricsAddr"`
	Debug       bool    `yaml:"debug"`
}

func DefaultConfig() Config {
	return Config{
		Variable:   string(DefaultVariable),
		Tolerance:  DefaultTolerance,
		Migrations: "./migrations",
	}
}

// LoadConfig reads a YAML config file. Fields missing from the file keep
// their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	bytes, err := ioutil.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "reading config %s", path)
	}
	if err := yaml.UnmarshalStrict(bytes, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "parsing config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	v, err := c.VariableRune()
	if err != nil {
		return err
	}
	if err := validateVariable(v); err != nil {
		return err
	}
	if c.Tolerance <= 0 {
		return errors.Errorf("tolerance must be positive, got %g", c.Tolerance)
	}
	return nil
}

func (c Config) VariableRune() (rune, error) {
	if utf8.RuneCountInString(c.Variable) != 1 {
		return 0, errors.Errorf("variable must be exactly one character, got %q", c.Variable)
	}
	r, _ := utf8.DecodeRuneInString(c.Variable)
	return r, nil
}
