package verify

import (
	goerrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gnolang/anthem/internal/errors"
	"github.com/gnolang/anthem/internal/problem"
	"github.com/gnolang/anthem/internal/prover"
)

// DefaultConfigPath is read when no --config flag is given.
const DefaultConfigPath = ".anthem.yaml"

// ColorChoice controls colored terminal output.
type ColorChoice string

const (
	ColorAuto   ColorChoice = "auto"
	ColorAlways ColorChoice = "always"
	ColorNever  ColorChoice = "never"
)

func ParseColorChoice(s string) (ColorChoice, error) {
	switch c := ColorChoice(strings.ToLower(s)); c {
	case ColorAuto, ColorAlways, ColorNever:
		return c, nil
	default:
		return "", &errors.Error{Kind: errors.UnknownColorChoice, Name: s}
	}
}

type ProverConfig struct {
	Command   string   `yaml:"command"`
	Arguments []string `yaml:"arguments"`
	// TimeLimit is in seconds.
	TimeLimit int `yaml:"time_limit"`
}

type CacheConfig struct {
	// Directory holds the proof cache; empty disables caching.
	Directory string        `yaml:"directory"`
	MaxAge    time.Duration `yaml:"max_age"`
}

type Config struct {
	Prover    ProverConfig `yaml:"prover"`
	Cache     CacheConfig  `yaml:"cache"`
	Simplify  bool         `yaml:"simplify"`
	Color     ColorChoice  `yaml:"color"`
	Direction string       `yaml:"direction"`
}

func DefaultConfig() Config {
	options := prover.DefaultOptions()
	return Config{
		Prover: ProverConfig{
			Command:   options.Command,
			Arguments: options.Arguments,
			TimeLimit: int(options.TimeLimit / time.Second),
		},
		Simplify:  true,
		Color:     ColorAuto,
		Direction: problem.Both.String(),
	}
}

// LoadConfig reads path on top of DefaultConfig. A missing DefaultConfigPath
// is not an error; any other missing file is.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	if path == "" {
		path = DefaultConfigPath
	}

	f, err := os.Open(path)
	if err != nil {
		if goerrors.Is(err, fs.ErrNotExist) && path == DefaultConfigPath {
			return config, nil
		}
		return config, errors.NewReadFile(path, err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && !goerrors.Is(err, io.EOF) {
		return config, errors.NewConfiguration(fmt.Sprintf("%s: %v", path, err))
	}

	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

// Validate checks the enumerated and numeric fields.
func (c *Config) Validate() error {
	if c.Prover.Command == "" {
		return errors.NewConfiguration("prover.command must not be empty")
	}
	if c.Prover.TimeLimit <= 0 {
		return errors.NewConfiguration(fmt.Sprintf("prover.time_limit must be positive, got %d", c.Prover.TimeLimit))
	}
	if c.Cache.MaxAge < 0 {
		return errors.NewConfiguration("cache.max_age must not be negative")
	}

	color, err := ParseColorChoice(string(c.Color))
	if err != nil {
		return err
	}
	c.Color = color

	if _, err := problem.ParseProofDirection(c.Direction); err != nil {
		return err
	}
	return nil
}

// ProofDirection returns the configured direction. Validate must have
// succeeded.
func (c Config) ProofDirection() problem.ProofDirection {
	d, _ := problem.ParseProofDirection(c.Direction)
	return d
}

func (c Config) ProverOptions() prover.Options {
	return prover.Options{
		Command:   c.Prover.Command,
		Arguments: append([]string(nil), c.Prover.Arguments...),
		TimeLimit: time.Duration(c.Prover.TimeLimit) * time.Second,
	}
}

// WriteDefaultConfig creates path holding DefaultConfig.
func WriteDefaultConfig(path string) error {
	if path == "" {
		path = DefaultConfigPath
	}

	d, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(d)
	return err
}
