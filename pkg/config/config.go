package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/openswoop/gpasheet/pkg/course"
	"github.com/openswoop/gpasheet/pkg/scrape"
	"gopkg.in/yaml.v3"
)

const (
	EnvBaseUrl     = "GPASHEET_BASE_URL"
	EnvParallelism = "GPASHEET_PARALLELISM"
	EnvTimeout     = "GPASHEET_TIMEOUT"
)

// Config is everything a build needs besides the network. Courses keep the
// order they were listed in.
type Config struct {
	BaseUrl     string        `yaml:"base_url"`
	Parallelism int           `yaml:"parallelism"`
	Timeout     time.Duration `yaml:"timeout"`
	Output      string        `yaml:"output"`
	Courses     []string      `yaml:"courses"`
}

func Default() *Config {
	return &Config{
		BaseUrl:     course.SyllabusUrl,
		Parallelism: scrape.DefaultParallelism,
		Timeout:     scrape.DefaultTimeout,
		Output:      "grades.xlsx",
	}
}

// LoadFile reads a YAML file over the current values. Keys missing from the
// file keep their value.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", course.ErrConfiguration, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("%w: %s: %v", course.ErrConfiguration, path, err)
	}
	return nil
}

// LoadEnv loads the given .env files, if present, then applies GPASHEET_*
// variables from the environment.
func (c *Config) LoadEnv(files ...string) error {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s: %v", course.ErrConfiguration, file, err)
		}
	}

	if v := os.Getenv(EnvBaseUrl); v != "" {
		c.BaseUrl = v
	}
	if v := os.Getenv(EnvParallelism); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", course.ErrConfiguration, EnvParallelism, v)
		}
		c.Parallelism = n
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a duration", course.ErrConfiguration, EnvTimeout, v)
		}
		c.Timeout = d
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Parallelism < 1 {
		return fmt.Errorf("%w: parallelism must be at least 1, got %d", course.ErrConfiguration, c.Parallelism)
	}
	if c.Output == "" {
		return fmt.Errorf("%w: no output file", course.ErrConfiguration)
	}
	if len(c.Courses) == 0 {
		return fmt.Errorf("%w: no courses given", course.ErrConfiguration)
	}
	return nil
}
