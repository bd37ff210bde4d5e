package lightning

import (
	"fmt"
	"runtime"

	"github.com/spf13/viper"
)

/*
Config tunes how a Dispatcher runs its engines. None of the fields change the
result of a computation, only how it is scheduled and reported, with the
exception of ValidateFirst which decides whether a bad sequence leaves the
statevector partially transformed.
*/
type Config struct {
	// Workers is the size of the intra-gate worker pool. 1 disables it.
	Workers int
	// ParallelQubits is the smallest qubit count that uses the worker pool.
	ParallelQubits int
	// StripSize is the number of partition groups handed to a worker at a time.
	StripSize int
	// BatchConcurrency bounds how many statevectors ApplyBatch transforms at once.
	BatchConcurrency int
	// ValidateFirst validates the whole sequence before any amplitude is written.
	ValidateFirst bool
	EnableMetrics bool
	LogLevel      string
}

func NewConfig() *Config {
	return &Config{
		Workers:          runtime.GOMAXPROCS(0),
		ParallelQubits:   14,
		StripSize:        1024,
		BatchConcurrency: runtime.GOMAXPROCS(0),
		ValidateFirst:    false,
		EnableMetrics:    true,
		LogLevel:         "warn",
	}
}

/*
LoadConfig builds a Config from NewConfig defaults, an optional config file and
LIGHTNING_* environment variables, in increasing order of precedence.

Parameters:
  - path: a config file in any format viper understands, or "" to skip

Returns:
  - *Config: the merged configuration
  - error: when the file cannot be read
*/
func LoadConfig(path string) (*Config, error) {
	defaults := NewConfig()

	v := viper.New()
	v.SetEnvPrefix("lightning")
	v.AutomaticEnv()

	v.SetDefault("workers", defaults.Workers)
	v.SetDefault("parallel_qubits", defaults.ParallelQubits)
	v.SetDefault("strip_size", defaults.StripSize)
	v.SetDefault("batch_concurrency", defaults.BatchConcurrency)
	v.SetDefault("validate_first", defaults.ValidateFirst)
	v.SetDefault("enable_metrics", defaults.EnableMetrics)
	v.SetDefault("log_level", defaults.LogLevel)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &Config{
		Workers:          v.GetInt("workers"),
		ParallelQubits:   v.GetInt("parallel_qubits"),
		StripSize:        v.GetInt("strip_size"),
		BatchConcurrency: v.GetInt("batch_concurrency"),
		ValidateFirst:    v.GetBool("validate_first"),
		EnableMetrics:    v.GetBool("enable_metrics"),
		LogLevel:         v.GetString("log_level"),
	}

	return cfg.normalize(), nil
}

// normalize clamps nonsensical values back to something usable.
func (c *Config) normalize() *Config {
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.ParallelQubits < 1 {
		c.ParallelQubits = 1
	}
	if c.StripSize < 1 {
		c.StripSize = 1
	}
	if c.BatchConcurrency < 1 {
		c.BatchConcurrency = 1
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	return c
}
