package triagekit

import (
	"fmt"
	"time"

	"github.com/gobeaver/beaver-kit/config"
)

type Config struct {
	// Directory where JSON reports are written
	ReportDir string `env:"TRIAGEKIT_REPORT_DIR,default:./reports/file_reports"`

	// Hashing
	HashChunkSize int `env:"TRIAGEKIT_HASH_CHUNK_SIZE,default:8192"`

	// Entropy sampling: only the first EntropySampleSize bytes are sampled,
	// so entropy on larger files is an approximation of that prefix
	EntropySampleSize int64   `env:"TRIAGEKIT_ENTROPY_SAMPLE_SIZE,default:1048576"` // 1 MiB
	EntropyThreshold  float64 `env:"TRIAGEKIT_ENTROPY_THRESHOLD,default:7.5"`

	// String extraction
	StringMinLength int `env:"TRIAGEKIT_STRING_MIN_LENGTH,default:6"`
	StringLimit     int `env:"TRIAGEKIT_STRING_LIMIT,default:200"`

	// Risk rule weights, applied in fixed rule-table order
	WeightExtensionMismatch int `env:"TRIAGEKIT_WEIGHT_EXTENSION_MISMATCH,default:25"`
	WeightHighEntropy       int `env:"TRIAGEKIT_WEIGHT_HIGH_ENTROPY,default:20"`
	WeightSuspiciousStrings int `env:"TRIAGEKIT_WEIGHT_SUSPICIOUS_STRINGS,default:20"`
	WeightContainerIssues   int `env:"TRIAGEKIT_WEIGHT_CONTAINER_ISSUES,default:20"`

	// Upper bound applied to metadata providers that shell out to
	// external tooling
	ProviderTimeoutSeconds int `env:"TRIAGEKIT_PROVIDER_TIMEOUT_SECONDS,default:10"`
}

// GetConfig returns config loaded from environment
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig returns the built-in defaults without consulting the
// environment. The values mirror the env tag defaults.
func DefaultConfig() *Config {
	return &Config{
		ReportDir:               "./reports/file_reports",
		HashChunkSize:           8192,
		EntropySampleSize:       1 << 20,
		EntropyThreshold:        7.5,
		StringMinLength:         6,
		StringLimit:             200,
		WeightExtensionMismatch: 25,
		WeightHighEntropy:       20,
		WeightSuspiciousStrings: 20,
		WeightContainerIssues:   20,
		ProviderTimeoutSeconds:  10,
	}
}

// ProviderTimeout returns the bounded timeout for external providers.
func (c *Config) ProviderTimeout() time.Duration {
	return time.Duration(c.ProviderTimeoutSeconds) * time.Second
}

// Validate checks the configuration for values that would make an
// analysis meaningless or unbounded.
func (c *Config) Validate() error {
	if c.HashChunkSize <= 0 {
		return fmt.Errorf("invalid config: hash chunk size must be positive, got %d", c.HashChunkSize)
	}
	if c.EntropySampleSize <= 0 {
		return fmt.Errorf("invalid config: entropy sample size must be positive, got %d", c.EntropySampleSize)
	}
	if c.EntropyThreshold < 0 || c.EntropyThreshold > 8 {
		return fmt.Errorf("invalid config: entropy threshold must be in [0,8], got %v", c.EntropyThreshold)
	}
	if c.StringMinLength < 1 {
		return fmt.Errorf("invalid config: string min length must be at least 1, got %d", c.StringMinLength)
	}
	if c.StringLimit < 0 {
		return fmt.Errorf("invalid config: string limit must not be negative, got %d", c.StringLimit)
	}
	if c.WeightExtensionMismatch < 0 || c.WeightHighEntropy < 0 ||
		c.WeightSuspiciousStrings < 0 || c.WeightContainerIssues < 0 {
		return fmt.Errorf("invalid config: risk weights must not be negative")
	}
	if c.ProviderTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid config: provider timeout must be positive, got %d", c.ProviderTimeoutSeconds)
	}
	return nil
}
