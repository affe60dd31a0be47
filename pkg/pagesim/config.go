package pagesim

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/joshuapare/pagesim/internal/pow2"
)

// Config describes one simulation. It can be populated from YAML or JSON.
type Config struct {
	// MemorySize is the physical memory size in bytes.
	MemorySize int `json:"memory_size" yaml:"memory_size"`

	// PageSize is the page and frame size in bytes.
	PageSize int `json:"page_size" yaml:"page_size"`

	// MaxProcessSize caps the size a single process may request.
	MaxProcessSize int `json:"max_process_size" yaml:"max_process_size"`

	// BackingFile mirrors physical memory into a file when set.
	BackingFile string `json:"backing_file,omitempty" yaml:"backing_file,omitempty"`

	// Seed makes process contents reproducible. Zero seeds from the clock.
	Seed uint64 `json:"seed,omitempty" yaml:"seed,omitempty"`

	Log LogConfig `json:"log" yaml:"log"`
}

// LogConfig selects log verbosity and handler.
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`   // debug, info, warn, error
	Format string `json:"format" yaml:"format"` // text or json
}

// DefaultConfig returns a 64 KB memory with 4 KB pages and a 16 KB process cap.
func DefaultConfig() *Config {
	return &Config{
		MemorySize:     64 << 10,
		PageSize:       4 << 10,
		MaxProcessSize: 16 << 10,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Frames returns MemorySize / PageSize. Only meaningful after Validate.
func (c *Config) Frames() int {
	return c.MemorySize / c.PageSize
}

// Validate reports every violated rule, wrapped in ErrInvalidConfiguration.
func (c *Config) Validate() error {
	var problems []string
	if !pow2.IsPowerOfTwo(c.MemorySize) {
		problems = append(problems, fmt.Sprintf("memory_size %d must be a power of 2", c.MemorySize))
	}
	if !pow2.IsPowerOfTwo(c.PageSize) {
		problems = append(problems, fmt.Sprintf("page_size %d must be a power of 2", c.PageSize))
	} else if c.PageSize > c.MemorySize {
		problems = append(problems, fmt.Sprintf("page_size %d cannot exceed memory_size %d", c.PageSize, c.MemorySize))
	}
	if !pow2.IsPowerOfTwo(c.MaxProcessSize) {
		problems = append(problems, fmt.Sprintf("max_process_size %d must be a power of 2", c.MaxProcessSize))
	} else if c.MaxProcessSize > c.MemorySize {
		problems = append(problems, fmt.Sprintf("max_process_size %d cannot exceed memory_size %d", c.MaxProcessSize, c.MemorySize))
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("log.format %q must be text or json", c.Log.Format))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfiguration, strings.Join(problems, "; "))
	}
	return nil
}

// LoadConfig reads a YAML config file over DefaultConfig and validates it.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pagesim: read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML over DefaultConfig and validates the result.
// Unknown keys are rejected; empty input yields the defaults.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
