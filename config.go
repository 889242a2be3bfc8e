package vueparser

import (
	"fmt"
	"os"
	"regexp"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// Config represents tool configuration for the command-line frontend.
type Config struct {
	Parser ParserConfig `yaml:"parser"`
	Output OutputConfig `yaml:"output"`
}

// ParserConfig selects parse behaviors.
type ParserConfig struct {
	TypeAware  bool `yaml:"type_aware"`
	Vue2Compat bool `yaml:"vue2_compat"`
}

// OutputConfig controls how results are rendered.
type OutputConfig struct {
	Format string `yaml:"format"` // json, yaml, xml or tree
	Color  bool   `yaml:"color"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{Format: "json", Color: true},
	}
}

// LoadConfig reads a YAML configuration file, falling back to defaults
// when the file does not exist. A `.env` file in the working directory
// is loaded first so values can reference the environment.
func LoadConfig(path string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, err
	}

	config := DefaultConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if config.Output.Format == "" {
		config.Output.Format = "json"
	}
	return config, nil
}

// loadEnvFiles loads .env files if they exist
func loadEnvFiles() error {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}
	return nil
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars expands environment variables in the format ${VAR}
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})
}
