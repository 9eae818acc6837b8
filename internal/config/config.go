package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Classification confidence gates.
	NumericThreshold  float64 `mapstructure:"numeric_threshold" yaml:"numeric_threshold"`
	DatetimeThreshold float64 `mapstructure:"datetime_threshold" yaml:"datetime_threshold"`

	// Token written into missing categorical cells during imputation.
	CategoricalPlaceholder string `mapstructure:"categorical_placeholder" yaml:"categorical_placeholder"`

	// Whether textual null spellings are folded into the missing sentinel
	// during normalization, and which spellings count.
	NormalizeNullTokens bool     `mapstructure:"normalize_null_tokens" yaml:"normalize_null_tokens"`
	NullTokens          []string `mapstructure:"null_tokens" yaml:"null_tokens"`

	// Result sizing.
	PreviewRows  int `mapstructure:"preview_rows" yaml:"preview_rows"`
	SampleValues int `mapstructure:"sample_values" yaml:"sample_values"`

	// Intake limits.
	MaxFileBytes int64 `mapstructure:"max_file_bytes" yaml:"max_file_bytes"`
	SampleBytes  int   `mapstructure:"sample_bytes" yaml:"sample_bytes"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.tablescan/config.yaml, creating the directory if
// necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".tablescan")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("TABLESCAN")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("numeric_threshold", 0.9)
	v.SetDefault("datetime_threshold", 0.9)
	v.SetDefault("categorical_placeholder", "missing")
	v.SetDefault("normalize_null_tokens", false)
	v.SetDefault("null_tokens", []string{"null", "na", "n/a", "none", "nan"})
	v.SetDefault("preview_rows", 20)
	v.SetDefault("sample_values", 20)
	v.SetDefault("max_file_bytes", 15*1024*1024)
	v.SetDefault("sample_bytes", 64*1024)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".tablescan"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
