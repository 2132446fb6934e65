package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the top-level pft.yaml configuration.
type Config struct {
	// DataDir holds the transaction ledger and category files.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`
	// DefaultCategory receives transactions the model cannot place.
	DefaultCategory string `mapstructure:"default_category" yaml:"default_category"`
	// RetrainThreshold is the number of corrections that triggers an
	// automatic retrain.
	RetrainThreshold int `mapstructure:"retrain_threshold" yaml:"retrain_threshold"`
	// MinTrainingExamples gates retraining; below this the seed model is kept.
	MinTrainingExamples int `mapstructure:"min_training_examples" yaml:"min_training_examples"`
	// SeedCorpusPath optionally overrides the built-in seed corpus.
	SeedCorpusPath string `mapstructure:"seed_corpus_path" yaml:"seed_corpus_path"`
	// AdapterPriority orders adapters for format auto-detection. Unknown
	// names are ignored; adapters not listed keep their built-in order.
	AdapterPriority []string `mapstructure:"adapter_priority" yaml:"adapter_priority"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// Load reads configuration from path, applying defaults for missing keys.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration used when no pft.yaml exists.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// Defaults are static; this cannot fail at runtime.
		panic(fmt.Sprintf("unmarshaling default config: %v", err))
	}
	return &cfg
}

// Save writes the configuration to path as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", "data")
	v.SetDefault("default_category", "Uncategorized")
	v.SetDefault("retrain_threshold", 10)
	v.SetDefault("min_training_examples", 1)
	v.SetDefault("seed_corpus_path", "")
	v.SetDefault("adapter_priority", []string{})
	v.SetDefault("log_level", "info")
}
