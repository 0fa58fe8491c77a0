package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/reviewlens/internal/analysis"
)

// Global configuration structure.
type Global struct {
	LogLevel     string `mapstructure:"log_level" yaml:"log_level" validate:"oneof=trace debug info warn error"`
	LogFormat    string `mapstructure:"log_format" yaml:"log_format" validate:"oneof=console json"`
	Bucketing    string `mapstructure:"bucketing" yaml:"bucketing" validate:"oneof=month year_month"`
	Workers      int    `mapstructure:"workers" yaml:"workers" validate:"gte=1,lte=64"`
	OutputFormat string `mapstructure:"output_format" yaml:"output_format" validate:"oneof=markdown json yaml"`

	// Server
	HTTPAddr          string  `mapstructure:"http_addr" yaml:"http_addr" validate:"required"`
	RequestTimeoutSec int     `mapstructure:"request_timeout_sec" yaml:"request_timeout_sec" validate:"gte=1"`
	RateLimitRPS      float64 `mapstructure:"rate_limit_rps" yaml:"rate_limit_rps" validate:"gte=0"`
	RateLimitBurst    int     `mapstructure:"rate_limit_burst" yaml:"rate_limit_burst" validate:"gte=1"`

	Keywords analysis.Vocabulary `mapstructure:"keywords" yaml:"keywords"`
}

// Options maps the configuration onto analysis options.
func (c *Global) Options() analysis.Options {
	opt := analysis.DefaultOptions()
	opt.Bucketing = analysis.Bucketing(c.Bucketing)
	opt.Workers = c.Workers
	opt.Vocabulary = c.Keywords
	return opt
}

// Validate checks field constraints.
func (c *Global) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".reviewlens"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.reviewlens/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	path := cfgFile
	if path == "" {
		dir, err := defaultDir()
		if err != nil {
			return err
		}
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

// Default returns the built-in configuration.
func Default() *Global {
	return &Global{
		LogLevel:          "info",
		LogFormat:         "console",
		Bucketing:         string(analysis.BucketMonth),
		Workers:           4,
		OutputFormat:      "markdown",
		HTTPAddr:          ":8080",
		RequestTimeoutSec: 15,
		RateLimitRPS:      20,
		RateLimitBurst:    40,
		Keywords:          analysis.DefaultVocabulary(),
	}
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("REVIEWLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("bucketing", d.Bucketing)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("output_format", d.OutputFormat)
	v.SetDefault("http_addr", d.HTTPAddr)
	v.SetDefault("request_timeout_sec", d.RequestTimeoutSec)
	v.SetDefault("rate_limit_rps", d.RateLimitRPS)
	v.SetDefault("rate_limit_burst", d.RateLimitBurst)
	v.SetDefault("keywords.repurchase", d.Keywords.Repurchase)
	v.SetDefault("keywords.first_purchase", d.Keywords.FirstPurchase)
	v.SetDefault("keywords.plain", d.Keywords.Plain)
	v.SetDefault("keywords.value_for_money", d.Keywords.ValueForMoney)
	v.SetDefault("keywords.oily", d.Keywords.Oily)
	v.SetDefault("keywords.sticky_texture", d.Keywords.StickyTexture)
	v.SetDefault("keywords.no_irritation", d.Keywords.NoIrritation)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		dir, err := defaultDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
