package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	FX struct {
		BaseURL        string `mapstructure:"base_url" yaml:"base_url"`
		TargetCurrency string `mapstructure:"target_currency" yaml:"target_currency"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	} `mapstructure:"fx" yaml:"fx"`

	// MT940 carries the payee scoring thresholds. They are tuned to observed
	// statement samples and kept configurable so new name formats can be
	// accommodated without touching the parser.
	MT940 struct {
		AllCapsMinWords int `mapstructure:"all_caps_min_words" yaml:"all_caps_min_words"`
		PersonMaxWords  int `mapstructure:"person_max_words" yaml:"person_max_words"`
	} `mapstructure:"mt940" yaml:"mt940"`

	Releases struct {
		Payee string `mapstructure:"payee" yaml:"payee"`
	} `mapstructure:"releases" yaml:"releases"`

	Payees struct {
		OverridesFile string `mapstructure:"overrides_file" yaml:"overrides_file"`
	} `mapstructure:"payees" yaml:"payees"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then an optional ynab-csv.yaml config file, then YNAB_ env vars.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("ynab-csv")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.ynab-csv")
	v.AddConfigPath(".")

	v.SetEnvPrefix("YNAB")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars on a broken config file.
			Logger.Warnf("error reading config file %s: %v", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("fx.base_url", "https://api.frankfurter.app")
	v.SetDefault("fx.target_currency", "CHF")
	v.SetDefault("fx.timeout_seconds", 10)

	v.SetDefault("mt940.all_caps_min_words", 2)
	v.SetDefault("mt940.person_max_words", 3)

	v.SetDefault("releases.payee", "Google stocks")

	v.SetDefault("payees.overrides_file", "payees.yaml")
}

// validateConfig validates the configuration values.
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if len(config.FX.TargetCurrency) != 3 {
		return fmt.Errorf("fx.target_currency must be a 3-letter code, got: %s", config.FX.TargetCurrency)
	}

	if config.FX.TimeoutSeconds < 1 || config.FX.TimeoutSeconds > 300 {
		return fmt.Errorf("fx.timeout_seconds must be between 1 and 300, got: %d", config.FX.TimeoutSeconds)
	}

	if config.MT940.AllCapsMinWords < 1 {
		return fmt.Errorf("mt940.all_caps_min_words must be positive, got: %d", config.MT940.AllCapsMinWords)
	}

	if config.MT940.PersonMaxWords < 1 {
		return fmt.Errorf("mt940.person_max_words must be positive, got: %d", config.MT940.PersonMaxWords)
	}

	return nil
}
