package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfigDefaults(t *testing.T) {
	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, ",", cfg.CSV.Delimiter)
	assert.Equal(t, "CHF", cfg.FX.TargetCurrency)
	assert.Equal(t, 10, cfg.FX.TimeoutSeconds)
	assert.Equal(t, 2, cfg.MT940.AllCapsMinWords)
	assert.Equal(t, 3, cfg.MT940.PersonMaxWords)
	assert.Equal(t, "Google stocks", cfg.Releases.Payee)
	assert.Equal(t, "payees.yaml", cfg.Payees.OverridesFile)
}

func TestInitializeConfigEnvOverride(t *testing.T) {
	t.Setenv("YNAB_FX_TARGET_CURRENCY", "EUR")
	t.Setenv("YNAB_CSV_DELIMITER", ";")

	cfg, err := InitializeConfig()
	require.NoError(t, err)
	assert.Equal(t, "EUR", cfg.FX.TargetCurrency)
	assert.Equal(t, ";", cfg.CSV.Delimiter)
}

func TestValidateConfigRejectsBadValues(t *testing.T) {
	base := func() *Config {
		cfg, err := InitializeConfig()
		require.NoError(t, err)
		return cfg
	}

	cfg := base()
	cfg.Log.Level = "chatty"
	assert.Error(t, validateConfig(cfg))

	cfg = base()
	cfg.CSV.Delimiter = ";;"
	assert.Error(t, validateConfig(cfg))

	cfg = base()
	cfg.FX.TargetCurrency = "FRANCS"
	assert.Error(t, validateConfig(cfg))

	cfg = base()
	cfg.FX.TimeoutSeconds = 0
	assert.Error(t, validateConfig(cfg))

	cfg = base()
	cfg.MT940.AllCapsMinWords = 0
	assert.Error(t, validateConfig(cfg))
}

func TestGetEnv(t *testing.T) {
	t.Setenv("YNAB_TEST_KEY", "value")
	assert.Equal(t, "value", GetEnv("YNAB_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("YNAB_MISSING_KEY", "fallback"))
}
