package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.WireFeeThreshold.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, []string{"3148"}, cfg.WithholdingDocs)
	assert.Equal(t, DefaultWireFeeNote, cfg.WireFeeNote)
	assert.Equal(t, DefaultWithholdingNote, cfg.WithholdingNote)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AR_WIRE_FEE_THRESHOLD", "250.50")
	t.Setenv("AR_WITHHOLDING_DOCS", "3148, 9001 ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.WireFeeThreshold.Equal(decimal.RequireFromString("250.50")))
	assert.Equal(t, []string{"3148", "9001"}, cfg.WithholdingDocs)
}

func TestLoadRejectsBadThreshold(t *testing.T) {
	t.Setenv("AR_WIRE_FEE_THRESHOLD", "lots")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsNegativeThreshold(t *testing.T) {
	t.Setenv("AR_WIRE_FEE_THRESHOLD", "-5")
	_, err := Load()
	assert.Error(t, err)
}
