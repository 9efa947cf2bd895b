package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "MAX_CONVERSATION_TURNS", "MIN_INTELLIGENCE_THRESHOLD",
		"STALE_CONVERSATION_THRESHOLD", "SCAM_CONFIDENCE_THRESHOLD",
		"DETECT_TIMEOUT", "SESSION_MAX_AGE_HOURS", "CALLBACK_ENABLED",
		"ARK_API_KEY", "MODEL",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 20, cfg.Agent.MaxTurns)
	assert.Equal(t, 2, cfg.Agent.MinIntelligenceKinds)
	assert.Equal(t, 5, cfg.Agent.StaleTurnThreshold)
	assert.Equal(t, 0.7, cfg.Agent.ScamConfidenceThreshold)
	assert.Equal(t, 10*time.Second, cfg.Agent.DetectTimeout)
	assert.Equal(t, 24*time.Hour, cfg.Agent.SessionMaxAge)
	assert.False(t, cfg.Callback.Enabled)
	assert.False(t, cfg.AI.Enabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MAX_CONVERSATION_TURNS", "30")
	t.Setenv("SCAM_CONFIDENCE_THRESHOLD", "0.85")
	t.Setenv("CALLBACK_ENABLED", "true")
	t.Setenv("CALLBACK_URL", "https://hooks.example.com/final")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 30, cfg.Agent.MaxTurns)
	assert.Equal(t, 0.85, cfg.Agent.ScamConfidenceThreshold)
	assert.True(t, cfg.Callback.Enabled)
	assert.Equal(t, "https://hooks.example.com/final", cfg.Callback.URL)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("MAX_CONVERSATION_TURNS", "lots")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAX_CONVERSATION_TURNS")
}

func TestAIConfigEnabled(t *testing.T) {
	assert.False(t, AIConfig{}.Enabled())
	assert.False(t, AIConfig{Model: "doubao-pro"}.Enabled())
	assert.False(t, AIConfig{APIKey: "key"}.Enabled())
	assert.True(t, AIConfig{Model: "doubao-pro", APIKey: "key"}.Enabled())
	assert.True(t, AIConfig{Model: "doubao-pro", AccessKey: "ak", SecretKey: "sk"}.Enabled())
}
