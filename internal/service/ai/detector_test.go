package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDetectionPlainJSON(t *testing.T) {
	result, err := parseDetection(`{"is_scam": true, "confidence": 0.92, "reason": "OTP request", "indicators": ["otp", "urgency"]}`)
	require.NoError(t, err)

	assert.True(t, result.IsScam)
	assert.Equal(t, 0.92, result.Confidence)
	assert.Equal(t, "OTP request", result.Reason)
	assert.Equal(t, []string{"otp", "urgency"}, result.Indicators)
}

func TestParseDetectionMarkdownFence(t *testing.T) {
	raw := "```json\n{\"is_scam\": true, \"confidence\": 0.8, \"reason\": \"phishing link\"}\n```"

	result, err := parseDetection(raw)
	require.NoError(t, err)
	assert.True(t, result.IsScam)
	assert.Equal(t, 0.8, result.Confidence)
}

func TestParseDetectionBareFence(t *testing.T) {
	raw := "```\n{\"is_scam\": false, \"confidence\": 0.9}\n```"

	result, err := parseDetection(raw)
	require.NoError(t, err)
	assert.False(t, result.IsScam)
}

func TestParseDetectionClampsConfidence(t *testing.T) {
	result, err := parseDetection(`{"is_scam": true, "confidence": 1.7}`)
	require.NoError(t, err)
	assert.Equal(t, 1.0, result.Confidence)

	result, err = parseDetection(`{"is_scam": true, "confidence": -0.3}`)
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Confidence)
}

func TestParseDetectionDefaultsReason(t *testing.T) {
	result, err := parseDetection(`{"is_scam": true, "confidence": 0.9}`)
	require.NoError(t, err)
	assert.Equal(t, "No reason provided", result.Reason)
}

func TestParseDetectionRejectsProse(t *testing.T) {
	_, err := parseDetection("This message looks like a scam to me.")
	require.Error(t, err)
}
