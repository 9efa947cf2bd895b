package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yash6810/Plutus/internal/model/chat"
	"github.com/yash6810/Plutus/internal/model/persona"
)

func TestHeuristicDetectorFlagsStrongIndicators(t *testing.T) {
	d := HeuristicDetector{}

	result, err := d.Classify(context.Background(), "Please send OTP immediately or your account will be blocked", nil)
	require.NoError(t, err)

	assert.True(t, result.IsScam)
	assert.Equal(t, 0.75, result.Confidence)
	assert.Contains(t, result.Indicators, "send otp")
}

func TestHeuristicDetectorIsInconclusiveWithoutIndicators(t *testing.T) {
	d := HeuristicDetector{}

	result, err := d.Classify(context.Background(), "see you at lunch tomorrow", nil)
	require.NoError(t, err)

	assert.False(t, result.IsScam)
	assert.Equal(t, 0.5, result.Confidence)
}

func TestHeuristicActorStaysInCharacter(t *testing.T) {
	a := HeuristicActor{}
	profile, ok := persona.Lookup(persona.Elderly)
	require.True(t, ok)

	opener, err := a.Reply(context.Background(), persona.Elderly, "hello", nil)
	require.NoError(t, err)
	assert.Contains(t, profile.Openers, opener)

	followup, err := a.Reply(context.Background(), persona.Elderly, "pay now", []chat.Message{
		{Sender: chat.SenderScammer, Text: "hello"},
	})
	require.NoError(t, err)
	assert.Contains(t, profile.Fallbacks, followup)
}

func TestHeuristicActorFallsBackToDefaultPersona(t *testing.T) {
	a := HeuristicActor{}
	profile, ok := persona.Lookup(persona.Default)
	require.True(t, ok)

	reply, err := a.Reply(context.Background(), persona.Persona("unknown"), "hello", nil)
	require.NoError(t, err)
	assert.Contains(t, profile.Openers, reply)
}
