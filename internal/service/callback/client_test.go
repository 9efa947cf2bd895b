package callback

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yash6810/Plutus/internal/model/intel"
	"github.com/yash6810/Plutus/internal/model/session"
)

func endedSnapshot() session.Snapshot {
	sess := session.New("sess-1")
	sess.TurnCount = 7
	sess.ScamDetected = true
	sess.Persona = "elderly"
	sess.Status = session.StatusEnded
	sess.EndReason = session.EndReasonIntelligenceGoal
	sess.Intelligence.Add(intel.Item{Kind: intel.KindUPIID, Value: "scammer@paytm"})
	sess.Intelligence.Add(intel.Item{Kind: intel.KindPhoneNumber, Value: "+919876543210"})
	return sess.Snapshot()
}

func TestNotifyEndedDeliversSnapshot(t *testing.T) {
	var got session.Snapshot
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(Config{Enabled: true, URL: srv.URL, MaxRetries: 1}, nil)

	require.NoError(t, c.NotifyEnded(context.Background(), endedSnapshot()))
	assert.Equal(t, "sess-1", got.SessionID)
	assert.True(t, got.ScamDetected)
	assert.Equal(t, 7, got.TotalMessagesExchanged)
	assert.Equal(t, "intelligence_goal_met", got.EndReason)
	assert.Equal(t, []string{"scammer@paytm"}, got.ExtractedIntelligence.UPIIDs)
}

func TestNotifyEndedAcceptsAccepted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := New(Config{Enabled: true, URL: srv.URL, MaxRetries: 1}, nil)

	require.NoError(t, c.NotifyEnded(context.Background(), endedSnapshot()))
}

func TestNotifyEndedDisabledIsNoop(t *testing.T) {
	c := New(Config{Enabled: false, URL: "http://callback.invalid"}, nil)

	require.NoError(t, c.NotifyEnded(context.Background(), endedSnapshot()))
	assert.False(t, c.Enabled())
}

func TestNotifyEndedMissingURLIsNoop(t *testing.T) {
	c := New(Config{Enabled: true}, nil)

	require.NoError(t, c.NotifyEnded(context.Background(), endedSnapshot()))
	assert.False(t, c.Enabled())
}

func TestNotifyEndedReportsExhaustedRetries(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(Config{Enabled: true, URL: srv.URL, MaxRetries: 1}, nil)

	err := c.NotifyEnded(context.Background(), endedSnapshot())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 1 attempts")
	assert.Equal(t, int32(1), hits.Load())
}

func TestNotifyEndedRetriesThenSucceeds(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(Config{Enabled: true, URL: srv.URL, MaxRetries: 2}, nil)

	require.NoError(t, c.NotifyEnded(context.Background(), endedSnapshot()))
	assert.Equal(t, int32(2), hits.Load())
}

func TestNotifyEndedHonorsContextDuringBackoff(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	c := New(Config{Enabled: true, URL: srv.URL, MaxRetries: 3}, nil)

	err := c.NotifyEnded(ctx, endedSnapshot())
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
