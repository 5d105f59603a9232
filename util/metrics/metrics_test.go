package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, "unreachable", Outcome(0))
	assert.Equal(t, "ok", Outcome(204))
	assert.Equal(t, "client_error", Outcome(400))
	assert.Equal(t, "client_error", Outcome(403))
	assert.Equal(t, "server_error", Outcome(502))
}

func TestObserveRemote(t *testing.T) {
	before := testutil.ToFloat64(RemoteRequestsTotal.WithLabelValues("auth.me", "client_error"))
	ObserveRemote("auth.me", 401, 15*time.Millisecond)
	after := testutil.ToFloat64(RemoteRequestsTotal.WithLabelValues("auth.me", "client_error"))
	assert.Equal(t, before+1, after)
}

func TestSetRemoteUp(t *testing.T) {
	SetRemoteUp(true)
	assert.Equal(t, float64(1), testutil.ToFloat64(RemoteUp))
	SetRemoteUp(false)
	assert.Equal(t, float64(0), testutil.ToFloat64(RemoteUp))
}
