package job

import (
	"context"
	"time"

	"github.com/partyhub/party-panel/logger"
	"github.com/partyhub/party-panel/util/common"
	"github.com/partyhub/party-panel/util/metrics"
	"go.uber.org/atomic"
)

// Pinger is what the health check needs from the API client.
type Pinger interface {
	Ping(ctx context.Context) error
	BaseURL() string
}

// CheckRemoteJob pings the party API and logs when it goes up or down.
type CheckRemoteJob struct {
	api     Pinger
	timeout time.Duration

	up      atomic.Bool
	checked atomic.Bool
}

func NewCheckRemoteJob(api Pinger, timeout time.Duration) *CheckRemoteJob {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &CheckRemoteJob{api: api, timeout: timeout}
}

func (j *CheckRemoteJob) Run() {
	defer common.Recover("check remote api")

	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	err := j.api.Ping(ctx)
	up := err == nil
	metrics.SetRemoteUp(up)

	wasUp := j.up.Swap(up)
	first := !j.checked.Swap(true)
	switch {
	case up && (first || !wasUp):
		logger.Noticef("party API at %s is reachable", j.api.BaseURL())
	case !up && (first || wasUp):
		logger.Warningf("party API at %s is unreachable: %v", j.api.BaseURL(), err)
	}
}

// IsUp reports the result of the last ping.
func (j *CheckRemoteJob) IsUp() bool {
	return j.up.Load()
}
