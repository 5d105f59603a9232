// Package job provides the scheduled background jobs of the panel.
package job

import (
	"context"
	"time"

	"github.com/partyhub/party-panel/logger"
	"github.com/partyhub/party-panel/util/common"
	"github.com/partyhub/party-panel/util/metrics"
	"github.com/partyhub/party-panel/web/session"
	"gorm.io/gorm"
)

// PurgeSessionsJob deletes expired rows of the database session store.
type PurgeSessionsJob struct {
	db  *gorm.DB
	now func() time.Time
}

func NewPurgeSessionsJob(db *gorm.DB) *PurgeSessionsJob {
	return &PurgeSessionsJob{db: db, now: time.Now}
}

func (j *PurgeSessionsJob) Run() {
	defer common.Recover("purge sessions")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := session.PurgeExpired(ctx, j.db, j.now())
	if err != nil {
		logger.Warning("purge expired sessions failed:", err)
		return
	}
	if n > 0 {
		metrics.SessionsPurgedTotal.Add(float64(n))
		logger.Debugf("purged %d expired sessions", n)
	}
}
