package job

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/partyhub/party-panel/config"
	"github.com/partyhub/party-panel/database"
	"github.com/partyhub/party-panel/database/model"
	"github.com/partyhub/party-panel/util/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err   error
	calls int
}

func (p *fakePinger) Ping(ctx context.Context) error {
	p.calls++
	return p.err
}

func (p *fakePinger) BaseURL() string { return "http://api.test" }

func TestCheckRemoteJob(t *testing.T) {
	p := &fakePinger{}
	j := NewCheckRemoteJob(p, time.Second)

	j.Run()
	assert.True(t, j.IsUp())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RemoteUp))

	p.err = errors.New("connection refused")
	j.Run()
	assert.False(t, j.IsUp())
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.RemoteUp))

	p.err = nil
	j.Run()
	assert.True(t, j.IsUp())
	assert.Equal(t, 3, p.calls)
}

func TestPurgeSessionsJob(t *testing.T) {
	db, err := database.Open(&config.DatabaseConfig{
		Type: config.DatabaseTypeSQLite,
		Path: filepath.Join(t.TempDir(), "sessions.db"),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&[]model.Session{
		{Id: "old", Data: []byte{1}, ExpiresAt: now.Add(-time.Minute)},
		{Id: "live", Data: []byte{2}, ExpiresAt: now.Add(time.Hour)},
	}).Error)

	before := testutil.ToFloat64(metrics.SessionsPurgedTotal)
	j := NewPurgeSessionsJob(db)
	j.now = func() time.Time { return now }
	j.Run()

	var ids []string
	require.NoError(t, db.Model(&model.Session{}).Pluck("id", &ids).Error)
	assert.Equal(t, []string{"live"}, ids)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.SessionsPurgedTotal))
}
