package session

import (
	"context"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/partyhub/party-panel/database"
	"github.com/partyhub/party-panel/database/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type dbBackend struct {
	db *gorm.DB
}

// NewDBStore keeps sessions in the sessions table. Expired rows are ignored
// on load and removed by PurgeExpired.
func NewDBStore(db *gorm.DB, keyPairs ...[]byte) sessions.Store {
	return newServerStore(&dbBackend{db: db}, keyPairs...)
}

func (b *dbBackend) load(ctx context.Context, id string) ([]byte, error) {
	var row model.Session
	err := b.db.WithContext(ctx).
		Where("id = ? AND expires_at > ?", id, time.Now()).
		First(&row).Error
	if database.IsNotFound(err) {
		return nil, errSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.Data, nil
}

func (b *dbBackend) save(ctx context.Context, id string, data []byte, ttl time.Duration) error {
	row := &model.Session{
		Id:        id,
		Data:      data,
		ExpiresAt: time.Now().Add(ttl),
	}
	return b.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "expires_at", "updated_at"}),
	}).Create(row).Error
}

func (b *dbBackend) delete(ctx context.Context, id string) error {
	return b.db.WithContext(ctx).Delete(&model.Session{}, "id = ?", id).Error
}

// PurgeExpired deletes session rows that expired before now and returns how
// many were removed.
func PurgeExpired(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	res := db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&model.Session{})
	return res.RowsAffected, res.Error
}
