// Package model holds the tables the panel owns. Everything else lives in the
// party API.
package model

import "time"

// Session is one server-side panel session. Data is the gob-encoded value map
// of the session; rows past ExpiresAt are dead and purged periodically.
type Session struct {
	Id        string    `json:"id" gorm:"primaryKey;size:64"`
	Data      []byte    `json:"-"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Session) TableName() string {
	return "sessions"
}

// Expired reports whether the row is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
