package model

import "time"

// BannedUser bars a user from submitting issues. Presence of a row is the
// ban; there is no automatic flag-count threshold that creates one.
type BannedUser struct {
	UserID   uint      `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	Reason   string    `json:"reason" gorm:"type:text"`
	BannedAt time.Time `json:"banned_at" gorm:"autoCreateTime"`
}
