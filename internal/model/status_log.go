package model

import "time"

// StatusLog is one append-only audit record of an issue status change.
// Rows are never updated or deleted individually.
type StatusLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	IssueID   uint      `json:"issue_id" gorm:"not null;index"`
	OldStatus string    `json:"old_status" gorm:"size:50;not null"`
	NewStatus string    `json:"new_status" gorm:"size:50;not null"`
	ChangedAt time.Time `json:"changed_at" gorm:"autoCreateTime"`
}
