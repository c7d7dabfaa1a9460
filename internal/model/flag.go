package model

import "time"

// Flag is one user's report of an issue as inappropriate. A user may flag
// a given issue at most once; repeats hit the composite unique index.
type Flag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	IssueID   uint      `json:"issue_id" gorm:"not null;uniqueIndex:idx_flag_issue_user"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_flag_issue_user"`
	FlaggedAt time.Time `json:"flagged_at" gorm:"autoCreateTime"`
}
