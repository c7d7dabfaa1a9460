package model

import "time"

// StatusReported is the status assigned to every newly created issue.
// Status is free text on purpose: no transition graph is enforced and an
// administrator may write any value, each change leaving a StatusLog row.
const StatusReported = "Reported"

// Issue represents a citizen-submitted civic problem report.
type Issue struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      *uint     `json:"user_id" gorm:"index"` // nulled when the reporter is deleted
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Category    string    `json:"category" gorm:"size:100;not null;index"`
	Latitude    float64   `json:"latitude" gorm:"not null"`
	Longitude   float64   `json:"longitude" gorm:"not null"`
	Status      string    `json:"status" gorm:"size:50;not null;default:'Reported';index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Photos     []IssuePhoto `json:"photos" gorm:"foreignKey:IssueID;constraint:OnDelete:CASCADE"`
	StatusLogs []StatusLog  `json:"-" gorm:"foreignKey:IssueID;constraint:OnDelete:CASCADE"`
	Flags      []Flag       `json:"-" gorm:"foreignKey:IssueID;constraint:OnDelete:CASCADE"`
}
