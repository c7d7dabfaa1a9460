package model

import "time"

// User represents a registered reporter or administrator.
// PasswordHash is a declared column and is always present; users created
// through the Google flow simply carry an empty hash and cannot log in locally.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null;default:''"` // Never expose in JSON
	IsVerified   bool      `json:"is_verified" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Issues []Issue `json:"issues,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
	Flags  []Flag  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
