package model

// IssuePhoto is a photo attached to an issue. Its lifetime is bound to the
// parent issue and it is cascade-deleted with it.
type IssuePhoto struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	IssueID  uint   `json:"issue_id" gorm:"not null;index"`
	PhotoURL string `json:"photo_url" gorm:"size:2048;not null"`
}
