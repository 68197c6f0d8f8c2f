package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Poll struct {
	gorm.Model
	Question  string         `json:"question" gorm:"type:text;not null"`
	Options   datatypes.JSON `json:"options" gorm:"type:jsonb"` // JSON array of option strings
	IsActive  bool           `json:"isActive" gorm:"default:true;index"`
	CreatedBy uint           `json:"createdBy"`
}

// PollVote is one user's vote on one poll, unique per (poll, user).
// Revoting updates the row in place.
type PollVote struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PollID    uint      `json:"pollID" gorm:"not null;index:idx_poll_user,unique,priority:1"`
	UserID    uint      `json:"userID" gorm:"not null;index:idx_poll_user,unique,priority:2"`
	Option    string    `json:"option" gorm:"size:255;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
