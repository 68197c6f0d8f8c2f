package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VerificationLog records one verification toggle attempt. Attempts are
// always appended, never deduplicated, so the history stays reconstructable
// even when concurrent toggles clobber each other.
type VerificationLog struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	VendorID     string    `json:"vendorID" gorm:"size:64;index"`
	ListingTable string    `json:"tableName" gorm:"column:table_name;size:64"`
	OldValue     bool      `json:"oldValue"`
	NewValue     bool      `json:"newValue"`
	AdminID      uint      `json:"adminID" gorm:"index"`
	AdminEmail   string    `json:"adminEmail" gorm:"size:255"`
	VendorName   string    `json:"vendorName" gorm:"size:255"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (l *VerificationLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
