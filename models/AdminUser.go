package models

import "time"

// AdminUser is the admin registry row consulted before every verification
// write. Only rows with IsActive true grant admin rights.
type AdminUser struct {
	UserID    uint      `json:"userID" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"size:255"`
	IsActive  bool      `json:"isActive" gorm:"default:true;index"`
	CreatedAt time.Time `json:"createdAt"`
}

func (AdminUser) TableName() string { return "admin_users" }
