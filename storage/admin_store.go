package storage

import (
	"context"

	"society-portal-server/models"

	"gorm.io/gorm"
)

// AdminRegistry answers admin checks from the admin_users table. It backs
// the services.Authorizer boundary.
type AdminRegistry struct {
	db *gorm.DB
}

func NewAdminRegistry(db *gorm.DB) *AdminRegistry {
	return &AdminRegistry{db: db}
}

func (r *AdminRegistry) IsAdmin(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.AdminUser{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AdminRegistry) ListVerificationLogs(ctx context.Context, limit int) ([]models.VerificationLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var logs []models.VerificationLog
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
