package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"toyboard/internal/model"
)

type ActivityLogRepository struct {
	db *gorm.DB
}

func NewActivityLogRepository(db *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

// Create stores an entry. A redelivered event (same event id) is reported
// as ErrDuplicateKey.
func (r *ActivityLogRepository) Create(entry *model.ActivityLog) error {
	if err := r.db.Create(entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("create activity log failed: %w", err)
	}
	return nil
}
