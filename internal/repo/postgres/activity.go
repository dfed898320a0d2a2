package postgres

import (
	"context"
	"fmt"

	"github.com/nguyentranbao-ct/support-desk/internal/models"
	"github.com/nguyentranbao-ct/support-desk/internal/repo"
	"gorm.io/gorm"
)

type activityRepo struct {
	db *gorm.DB
}

func NewActivityRepository(db *DB) repo.ActivityRepository {
	return &activityRepo{db: db.Gorm}
}

func (r *activityRepo) Create(ctx context.Context, activity *models.Activity) error {
	if err := r.db.WithContext(ctx).Create(activity).Error; err != nil {
		return fmt.Errorf("create activity: %w", err)
	}
	return nil
}

func (r *activityRepo) ListByUser(ctx context.Context, userID uint, page, limit int) (*models.ActivityPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	query := r.db.WithContext(ctx).Model(&models.Activity{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count activities: %w", err)
	}

	activities := []models.Activity{}
	err := query.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&activities).Error
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	return &models.ActivityPage{Activities: activities, Total: total}, nil
}
