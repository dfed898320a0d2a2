package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/nguyentranbao-ct/support-desk/internal/models"
	"github.com/nguyentranbao-ct/support-desk/internal/repo"
	"gorm.io/gorm"
)

type userRepo struct {
	db *gorm.DB
}

func NewUserRepository(db *DB) repo.UserRepository {
	return &userRepo{db: db.Gorm}
}

func (r *userRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &user, nil
}

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ErrEmailTaken
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userRepo) Update(ctx context.Context, id uint, updates models.UpdateUser) (*models.User, error) {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	changes := userChanges(updates)
	if len(changes) == 0 {
		return user, nil
	}
	if err := r.db.WithContext(ctx).Model(user).Updates(changes).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrEmailTaken
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (r *userRepo) UpdatePassword(ctx context.Context, id uint, passwordHash string) (*models.User, error) {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(user).Update("password", passwordHash).Error; err != nil {
		return nil, fmt.Errorf("update password: %w", err)
	}
	return user, nil
}

func userChanges(updates models.UpdateUser) map[string]any {
	changes := map[string]any{}
	if updates.FullName != nil {
		changes["full_name"] = *updates.FullName
	}
	if updates.Email != nil {
		changes["email"] = *updates.Email
	}
	if updates.Role != nil {
		changes["role"] = *updates.Role
	}
	if updates.Department != nil {
		changes["department"] = *updates.Department
	}
	if updates.Avatar != nil {
		changes["avatar"] = *updates.Avatar
	}
	if updates.DarkMode != nil {
		changes["dark_mode"] = *updates.DarkMode
	}
	if updates.Language != nil {
		changes["language"] = *updates.Language
	}
	if updates.EmailNotifications != nil {
		changes["email_notifications"] = *updates.EmailNotifications
	}
	return changes
}
