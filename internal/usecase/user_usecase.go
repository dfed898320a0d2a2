package usecase

import (
	"context"
	"fmt"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/nguyentranbao-ct/support-desk/internal/kafka"
	"github.com/nguyentranbao-ct/support-desk/internal/models"
	"github.com/nguyentranbao-ct/support-desk/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

// UserUsecase covers the agent profile flows: read, partial update, password
// change, and the paginated audit trail. Profile and password mutations
// append an Activity and fan it out to the event producer.
type UserUsecase interface {
	GetProfile(ctx context.Context, userID uint) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uint, updates models.UpdateUser) (*models.User, error)
	ChangePassword(ctx context.Context, userID uint, req models.UpdatePassword) error
	Activities(ctx context.Context, userID uint, page, limit int) (*models.ActivityPage, error)
}

type userUsecase struct {
	users      repo.UserRepository
	activities repo.ActivityRepository
	events     kafka.ActivityEventProducer
}

func NewUserUsecase(
	users repo.UserRepository,
	activities repo.ActivityRepository,
	events kafka.ActivityEventProducer,
) UserUsecase {
	return &userUsecase{
		users:      users,
		activities: activities,
		events:     events,
	}
}

func (u *userUsecase) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	return u.users.GetByID(ctx, userID)
}

func (u *userUsecase) UpdateProfile(ctx context.Context, userID uint, updates models.UpdateUser) (*models.User, error) {
	user, err := u.users.Update(ctx, userID, updates)
	if err != nil {
		return nil, err
	}

	u.recordActivity(ctx, &models.Activity{
		UserID:      &userID,
		Type:        models.ActivitySuccess,
		Title:       "Profile updated successfully",
		Description: "Updated profile information",
	})

	return user, nil
}

func (u *userUsecase) ChangePassword(ctx context.Context, userID uint, req models.UpdatePassword) error {
	user, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return models.ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if _, err := u.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}

	u.recordActivity(ctx, &models.Activity{
		UserID:      &userID,
		Type:        models.ActivityWarning,
		Title:       "Password changed",
		Description: "Successfully updated account password",
	})

	return nil
}

func (u *userUsecase) Activities(ctx context.Context, userID uint, page, limit int) (*models.ActivityPage, error) {
	return u.activities.ListByUser(ctx, userID, page, limit)
}

// recordActivity appends the audit entry and publishes it. The audit trail is
// a side effect; its failure is logged, not propagated to the caller.
func (u *userUsecase) recordActivity(ctx context.Context, activity *models.Activity) {
	if err := u.activities.Create(ctx, activity); err != nil {
		log.Errorw(ctx, "record activity", "error", err, "title", activity.Title)
		return
	}
	u.events.PublishActivity(ctx, activity)
}
