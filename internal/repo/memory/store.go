// Package memory is the non-durable storage backend used for tests and
// single-binary deployments. It only implements the user and activity
// contracts; ticket and chat storage is deliberately absent (see repo
// package docs for the capability split).
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nguyentranbao-ct/support-desk/internal/models"
	"github.com/nguyentranbao-ct/support-desk/internal/repo"
)

// Store owns the maps; the repository views below share it so user and
// activity operations see one consistent dataset.
type Store struct {
	mu             sync.RWMutex
	users          map[uint]*models.User
	activities     map[uint]*models.Activity
	nextUserID     uint
	nextActivityID uint
}

func NewStore() *Store {
	return &Store{
		users:          map[uint]*models.User{},
		activities:     map[uint]*models.Activity{},
		nextUserID:     1,
		nextActivityID: 1,
	}
}

type userRepo struct {
	store *Store
}

func NewUserRepository(s *Store) repo.UserRepository {
	return &userRepo{store: s}
}

func (r *userRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	user, ok := r.store.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, user := range r.store.users {
		if strings.EqualFold(user.Email, email) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *userRepo) Create(_ context.Context, user *models.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return models.ErrEmailTaken
		}
	}
	now := time.Now()
	user.ID = r.store.nextUserID
	r.store.nextUserID++
	if user.Role == "" {
		user.Role = "support-agent"
	}
	if user.Department == "" {
		user.Department = "customer-support"
	}
	if user.Language == "" {
		user.Language = "en"
	}
	user.CreatedAt = now
	user.UpdatedAt = now
	clone := *user
	r.store.users[user.ID] = &clone
	return nil
}

func (r *userRepo) Update(_ context.Context, id uint, updates models.UpdateUser) (*models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	user, ok := r.store.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if updates.Email != nil {
		for otherID, existing := range r.store.users {
			if otherID != id && strings.EqualFold(existing.Email, *updates.Email) {
				return nil, models.ErrEmailTaken
			}
		}
		user.Email = *updates.Email
	}
	if updates.FullName != nil {
		user.FullName = *updates.FullName
	}
	if updates.Role != nil {
		user.Role = *updates.Role
	}
	if updates.Department != nil {
		user.Department = *updates.Department
	}
	if updates.Avatar != nil {
		user.Avatar = *updates.Avatar
	}
	if updates.DarkMode != nil {
		user.DarkMode = *updates.DarkMode
	}
	if updates.Language != nil {
		user.Language = *updates.Language
	}
	if updates.EmailNotifications != nil {
		user.EmailNotifications = *updates.EmailNotifications
	}
	user.UpdatedAt = time.Now()
	clone := *user
	return &clone, nil
}

func (r *userRepo) UpdatePassword(_ context.Context, id uint, passwordHash string) (*models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	user, ok := r.store.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	user.Password = passwordHash
	user.UpdatedAt = time.Now()
	clone := *user
	return &clone, nil
}

type activityRepo struct {
	store *Store
}

func NewActivityRepository(s *Store) repo.ActivityRepository {
	return &activityRepo{store: s}
}

func (r *activityRepo) Create(_ context.Context, activity *models.Activity) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	activity.ID = r.store.nextActivityID
	r.store.nextActivityID++
	activity.CreatedAt = time.Now()
	clone := *activity
	r.store.activities[activity.ID] = &clone
	return nil
}

func (r *activityRepo) ListByUser(_ context.Context, userID uint, page, limit int) (*models.ActivityPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matched := []models.Activity{}
	for _, activity := range r.store.activities {
		if activity.UserID != nil && *activity.UserID == userID {
			matched = append(matched, *activity)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := (page - 1) * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}

	return &models.ActivityPage{Activities: matched[start:end], Total: total}, nil
}
