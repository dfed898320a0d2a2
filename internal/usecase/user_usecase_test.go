package usecase

import (
	"context"
	"testing"

	"github.com/nguyentranbao-ct/support-desk/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users map[uint]*models.User

	updatedPasswordHash string
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = uint(len(f.users) + 1)
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, id uint, updates models.UpdateUser) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if updates.FullName != nil {
		user.FullName = *updates.FullName
	}
	if updates.Email != nil {
		user.Email = *updates.Email
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id uint, passwordHash string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	user.Password = passwordHash
	f.updatedPasswordHash = passwordHash
	clone := *user
	return &clone, nil
}

type fakeActivityRepo struct {
	created []models.Activity
	err     error
	page    *models.ActivityPage
}

func (f *fakeActivityRepo) Create(_ context.Context, activity *models.Activity) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, *activity)
	return nil
}

func (f *fakeActivityRepo) ListByUser(_ context.Context, _ uint, _, _ int) (*models.ActivityPage, error) {
	return f.page, nil
}

type fakeProducer struct {
	published []models.Activity
}

func (f *fakeProducer) PublishActivity(_ context.Context, activity *models.Activity) {
	f.published = append(f.published, *activity)
}

func (f *fakeProducer) Close() error { return nil }

func seedUser(t *testing.T, password string) (*fakeUserRepo, uint) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &fakeUserRepo{users: map[uint]*models.User{
		1: {
			ID:       1,
			FullName: "Sarah Johnson",
			Email:    "sarah.johnson@company.com",
			Password: string(hash),
		},
	}}
	return repo, 1
}

func TestChangePassword(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("rehashes with the new password", func(t *testing.T) {
		users, id := seedUser(t, "password123")
		activities := &fakeActivityRepo{}
		uc := NewUserUsecase(users, activities, &fakeProducer{})

		err := uc.ChangePassword(ctx, id, models.UpdatePassword{
			CurrentPassword: "password123",
			NewPassword:     "newpassword456",
			ConfirmPassword: "newpassword456",
		})
		require.NoError(t, err)
		require.NotEmpty(t, users.updatedPasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword(
			[]byte(users.updatedPasswordHash), []byte("newpassword456")))
	})

	t.Run("wrong current password", func(t *testing.T) {
		users, id := seedUser(t, "password123")
		uc := NewUserUsecase(users, &fakeActivityRepo{}, &fakeProducer{})

		err := uc.ChangePassword(ctx, id, models.UpdatePassword{
			CurrentPassword: "not-the-password",
			NewPassword:     "newpassword456",
			ConfirmPassword: "newpassword456",
		})
		assert.ErrorIs(t, err, models.ErrWrongPassword)
		assert.Empty(t, users.updatedPasswordHash)
	})

	t.Run("unknown user", func(t *testing.T) {
		users := &fakeUserRepo{users: map[uint]*models.User{}}
		uc := NewUserUsecase(users, &fakeActivityRepo{}, &fakeProducer{})

		err := uc.ChangePassword(ctx, 99, models.UpdatePassword{
			CurrentPassword: "whatever",
			NewPassword:     "newpassword456",
			ConfirmPassword: "newpassword456",
		})
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("records a warning activity", func(t *testing.T) {
		users, id := seedUser(t, "password123")
		activities := &fakeActivityRepo{}
		producer := &fakeProducer{}
		uc := NewUserUsecase(users, activities, producer)

		err := uc.ChangePassword(ctx, id, models.UpdatePassword{
			CurrentPassword: "password123",
			NewPassword:     "newpassword456",
			ConfirmPassword: "newpassword456",
		})
		require.NoError(t, err)
		require.Len(t, activities.created, 1)
		assert.Equal(t, models.ActivityWarning, activities.created[0].Type)
		assert.Equal(t, "Password changed", activities.created[0].Title)
		assert.Len(t, producer.published, 1)
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("updates and records a success activity", func(t *testing.T) {
		users, id := seedUser(t, "password123")
		activities := &fakeActivityRepo{}
		producer := &fakeProducer{}
		uc := NewUserUsecase(users, activities, producer)

		name := "Sarah J."
		user, err := uc.UpdateProfile(ctx, id, models.UpdateUser{FullName: &name})
		require.NoError(t, err)
		assert.Equal(t, "Sarah J.", user.FullName)

		require.Len(t, activities.created, 1)
		assert.Equal(t, models.ActivitySuccess, activities.created[0].Type)
		assert.Equal(t, "Profile updated successfully", activities.created[0].Title)
		require.Len(t, producer.published, 1)
		assert.Equal(t, &id, producer.published[0].UserID)
	})

	t.Run("audit failure does not fail the update", func(t *testing.T) {
		users, id := seedUser(t, "password123")
		activities := &fakeActivityRepo{err: assert.AnError}
		producer := &fakeProducer{}
		uc := NewUserUsecase(users, activities, producer)

		name := "Sarah J."
		user, err := uc.UpdateProfile(ctx, id, models.UpdateUser{FullName: &name})
		require.NoError(t, err)
		assert.Equal(t, "Sarah J.", user.FullName)
		assert.Empty(t, producer.published)
	})

	t.Run("unknown user", func(t *testing.T) {
		users := &fakeUserRepo{users: map[uint]*models.User{}}
		uc := NewUserUsecase(users, &fakeActivityRepo{}, &fakeProducer{})

		name := "Nobody"
		_, err := uc.UpdateProfile(ctx, 99, models.UpdateUser{FullName: &name})
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestActivities(t *testing.T) {
	t.Parallel()

	page := &models.ActivityPage{
		Activities: []models.Activity{{ID: 3, Title: "Password changed"}},
		Total:      15,
	}
	uc := NewUserUsecase(&fakeUserRepo{}, &fakeActivityRepo{page: page}, &fakeProducer{})

	got, err := uc.Activities(context.Background(), 1, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, page, got)
}
