package service

import (
	"context"
	"strings"
	"testing"

	"resonate/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_UpdateProfile(t *testing.T) {
	t.Run("Updates name and avatar", func(t *testing.T) {
		var saved *models.User
		userRepo := noopUserRepo()
		userRepo.getByIDFn = func(context.Context, uint) (*models.User, error) {
			return &models.User{ID: 1, Name: "Old", Avatar: "old.png"}, nil
		}
		userRepo.updateFn = func(_ context.Context, u *models.User) error {
			saved = u
			return nil
		}

		svc := NewUserService(userRepo)
		user, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
			UserID: 1,
			Name:   "New Name",
			Avatar: "new.png",
		})

		require.NoError(t, err)
		assert.Equal(t, "New Name", user.Name)
		assert.Equal(t, "new.png", user.Avatar)
		require.NotNil(t, saved)
		assert.Equal(t, "New Name", saved.Name)
	})

	t.Run("Empty fields leave profile unchanged", func(t *testing.T) {
		userRepo := noopUserRepo()
		userRepo.getByIDFn = func(context.Context, uint) (*models.User, error) {
			return &models.User{ID: 1, Name: "Keep", Avatar: "keep.png"}, nil
		}

		svc := NewUserService(userRepo)
		user, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1})

		require.NoError(t, err)
		assert.Equal(t, "Keep", user.Name)
		assert.Equal(t, "keep.png", user.Avatar)
	})

	t.Run("Name over limit rejected", func(t *testing.T) {
		userRepo := noopUserRepo()
		userRepo.updateFn = func(context.Context, *models.User) error {
			t.Fatal("update should not be called")
			return nil
		}

		svc := NewUserService(userRepo)
		_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
			UserID: 1,
			Name:   strings.Repeat("x", 51),
		})

		require.Error(t, err)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})

	t.Run("Unknown user propagates not found", func(t *testing.T) {
		userRepo := noopUserRepo()
		userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return nil, models.NewNotFoundError("User", id)
		}

		svc := NewUserService(userRepo)
		_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 9, Name: "X"})

		require.Error(t, err)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})
}
