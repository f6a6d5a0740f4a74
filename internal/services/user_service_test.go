package services

import (
	"context"
	"testing"

	"github.com/ajaybhatia/xync-server/internal/apperrors"
	"github.com/ajaybhatia/xync-server/internal/models"
	"github.com/ajaybhatia/xync-server/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func registerUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user, err := NewUserService(db).Register(context.Background(), &models.RegisterRequest{
		Email:    email,
		Password: "password-123",
		Name:     "Test User",
	})
	require.NoError(t, err)
	return user
}

func TestUserService(t *testing.T) {
	db, cleanup := testutil.SetupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	svc := NewUserService(db)

	t.Run("register and authenticate", func(t *testing.T) {
		user, err := svc.Register(ctx, &models.RegisterRequest{
			Email:    "a@x.com",
			Password: "pw1-secret",
			Name:     "Alice",
		})
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", user.Email)
		assert.NotEmpty(t, user.ID)
		assert.NotEqual(t, "pw1-secret", user.PasswordHash)

		authed, err := svc.Authenticate(ctx, "a@x.com", "pw1-secret")
		require.NoError(t, err)
		assert.Equal(t, user.ID, authed.ID)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		_, err := svc.Register(ctx, &models.RegisterRequest{
			Email:    "a@x.com",
			Password: "another-pw",
			Name:     "Imposter",
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	})

	t.Run("email uniqueness is case-insensitive", func(t *testing.T) {
		_, err := svc.Register(ctx, &models.RegisterRequest{
			Email:    "A@X.COM",
			Password: "another-pw",
			Name:     "Imposter",
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	})

	t.Run("login is case-insensitive on email", func(t *testing.T) {
		authed, err := svc.Authenticate(ctx, "A@x.Com", "pw1-secret")
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", authed.Email)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		_, wrongPw := svc.Authenticate(ctx, "a@x.com", "wrong-password")
		require.Error(t, wrongPw)

		_, noUser := svc.Authenticate(ctx, "nobody@x.com", "pw1-secret")
		require.Error(t, noUser)

		assert.Equal(t, apperrors.KindInvalidCredentials, apperrors.KindOf(wrongPw))
		assert.Equal(t, apperrors.KindInvalidCredentials, apperrors.KindOf(noUser))
		assert.Equal(t, wrongPw.Error(), noUser.Error())
	})

	t.Run("get by id", func(t *testing.T) {
		user := registerUser(t, db, "byid@x.com")

		got, err := svc.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.Email, got.Email)
	})
}
