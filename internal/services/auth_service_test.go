package services

import (
	"context"
	"testing"
	"time"

	"github.com/forgeline/leaddesk/internal/config"
	"github.com/forgeline/leaddesk/internal/models"
	"github.com/forgeline/leaddesk/internal/testutil"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuth(t *testing.T) *AuthService {
	t.Helper()
	return NewAuthService(testutil.NewDB(t), config.AuthConfig{Secret: "test-secret", TokenTTL: time.Hour})
}

func TestAuthService_LoginAndAuthenticate(t *testing.T) {
	svc := newTestAuth(t)
	ctx := context.Background()

	created, err := svc.CreateAdmin(ctx, "ops", "ops@acme.test", "correct-horse", "")
	require.NoError(t, err)
	assert.Equal(t, "admin", created.Role)
	assert.NotEqual(t, "correct-horse", created.PasswordHash)

	for _, identifier := range []string{"ops", "ops@acme.test"} {
		token, user, err := svc.Login(ctx, identifier, "correct-horse")
		require.NoError(t, err, identifier)
		assert.NotEmpty(t, token)
		assert.Equal(t, created.ID, user.ID)
		require.NotNil(t, user.LastLogin)

		got, err := svc.Authenticate(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "ops", got.Username)
		assert.NotNil(t, got.LastLogin)
	}
}

func TestAuthService_LoginRejects(t *testing.T) {
	svc := newTestAuth(t)
	ctx := context.Background()

	_, err := svc.CreateAdmin(ctx, "ops", "ops@acme.test", "correct-horse", "admin")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "ops", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody", "correct-horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, svc.db.Model(&models.AdminUser{}).Where("username = ?", "ops").Update("is_active", false).Error)
	_, _, err = svc.Login(ctx, "ops", "correct-horse")
	assert.ErrorIs(t, err, ErrInactiveUser)
}

func TestAuthService_AuthenticateInactive(t *testing.T) {
	svc := newTestAuth(t)
	ctx := context.Background()

	_, err := svc.CreateAdmin(ctx, "ops", "ops@acme.test", "correct-horse", "admin")
	require.NoError(t, err)
	token, _, err := svc.Login(ctx, "ops", "correct-horse")
	require.NoError(t, err)

	require.NoError(t, svc.db.Model(&models.AdminUser{}).Where("username = ?", "ops").Update("is_active", false).Error)

	_, err = svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, ErrInactiveUser)
}

func TestAuthService_ParseToken(t *testing.T) {
	svc := newTestAuth(t)
	user := &models.AdminUser{ID: 7, Username: "ops", Role: "admin"}

	token, err := svc.IssueToken(user)
	require.NoError(t, err)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "7", claims.Subject)
	assert.Equal(t, "ops", claims.Username)
	assert.Equal(t, "admin", claims.Role)

	t.Run("expired", func(t *testing.T) {
		svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		defer func() { svc.now = time.Now }()

		_, err := svc.ParseToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewAuthService(svc.db, config.AuthConfig{Secret: "other"})
		_, err := other.ParseToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unsigned", func(t *testing.T) {
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "7"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = svc.ParseToken(unsigned)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ParseToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestAuthService_CreateAdmin(t *testing.T) {
	svc := newTestAuth(t)
	ctx := context.Background()

	_, err := svc.CreateAdmin(ctx, "ops", "ops@acme.test", "correct-horse", "admin")
	require.NoError(t, err)

	_, err = svc.CreateAdmin(ctx, "ops", "other@acme.test", "correct-horse", "admin")
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = svc.CreateAdmin(ctx, "other", "ops@acme.test", "correct-horse", "admin")
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = svc.CreateAdmin(ctx, "short", "short@acme.test", "abc", "admin")
	assert.Error(t, err)
}
