package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/core/domain"
	"libraryhub/internal/pkg/jwt"
)

func newAuthService(db *gorm.DB) *AuthService {
	return NewAuthService(
		repositories.NewUserRepository(db),
		repositories.NewRefreshTokenRepository(db),
		testConfig(),
	)
}

func TestAuthService_Register(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	resp, err := svc.Register(ctx(), &RegisterInput{
		Username:  "alice",
		Email:     "alice@example.org",
		Password:  "secret-password",
		Password2: "secret-password",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.User.Username)
	assert.Equal(t, string(domain.RoleMember), resp.User.Role)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	// The access token carries the identity
	claims, err := jwt.ValidateAccessToken(resp.AccessToken, testConfig().JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, string(domain.RoleMember), claims.Role)

	// The stored password is hashed
	var stored models.User
	require.NoError(t, db.Where("username = ?", "alice").First(&stored).Error)
	assert.NotEqual(t, "secret-password", stored.Password)
}

func TestAuthService_Register_PasswordMismatch(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Register(ctx(), &RegisterInput{
		Username:  "alice",
		Email:     "alice@example.org",
		Password:  "secret-password",
		Password2: "other-password",
	})
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	input := &RegisterInput{
		Username:  "alice",
		Email:     "alice@example.org",
		Password:  "secret-password",
		Password2: "secret-password",
	}
	_, err := svc.Register(ctx(), input)
	require.NoError(t, err)

	_, err = svc.Register(ctx(), input)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestAuthService_Register_ShortPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Register(ctx(), &RegisterInput{
		Username:  "alice",
		Email:     "alice@example.org",
		Password:  "short",
		Password2: "short",
	})
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestAuthService_Login(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Register(ctx(), &RegisterInput{
		Username:  "alice",
		Email:     "alice@example.org",
		Password:  "secret-password",
		Password2: "secret-password",
	})
	require.NoError(t, err)

	resp, err := svc.Login(ctx(), &LoginInput{Username: "alice", Password: "secret-password"})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.User.Username)

	_, err = svc.Login(ctx(), &LoginInput{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown users read the same as bad passwords
	_, err = svc.Login(ctx(), &LoginInput{Username: "nobody", Password: "secret-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_VisitorLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	resp, err := svc.VisitorLogin(ctx(), "guest")
	require.NoError(t, err)
	assert.Equal(t, string(domain.RoleVisitor), resp.User.Role)
	firstID := resp.User.ID

	// Logging in again under the same name reuses the account
	resp, err = svc.VisitorLogin(ctx(), "guest")
	require.NoError(t, err)
	assert.Equal(t, firstID, resp.User.ID)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// Visitor accounts are passwordless, the login endpoint rejects them
	_, err = svc.Login(ctx(), &LoginInput{Username: "guest", Password: ""})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Refresh_Rotation(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	first, err := svc.Register(ctx(), &RegisterInput{
		Username:  "alice",
		Email:     "alice@example.org",
		Password:  "secret-password",
		Password2: "secret-password",
	})
	require.NoError(t, err)

	second, err := svc.Refresh(ctx(), first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// The rotated-out token is revoked and cannot be replayed
	_, err = svc.Refresh(ctx(), first.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// The fresh one still works
	_, err = svc.Refresh(ctx(), second.RefreshToken)
	assert.NoError(t, err)
}

func TestAuthService_Refresh_Garbage(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Refresh(ctx(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_Logout(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	resp, err := svc.Register(ctx(), &RegisterInput{
		Username:  "alice",
		Email:     "alice@example.org",
		Password:  "secret-password",
		Password2: "secret-password",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx(), resp.RefreshToken))

	_, err = svc.Refresh(ctx(), resp.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
