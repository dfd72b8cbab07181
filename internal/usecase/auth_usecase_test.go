package usecase

import (
	"context"
	"testing"
	"time"

	"vetclinic-booking/config"
	"vetclinic-booking/internal/delivery/dto"
	"vetclinic-booking/internal/domain/entity"
	"vetclinic-booking/internal/service"
	"vetclinic-booking/pkg/jwt"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type authFixture struct {
	uc    AuthUsecase
	mock  sqlmock.Sqlmock
	mr    *miniredis.Miniredis
	users *fakeUserRepository
	audit *fakeAuditLogRepository
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	db, mock := newTestDB(t)
	mr, redisClient := newTestRedis(t)
	log := newTestLogger()

	f := &authFixture{
		mock:  mock,
		mr:    mr,
		users: newFakeUserRepository(),
		audit: newFakeAuditLogRepository(),
	}

	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 24 * time.Hour,
	})

	f.uc = NewAuthUsecase(
		db,
		log,
		config.BookingConfig{ResetTokenExpiry: 30 * time.Minute},
		f.users,
		jwtService,
		redisClient,
		service.NewAuditService(db, log, f.audit),
	)

	return f
}

func (f *authFixture) addUser(t *testing.T, email, password string, disabled bool) *entity.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return f.users.add(&entity.User{
		RoleID:   entity.RoleIDClient,
		Email:    email,
		Password: string(hashed),
		Disabled: disabled,
	})
}

func TestRegister(t *testing.T) {
	t.Run("creates client account", func(t *testing.T) {
		f := newAuthFixture(t)
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()

		resp, err := f.uc.Register(context.Background(), &dto.RegisterRequest{
			Email:    "New.Client@Example.com",
			Password: "correct horse",
		})
		require.NoError(t, err)

		assert.Equal(t, "new.client@example.com", resp.Email)
		assert.Equal(t, entity.RoleClient, resp.Role)
		assert.False(t, resp.ProfileComplete, "contact data comes later via the profile endpoint")
		assert.Contains(t, f.audit.actions(), entity.AuditActionUserRegister)
		assert.NoError(t, f.mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := newAuthFixture(t)
		f.addUser(t, "taken@example.com", "whatever", false)
		f.mock.ExpectBegin()
		f.mock.ExpectRollback()

		_, err := f.uc.Register(context.Background(), &dto.RegisterRequest{
			Email:    "taken@example.com",
			Password: "correct horse",
		})
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})
}

func TestLogin(t *testing.T) {
	t.Run("issues token pair", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.addUser(t, "client@example.com", "secret-password", false)

		resp, err := f.uc.Login(context.Background(), &dto.LoginRequest{
			Email:    "client@example.com",
			Password: "secret-password",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, int64((15 * time.Minute).Seconds()), resp.ExpiresIn)

		// Both halves of the session are tracked in Redis.
		assert.Len(t, f.mr.Keys(), 2)
		for _, key := range f.mr.Keys() {
			assert.Contains(t, key, user.ID.String())
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		f := newAuthFixture(t)

		_, err := f.uc.Login(context.Background(), &dto.LoginRequest{
			Email:    "nobody@example.com",
			Password: "whatever",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newAuthFixture(t)
		f.addUser(t, "client@example.com", "secret-password", false)

		_, err := f.uc.Login(context.Background(), &dto.LoginRequest{
			Email:    "client@example.com",
			Password: "not-the-password",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("disabled account", func(t *testing.T) {
		f := newAuthFixture(t)
		f.addUser(t, "blocked@example.com", "secret-password", true)

		_, err := f.uc.Login(context.Background(), &dto.LoginRequest{
			Email:    "blocked@example.com",
			Password: "secret-password",
		})
		assert.ErrorIs(t, err, ErrAccountDisabled)
	})

	t.Run("disabled beats wrong password", func(t *testing.T) {
		f := newAuthFixture(t)
		f.addUser(t, "blocked@example.com", "secret-password", true)

		// Wrong credentials on a blocked account must not reveal that the
		// account is blocked.
		_, err := f.uc.Login(context.Background(), &dto.LoginRequest{
			Email:    "blocked@example.com",
			Password: "not-the-password",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestRefreshToken(t *testing.T) {
	login := func(t *testing.T, f *authFixture, email, password string) *dto.TokenResponse {
		t.Helper()
		resp, err := f.uc.Login(context.Background(), &dto.LoginRequest{Email: email, Password: password})
		require.NoError(t, err)
		return resp
	}

	t.Run("rotates the refresh token", func(t *testing.T) {
		f := newAuthFixture(t)
		f.addUser(t, "client@example.com", "secret-password", false)
		tokens := login(t, f, "client@example.com", "secret-password")

		rotated, err := f.uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
		require.NoError(t, err)
		assert.NotEqual(t, tokens.RefreshToken, rotated.RefreshToken)

		// The old refresh token is single-use.
		_, err = f.uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
		assert.ErrorIs(t, err, ErrTokenRevoked)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		f := newAuthFixture(t)
		f.addUser(t, "client@example.com", "secret-password", false)
		tokens := login(t, f, "client@example.com", "secret-password")

		_, err := f.uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: tokens.AccessToken})
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		f := newAuthFixture(t)

		_, err := f.uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: "not-a-jwt"})
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("account disabled after login", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.addUser(t, "client@example.com", "secret-password", false)
		tokens := login(t, f, "client@example.com", "secret-password")

		user.Disabled = true
		f.users.add(user)

		_, err := f.uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
		assert.ErrorIs(t, err, ErrAccountDisabled)
	})
}

func TestPasswordResetFlow(t *testing.T) {
	f := newAuthFixture(t)
	f.addUser(t, "client@example.com", "old-password", false)

	// An open session that must not survive the reset.
	_, err := f.uc.Login(context.Background(), &dto.LoginRequest{
		Email:    "client@example.com",
		Password: "old-password",
	})
	require.NoError(t, err)

	token, err := f.uc.ForgotPassword(context.Background(), &dto.ForgotPasswordRequest{Email: "client@example.com"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	require.NoError(t, f.uc.ResetPassword(context.Background(), &dto.ResetPasswordRequest{
		Token:       token,
		NewPassword: "new-password",
	}))

	_, err = f.uc.Login(context.Background(), &dto.LoginRequest{
		Email:    "client@example.com",
		Password: "old-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials, "old password no longer works")

	_, err = f.uc.Login(context.Background(), &dto.LoginRequest{
		Email:    "client@example.com",
		Password: "new-password",
	})
	assert.NoError(t, err, "new password works")

	// The reset token is single-use.
	f2err := f.uc.ResetPassword(context.Background(), &dto.ResetPasswordRequest{
		Token:       token,
		NewPassword: "another-password",
	})
	assert.ErrorIs(t, f2err, ErrResetTokenInvalid)
}

func TestPasswordReset_RevokesSessions(t *testing.T) {
	f := newAuthFixture(t)
	f.addUser(t, "client@example.com", "old-password", false)

	tokens, err := f.uc.Login(context.Background(), &dto.LoginRequest{
		Email:    "client@example.com",
		Password: "old-password",
	})
	require.NoError(t, err)

	resetToken, err := f.uc.ForgotPassword(context.Background(), &dto.ForgotPasswordRequest{Email: "client@example.com"})
	require.NoError(t, err)

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	require.NoError(t, f.uc.ResetPassword(context.Background(), &dto.ResetPasswordRequest{
		Token:       resetToken,
		NewPassword: "new-password",
	}))

	assert.Empty(t, f.mr.Keys(), "every stored token of the account is gone")

	_, err = f.uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.uc.ForgotPassword(context.Background(), &dto.ForgotPasswordRequest{Email: "nobody@example.com"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLogout(t *testing.T) {
	f := newAuthFixture(t)
	f.addUser(t, "client@example.com", "secret-password", false)

	tokens, err := f.uc.Login(context.Background(), &dto.LoginRequest{
		Email:    "client@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)
	require.Len(t, f.mr.Keys(), 2)

	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret"})
	accessClaims, err := jwtService.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	refreshClaims, err := jwtService.ValidateToken(tokens.RefreshToken)
	require.NoError(t, err)

	require.NoError(t, f.uc.Logout(context.Background(), accessClaims.TokenID, refreshClaims.TokenID))
	assert.Empty(t, f.mr.Keys())
}
