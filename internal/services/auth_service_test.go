package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"yelloride/internal/config"
	"yelloride/internal/domain"
)

func testAuthService(t *testing.T) AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	return AuthService{
		Admin: config.AdminConfig{Username: "admin", PasswordHash: string(hash)},
		JWT:   config.JWTConfig{Secret: "test-secret", Expiration: time.Hour},
	}
}

func TestLoginAndVerify(t *testing.T) {
	svc := testAuthService(t)

	token, err := svc.Login("admin", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sub, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", sub)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := testAuthService(t)
	_, err := svc.Login("admin", "nope")
	assert.True(t, domain.IsValidation(err))
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := testAuthService(t)
	_, err := svc.Login("root", "s3cret")
	assert.True(t, domain.IsValidation(err))
}

func TestLogin_Unconfigured(t *testing.T) {
	svc := AuthService{}
	_, err := svc.Login("admin", "s3cret")
	assert.True(t, domain.IsInternal(err))
}

func TestVerify_TamperedToken(t *testing.T) {
	svc := testAuthService(t)
	token, err := svc.Login("admin", "s3cret")
	require.NoError(t, err)

	_, err = svc.Verify(token + "x")
	assert.Error(t, err)

	other := svc
	other.JWT.Secret = "different"
	_, err = other.Verify(token)
	assert.Error(t, err)
}
