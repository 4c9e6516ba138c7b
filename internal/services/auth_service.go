package services

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"yelloride/internal/config"
	"yelloride/internal/domain"
)

// AuthService issues staff tokens. There is a single admin account, defined
// in configuration; customer flows never authenticate.
type AuthService struct {
	Admin config.AdminConfig
	JWT   config.JWTConfig
}

// Same message for unknown user and wrong password.
var errBadCredentials = domain.ValidationError{Field: "credentials", Msg: "invalid username or password"}

func (s AuthService) expiration() time.Duration {
	if s.JWT.Expiration > 0 {
		return s.JWT.Expiration
	}
	return 24 * time.Hour
}

// Login checks the credentials and returns a signed token.
func (s AuthService) Login(username, password string) (string, error) {
	if s.Admin.PasswordHash == "" || s.JWT.Secret == "" {
		return "", domain.InternalError{Msg: "admin auth not configured"}
	}
	if strings.TrimSpace(username) != s.Admin.Username {
		return "", errBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.Admin.PasswordHash), []byte(password)); err != nil {
		return "", errBadCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  s.Admin.Username,
		"role": "admin",
		"exp":  time.Now().Add(s.expiration()).Unix(),
	})
	return token.SignedString([]byte(s.JWT.Secret))
}

// Verify parses a bearer token and returns the subject.
func (s AuthService) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.JWT.Secret), nil
	})
	if err != nil || !token.Valid {
		return "", domain.ValidationError{Field: "token", Msg: "invalid token", Err: err}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ValidationError{Field: "token", Msg: "invalid token"}
	}
	sub, _ := claims["sub"].(string)
	return sub, nil
}
