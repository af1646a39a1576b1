package services

import (
	"giftmarketBack/internal/models"
	"giftmarketBack/utils"
)

// AuthService gates admin operations behind a single shared secret. There is
// no session state: the bearer token is derived from the password itself and
// never expires or gets revoked.
type AuthService struct {
	AdminPassword string
}

// Login checks the submitted password and returns the admin bearer token.
func (s *AuthService) Login(password string) (string, error) {
	if password == "" || password != s.AdminPassword {
		return "", models.ErrUnauthorized
	}
	return utils.AdminToken(password), nil
}

// ValidToken reports whether the presented bearer value matches the one
// derived from the configured admin password.
func (s *AuthService) ValidToken(token string) bool {
	return token != "" && token == utils.AdminToken(s.AdminPassword)
}
