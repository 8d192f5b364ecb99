package services

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 24 * time.Hour

// AuthService guards the mutating endpoints. The league has a single admin
// credential; there are no per-player accounts.
type AuthService interface {
	Login(password string) (string, error)
}

type authService struct {
	adminPasswordHash string
	jwtSecret         []byte
}

func NewAuthService(adminPasswordHash, jwtSecret string) AuthService {
	return &authService{
		adminPasswordHash: adminPasswordHash,
		jwtSecret:         []byte(jwtSecret),
	}
}

// Login checks the admin password against its bcrypt hash and issues a JWT.
func (s *authService) Login(password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(s.adminPasswordHash), []byte(password)); err != nil {
		return "", ErrAuthInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"role": "admin",
		"iat":  now.Unix(),
		"exp":  now.Add(tokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", err
	}
	return signed, nil
}
