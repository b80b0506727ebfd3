package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/promptops/platform-api/internal/platform/apierr"
	"github.com/promptops/platform-api/internal/platform/logger"
)

// TokenService issues and verifies the signed session tokens that carry
// caller identity. Tokens are symmetric HS256: subject is the user id,
// the username rides along as a claim.
type TokenService interface {
	Issue(userID uuid.UUID, username string) (string, error)
	Verify(tokenString string) (uuid.UUID, string, error)
	AccessTTL() time.Duration
}

type tokenService struct {
	log       *logger.Logger
	secretKey []byte
	accessTTL time.Duration
}

func NewTokenService(log *logger.Logger, secretKey string, accessTTL time.Duration) TokenService {
	return &tokenService{
		log:       log.With("service", "TokenService"),
		secretKey: []byte(secretKey),
		accessTTL: accessTTL,
	}
}

func (ts *tokenService) Issue(userID uuid.UUID, username string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      userID.String(),
		"username": username,
		"iat":      now.Unix(),
		"exp":      now.Add(ts.accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ts.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (ts *tokenService) Verify(tokenString string) (uuid.UUID, string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return ts.secretKey, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return uuid.Nil, "", apierr.Unauthorized("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, "", apierr.Unauthorized("invalid token claims")
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return uuid.Nil, "", apierr.Unauthorized("invalid token subject")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, "", apierr.Unauthorized("invalid token subject")
	}
	username, _ := claims["username"].(string)
	if username == "" {
		return uuid.Nil, "", apierr.Unauthorized("invalid token claims")
	}
	return userID, username, nil
}

func (ts *tokenService) AccessTTL() time.Duration {
	return ts.accessTTL
}
