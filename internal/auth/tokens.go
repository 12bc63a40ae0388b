package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vikash-ftw/VideoTube-Backend/internal/models"
)

// TokenPair bundles the two tokens returned by login and rotation.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// GenerateAccessToken creates a short-lived JWT carrying the user's
// identity claims. It is never persisted server-side.
func (s *Service) GenerateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":       user.ID,
		"email":    user.Email,
		"username": user.Username,
		"fullName": user.FullName,
		"iat":      now.Unix(),
		"exp":      now.Add(s.cfg.AccessTokenExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.cfg.AccessTokenSecret)
}

// GenerateRefreshToken creates a long-lived JWT carrying only the user
// ID. The issued value is persisted on the user row as the single
// active refresh token.
func (s *Service) GenerateRefreshToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":  userID,
		"iat": now.Unix(),
		"exp": now.Add(s.cfg.RefreshTokenExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.cfg.RefreshTokenSecret)
}

// parseToken validates signature and expiry and returns the "id" claim.
func parseToken(tokenString string, secret []byte) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	userID, ok := claims["id"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}

	return userID, nil
}

// ParseAccessToken validates an access token and returns the user ID claim.
func (s *Service) ParseAccessToken(tokenString string) (string, error) {
	return parseToken(tokenString, s.cfg.AccessTokenSecret)
}

// ParseRefreshToken validates a refresh token and returns the user ID claim.
func (s *Service) ParseRefreshToken(tokenString string) (string, error) {
	return parseToken(tokenString, s.cfg.RefreshTokenSecret)
}
