package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vikash-ftw/VideoTube-Backend/internal/config"
	"github.com/vikash-ftw/VideoTube-Backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user with email already exists")
	ErrUsernameExists     = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingToken       = errors.New("refresh token missing")
	ErrInvalidToken       = errors.New("token is invalid or expired")

	// ErrTokenReuse means the presented refresh token verified
	// cryptographically but is not the user's current one. Either it
	// was already rotated or the session was revoked.
	ErrTokenReuse = errors.New("refresh token already used or revoked")

	ErrWrongPassword = errors.New("old password is incorrect")
)

// Service handles registration, login, and the token lifecycle
type Service struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewService creates a new authentication service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{db: db, cfg: cfg}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// RegisterRequest carries the text fields of the multipart register form.
// Avatar and cover image files are uploaded separately by the handler.
type RegisterRequest struct {
	Username string `form:"username" json:"username" binding:"required,min=3,max=30"`
	Email    string `form:"email" json:"email" binding:"required,email"`
	FullName string `form:"fullName" json:"fullName" binding:"required,min=1,max=80"`
	Password string `form:"password" json:"password" binding:"required,min=8"`
}

// LoginRequest accepts either username or email plus the password.
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new user with a bcrypt-hashed password.
// avatarURL is required; coverImageURL may be empty.
func (s *Service) Register(req RegisterRequest, avatarURL, coverImageURL string) (*models.User, error) {
	var existing models.User
	err := s.db.Where("LOWER(email) = LOWER(?) OR LOWER(username) = LOWER(?)", req.Email, req.Username).
		First(&existing).Error
	if err == nil {
		if existing.Email == normalize(req.Email) {
			return nil, ErrUserExists
		}
		return nil, ErrUsernameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Username:   req.Username,
		Email:      req.Email,
		FullName:   req.FullName,
		Password:   string(hashed),
		Avatar:     avatarURL,
		CoverImage: coverImageURL,
	}

	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// Login verifies credentials and issues a fresh token pair. The new
// refresh token replaces any previously stored one, so logging in on a
// second device invalidates the first device's refresh token.
func (s *Service) Login(req LoginRequest) (*TokenPair, *models.User, error) {
	if req.Username == "" && req.Email == "" {
		return nil, nil, ErrInvalidCredentials
	}

	var user models.User
	err := s.db.Where("LOWER(username) = LOWER(?) OR LOWER(email) = LOWER(?)", req.Username, req.Email).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrUserNotFound
	} else if err != nil {
		return nil, nil, fmt.Errorf("database error: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokenPair(&user)
	if err != nil {
		return nil, nil, err
	}

	return pair, &user, nil
}

// issueTokenPair generates both tokens and persists the refresh token
// as the user's single active session.
func (s *Service) issueTokenPair(user *models.User) (*TokenPair, error) {
	accessToken, err := s.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshToken, err := s.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	err = s.db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("refresh_token", refreshToken).Error
	if err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}
	user.RefreshToken = &refreshToken

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Rotate exchanges a valid refresh token for a new token pair. The
// presented token must match the stored one exactly; a verified token
// that does not match is treated as reuse and rejected.
func (s *Service) Rotate(presented string) (*TokenPair, error) {
	if presented == "" {
		return nil, ErrMissingToken
	}

	userID, err := s.ParseRefreshToken(presented)
	if err != nil {
		return nil, ErrInvalidToken
	}

	var user models.User
	err = s.db.Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidToken
	} else if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	if user.RefreshToken == nil || *user.RefreshToken != presented {
		return nil, ErrTokenReuse
	}

	return s.issueTokenPair(&user)
}

// Revoke clears the stored refresh token, ending the session. It is
// idempotent: revoking an already-logged-out user succeeds.
func (s *Service) Revoke(userID string) error {
	err := s.db.Model(&models.User{}).Where("id = ?", userID).
		Update("refresh_token", nil).Error
	if err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// ValidateAccessToken verifies an access token and loads the user it
// names. Password and refresh token are never hydrated.
func (s *Service) ValidateAccessToken(tokenString string) (*models.User, error) {
	userID, err := s.ParseAccessToken(tokenString)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = s.db.Omit("password", "refresh_token").Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidToken
	} else if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &user, nil
}

// ChangePassword verifies the old password and stores a hash of the
// new one. Existing tokens stay valid.
func (s *Service) ChangePassword(userID, oldPassword, newPassword string) error {
	var user models.User
	err := s.db.Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	} else if err != nil {
		return fmt.Errorf("database error: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	err = s.db.Model(&models.User{}).Where("id = ?", userID).
		Update("password", string(hashed)).Error
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}
