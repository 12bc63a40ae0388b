package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a VideoTube account. A user is also a "channel" that
// other users can subscribe to.
type User struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	FullName string `gorm:"not null;index" json:"fullName"`

	// Bcrypt hash. Rehashed only when the password field itself changes.
	Password string `gorm:"not null" json:"-"`

	Avatar     string `gorm:"not null" json:"avatar"`
	CoverImage string `json:"coverImage,omitempty"`

	// Single active refresh token. Overwritten on login/rotation and
	// cleared on logout; a presented token that no longer matches this
	// value is treated as reuse.
	RefreshToken *string `gorm:"type:text" json:"-"`

	// GORM fields
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// WatchHistory records a video view by a user, ordered by WatchedAt.
type WatchHistory struct {
	ID      string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID  string `gorm:"not null;index" json:"userId"`
	User    User   `gorm:"foreignKey:UserID" json:"-"`
	VideoID string `gorm:"not null;index" json:"videoId"`
	Video   Video  `gorm:"foreignKey:VideoID" json:"video,omitempty"`

	WatchedAt time.Time `gorm:"not null;index" json:"watchedAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName overrides the default table name
func (WatchHistory) TableName() string {
	return "watch_history"
}

// BeforeSave normalizes username and email. Uniqueness is enforced
// case-insensitively by storing the lowercased form.
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.Username = strings.ToLower(strings.TrimSpace(u.Username))
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return nil
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = generateUUID()
	}
	return nil
}

func (w *WatchHistory) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = generateUUID()
	}
	if w.WatchedAt.IsZero() {
		w.WatchedAt = time.Now().UTC()
	}
	return nil
}

// Helper function for UUID generation
func generateUUID() string {
	return uuid.New().String()
}
