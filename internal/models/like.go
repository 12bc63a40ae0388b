package models

import (
	"time"

	"gorm.io/gorm"
)

// LikeTarget identifies what kind of entity a like points at.
type LikeTarget string

const (
	LikeTargetVideo   LikeTarget = "video"
	LikeTargetComment LikeTarget = "comment"
	LikeTargetTweet   LikeTarget = "tweet"
)

// Valid reports whether t is one of the known like targets.
func (t LikeTarget) Valid() bool {
	switch t {
	case LikeTargetVideo, LikeTargetComment, LikeTargetTweet:
		return true
	}
	return false
}

// Like is a toggleable edge from a user to a video, comment, or tweet.
// At most one like per (user, target, kind); the composite unique index
// is created in database.createIndexes and backs the toggle semantics.
type Like struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID string `gorm:"not null;index" json:"userId"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`

	TargetID   string     `gorm:"not null;index" json:"targetId"`
	TargetKind LikeTarget `gorm:"not null" json:"targetKind"`

	CreatedAt time.Time `json:"createdAt"`
}

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = generateUUID()
	}
	return nil
}
