package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment on a video
type Comment struct {
	ID      string `gorm:"primaryKey;type:uuid" json:"id"`
	VideoID string `gorm:"not null;index" json:"videoId"`
	Video   Video  `gorm:"foreignKey:VideoID" json:"-"`
	OwnerID string `gorm:"not null;index" json:"ownerId"`
	Owner   User   `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`

	Content string `gorm:"type:text;not null" json:"content"`

	// GORM fields
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = generateUUID()
	}
	return nil
}
