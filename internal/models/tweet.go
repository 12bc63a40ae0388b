package models

import (
	"time"

	"gorm.io/gorm"
)

// Tweet represents a short text post on a user's channel
type Tweet struct {
	ID      string `gorm:"primaryKey;type:uuid" json:"id"`
	OwnerID string `gorm:"not null;index" json:"ownerId"`
	Owner   User   `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`

	Content string `gorm:"type:text;not null" json:"content"`

	// GORM fields
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (t *Tweet) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = generateUUID()
	}
	return nil
}
