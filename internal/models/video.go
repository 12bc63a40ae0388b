package models

import (
	"time"

	"gorm.io/gorm"
)

// Video represents a published video with its cloud-storage URLs.
// Owner is immutable after creation; mutations are owner-gated.
type Video struct {
	ID      string `gorm:"primaryKey;type:uuid" json:"id"`
	OwnerID string `gorm:"not null;index" json:"ownerId"`
	Owner   User   `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`

	VideoFile string  `gorm:"not null" json:"videoFile"`
	Thumbnail string  `gorm:"not null" json:"thumbnail"`
	Duration  float64 `json:"duration"` // seconds

	Views       int  `gorm:"default:0" json:"views"`
	IsPublished bool `gorm:"default:true" json:"isPublished"`

	// GORM fields
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (v *Video) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = generateUUID()
	}
	return nil
}
