package models

import (
	"time"

	"gorm.io/gorm"
)

// Playlist is an ordered, user-owned collection of videos
type Playlist struct {
	ID      string `gorm:"primaryKey;type:uuid" json:"id"`
	OwnerID string `gorm:"not null;index" json:"ownerId"`
	Owner   User   `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`

	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	Videos []PlaylistVideo `gorm:"foreignKey:PlaylistID" json:"videos,omitempty"`

	// GORM fields
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// PlaylistVideo is a membership row. The composite unique index keeps a
// video from appearing in the same playlist twice; Position preserves
// insertion order.
type PlaylistVideo struct {
	ID         string   `gorm:"primaryKey;type:uuid" json:"id"`
	PlaylistID string   `gorm:"not null;index" json:"playlistId"`
	Playlist   Playlist `gorm:"foreignKey:PlaylistID" json:"-"`
	VideoID    string   `gorm:"not null;index" json:"videoId"`
	Video      Video    `gorm:"foreignKey:VideoID" json:"video,omitempty"`

	Position int `gorm:"not null;default:0" json:"position"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName overrides the default table name
func (PlaylistVideo) TableName() string {
	return "playlist_videos"
}

func (p *Playlist) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = generateUUID()
	}
	return nil
}

func (pv *PlaylistVideo) BeforeCreate(tx *gorm.DB) error {
	if pv.ID == "" {
		pv.ID = generateUUID()
	}
	return nil
}
