package models

import (
	"time"

	"gorm.io/gorm"
)

// Subscription is a toggleable edge from a subscriber to a channel
// (both users). At most one per (subscriber, channel); the composite
// unique index is created in database.createIndexes.
type Subscription struct {
	ID           string `gorm:"primaryKey;type:uuid" json:"id"`
	SubscriberID string `gorm:"not null;index" json:"subscriberId"`
	Subscriber   User   `gorm:"foreignKey:SubscriberID" json:"subscriber,omitempty"`
	ChannelID    string `gorm:"not null;index" json:"channelId"`
	Channel      User   `gorm:"foreignKey:ChannelID" json:"channel,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = generateUUID()
	}
	return nil
}
