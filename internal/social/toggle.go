package social

import (
	"errors"
	"fmt"

	"github.com/vikash-ftw/VideoTube-Backend/internal/metrics"
	"github.com/vikash-ftw/VideoTube-Backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrTargetNotFound = errors.New("toggle target not found")
	ErrSelfSubscribe  = errors.New("cannot subscribe to own channel")
	ErrInvalidTarget  = errors.New("invalid toggle target kind")
)

// ToggleService flips like and subscription edges. A toggle deletes
// the edge if it exists and creates it otherwise, inside a single
// transaction. The unique indexes on both edge tables make concurrent
// duplicate inserts fail with a duplicate-key error, which is treated
// as "edge already on".
type ToggleService struct {
	db *gorm.DB
}

// NewToggleService creates a toggle service
func NewToggleService(db *gorm.DB) *ToggleService {
	return &ToggleService{db: db}
}

// ToggleResult reports the state of the edge after a toggle.
type ToggleResult struct {
	Toggled bool `json:"toggled"` // true if the edge now exists
}

// ToggleLike flips a like edge for the given target. The target row
// must exist; its kind decides which table is checked.
func (s *ToggleService) ToggleLike(userID, targetID string, kind models.LikeTarget) (*ToggleResult, error) {
	if !kind.Valid() {
		return nil, ErrInvalidTarget
	}

	if err := s.targetExists(targetID, kind); err != nil {
		return nil, err
	}

	var result ToggleResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND target_id = ? AND target_kind = ?", userID, targetID, kind).
			Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			result.Toggled = false
			return nil
		}

		// The insert runs under a savepoint: on Postgres a unique
		// violation aborts the whole transaction otherwise, and the
		// commit below would fail.
		createErr := tx.Transaction(func(tx *gorm.DB) error {
			like := models.Like{UserID: userID, TargetID: targetID, TargetKind: kind}
			return tx.Create(&like).Error
		})
		if createErr != nil {
			if errors.Is(createErr, gorm.ErrDuplicatedKey) {
				// Lost a race with a concurrent toggle-on; the edge
				// exists, which is the state we wanted.
				result.Toggled = true
				return nil
			}
			return createErr
		}
		result.Toggled = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to toggle like: %w", err)
	}

	state := "off"
	if result.Toggled {
		state = "on"
	}
	metrics.Get().TogglesTotal.WithLabelValues("like:"+string(kind), state).Inc()

	return &result, nil
}

// ToggleSubscription flips a subscription edge from subscriber to
// channel. Subscribing to yourself is rejected.
func (s *ToggleService) ToggleSubscription(subscriberID, channelID string) (*ToggleResult, error) {
	if subscriberID == channelID {
		return nil, ErrSelfSubscribe
	}

	var channel models.User
	err := s.db.Select("id").Where("id = ?", channelID).First(&channel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTargetNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to load channel: %w", err)
	}

	var result ToggleResult
	err = s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
			Delete(&models.Subscription{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			result.Toggled = false
			return nil
		}

		createErr := tx.Transaction(func(tx *gorm.DB) error {
			sub := models.Subscription{SubscriberID: subscriberID, ChannelID: channelID}
			return tx.Create(&sub).Error
		})
		if createErr != nil {
			if errors.Is(createErr, gorm.ErrDuplicatedKey) {
				result.Toggled = true
				return nil
			}
			return createErr
		}
		result.Toggled = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to toggle subscription: %w", err)
	}

	state := "off"
	if result.Toggled {
		state = "on"
	}
	metrics.Get().TogglesTotal.WithLabelValues("subscription", state).Inc()

	return &result, nil
}

// targetExists checks that the liked row is present in the table the
// kind names.
func (s *ToggleService) targetExists(targetID string, kind models.LikeTarget) error {
	var err error
	switch kind {
	case models.LikeTargetVideo:
		err = s.db.Select("id").Where("id = ?", targetID).First(&models.Video{}).Error
	case models.LikeTargetComment:
		err = s.db.Select("id").Where("id = ?", targetID).First(&models.Comment{}).Error
	case models.LikeTargetTweet:
		err = s.db.Select("id").Where("id = ?", targetID).First(&models.Tweet{}).Error
	default:
		return ErrInvalidTarget
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrTargetNotFound
	}
	return err
}

// LikeCount returns the number of likes on a target.
func (s *ToggleService) LikeCount(targetID string, kind models.LikeTarget) (int64, error) {
	var count int64
	err := s.db.Model(&models.Like{}).
		Where("target_id = ? AND target_kind = ?", targetID, kind).
		Count(&count).Error
	return count, err
}

// IsLiked reports whether the user currently likes the target.
func (s *ToggleService) IsLiked(userID, targetID string, kind models.LikeTarget) (bool, error) {
	var count int64
	err := s.db.Model(&models.Like{}).
		Where("user_id = ? AND target_id = ? AND target_kind = ?", userID, targetID, kind).
		Count(&count).Error
	return count > 0, err
}

// SubscriberCount returns the number of subscribers of a channel.
func (s *ToggleService) SubscriberCount(channelID string) (int64, error) {
	var count int64
	err := s.db.Model(&models.Subscription{}).
		Where("channel_id = ?", channelID).
		Count(&count).Error
	return count, err
}

// IsSubscribed reports whether subscriber currently follows channel.
func (s *ToggleService) IsSubscribed(subscriberID, channelID string) (bool, error) {
	var count int64
	err := s.db.Model(&models.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Count(&count).Error
	return count > 0, err
}
