package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/vikash-ftw/VideoTube-Backend/internal/database"
	"github.com/vikash-ftw/VideoTube-Backend/internal/models"
	"github.com/vikash-ftw/VideoTube-Backend/internal/social"
	"github.com/vikash-ftw/VideoTube-Backend/internal/util"
)

// ToggleSubscription handles POST /subscriptions/c/:channelId
func (h *Handlers) ToggleSubscription(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	channelID := c.Param("channelId")

	result, err := h.toggles.ToggleSubscription(userID, channelID)
	if err != nil {
		switch {
		case errors.Is(err, social.ErrTargetNotFound):
			util.RespondNotFound(c, "channel")
		case errors.Is(err, social.ErrSelfSubscribe):
			util.RespondBadRequest(c, "cannot subscribe to your own channel")
		default:
			util.RespondInternalError(c, "failed to toggle subscription")
		}
		return
	}

	message := "unsubscribed"
	if result.Toggled {
		message = "subscribed"
	}
	util.RespondOK(c, result, message)
}

// GetChannelSubscribers handles GET /subscriptions/c/:channelId
func (h *Handlers) GetChannelSubscribers(c *gin.Context) {
	channelID := c.Param("channelId")
	p := util.GetPagination(c)

	var channel models.User
	err := database.DB.Select("id").First(&channel, "id = ?", channelID).Error
	if util.HandleDBError(c, err, "channel") {
		return
	}

	var subs []models.Subscription
	err = database.DB.Preload("Subscriber").
		Where("channel_id = ?", channelID).
		Order("created_at DESC").
		Limit(p.Limit).Offset(p.Offset()).
		Find(&subs).Error
	if err != nil {
		util.RespondInternalError(c, "failed to fetch subscribers")
		return
	}

	subscribers := make([]models.User, 0, len(subs))
	for _, s := range subs {
		subscribers = append(subscribers, s.Subscriber)
	}

	util.RespondOK(c, subscribers, "subscribers fetched successfully")
}

// GetSubscribedChannels handles GET /subscriptions/u/:subscriberId
func (h *Handlers) GetSubscribedChannels(c *gin.Context) {
	subscriberID := c.Param("subscriberId")
	p := util.GetPagination(c)

	var subscriber models.User
	err := database.DB.Select("id").First(&subscriber, "id = ?", subscriberID).Error
	if util.HandleDBError(c, err, "user") {
		return
	}

	var subs []models.Subscription
	err = database.DB.Preload("Channel").
		Where("subscriber_id = ?", subscriberID).
		Order("created_at DESC").
		Limit(p.Limit).Offset(p.Offset()).
		Find(&subs).Error
	if err != nil {
		util.RespondInternalError(c, "failed to fetch subscribed channels")
		return
	}

	channels := make([]models.User, 0, len(subs))
	for _, s := range subs {
		channels = append(channels, s.Channel)
	}

	util.RespondOK(c, channels, "subscribed channels fetched successfully")
}
