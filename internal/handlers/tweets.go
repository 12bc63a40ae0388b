package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/vikash-ftw/VideoTube-Backend/internal/database"
	"github.com/vikash-ftw/VideoTube-Backend/internal/logger"
	"github.com/vikash-ftw/VideoTube-Backend/internal/models"
	"github.com/vikash-ftw/VideoTube-Backend/internal/util"
	"gorm.io/gorm"
)

// CreateTweet handles POST /tweets
func (h *Handlers) CreateTweet(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var req struct {
		Content string `json:"content" binding:"required,min=1,max=500"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "content is required (max 500 chars)")
		return
	}

	tweet := models.Tweet{OwnerID: userID, Content: req.Content}
	if err := database.DB.Create(&tweet).Error; err != nil {
		util.RespondInternalError(c, "failed to create tweet")
		return
	}

	util.RespondCreated(c, tweet, "tweet created successfully")
}

// GetUserTweets handles GET /tweets/user/:userId, newest first.
func (h *Handlers) GetUserTweets(c *gin.Context) {
	ownerID := c.Param("userId")
	p := util.GetPagination(c)

	var owner models.User
	err := database.DB.Select("id").First(&owner, "id = ?", ownerID).Error
	if util.HandleDBError(c, err, "user") {
		return
	}

	var tweets []models.Tweet
	err = database.DB.Preload("Owner").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Limit(p.Limit).Offset(p.Offset()).
		Find(&tweets).Error
	if err != nil {
		util.RespondInternalError(c, "failed to fetch tweets")
		return
	}

	util.RespondOK(c, tweets, "tweets fetched successfully")
}

// UpdateTweet handles PATCH /tweets/:tweetId. Owner only.
func (h *Handlers) UpdateTweet(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	tweetID := c.Param("tweetId")

	var req struct {
		Content string `json:"content" binding:"required,min=1,max=500"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "content is required (max 500 chars)")
		return
	}

	var tweet models.Tweet
	err := database.DB.First(&tweet, "id = ?", tweetID).Error
	if util.HandleDBError(c, err, "tweet") {
		return
	}
	if tweet.OwnerID != userID {
		util.RespondForbidden(c, "only the owner can update this tweet")
		return
	}

	if err := database.DB.Model(&tweet).Update("content", req.Content).Error; err != nil {
		util.RespondInternalError(c, "failed to update tweet")
		return
	}

	util.RespondOK(c, tweet, "tweet updated successfully")
}

// DeleteTweet handles DELETE /tweets/:tweetId. Owner only.
func (h *Handlers) DeleteTweet(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	tweetID := c.Param("tweetId")

	var tweet models.Tweet
	err := database.DB.First(&tweet, "id = ?", tweetID).Error
	if util.HandleDBError(c, err, "tweet") {
		return
	}
	if tweet.OwnerID != userID {
		util.RespondForbidden(c, "only the owner can delete this tweet")
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_id = ? AND target_kind = ?", tweet.ID, models.LikeTargetTweet).
			Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&tweet).Error
	})
	if err != nil {
		logger.ErrorWithFields("Tweet delete failed", err)
		util.RespondInternalError(c, "failed to delete tweet")
		return
	}

	util.RespondOK(c, gin.H{}, "tweet deleted successfully")
}
