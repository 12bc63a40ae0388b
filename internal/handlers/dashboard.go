package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/vikash-ftw/VideoTube-Backend/internal/database"
	"github.com/vikash-ftw/VideoTube-Backend/internal/models"
	"github.com/vikash-ftw/VideoTube-Backend/internal/util"
)

// ChannelStats handles GET /dashboard/stats. Aggregates for the
// signed-in user's own channel.
func (h *Handlers) ChannelStats(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var totalVideos int64
	err := database.DB.Model(&models.Video{}).Where("owner_id = ?", userID).Count(&totalVideos).Error
	if err != nil {
		util.RespondInternalError(c, "failed to count videos")
		return
	}

	var totalViews int64
	row := database.DB.Model(&models.Video{}).
		Where("owner_id = ?", userID).
		Select("COALESCE(SUM(views), 0)").Row()
	if err := row.Scan(&totalViews); err != nil {
		util.RespondInternalError(c, "failed to sum views")
		return
	}

	totalSubscribers, err := h.toggles.SubscriberCount(userID)
	if err != nil {
		util.RespondInternalError(c, "failed to count subscribers")
		return
	}

	var totalLikes int64
	err = database.DB.Model(&models.Like{}).
		Joins("JOIN videos ON videos.id = likes.target_id AND likes.target_kind = ?", models.LikeTargetVideo).
		Where("videos.owner_id = ?", userID).
		Count(&totalLikes).Error
	if err != nil {
		util.RespondInternalError(c, "failed to count likes")
		return
	}

	util.RespondOK(c, gin.H{
		"totalVideos":      totalVideos,
		"totalViews":       totalViews,
		"totalSubscribers": totalSubscribers,
		"totalLikes":       totalLikes,
	}, "channel stats fetched successfully")
}

// ChannelVideos handles GET /dashboard/videos. All videos owned by the
// signed-in user, published or not.
func (h *Handlers) ChannelVideos(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	p := util.GetPagination(c)

	var videos []models.Video
	err := database.DB.
		Where("owner_id = ?", userID).
		Order("created_at DESC").
		Limit(p.Limit).Offset(p.Offset()).
		Find(&videos).Error
	if err != nil {
		util.RespondInternalError(c, "failed to fetch channel videos")
		return
	}

	util.RespondOK(c, videos, "channel videos fetched successfully")
}
