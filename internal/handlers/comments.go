package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/vikash-ftw/VideoTube-Backend/internal/database"
	"github.com/vikash-ftw/VideoTube-Backend/internal/logger"
	"github.com/vikash-ftw/VideoTube-Backend/internal/models"
	"github.com/vikash-ftw/VideoTube-Backend/internal/util"
	"gorm.io/gorm"
)

// AddComment handles POST /comments/:videoId
func (h *Handlers) AddComment(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	videoID := c.Param("videoId")

	var req struct {
		Content string `json:"content" binding:"required,min=1,max=2000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "content is required (max 2000 chars)")
		return
	}

	var video models.Video
	err := database.DB.Select("id", "is_published", "owner_id").First(&video, "id = ?", videoID).Error
	if util.HandleDBError(c, err, "video") {
		return
	}
	if !video.IsPublished && video.OwnerID != userID {
		util.RespondNotFound(c, "video")
		return
	}

	comment := models.Comment{
		VideoID: video.ID,
		OwnerID: userID,
		Content: req.Content,
	}
	if err := database.DB.Create(&comment).Error; err != nil {
		util.RespondInternalError(c, "failed to add comment")
		return
	}

	util.RespondCreated(c, comment, "comment added successfully")
}

// GetVideoComments handles GET /comments/:videoId with pagination,
// newest first.
func (h *Handlers) GetVideoComments(c *gin.Context) {
	videoID := c.Param("videoId")
	p := util.GetPagination(c)

	var video models.Video
	err := database.DB.Select("id").First(&video, "id = ?", videoID).Error
	if util.HandleDBError(c, err, "video") {
		return
	}

	var total int64
	err = database.DB.Model(&models.Comment{}).Where("video_id = ?", videoID).Count(&total).Error
	if err != nil {
		util.RespondInternalError(c, "failed to count comments")
		return
	}

	var comments []models.Comment
	err = database.DB.Preload("Owner").
		Where("video_id = ?", videoID).
		Order("created_at DESC").
		Limit(p.Limit).Offset(p.Offset()).
		Find(&comments).Error
	if err != nil {
		util.RespondInternalError(c, "failed to fetch comments")
		return
	}

	util.RespondOK(c, gin.H{
		"comments": comments,
		"page":     p.Page,
		"limit":    p.Limit,
		"total":    total,
	}, "comments fetched successfully")
}

// UpdateComment handles PATCH /comments/c/:commentId. Owner only.
func (h *Handlers) UpdateComment(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	commentID := c.Param("commentId")

	var req struct {
		Content string `json:"content" binding:"required,min=1,max=2000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "content is required (max 2000 chars)")
		return
	}

	var comment models.Comment
	err := database.DB.First(&comment, "id = ?", commentID).Error
	if util.HandleDBError(c, err, "comment") {
		return
	}
	if comment.OwnerID != userID {
		util.RespondForbidden(c, "only the owner can update this comment")
		return
	}

	if err := database.DB.Model(&comment).Update("content", req.Content).Error; err != nil {
		util.RespondInternalError(c, "failed to update comment")
		return
	}

	util.RespondOK(c, comment, "comment updated successfully")
}

// DeleteComment handles DELETE /comments/c/:commentId. Owner only.
// Likes on the comment go with it.
func (h *Handlers) DeleteComment(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	commentID := c.Param("commentId")

	var comment models.Comment
	err := database.DB.First(&comment, "id = ?", commentID).Error
	if util.HandleDBError(c, err, "comment") {
		return
	}
	if comment.OwnerID != userID {
		util.RespondForbidden(c, "only the owner can delete this comment")
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_id = ? AND target_kind = ?", comment.ID, models.LikeTargetComment).
			Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&comment).Error
	})
	if err != nil {
		logger.ErrorWithFields("Comment delete failed", err)
		util.RespondInternalError(c, "failed to delete comment")
		return
	}

	util.RespondOK(c, gin.H{}, "comment deleted successfully")
}
