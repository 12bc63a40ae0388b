package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/vikash-ftw/VideoTube-Backend/internal/database"
	"github.com/vikash-ftw/VideoTube-Backend/internal/logger"
	"github.com/vikash-ftw/VideoTube-Backend/internal/metrics"
	"github.com/vikash-ftw/VideoTube-Backend/internal/models"
	"github.com/vikash-ftw/VideoTube-Backend/internal/storage"
	"github.com/vikash-ftw/VideoTube-Backend/internal/util"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var allowedSortFields = map[string]string{
	"createdAt": "created_at",
	"views":     "views",
	"duration":  "duration",
	"title":     "title",
}

// ListVideos handles GET /videos. Public listing of published videos
// with pagination, optional text query, owner filter, and sorting.
func (h *Handlers) ListVideos(c *gin.Context) {
	p := util.GetPagination(c)

	query := database.DB.Model(&models.Video{}).Where("is_published = ?", true)

	if q := c.Query("query"); q != "" {
		pattern := "%" + q + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}
	if ownerID := c.Query("userId"); ownerID != "" {
		query = query.Where("owner_id = ?", ownerID)
	}

	sortBy := c.DefaultQuery("sortBy", "createdAt")
	column, ok := allowedSortFields[sortBy]
	if !ok {
		util.RespondBadRequest(c, "unsupported sortBy field")
		return
	}
	direction := "DESC"
	if c.DefaultQuery("sortType", "desc") == "asc" {
		direction = "ASC"
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		util.RespondInternalError(c, "failed to count videos")
		return
	}

	var videos []models.Video
	err := query.Preload("Owner").
		Order(column + " " + direction).
		Limit(p.Limit).Offset(p.Offset()).
		Find(&videos).Error
	if err != nil {
		util.RespondInternalError(c, "failed to fetch videos")
		return
	}

	util.RespondOK(c, gin.H{
		"videos": videos,
		"page":   p.Page,
		"limit":  p.Limit,
		"total":  total,
	}, "videos fetched successfully")
}

// PublishVideo handles POST /videos/publish. Multipart form with
// title, description, a video file and a thumbnail.
func (h *Handlers) PublishVideo(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	title := c.PostForm("title")
	description := c.PostForm("description")
	if title == "" || description == "" {
		util.RespondBadRequest(c, "title and description are required")
		return
	}

	videoFile, err := c.FormFile("videoFile")
	if err != nil {
		util.RespondBadRequest(c, "videoFile is required")
		return
	}
	thumbFile, err := c.FormFile("thumbnail")
	if err != nil {
		util.RespondBadRequest(c, "thumbnail is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), uploadTimeout)
	defer cancel()

	videoData, err := util.ReadUploadedFile(videoFile)
	if err != nil {
		util.RespondInternalError(c, "failed to read video upload")
		return
	}
	videoResult, err := h.uploader.UploadMedia(ctx, videoData, storage.MediaKindVideo, user.ID, videoFile.Filename)
	if err != nil {
		logger.ErrorWithFields("Video upload failed", err)
		util.RespondInternalError(c, "failed to upload video")
		return
	}

	thumbData, err := util.ReadUploadedFile(thumbFile)
	if err != nil {
		util.RespondInternalError(c, "failed to read thumbnail upload")
		return
	}
	thumbResult, err := h.uploader.UploadMedia(ctx, thumbData, storage.MediaKindThumbnail, user.ID, thumbFile.Filename)
	if err != nil {
		logger.ErrorWithFields("Thumbnail upload failed", err)
		util.RespondInternalError(c, "failed to upload thumbnail")
		return
	}

	video := models.Video{
		OwnerID:     user.ID,
		Title:       title,
		Description: description,
		VideoFile:   videoResult.URL,
		Thumbnail:   thumbResult.URL,
		Duration:    util.ParseFloat(c.PostForm("duration"), 0),
		IsPublished: true,
	}

	if err := database.DB.Create(&video).Error; err != nil {
		logger.ErrorWithFields("Video create failed", err)
		util.RespondInternalError(c, "failed to publish video")
		return
	}

	metrics.Get().VideosPublishedTotal.WithLabelValues().Inc()
	logger.Log.Info("Video published",
		logger.WithUserID(user.ID),
		zap.String("video_id", video.ID),
	)

	util.RespondCreated(c, video, "video published successfully")
}

// GetVideo handles GET /videos/:videoId. Unpublished videos are only
// visible to their owner.
func (h *Handlers) GetVideo(c *gin.Context) {
	videoID := c.Param("videoId")

	var video models.Video
	err := database.DB.Preload("Owner").First(&video, "id = ?", videoID).Error
	if util.HandleDBError(c, err, "video") {
		return
	}

	if !video.IsPublished {
		viewerID, _ := c.Get("user_id")
		if id, ok := viewerID.(string); !ok || id != video.OwnerID {
			util.RespondNotFound(c, "video")
			return
		}
	}

	likeCount, err := h.toggles.LikeCount(video.ID, models.LikeTargetVideo)
	if err != nil {
		util.RespondInternalError(c, "failed to count likes")
		return
	}

	isLiked := false
	if viewerID, exists := c.Get("user_id"); exists {
		if id, ok := viewerID.(string); ok {
			isLiked, _ = h.toggles.IsLiked(id, video.ID, models.LikeTargetVideo)
		}
	}

	util.RespondOK(c, gin.H{
		"video":     video,
		"likeCount": likeCount,
		"isLiked":   isLiked,
	}, "video fetched successfully")
}

// UpdateVideo handles PATCH /videos/:videoId. Owner only. Title,
// description and optionally a new thumbnail can change.
func (h *Handlers) UpdateVideo(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}
	videoID := c.Param("videoId")

	var video models.Video
	err := database.DB.First(&video, "id = ?", videoID).Error
	if util.HandleDBError(c, err, "video") {
		return
	}
	if video.OwnerID != user.ID {
		util.RespondForbidden(c, "only the owner can update this video")
		return
	}

	updates := map[string]interface{}{}
	if title := c.PostForm("title"); title != "" {
		updates["title"] = title
	}
	if description := c.PostForm("description"); description != "" {
		updates["description"] = description
	}

	if thumbFile, err := c.FormFile("thumbnail"); err == nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), uploadTimeout)
		defer cancel()

		thumbData, err := util.ReadUploadedFile(thumbFile)
		if err != nil {
			util.RespondInternalError(c, "failed to read thumbnail upload")
			return
		}
		thumbResult, err := h.uploader.UploadMedia(ctx, thumbData, storage.MediaKindThumbnail, user.ID, thumbFile.Filename)
		if err != nil {
			logger.ErrorWithFields("Thumbnail upload failed", err)
			util.RespondInternalError(c, "failed to upload thumbnail")
			return
		}
		updates["thumbnail"] = thumbResult.URL
	}

	if len(updates) == 0 {
		util.RespondBadRequest(c, "nothing to update")
		return
	}

	if err := database.DB.Model(&video).Updates(updates).Error; err != nil {
		util.RespondInternalError(c, "failed to update video")
		return
	}

	util.RespondOK(c, video, "video updated successfully")
}

// DeleteVideo handles DELETE /videos/:videoId. Owner only. Likes,
// comments and playlist memberships pointing at the video go with it.
func (h *Handlers) DeleteVideo(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}
	videoID := c.Param("videoId")

	var video models.Video
	err := database.DB.First(&video, "id = ?", videoID).Error
	if util.HandleDBError(c, err, "video") {
		return
	}
	if video.OwnerID != user.ID {
		util.RespondForbidden(c, "only the owner can delete this video")
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_id = ? AND target_kind = ?", video.ID, models.LikeTargetVideo).
			Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", video.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", video.ID).Delete(&models.PlaylistVideo{}).Error; err != nil {
			return err
		}
		return tx.Delete(&video).Error
	})
	if err != nil {
		logger.ErrorWithFields("Video delete failed", err)
		util.RespondInternalError(c, "failed to delete video")
		return
	}

	util.RespondOK(c, gin.H{}, "video deleted successfully")
}

// TogglePublish handles PATCH /videos/toggle/publish/:videoId
func (h *Handlers) TogglePublish(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}
	videoID := c.Param("videoId")

	var video models.Video
	err := database.DB.First(&video, "id = ?", videoID).Error
	if util.HandleDBError(c, err, "video") {
		return
	}
	if video.OwnerID != user.ID {
		util.RespondForbidden(c, "only the owner can change publish status")
		return
	}

	err = database.DB.Model(&video).Update("is_published", !video.IsPublished).Error
	if err != nil {
		util.RespondInternalError(c, "failed to toggle publish status")
		return
	}

	util.RespondOK(c, gin.H{"isPublished": video.IsPublished}, "publish status toggled")
}

// RecordView handles GET /videos/view/:videoId. Increments the view
// counter and appends to the viewer's watch history.
func (h *Handlers) RecordView(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	videoID := c.Param("videoId")

	var video models.Video
	err := database.DB.First(&video, "id = ?", videoID).Error
	if util.HandleDBError(c, err, "video") {
		return
	}
	if !video.IsPublished && video.OwnerID != userID {
		util.RespondNotFound(c, "video")
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&video).
			Update("views", gorm.Expr("views + 1")).Error; err != nil {
			return err
		}
		entry := models.WatchHistory{UserID: userID, VideoID: video.ID}
		return tx.Create(&entry).Error
	})
	if err != nil {
		logger.ErrorWithFields("View record failed", err)
		util.RespondInternalError(c, "failed to record view")
		return
	}

	metrics.Get().VideoViewsTotal.WithLabelValues().Inc()

	util.RespondOK(c, gin.H{"views": video.Views + 1}, "view recorded")
}
