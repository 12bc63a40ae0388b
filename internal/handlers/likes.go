package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/vikash-ftw/VideoTube-Backend/internal/database"
	"github.com/vikash-ftw/VideoTube-Backend/internal/models"
	"github.com/vikash-ftw/VideoTube-Backend/internal/social"
	"github.com/vikash-ftw/VideoTube-Backend/internal/util"
)

// ToggleVideoLike handles POST /likes/toggle/v/:videoId
func (h *Handlers) ToggleVideoLike(c *gin.Context) {
	h.toggleLike(c, c.Param("videoId"), models.LikeTargetVideo)
}

// ToggleCommentLike handles POST /likes/toggle/c/:commentId
func (h *Handlers) ToggleCommentLike(c *gin.Context) {
	h.toggleLike(c, c.Param("commentId"), models.LikeTargetComment)
}

// ToggleTweetLike handles POST /likes/toggle/t/:tweetId
func (h *Handlers) ToggleTweetLike(c *gin.Context) {
	h.toggleLike(c, c.Param("tweetId"), models.LikeTargetTweet)
}

func (h *Handlers) toggleLike(c *gin.Context, targetID string, kind models.LikeTarget) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	result, err := h.toggles.ToggleLike(userID, targetID, kind)
	if err != nil {
		switch {
		case errors.Is(err, social.ErrTargetNotFound):
			util.RespondNotFound(c, string(kind))
		case errors.Is(err, social.ErrInvalidTarget):
			util.RespondBadRequest(c, "invalid like target")
		default:
			util.RespondInternalError(c, "failed to toggle like")
		}
		return
	}

	message := "like removed"
	if result.Toggled {
		message = "like added"
	}
	util.RespondOK(c, result, message)
}

// GetLikedVideos handles GET /likes/videos. Returns the signed-in
// user's liked videos, most recently liked first.
func (h *Handlers) GetLikedVideos(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	p := util.GetPagination(c)

	var likes []models.Like
	err := database.DB.
		Where("user_id = ? AND target_kind = ?", userID, models.LikeTargetVideo).
		Order("created_at DESC").
		Limit(p.Limit).Offset(p.Offset()).
		Find(&likes).Error
	if err != nil {
		util.RespondInternalError(c, "failed to fetch likes")
		return
	}

	if len(likes) == 0 {
		util.RespondOK(c, []models.Video{}, "liked videos fetched successfully")
		return
	}

	ids := make([]string, 0, len(likes))
	for _, like := range likes {
		ids = append(ids, like.TargetID)
	}

	var videos []models.Video
	err = database.DB.Preload("Owner").
		Where("id IN ? AND is_published = ?", ids, true).
		Find(&videos).Error
	if err != nil {
		util.RespondInternalError(c, "failed to fetch liked videos")
		return
	}

	// Preserve like order
	byID := make(map[string]models.Video, len(videos))
	for _, v := range videos {
		byID[v.ID] = v
	}
	ordered := make([]models.Video, 0, len(videos))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			ordered = append(ordered, v)
		}
	}

	util.RespondOK(c, ordered, "liked videos fetched successfully")
}
