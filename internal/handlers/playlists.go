package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/vikash-ftw/VideoTube-Backend/internal/database"
	"github.com/vikash-ftw/VideoTube-Backend/internal/models"
	"github.com/vikash-ftw/VideoTube-Backend/internal/util"
	"gorm.io/gorm"
)

// CreatePlaylist handles POST /playlists
func (h *Handlers) CreatePlaylist(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var req struct {
		Name        string `json:"name" binding:"required,min=1,max=120"`
		Description string `json:"description" binding:"max=1000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "name is required (max 120 chars)")
		return
	}

	playlist := models.Playlist{
		OwnerID:     userID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := database.DB.Create(&playlist).Error; err != nil {
		util.RespondInternalError(c, "failed to create playlist")
		return
	}

	util.RespondCreated(c, playlist, "playlist created successfully")
}

// GetPlaylist handles GET /playlists/:playlistId with member videos in
// position order.
func (h *Handlers) GetPlaylist(c *gin.Context) {
	playlistID := c.Param("playlistId")

	var playlist models.Playlist
	err := database.DB.Preload("Owner").
		Preload("Videos", func(db *gorm.DB) *gorm.DB {
			return db.Order("playlist_videos.position ASC")
		}).
		Preload("Videos.Video").Preload("Videos.Video.Owner").
		First(&playlist, "id = ?", playlistID).Error
	if util.HandleDBError(c, err, "playlist") {
		return
	}

	util.RespondOK(c, playlist, "playlist fetched successfully")
}

// UpdatePlaylist handles PATCH /playlists/:playlistId. Owner only.
func (h *Handlers) UpdatePlaylist(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	playlistID := c.Param("playlistId")

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || (req.Name == "" && req.Description == "") {
		util.RespondBadRequest(c, "name or description is required")
		return
	}

	var playlist models.Playlist
	err := database.DB.First(&playlist, "id = ?", playlistID).Error
	if util.HandleDBError(c, err, "playlist") {
		return
	}
	if playlist.OwnerID != userID {
		util.RespondForbidden(c, "only the owner can update this playlist")
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}

	if err := database.DB.Model(&playlist).Updates(updates).Error; err != nil {
		util.RespondInternalError(c, "failed to update playlist")
		return
	}

	util.RespondOK(c, playlist, "playlist updated successfully")
}

// DeletePlaylist handles DELETE /playlists/:playlistId. Owner only.
// Membership rows go with the playlist; videos themselves are untouched.
func (h *Handlers) DeletePlaylist(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	playlistID := c.Param("playlistId")

	var playlist models.Playlist
	err := database.DB.First(&playlist, "id = ?", playlistID).Error
	if util.HandleDBError(c, err, "playlist") {
		return
	}
	if playlist.OwnerID != userID {
		util.RespondForbidden(c, "only the owner can delete this playlist")
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", playlist.ID).Delete(&models.PlaylistVideo{}).Error; err != nil {
			return err
		}
		return tx.Delete(&playlist).Error
	})
	if err != nil {
		util.RespondInternalError(c, "failed to delete playlist")
		return
	}

	util.RespondOK(c, gin.H{}, "playlist deleted successfully")
}

// AddVideoToPlaylist handles PATCH /playlists/add/:playlistId/:videoId.
// Owner only. Adding a video that is already in the playlist conflicts.
func (h *Handlers) AddVideoToPlaylist(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	playlistID := c.Param("playlistId")
	videoID := c.Param("videoId")

	var playlist models.Playlist
	err := database.DB.First(&playlist, "id = ?", playlistID).Error
	if util.HandleDBError(c, err, "playlist") {
		return
	}
	if playlist.OwnerID != userID {
		util.RespondForbidden(c, "only the owner can modify this playlist")
		return
	}

	var video models.Video
	err = database.DB.Select("id").First(&video, "id = ?", videoID).Error
	if util.HandleDBError(c, err, "video") {
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var maxPos int
		row := tx.Model(&models.PlaylistVideo{}).
			Where("playlist_id = ?", playlist.ID).
			Select("COALESCE(MAX(position), -1)").Row()
		if err := row.Scan(&maxPos); err != nil {
			return err
		}

		member := models.PlaylistVideo{
			PlaylistID: playlist.ID,
			VideoID:    video.ID,
			Position:   maxPos + 1,
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			util.RespondConflict(c, "video is already in this playlist")
			return
		}
		util.RespondInternalError(c, "failed to add video to playlist")
		return
	}

	util.RespondOK(c, gin.H{}, "video added to playlist")
}

// RemoveVideoFromPlaylist handles PATCH /playlists/remove/:playlistId/:videoId.
// Owner only.
func (h *Handlers) RemoveVideoFromPlaylist(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	playlistID := c.Param("playlistId")
	videoID := c.Param("videoId")

	var playlist models.Playlist
	err := database.DB.First(&playlist, "id = ?", playlistID).Error
	if util.HandleDBError(c, err, "playlist") {
		return
	}
	if playlist.OwnerID != userID {
		util.RespondForbidden(c, "only the owner can modify this playlist")
		return
	}

	res := database.DB.Where("playlist_id = ? AND video_id = ?", playlist.ID, videoID).
		Delete(&models.PlaylistVideo{})
	if res.Error != nil {
		util.RespondInternalError(c, "failed to remove video from playlist")
		return
	}
	if res.RowsAffected == 0 {
		util.RespondNotFound(c, "video in playlist")
		return
	}

	util.RespondOK(c, gin.H{}, "video removed from playlist")
}

// GetUserPlaylists handles GET /playlists/user/:userId
func (h *Handlers) GetUserPlaylists(c *gin.Context) {
	ownerID := c.Param("userId")
	p := util.GetPagination(c)

	var owner models.User
	err := database.DB.Select("id").First(&owner, "id = ?", ownerID).Error
	if util.HandleDBError(c, err, "user") {
		return
	}

	var playlists []models.Playlist
	err = database.DB.
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Limit(p.Limit).Offset(p.Offset()).
		Find(&playlists).Error
	if err != nil {
		util.RespondInternalError(c, "failed to fetch playlists")
		return
	}

	util.RespondOK(c, playlists, "playlists fetched successfully")
}
