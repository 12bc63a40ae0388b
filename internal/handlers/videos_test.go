package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vikash-ftw/VideoTube-Backend/internal/models"
)

func TestListVideosPagination(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.registerUser(t, "lister", "lister@example.com")

	for i := 0; i < 15; i++ {
		env.createVideo(t, owner.ID, "video")
	}

	w := env.request(t, http.MethodGet, "/api/v1/videos?page=2&limit=10", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	require.Equal(t, float64(15), data["total"])
	require.Len(t, data["videos"].([]interface{}), 5)
}

func TestListVideosHidesUnpublished(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.registerUser(t, "hider", "hider@example.com")

	env.createVideo(t, owner.ID, "public")
	hidden := env.createVideo(t, owner.ID, "private")
	require.NoError(t, env.db.Model(hidden).Update("is_published", false).Error)

	w := env.request(t, http.MethodGet, "/api/v1/videos", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	require.Len(t, data["videos"].([]interface{}), 1)
}

func TestListVideosRejectsBadSort(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/v1/videos?sortBy=refresh_token", "", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetVideoVisibility(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.registerUser(t, "visowner", "visowner@example.com")
	env.registerUser(t, "stranger", "stranger@example.com")
	ownerToken := env.loginUser(t, "visowner")
	strangerToken := env.loginUser(t, "stranger")

	video := env.createVideo(t, owner.ID, "draft")
	require.NoError(t, env.db.Model(video).Update("is_published", false).Error)

	// Anonymous and strangers see 404 for drafts
	w := env.request(t, http.MethodGet, "/api/v1/videos/"+video.ID, "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	w = env.request(t, http.MethodGet, "/api/v1/videos/"+video.ID, strangerToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	// The owner still sees it
	w = env.request(t, http.MethodGet, "/api/v1/videos/"+video.ID, ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateVideoOwnership(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.registerUser(t, "updowner", "updowner@example.com")
	env.registerUser(t, "updintruder", "updintruder@example.com")
	intruderToken := env.loginUser(t, "updintruder")

	video := env.createVideo(t, owner.ID, "original")

	req := env.multipartRequest(t, http.MethodPatch, "/api/v1/videos/"+video.ID, intruderToken,
		map[string]string{"title": "stolen"})
	require.Equal(t, http.StatusForbidden, req.Code)
}

func TestTogglePublish(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.registerUser(t, "publisher", "publisher@example.com")
	token := env.loginUser(t, "publisher")

	video := env.createVideo(t, owner.ID, "toggleme")

	w := env.request(t, http.MethodPatch, "/api/v1/videos/toggle/publish/"+video.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var reloaded models.Video
	require.NoError(t, env.db.First(&reloaded, "id = ?", video.ID).Error)
	require.False(t, reloaded.IsPublished)

	w = env.request(t, http.MethodPatch, "/api/v1/videos/toggle/publish/"+video.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, env.db.First(&reloaded, "id = ?", video.ID).Error)
	require.True(t, reloaded.IsPublished)
}

func TestRecordViewAppendsHistory(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.registerUser(t, "viewowner", "viewowner@example.com")
	viewer := env.registerUser(t, "viewer", "viewer@example.com")
	token := env.loginUser(t, "viewer")

	video := env.createVideo(t, owner.ID, "watched")

	w := env.request(t, http.MethodGet, "/api/v1/videos/view/"+video.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = env.request(t, http.MethodGet, "/api/v1/videos/view/"+video.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var reloaded models.Video
	require.NoError(t, env.db.First(&reloaded, "id = ?", video.ID).Error)
	require.Equal(t, 2, reloaded.Views)

	var historyCount int64
	require.NoError(t, env.db.Model(&models.WatchHistory{}).
		Where("user_id = ?", viewer.ID).Count(&historyCount).Error)
	require.Equal(t, int64(2), historyCount)

	// History endpoint returns the entries
	w = env.request(t, http.MethodGet, "/api/v1/users/history", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeEnvelope(t, w)["data"].([]interface{})
	require.Len(t, list, 2)
}

func TestDeleteVideoCascades(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.registerUser(t, "delowner", "delowner@example.com")
	token := env.loginUser(t, "delowner")

	video := env.createVideo(t, owner.ID, "doomed")
	comment := &models.Comment{VideoID: video.ID, OwnerID: owner.ID, Content: "bye"}
	require.NoError(t, env.db.Create(comment).Error)
	like := &models.Like{UserID: owner.ID, TargetID: video.ID, TargetKind: models.LikeTargetVideo}
	require.NoError(t, env.db.Create(like).Error)

	w := env.request(t, http.MethodDelete, "/api/v1/videos/"+video.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var likeCount, commentCount int64
	require.NoError(t, env.db.Model(&models.Like{}).
		Where("target_id = ?", video.ID).Count(&likeCount).Error)
	require.NoError(t, env.db.Model(&models.Comment{}).
		Where("video_id = ?", video.ID).Count(&commentCount).Error)
	require.Equal(t, int64(0), likeCount)
	require.Equal(t, int64(0), commentCount)
}
