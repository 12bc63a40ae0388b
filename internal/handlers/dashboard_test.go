package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vikash-ftw/VideoTube-Backend/internal/models"
)

func TestChannelStats(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.registerUser(t, "statowner", "statowner@example.com")
	env.registerUser(t, "statfan", "statfan@example.com")
	ownerToken := env.loginUser(t, "statowner")
	fanToken := env.loginUser(t, "statfan")

	first := env.createVideo(t, owner.ID, "first")
	second := env.createVideo(t, owner.ID, "second")
	require.NoError(t, env.db.Model(first).Update("views", 10).Error)
	require.NoError(t, env.db.Model(second).Update("views", 5).Error)

	// Fan subscribes and likes one video
	w := env.request(t, http.MethodPost, "/api/v1/subscriptions/c/"+owner.ID, fanToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = env.request(t, http.MethodPost, "/api/v1/likes/toggle/v/"+first.ID, fanToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/v1/dashboard/stats", ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	require.Equal(t, float64(2), data["totalVideos"])
	require.Equal(t, float64(15), data["totalViews"])
	require.Equal(t, float64(1), data["totalSubscribers"])
	require.Equal(t, float64(1), data["totalLikes"])
}

func TestDashboardVideosIncludesDrafts(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.registerUser(t, "draftowner", "draftowner@example.com")
	token := env.loginUser(t, "draftowner")

	env.createVideo(t, owner.ID, "published")
	draft := env.createVideo(t, owner.ID, "draft")
	require.NoError(t, env.db.Model(draft).Update("is_published", false).Error)

	w := env.request(t, http.MethodGet, "/api/v1/dashboard/videos", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeEnvelope(t, w)["data"].([]interface{})
	require.Len(t, list, 2)

	var count int64
	require.NoError(t, env.db.Model(&models.Video{}).Where("owner_id = ?", owner.ID).Count(&count).Error)
	require.Equal(t, int64(2), count)
}
