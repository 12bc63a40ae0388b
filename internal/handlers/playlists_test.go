package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vikash-ftw/VideoTube-Backend/internal/models"
)

func TestPlaylistLifecycle(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.registerUser(t, "curator", "curator@example.com")
	token := env.loginUser(t, "curator")

	// Create
	w := env.request(t, http.MethodPost, "/api/v1/playlists", token, map[string]string{
		"name":        "favorites",
		"description": "the good ones",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	playlistID := decodeEnvelope(t, w)["data"].(map[string]interface{})["id"].(string)

	// Add two videos
	first := env.createVideo(t, owner.ID, "first")
	second := env.createVideo(t, owner.ID, "second")

	w = env.request(t, http.MethodPatch, "/api/v1/playlists/add/"+playlistID+"/"+first.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = env.request(t, http.MethodPatch, "/api/v1/playlists/add/"+playlistID+"/"+second.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Adding twice conflicts
	w = env.request(t, http.MethodPatch, "/api/v1/playlists/add/"+playlistID+"/"+first.ID, token, nil)
	require.Equal(t, http.StatusConflict, w.Code)

	// Fetch with members in insertion order
	w = env.request(t, http.MethodGet, "/api/v1/playlists/"+playlistID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	videos := data["videos"].([]interface{})
	require.Len(t, videos, 2)
	firstMember := videos[0].(map[string]interface{})
	require.Equal(t, first.ID, firstMember["videoId"])

	// Remove
	w = env.request(t, http.MethodPatch, "/api/v1/playlists/remove/"+playlistID+"/"+first.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Removing again is a 404
	w = env.request(t, http.MethodPatch, "/api/v1/playlists/remove/"+playlistID+"/"+first.ID, token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	// Delete playlist leaves the videos alone
	w = env.request(t, http.MethodDelete, "/api/v1/playlists/"+playlistID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var videoCount int64
	require.NoError(t, env.db.Model(&models.Video{}).Count(&videoCount).Error)
	require.Equal(t, int64(2), videoCount)

	var memberCount int64
	require.NoError(t, env.db.Model(&models.PlaylistVideo{}).Count(&memberCount).Error)
	require.Equal(t, int64(0), memberCount)
}

func TestPlaylistOwnershipEnforced(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.registerUser(t, "plowner", "plowner@example.com")
	env.registerUser(t, "plintruder", "plintruder@example.com")
	ownerToken := env.loginUser(t, "plowner")
	intruderToken := env.loginUser(t, "plintruder")

	w := env.request(t, http.MethodPost, "/api/v1/playlists", ownerToken, map[string]string{
		"name": "private mix",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	playlistID := decodeEnvelope(t, w)["data"].(map[string]interface{})["id"].(string)

	video := env.createVideo(t, owner.ID, "tune")

	w = env.request(t, http.MethodPatch, "/api/v1/playlists/add/"+playlistID+"/"+video.ID, intruderToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, http.MethodPatch, "/api/v1/playlists/"+playlistID, intruderToken, map[string]string{
		"name": "stolen",
	})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, http.MethodDelete, "/api/v1/playlists/"+playlistID, intruderToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetUserPlaylists(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.registerUser(t, "pllister", "pllister@example.com")
	token := env.loginUser(t, "pllister")

	for _, name := range []string{"one", "two", "three"} {
		w := env.request(t, http.MethodPost, "/api/v1/playlists", token, map[string]string{"name": name})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := env.request(t, http.MethodGet, "/api/v1/playlists/user/"+owner.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeEnvelope(t, w)["data"].([]interface{})
	require.Len(t, list, 3)
}
