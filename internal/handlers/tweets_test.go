package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vikash-ftw/VideoTube-Backend/internal/models"
)

func TestTweetLifecycle(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.registerUser(t, "tweeter", "tweeter@example.com")
	token := env.loginUser(t, "tweeter")

	// Create
	w := env.request(t, http.MethodPost, "/api/v1/tweets", token, map[string]string{
		"content": "first tweet",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	tweet := decodeEnvelope(t, w)["data"].(map[string]interface{})
	tweetID := tweet["id"].(string)
	require.Equal(t, owner.ID, tweet["ownerId"])

	// List by owner
	w = env.request(t, http.MethodGet, "/api/v1/tweets/user/"+owner.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeEnvelope(t, w)["data"].([]interface{})
	require.Len(t, list, 1)

	// Update
	w = env.request(t, http.MethodPatch, "/api/v1/tweets/"+tweetID, token, map[string]string{
		"content": "edited tweet",
	})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeEnvelope(t, w)["data"].(map[string]interface{})
	require.Equal(t, "edited tweet", updated["content"])

	// Delete
	w = env.request(t, http.MethodDelete, "/api/v1/tweets/"+tweetID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/v1/tweets/user/"+owner.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list = decodeEnvelope(t, w)["data"].([]interface{})
	require.Len(t, list, 0)
}

func TestTweetOwnershipEnforced(t *testing.T) {
	env := setupTestEnv(t)
	env.registerUser(t, "author", "author@example.com")
	env.registerUser(t, "intruder", "intruder@example.com")
	authorToken := env.loginUser(t, "author")
	intruderToken := env.loginUser(t, "intruder")

	w := env.request(t, http.MethodPost, "/api/v1/tweets", authorToken, map[string]string{
		"content": "mine",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	tweetID := decodeEnvelope(t, w)["data"].(map[string]interface{})["id"].(string)

	w = env.request(t, http.MethodPatch, "/api/v1/tweets/"+tweetID, intruderToken, map[string]string{
		"content": "hijacked",
	})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, http.MethodDelete, "/api/v1/tweets/"+tweetID, intruderToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteTweetRemovesLikes(t *testing.T) {
	env := setupTestEnv(t)
	env.registerUser(t, "likedtweeter", "likedtweeter@example.com")
	token := env.loginUser(t, "likedtweeter")

	w := env.request(t, http.MethodPost, "/api/v1/tweets", token, map[string]string{
		"content": "like me",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	tweetID := decodeEnvelope(t, w)["data"].(map[string]interface{})["id"].(string)

	w = env.request(t, http.MethodPost, "/api/v1/likes/toggle/t/"+tweetID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodDelete, "/api/v1/tweets/"+tweetID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var likes int64
	require.NoError(t, env.db.Model(&models.Like{}).
		Where("target_id = ? AND target_kind = ?", tweetID, models.LikeTargetTweet).
		Count(&likes).Error)
	require.Equal(t, int64(0), likes)
}

func TestTweetValidation(t *testing.T) {
	env := setupTestEnv(t)
	env.registerUser(t, "validator", "validator@example.com")
	token := env.loginUser(t, "validator")

	w := env.request(t, http.MethodPost, "/api/v1/tweets", token, map[string]string{
		"content": "",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTweetsForUnknownUser(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/v1/tweets/user/00000000-0000-0000-0000-000000000000", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
