package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubscriptionToggleEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	channel := env.registerUser(t, "channel", "channel@example.com")
	env.registerUser(t, "fan", "fan@example.com")
	token := env.loginUser(t, "fan")

	// Subscribe
	w := env.request(t, http.MethodPost, "/api/v1/subscriptions/c/"+channel.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	require.Equal(t, true, data["toggled"])

	// Unsubscribe
	w = env.request(t, http.MethodPost, "/api/v1/subscriptions/c/"+channel.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data = decodeEnvelope(t, w)["data"].(map[string]interface{})
	require.Equal(t, false, data["toggled"])
}

func TestSelfSubscribeRejected(t *testing.T) {
	env := setupTestEnv(t)
	self := env.registerUser(t, "narcissist", "narcissist@example.com")
	token := env.loginUser(t, "narcissist")

	w := env.request(t, http.MethodPost, "/api/v1/subscriptions/c/"+self.ID, token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubscriberAndChannelLists(t *testing.T) {
	env := setupTestEnv(t)
	channel := env.registerUser(t, "star", "star@example.com")
	fan1 := env.registerUser(t, "fanone", "fanone@example.com")
	env.registerUser(t, "fantwo", "fantwo@example.com")
	token1 := env.loginUser(t, "fanone")
	token2 := env.loginUser(t, "fantwo")

	for _, token := range []string{token1, token2} {
		w := env.request(t, http.MethodPost, "/api/v1/subscriptions/c/"+channel.ID, token, nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	// Channel has two subscribers
	w := env.request(t, http.MethodGet, "/api/v1/subscriptions/c/"+channel.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	subscribers := decodeEnvelope(t, w)["data"].([]interface{})
	require.Len(t, subscribers, 2)

	// Fan one follows one channel
	w = env.request(t, http.MethodGet, "/api/v1/subscriptions/u/"+fan1.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	channels := decodeEnvelope(t, w)["data"].([]interface{})
	require.Len(t, channels, 1)
	require.Equal(t, channel.ID, channels[0].(map[string]interface{})["id"])
}

func TestSubscribersOfUnknownChannel(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/v1/subscriptions/c/00000000-0000-0000-0000-000000000000", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
