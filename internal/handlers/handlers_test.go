package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/vikash-ftw/VideoTube-Backend/internal/auth"
	"github.com/vikash-ftw/VideoTube-Backend/internal/config"
	"github.com/vikash-ftw/VideoTube-Backend/internal/database"
	"github.com/vikash-ftw/VideoTube-Backend/internal/logger"
	"github.com/vikash-ftw/VideoTube-Backend/internal/models"
	"github.com/vikash-ftw/VideoTube-Backend/internal/social"
	"github.com/vikash-ftw/VideoTube-Backend/internal/storage"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// fakeUploader records uploads without touching S3
type fakeUploader struct {
	uploads int
}

func (f *fakeUploader) UploadMedia(ctx context.Context, data []byte, kind storage.MediaKind, userID, originalFilename string) (*storage.UploadResult, error) {
	f.uploads++
	key := fmt.Sprintf("%s/%d%s", kind, f.uploads, filepath.Ext(originalFilename))
	return &storage.UploadResult{
		Key:  key,
		URL:  "https://cdn.test.local/" + key,
		Size: int64(len(data)),
	}, nil
}

func (f *fakeUploader) DeleteFile(ctx context.Context, key string) error {
	return nil
}

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
	h      *Handlers
	auth   *auth.Service
}

// setupTestEnv wires handlers against an in-memory database
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, logger.Initialize("error", filepath.Join(t.TempDir(), "test.log")))

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Video{}, &models.Comment{}, &models.Tweet{},
		&models.Playlist{}, &models.PlaylistVideo{}, &models.Like{},
		&models.Subscription{}, &models.WatchHistory{},
	))
	require.NoError(t, db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_likes_unique ON likes (user_id, target_id, target_kind)").Error)
	require.NoError(t, db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_subscriptions_unique ON subscriptions (subscriber_id, channel_id)").Error)
	require.NoError(t, db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_playlist_videos_unique ON playlist_videos (playlist_id, video_id)").Error)

	database.DB = db

	cfg := &config.Config{
		Environment:        "development",
		AccessTokenSecret:  []byte("test_access_secret"),
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenSecret: []byte("test_refresh_secret"),
		RefreshTokenExpiry: 240 * time.Hour,
	}

	authService := auth.NewService(db, cfg)
	toggleService := social.NewToggleService(db)
	h := NewHandlers(authService, toggleService, &fakeUploader{}, cfg)

	return &testEnv{
		db:     db,
		router: h.SetupRouter(),
		h:      h,
		auth:   authService,
	}
}

// registerUser creates a user directly through the auth service
func (env *testEnv) registerUser(t *testing.T, username, email string) *models.User {
	t.Helper()
	user, err := env.auth.Register(auth.RegisterRequest{
		Username: username,
		Email:    email,
		FullName: "Test " + username,
		Password: "password123",
	}, "https://cdn.test.local/avatar.png", "")
	require.NoError(t, err)
	return user
}

// loginUser returns a bearer token for the given user
func (env *testEnv) loginUser(t *testing.T, username string) string {
	t.Helper()
	pair, _, err := env.auth.Login(auth.LoginRequest{Username: username, Password: "password123"})
	require.NoError(t, err)
	return pair.AccessToken
}

func (env *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *testEnv) multipartRequest(t *testing.T, method, path, token string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, mw.WriteField(key, value))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func TestHealthcheck(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/v1/healthcheck", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w)
	require.Equal(t, true, envelope["success"])
}

func TestRegisterEndpoint(t *testing.T) {
	env := setupTestEnv(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("username", "newuser"))
	require.NoError(t, mw.WriteField("email", "newuser@example.com"))
	require.NoError(t, mw.WriteField("fullName", "New User"))
	require.NoError(t, mw.WriteField("password", "password123"))
	avatar, err := mw.CreateFormFile("avatar", "avatar.png")
	require.NoError(t, err)
	_, err = avatar.Write([]byte("fake-png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/register", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	envelope := decodeEnvelope(t, w)
	require.Equal(t, true, envelope["success"])

	data := envelope["data"].(map[string]interface{})
	require.Equal(t, "newuser", data["username"])
	require.NotContains(t, data, "password")
}

func TestRegisterRejectsInvalidFields(t *testing.T) {
	env := setupTestEnv(t)

	cases := map[string]map[string]string{
		"short username": {
			"username": "ab",
			"email":    "short@example.com",
			"fullName": "Short Name",
			"password": "password123",
		},
		"malformed email": {
			"username": "mailless",
			"email":    "not-an-email",
			"fullName": "Mail Less",
			"password": "password123",
		},
		"short password": {
			"username": "weakpw",
			"email":    "weakpw@example.com",
			"fullName": "Weak Pw",
			"password": "short",
		},
	}
	for name, fields := range cases {
		w := env.multipartRequest(t, http.MethodPost, "/api/v1/users/register", "", fields)
		require.Equal(t, http.StatusBadRequest, w.Code, name)
	}
}

func TestLoginLogoutFlow(t *testing.T) {
	env := setupTestEnv(t)
	env.registerUser(t, "flowuser", "flow@example.com")

	// Login
	w := env.request(t, http.MethodPost, "/api/v1/users/login", "", map[string]string{
		"username": "flowuser",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w)
	data := envelope["data"].(map[string]interface{})
	accessToken := data["accessToken"].(string)
	require.NotEmpty(t, accessToken)

	// Cookies are set
	cookies := w.Result().Cookies()
	names := map[string]bool{}
	for _, ck := range cookies {
		names[ck.Name] = true
		require.True(t, ck.HttpOnly)
	}
	require.True(t, names["accessToken"])
	require.True(t, names["refreshToken"])

	// Authenticated endpoint works with bearer token
	w = env.request(t, http.MethodGet, "/api/v1/users/current-user", accessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Logout clears the session
	w = env.request(t, http.MethodPost, "/api/v1/users/logout", accessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	env := setupTestEnv(t)
	env.registerUser(t, "wrongpw", "wrongpw@example.com")

	w := env.request(t, http.MethodPost, "/api/v1/users/login", "", map[string]string{
		"username": "wrongpw",
		"password": "bad-password",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	envelope := decodeEnvelope(t, w)
	require.Equal(t, false, envelope["success"])
}

func TestRefreshTokenRotationAndReuse(t *testing.T) {
	env := setupTestEnv(t)
	env.registerUser(t, "refresher", "refresher@example.com")

	pair, _, err := env.auth.Login(auth.LoginRequest{Username: "refresher", Password: "password123"})
	require.NoError(t, err)

	time.Sleep(1100 * time.Millisecond)

	// Rotate via body
	w := env.request(t, http.MethodPost, "/api/v1/users/refresh-token", "", map[string]string{
		"refreshToken": pair.RefreshToken,
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Replaying the first token is reuse
	w = env.request(t, http.MethodPost, "/api/v1/users/refresh-token", "", map[string]string{
		"refreshToken": pair.RefreshToken,
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	envelope := decodeEnvelope(t, w)
	require.Equal(t, "TOKEN_REUSE", envelope["code"])
}

func TestRefreshTokenMissing(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/v1/users/refresh-token", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCookieBeatsBearerHeader(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.registerUser(t, "cookiealice", "cookiealice@example.com")
	env.registerUser(t, "cookiebob", "cookiebob@example.com")

	aliceToken := env.loginUser(t, "cookiealice")
	bobToken := env.loginUser(t, "cookiebob")

	// Cookie carries Alice, header carries Bob. Cookie wins.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil)
	req.Header.Set("Authorization", "Bearer "+bobToken)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: aliceToken})
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w)
	data := envelope["data"].(map[string]interface{})
	require.Equal(t, alice.ID, data["id"])
}

func TestProtectedRouteRejectsAnonymous(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/v1/users/current-user", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestChangePasswordEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	env.registerUser(t, "pwuser", "pwuser@example.com")
	token := env.loginUser(t, "pwuser")

	w := env.request(t, http.MethodPost, "/api/v1/users/change-password", token, map[string]string{
		"oldPassword": "password123",
		"newPassword": "evenbetterpw456",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Old password no longer works
	w = env.request(t, http.MethodPost, "/api/v1/users/login", "", map[string]string{
		"username": "pwuser",
		"password": "password123",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateAccount(t *testing.T) {
	env := setupTestEnv(t)
	env.registerUser(t, "taken", "taken@example.com")
	env.registerUser(t, "mover", "mover@example.com")
	token := env.loginUser(t, "mover")

	// Moving onto another user's email is a conflict, not a server error
	w := env.request(t, http.MethodPatch, "/api/v1/users/update-account", token, map[string]string{
		"email": "taken@example.com",
	})
	require.Equal(t, http.StatusConflict, w.Code)

	w = env.request(t, http.MethodPatch, "/api/v1/users/update-account", token, map[string]string{
		"fullName": "Mover Renamed",
	})
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	require.Equal(t, "Mover Renamed", data["fullName"])
}

func TestChannelProfile(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.registerUser(t, "profilealice", "profilealice@example.com")
	env.registerUser(t, "profilebob", "profilebob@example.com")
	bobToken := env.loginUser(t, "profilebob")

	// Bob subscribes to Alice
	w := env.request(t, http.MethodPost, "/api/v1/subscriptions/c/"+alice.ID, bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Anonymous view
	w = env.request(t, http.MethodGet, "/api/v1/users/c/profilealice", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	require.Equal(t, float64(1), data["subscribersCount"])
	require.Equal(t, false, data["isSubscribed"])

	// Bob's view shows his subscription
	w = env.request(t, http.MethodGet, "/api/v1/users/c/profilealice", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data = decodeEnvelope(t, w)["data"].(map[string]interface{})
	require.Equal(t, true, data["isSubscribed"])
}

func TestChannelProfileNotFound(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/v1/users/c/nobody", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
