package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vikash-ftw/VideoTube-Backend/internal/auth"
	"github.com/vikash-ftw/VideoTube-Backend/internal/database"
	apierrors "github.com/vikash-ftw/VideoTube-Backend/internal/errors"
	"github.com/vikash-ftw/VideoTube-Backend/internal/logger"
	"github.com/vikash-ftw/VideoTube-Backend/internal/metrics"
	"github.com/vikash-ftw/VideoTube-Backend/internal/models"
	"github.com/vikash-ftw/VideoTube-Backend/internal/storage"
	"github.com/vikash-ftw/VideoTube-Backend/internal/util"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const uploadTimeout = 60 * time.Second

// Register handles POST /users/register. Multipart form with text
// fields plus a required avatar file and optional cover image.
func (h *Handlers) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		util.RespondBadRequest(c, "username (3-30 chars), a valid email, fullName and password (min 8 chars) are required")
		return
	}

	avatarFile, err := c.FormFile("avatar")
	if err != nil {
		util.RespondBadRequest(c, "avatar file is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), uploadTimeout)
	defer cancel()

	avatarData, err := util.ReadUploadedFile(avatarFile)
	if err != nil {
		util.RespondInternalError(c, "failed to read avatar upload")
		return
	}
	avatarResult, err := h.uploader.UploadMedia(ctx, avatarData, storage.MediaKindAvatar, "pending", avatarFile.Filename)
	if err != nil {
		logger.ErrorWithFields("Avatar upload failed", err)
		util.RespondInternalError(c, "failed to upload avatar")
		return
	}

	coverURL := ""
	if coverFile, err := c.FormFile("coverImage"); err == nil {
		coverData, err := util.ReadUploadedFile(coverFile)
		if err != nil {
			util.RespondInternalError(c, "failed to read cover image upload")
			return
		}
		coverResult, err := h.uploader.UploadMedia(ctx, coverData, storage.MediaKindCover, "pending", coverFile.Filename)
		if err != nil {
			logger.ErrorWithFields("Cover image upload failed", err)
			util.RespondInternalError(c, "failed to upload cover image")
			return
		}
		coverURL = coverResult.URL
	}

	user, err := h.auth.Register(req, avatarResult.URL, coverURL)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserExists):
			util.RespondConflict(c, "user with this email already exists")
		case errors.Is(err, auth.ErrUsernameExists):
			util.RespondConflict(c, "username already taken")
		default:
			logger.ErrorWithFields("Registration failed", err)
			util.RespondInternalError(c, "failed to register user")
		}
		return
	}

	logger.Log.Info("User registered",
		logger.WithUserID(user.ID),
		zap.String("username", user.Username),
	)

	util.RespondCreated(c, user, "user registered successfully")
}

// Login handles POST /users/login
func (h *Handlers) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "password is required")
		return
	}
	if req.Username == "" && req.Email == "" {
		util.RespondBadRequest(c, "username or email is required")
		return
	}

	pair, user, err := h.auth.Login(req)
	if err != nil {
		metrics.Get().LoginsTotal.WithLabelValues("failure").Inc()
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			util.RespondNotFound(c, "user")
		case errors.Is(err, auth.ErrInvalidCredentials):
			util.RespondUnauthorized(c, "invalid credentials")
		default:
			logger.ErrorWithFields("Login failed", err)
			util.RespondInternalError(c, "failed to log in")
		}
		return
	}

	metrics.Get().LoginsTotal.WithLabelValues("success").Inc()
	h.setAuthCookies(c, pair)

	util.RespondOK(c, gin.H{
		"user":         user,
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "logged in successfully")
}

// Logout handles POST /users/logout. Clears the stored refresh token
// and expires both cookies. Idempotent.
func (h *Handlers) Logout(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	if err := h.auth.Revoke(userID); err != nil {
		logger.ErrorWithFields("Logout failed", err)
		util.RespondInternalError(c, "failed to log out")
		return
	}

	h.clearAuthCookies(c)
	util.RespondOK(c, gin.H{}, "logged out successfully")
}

// RefreshToken handles POST /users/refresh-token. The token comes from
// the refreshToken cookie or, failing that, the JSON body.
func (h *Handlers) RefreshToken(c *gin.Context) {
	presented, _ := c.Cookie("refreshToken")
	if presented == "" {
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := c.ShouldBindJSON(&body); err == nil {
			presented = body.RefreshToken
		}
	}

	pair, err := h.auth.Rotate(presented)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingToken):
			metrics.Get().TokenRotationsTotal.WithLabelValues("missing").Inc()
			util.RespondUnauthorized(c, "refresh token is required")
		case errors.Is(err, auth.ErrTokenReuse):
			metrics.Get().TokenRotationsTotal.WithLabelValues("reuse").Inc()
			metrics.Get().TokenReuseDetectedTotal.WithLabelValues().Inc()
			logger.Log.Warn("Refresh token reuse detected", zap.String("client_ip", c.ClientIP()))
			util.RespondWithAPIError(c, apierrors.TokenReuse("refresh token already used or revoked"))
		case errors.Is(err, auth.ErrInvalidToken):
			metrics.Get().TokenRotationsTotal.WithLabelValues("invalid").Inc()
			util.RespondUnauthorized(c, "refresh token is invalid or expired")
		default:
			logger.ErrorWithFields("Token rotation failed", err)
			util.RespondInternalError(c, "failed to refresh token")
		}
		return
	}

	metrics.Get().TokenRotationsTotal.WithLabelValues("success").Inc()
	h.setAuthCookies(c, pair)

	util.RespondOK(c, pair, "access token refreshed")
}

// ChangePassword handles POST /users/change-password
func (h *Handlers) ChangePassword(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var req struct {
		OldPassword string `json:"oldPassword" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "oldPassword and newPassword (min 8 chars) are required")
		return
	}

	if err := h.auth.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, auth.ErrWrongPassword):
			util.RespondBadRequest(c, "old password is incorrect")
		case errors.Is(err, auth.ErrUserNotFound):
			util.RespondNotFound(c, "user")
		default:
			logger.ErrorWithFields("Password change failed", err)
			util.RespondInternalError(c, "failed to change password")
		}
		return
	}

	util.RespondOK(c, gin.H{}, "password changed successfully")
}

// CurrentUser handles GET /users/current-user
func (h *Handlers) CurrentUser(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}
	util.RespondOK(c, user, "current user fetched successfully")
}

// UpdateAccount handles PATCH /users/update-account. Only fullName and
// email can change here.
func (h *Handlers) UpdateAccount(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	var req struct {
		FullName string `json:"fullName"`
		Email    string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || (req.FullName == "" && req.Email == "") {
		util.RespondBadRequest(c, "fullName or email is required")
		return
	}

	updates := map[string]interface{}{}
	if req.FullName != "" {
		updates["full_name"] = req.FullName
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}

	err := database.DB.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			util.RespondConflict(c, "email already in use")
			return
		}
		logger.ErrorWithFields("Account update failed", err)
		util.RespondInternalError(c, "failed to update account details")
		return
	}

	var updated models.User
	if err := database.DB.Omit("password", "refresh_token").First(&updated, "id = ?", user.ID).Error; err != nil {
		util.RespondInternalError(c, "failed to load updated user")
		return
	}

	util.RespondOK(c, updated, "account details updated successfully")
}

// UpdateAvatar handles PATCH /users/avatar
func (h *Handlers) UpdateAvatar(c *gin.Context) {
	h.updateUserImage(c, "avatar", storage.MediaKindAvatar)
}

// UpdateCoverImage handles PATCH /users/cover-image
func (h *Handlers) UpdateCoverImage(c *gin.Context) {
	h.updateUserImage(c, "coverImage", storage.MediaKindCover)
}

func (h *Handlers) updateUserImage(c *gin.Context, field string, kind storage.MediaKind) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	file, err := c.FormFile(field)
	if err != nil {
		util.RespondBadRequest(c, field+" file is required")
		return
	}

	data, err := util.ReadUploadedFile(file)
	if err != nil {
		util.RespondInternalError(c, "failed to read uploaded file")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), uploadTimeout)
	defer cancel()

	result, err := h.uploader.UploadMedia(ctx, data, kind, user.ID, file.Filename)
	if err != nil {
		logger.ErrorWithFields("Image upload failed", err)
		util.RespondInternalError(c, "failed to upload "+field)
		return
	}

	column := "avatar"
	if kind == storage.MediaKindCover {
		column = "cover_image"
	}
	err = database.DB.Model(&models.User{}).Where("id = ?", user.ID).
		Update(column, result.URL).Error
	if err != nil {
		util.RespondInternalError(c, "failed to update "+field)
		return
	}

	util.RespondOK(c, gin.H{field: result.URL}, field+" updated successfully")
}

// ChannelProfile handles GET /users/c/:username. Public, but when the
// viewer is signed in the response says whether they subscribe.
func (h *Handlers) ChannelProfile(c *gin.Context) {
	username := c.Param("username")

	var channel models.User
	err := database.DB.Omit("password", "refresh_token").
		Where("LOWER(username) = LOWER(?)", username).First(&channel).Error
	if util.HandleDBError(c, err, "channel") {
		return
	}

	subscribers, err := h.toggles.SubscriberCount(channel.ID)
	if err != nil {
		util.RespondInternalError(c, "failed to count subscribers")
		return
	}

	var subscribedTo int64
	err = database.DB.Model(&models.Subscription{}).
		Where("subscriber_id = ?", channel.ID).Count(&subscribedTo).Error
	if err != nil {
		util.RespondInternalError(c, "failed to count subscriptions")
		return
	}

	isSubscribed := false
	if viewerID, exists := c.Get("user_id"); exists {
		if id, ok := viewerID.(string); ok {
			isSubscribed, _ = h.toggles.IsSubscribed(id, channel.ID)
		}
	}

	util.RespondOK(c, gin.H{
		"channel":                   channel,
		"subscribersCount":          subscribers,
		"channelsSubscribedToCount": subscribedTo,
		"isSubscribed":              isSubscribed,
	}, "channel profile fetched successfully")
}

// WatchHistory handles GET /users/history
func (h *Handlers) WatchHistory(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	p := util.GetPagination(c)

	var history []models.WatchHistory
	err := database.DB.Preload("Video").Preload("Video.Owner").
		Where("user_id = ?", userID).
		Order("watched_at DESC").
		Limit(p.Limit).Offset(p.Offset()).
		Find(&history).Error
	if err != nil {
		util.RespondInternalError(c, "failed to fetch watch history")
		return
	}

	util.RespondOK(c, history, "watch history fetched successfully")
}
