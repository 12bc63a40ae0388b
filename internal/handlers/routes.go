package handlers

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vikash-ftw/VideoTube-Backend/internal/middleware"
)

// SetupRouter builds the Gin engine with all middleware and routes
func (h *Handlers) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.GinLoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	corsConfig := cors.DefaultConfig()
	if h.cfg.CORSOrigin == "" || h.cfg.CORSOrigin == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		// Credentials only work with an explicit origin
		corsConfig.AllowOrigins = []string{h.cfg.CORSOrigin}
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// Prometheus scrape endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireAuth := middleware.Auth(h.auth)
	optionalAuth := middleware.OptionalAuth(h.auth)

	// Brute-force protection on credential endpoints
	authLimiter := middleware.RedisRateLimitMiddleware(10, time.Minute)

	api := r.Group("/api/v1")
	{
		api.GET("/healthcheck", h.Healthcheck)

		users := api.Group("/users")
		{
			users.POST("/register", authLimiter, h.Register)
			users.POST("/login", authLimiter, h.Login)
			users.POST("/refresh-token", authLimiter, h.RefreshToken)

			users.POST("/logout", requireAuth, h.Logout)
			users.POST("/change-password", requireAuth, h.ChangePassword)
			users.GET("/current-user", requireAuth, h.CurrentUser)
			users.PATCH("/update-account", requireAuth, h.UpdateAccount)
			users.PATCH("/avatar", requireAuth, h.UpdateAvatar)
			users.PATCH("/cover-image", requireAuth, h.UpdateCoverImage)
			users.GET("/history", requireAuth, h.WatchHistory)

			users.GET("/c/:username", optionalAuth, h.ChannelProfile)
		}

		videos := api.Group("/videos")
		{
			videos.GET("", optionalAuth, h.ListVideos)
			videos.GET("/:videoId", optionalAuth, h.GetVideo)

			videos.POST("/publish", requireAuth, h.PublishVideo)
			videos.PATCH("/:videoId", requireAuth, h.UpdateVideo)
			videos.DELETE("/:videoId", requireAuth, h.DeleteVideo)
			videos.PATCH("/toggle/publish/:videoId", requireAuth, h.TogglePublish)
			videos.GET("/view/:videoId", requireAuth, h.RecordView)
		}

		comments := api.Group("/comments")
		{
			comments.GET("/:videoId", h.GetVideoComments)
			comments.POST("/:videoId", requireAuth, h.AddComment)
			comments.PATCH("/c/:commentId", requireAuth, h.UpdateComment)
			comments.DELETE("/c/:commentId", requireAuth, h.DeleteComment)
		}

		likes := api.Group("/likes")
		{
			likes.Use(requireAuth)
			likes.POST("/toggle/v/:videoId", h.ToggleVideoLike)
			likes.POST("/toggle/c/:commentId", h.ToggleCommentLike)
			likes.POST("/toggle/t/:tweetId", h.ToggleTweetLike)
			likes.GET("/videos", h.GetLikedVideos)
		}

		subscriptions := api.Group("/subscriptions")
		{
			subscriptions.POST("/c/:channelId", requireAuth, h.ToggleSubscription)
			subscriptions.GET("/c/:channelId", h.GetChannelSubscribers)
			subscriptions.GET("/u/:subscriberId", h.GetSubscribedChannels)
		}

		playlists := api.Group("/playlists")
		{
			playlists.GET("/:playlistId", h.GetPlaylist)
			playlists.GET("/user/:userId", h.GetUserPlaylists)

			playlists.POST("", requireAuth, h.CreatePlaylist)
			playlists.PATCH("/:playlistId", requireAuth, h.UpdatePlaylist)
			playlists.DELETE("/:playlistId", requireAuth, h.DeletePlaylist)
			playlists.PATCH("/add/:playlistId/:videoId", requireAuth, h.AddVideoToPlaylist)
			playlists.PATCH("/remove/:playlistId/:videoId", requireAuth, h.RemoveVideoFromPlaylist)
		}

		tweets := api.Group("/tweets")
		{
			tweets.GET("/user/:userId", h.GetUserTweets)

			tweets.POST("", requireAuth, h.CreateTweet)
			tweets.PATCH("/:tweetId", requireAuth, h.UpdateTweet)
			tweets.DELETE("/:tweetId", requireAuth, h.DeleteTweet)
		}

		dashboard := api.Group("/dashboard")
		{
			dashboard.Use(requireAuth)
			dashboard.GET("/stats", h.ChannelStats)
			dashboard.GET("/videos", h.ChannelVideos)
		}
	}

	return r
}
