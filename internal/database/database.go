package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/vikash-ftw/VideoTube-Backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB holds the database connection
var DB *gorm.DB

// Initialize creates and configures the database connection
func Initialize() error {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		// Fallback to individual components
		host := getEnvOrDefault("DB_HOST", "localhost")
		port := getEnvOrDefault("DB_PORT", "5432")
		user := getEnvOrDefault("DB_USER", "postgres")
		password := getEnvOrDefault("DB_PASSWORD", "")
		dbname := getEnvOrDefault("DB_NAME", "videotube")
		sslmode := getEnvOrDefault("DB_SSLMODE", "disable")

		databaseURL = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			host, port, user, password, dbname, sslmode)
	}

	// Configure GORM logger
	gormLogger := logger.Default
	if os.Getenv("ENVIRONMENT") == "development" {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	DB = db
	log.Println("✅ Database connected successfully")

	return nil
}

// Migrate runs auto-migration for all models
func Migrate() error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	err := DB.AutoMigrate(
		&models.User{},
		&models.Video{},
		&models.Comment{},
		&models.Tweet{},
		&models.Playlist{},
		&models.PlaylistVideo{},
		&models.Like{},
		&models.Subscription{},
		&models.WatchHistory{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := createIndexes(); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("✅ Database migrations completed")
	return nil
}

// createIndexes creates uniqueness and performance indexes
func createIndexes() error {
	// Toggle edges. The unique indexes are load-bearing: concurrent
	// toggles race on insert and the loser sees a duplicate-key error.
	DB.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_likes_unique ON likes (user_id, target_id, target_kind)")
	DB.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_subscriptions_unique ON subscriptions (subscriber_id, channel_id)")
	DB.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_playlist_videos_unique ON playlist_videos (playlist_id, video_id)")

	// Feed and listing queries
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_videos_owner_created ON videos (owner_id, created_at DESC)")
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_videos_published_created ON videos (is_published, created_at DESC)")
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_comments_video_created ON comments (video_id, created_at DESC)")
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_tweets_owner_created ON tweets (owner_id, created_at DESC)")
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_likes_target ON likes (target_id, target_kind)")
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_watch_history_user_watched ON watch_history (user_id, watched_at DESC)")

	return nil
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
