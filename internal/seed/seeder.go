package seed

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/vikash-ftw/VideoTube-Backend/internal/logger"
	"github.com/vikash-ftw/VideoTube-Backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	_ = gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{db: db}
}

// SeedDev seeds the development database with realistic data
func (s *Seeder) SeedDev() error {
	log := func(msg string) {
		logger.Log.Info(msg)
	}

	log("Creating users...")
	users, err := s.seedUsers(50)
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	log("Creating videos...")
	videos, err := s.seedVideos(users, 200)
	if err != nil {
		return fmt.Errorf("failed to seed videos: %w", err)
	}

	log("Creating comments...")
	if err := s.seedComments(users, videos, 500); err != nil {
		return fmt.Errorf("failed to seed comments: %w", err)
	}

	log("Creating tweets...")
	if err := s.seedTweets(users, 150); err != nil {
		return fmt.Errorf("failed to seed tweets: %w", err)
	}

	log("Creating likes...")
	if err := s.seedLikes(users, videos, 800); err != nil {
		return fmt.Errorf("failed to seed likes: %w", err)
	}

	log("Creating subscriptions...")
	if err := s.seedSubscriptions(users, 300); err != nil {
		return fmt.Errorf("failed to seed subscriptions: %w", err)
	}

	log("Creating playlists...")
	if err := s.seedPlaylists(users, videos, 40); err != nil {
		return fmt.Errorf("failed to seed playlists: %w", err)
	}

	log("Creating watch history...")
	if err := s.seedWatchHistory(users, videos, 1000); err != nil {
		return fmt.Errorf("failed to seed watch history: %w", err)
	}

	return nil
}

// SeedTest seeds the test database with a small fixed set of users
func (s *Seeder) SeedTest() error {
	specs := []struct {
		username string
		email    string
		fullName string
	}{
		{"alice", "alice@example.com", "Alice Smith"},
		{"bob", "bob@example.com", "Bob Johnson"},
		{"charlie", "charlie@example.com", "Charlie Brown"},
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	for _, spec := range specs {
		user := models.User{
			Username: spec.username,
			Email:    spec.email,
			FullName: spec.fullName,
			Password: string(hashed),
			Avatar:   gofakeit.ImageURL(200, 200),
		}
		if err := s.db.Where("username = ?", spec.username).FirstOrCreate(&user).Error; err != nil {
			return fmt.Errorf("failed to create test user %s: %w", spec.username, err)
		}
	}

	return nil
}

// Clean removes all seeded rows. Order respects foreign keys.
func (s *Seeder) Clean() error {
	tables := []string{
		"watch_history", "playlist_videos", "playlists", "likes",
		"subscriptions", "comments", "tweets", "videos", "users",
	}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clean %s: %w", table, err)
		}
	}
	return nil
}

func (s *Seeder) seedUsers(count int) ([]models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		user := models.User{
			Username:   fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Email:      fmt.Sprintf("%d_%s", i, gofakeit.Email()),
			FullName:   gofakeit.Name(),
			Password:   string(hashed),
			Avatar:     gofakeit.ImageURL(200, 200),
			CoverImage: gofakeit.ImageURL(1200, 300),
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) seedVideos(users []models.User, count int) ([]models.Video, error) {
	videos := make([]models.Video, 0, count)
	for i := 0; i < count; i++ {
		owner := users[rand.Intn(len(users))]
		video := models.Video{
			OwnerID:     owner.ID,
			Title:       gofakeit.Sentence(5),
			Description: gofakeit.Paragraph(1, 3, 12, " "),
			VideoFile:   gofakeit.URL() + "/video.mp4",
			Thumbnail:   gofakeit.ImageURL(640, 360),
			Duration:    float64(gofakeit.Number(30, 3600)),
			Views:       gofakeit.Number(0, 100000),
			IsPublished: gofakeit.Number(0, 9) > 0, // ~10% drafts
		}
		if err := s.db.Create(&video).Error; err != nil {
			return nil, err
		}
		videos = append(videos, video)
	}
	return videos, nil
}

func (s *Seeder) seedComments(users []models.User, videos []models.Video, count int) error {
	for i := 0; i < count; i++ {
		comment := models.Comment{
			VideoID: videos[rand.Intn(len(videos))].ID,
			OwnerID: users[rand.Intn(len(users))].ID,
			Content: gofakeit.Sentence(gofakeit.Number(3, 20)),
		}
		if err := s.db.Create(&comment).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedTweets(users []models.User, count int) error {
	for i := 0; i < count; i++ {
		tweet := models.Tweet{
			OwnerID: users[rand.Intn(len(users))].ID,
			Content: gofakeit.Sentence(gofakeit.Number(3, 25)),
		}
		if err := s.db.Create(&tweet).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedLikes(users []models.User, videos []models.Video, count int) error {
	for i := 0; i < count; i++ {
		like := models.Like{
			UserID:     users[rand.Intn(len(users))].ID,
			TargetID:   videos[rand.Intn(len(videos))].ID,
			TargetKind: models.LikeTargetVideo,
		}
		// Random pairs collide with the unique index; skip duplicates
		if err := s.db.Create(&like).Error; err != nil && !isDuplicate(err) {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedSubscriptions(users []models.User, count int) error {
	for i := 0; i < count; i++ {
		subscriber := users[rand.Intn(len(users))]
		channel := users[rand.Intn(len(users))]
		if subscriber.ID == channel.ID {
			continue
		}
		sub := models.Subscription{
			SubscriberID: subscriber.ID,
			ChannelID:    channel.ID,
		}
		if err := s.db.Create(&sub).Error; err != nil && !isDuplicate(err) {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedPlaylists(users []models.User, videos []models.Video, count int) error {
	for i := 0; i < count; i++ {
		playlist := models.Playlist{
			OwnerID:     users[rand.Intn(len(users))].ID,
			Name:        gofakeit.HipsterWord() + " mix",
			Description: gofakeit.Sentence(8),
		}
		if err := s.db.Create(&playlist).Error; err != nil {
			return err
		}

		members := gofakeit.Number(1, 10)
		for pos := 0; pos < members; pos++ {
			pv := models.PlaylistVideo{
				PlaylistID: playlist.ID,
				VideoID:    videos[rand.Intn(len(videos))].ID,
				Position:   pos,
			}
			if err := s.db.Create(&pv).Error; err != nil && !isDuplicate(err) {
				return err
			}
		}
	}
	return nil
}

func (s *Seeder) seedWatchHistory(users []models.User, videos []models.Video, count int) error {
	for i := 0; i < count; i++ {
		entry := models.WatchHistory{
			UserID:    users[rand.Intn(len(users))].ID,
			VideoID:   videos[rand.Intn(len(videos))].ID,
			WatchedAt: gofakeit.DateRange(time.Now().AddDate(0, -3, 0), time.Now()),
		}
		if err := s.db.Create(&entry).Error; err != nil {
			return err
		}
	}
	return nil
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
