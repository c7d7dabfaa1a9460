package main

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"civictrack/internal/config"
	"civictrack/internal/db"
	"civictrack/internal/model"
	"civictrack/internal/repository"
)

// Demo data for local development. Safe to run repeatedly; existing users
// are matched by email and existing issues by title and reporter.
var seedUsers = []struct {
	Name     string
	Email    string
	Password string
}{
	{"Asha Rao", "asha@example.com", "password123"},
	{"Ben Carter", "ben@example.com", "password123"},
	{"City Admin", "admin@example.com", "password123"},
}

var seedIssues = []struct {
	ReporterEmail string
	Title         string
	Description   string
	Category      string
	Latitude      float64
	Longitude     float64
	PhotoURLs     []string
}{
	{
		ReporterEmail: "asha@example.com",
		Title:         "Pothole",
		Description:   "On Main St near the bus stop",
		Category:      "road",
		Latitude:      12.9716,
		Longitude:     77.5946,
		PhotoURLs:     []string{"https://photos.example.com/pothole-1.jpg"},
	},
	{
		ReporterEmail: "ben@example.com",
		Title:         "Streetlight out",
		Description:   "Dark stretch along 5th Avenue",
		Category:      "electricity",
		Latitude:      12.9352,
		Longitude:     77.6245,
	},
	{
		ReporterEmail: "asha@example.com",
		Title:         "Overflowing bin",
		Description:   "Garbage not collected for a week",
		Category:      "sanitation",
		Latitude:      12.9611,
		Longitude:     77.6387,
		PhotoURLs: []string{
			"https://photos.example.com/bin-1.jpg",
			"https://photos.example.com/bin-2.jpg",
		},
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Issue{},
		&model.IssuePhoto{},
		&model.StatusLog{},
		&model.Flag{},
		&model.BannedUser{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	if err := run(context.Background(), gormDB); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}

	log.Println("Seed completed")
}

func run(ctx context.Context, gormDB *gorm.DB) error {
	userRepo := repository.NewUserRepository(gormDB)
	issueRepo := repository.NewIssueRepository(gormDB)

	usersByEmail := make(map[string]*model.User, len(seedUsers))
	created, skipped := 0, 0
	for _, su := range seedUsers {
		if existing, err := userRepo.FindByEmail(ctx, su.Email); err == nil {
			usersByEmail[su.Email] = existing
			skipped++
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		user := &model.User{
			Name:         su.Name,
			Email:        su.Email,
			PasswordHash: string(hash),
			IsVerified:   true,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("create user %s: %w", su.Email, err)
		}
		usersByEmail[su.Email] = user
		created++
	}
	log.Printf("Users: %d created, %d already present", created, skipped)

	created, skipped = 0, 0
	for _, si := range seedIssues {
		reporter, ok := usersByEmail[si.ReporterEmail]
		if !ok {
			return fmt.Errorf("unknown reporter email %s", si.ReporterEmail)
		}

		var count int64
		if err := gormDB.Model(&model.Issue{}).
			Where("title = ? AND user_id = ?", si.Title, reporter.ID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("check for issue %q: %w", si.Title, err)
		}
		if count > 0 {
			skipped++
			continue
		}

		userID := reporter.ID
		issue := &model.Issue{
			UserID:      &userID,
			Title:       si.Title,
			Description: si.Description,
			Category:    si.Category,
			Latitude:    si.Latitude,
			Longitude:   si.Longitude,
			Status:      model.StatusReported,
		}
		for _, url := range si.PhotoURLs {
			issue.Photos = append(issue.Photos, model.IssuePhoto{PhotoURL: url})
		}
		if err := issueRepo.Create(ctx, issue); err != nil {
			return fmt.Errorf("create issue %q: %w", si.Title, err)
		}
		created++
	}
	log.Printf("Issues: %d created, %d already present", created, skipped)

	return nil
}
