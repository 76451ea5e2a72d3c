package seed

import (
	"fmt"
	"log"
	"strings"

	"resonate/internal/models"

	"gorm.io/gorm"
)

// Options control seeding behavior.
type Options struct {
	// Users is the number of accounts to create.
	Users int
	// AudiosPerUser is the number of uploads per account.
	AudiosPerUser int
	// MaxDays spreads generated timestamps over this many days back.
	MaxDays int
	// SkipBcrypt stores plain passwords. Only for throwaway dev databases.
	SkipBcrypt bool
	// DryRun logs what would be created without touching the database.
	DryRun bool
}

// DefaultOptions returns a small but connected demo dataset.
func DefaultOptions() Options {
	return Options{
		Users:         12,
		AudiosPerUser: 6,
		MaxDays:       90,
	}
}

// Demo populates the database with a connected demo dataset: users with
// uploads, a follow graph, listening history and a curated catalog. The
// result exercises every read path the API exposes.
func Demo(db *gorm.DB, opts Options) error {
	f := NewFactory(db, opts)

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
	}

	audios := make([]*models.Audio, 0, opts.Users*opts.AudiosPerUser)
	for _, user := range users {
		batch := make([]*models.Audio, 0, opts.AudiosPerUser)
		for i := 0; i < opts.AudiosPerUser; i++ {
			batch = append(batch, f.BuildAudio(user))
		}
		if err := f.CreateAudiosBatch(batch); err != nil {
			return fmt.Errorf("seed audios for user %d: %w", user.ID, err)
		}
		audios = append(audios, batch...)
	}

	// Each user follows roughly a third of the others.
	for i, follower := range users {
		for j, followee := range users {
			if i == j || (i+j)%3 != 0 {
				continue
			}
			if err := f.CreateFollow(follower.ID, followee.ID); err != nil {
				return fmt.Errorf("seed follow: %w", err)
			}
		}
	}

	// Each user listens to a handful of other users' uploads.
	for i, user := range users {
		for j := 0; j < 8 && j < len(audios); j++ {
			audio := audios[(i*7+j*3)%len(audios)]
			if audio.OwnerID == user.ID {
				continue
			}
			if err := f.CreateHistoryEntry(user.ID, audio); err != nil {
				return fmt.Errorf("seed history: %w", err)
			}
		}
	}

	if err := CuratedCatalog(db, f, audios); err != nil {
		return err
	}

	log.Printf("seeded %d users, %d audios", len(users), len(audios))
	return nil
}

// CuratedCatalog creates one editorial playlist per category that has
// seeded content. Existing titles are kept as-is so re-seeding is safe.
func CuratedCatalog(db *gorm.DB, f *Factory, audios []*models.Audio) error {
	byCategory := make(map[string][]*models.Audio)
	for _, a := range audios {
		byCategory[a.Category] = append(byCategory[a.Category], a)
	}

	for category, members := range byCategory {
		if !f.opts.DryRun {
			var count int64
			if err := db.Model(&models.CuratedPlaylist{}).
				Where("title = ?", category).
				Count(&count).Error; err != nil {
				return fmt.Errorf("check curated playlist %q: %w", category, err)
			}
			if count > 0 {
				continue
			}
		}

		if len(members) > 10 {
			members = members[:10]
		}
		if err := f.CreateCuratedPlaylist(category, members); err != nil {
			return fmt.Errorf("seed curated playlist %q: %w", category, err)
		}
	}
	return nil
}

func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
