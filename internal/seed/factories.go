// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"resonate/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Categories is the fixed category vocabulary used for generated content.
var Categories = []string{
	"Arts", "Business", "Education", "Entertainment",
	"Kids & Family", "Music", "Science", "Tech", "Others",
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:     db,
		opts:   opts,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		nextID: 1000,
	}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Name:   gofakeit.Name(),
		Email:  gofakeit.Email(),
		Avatar: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s <%s>", user.Name, user.Email)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildAudio constructs an audio struct without persisting it. Useful for
// batching.
func (f *Factory) BuildAudio(owner *models.User, overrides ...func(*models.Audio)) *models.Audio {
	audio := &models.Audio{
		Title:      gofakeit.Sentence(4),
		About:      gofakeit.Paragraph(1, 2, 5, "\n"),
		Category:   Categories[f.rng.Intn(len(Categories))],
		File:       fmt.Sprintf("https://cdn.resonate.local/audio/%s.mp3", gofakeit.UUID()),
		Poster:     fmt.Sprintf("https://picsum.photos/seed/%s/600/600", gofakeit.UUID()),
		OwnerID:    owner.ID,
		LikesCount: int64(f.rng.Intn(5000)),
	}

	// realistic created_at spread
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	audio.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(audio)
	}
	return audio
}

// CreateAudiosBatch persists multiple audios in a single DB call when possible.
func (f *Factory) CreateAudiosBatch(audios []*models.Audio) error {
	if f.opts.DryRun {
		for _, a := range audios {
			f.nextID++
			a.ID = f.nextID
		}
		log.Printf("[dry-run] CreateAudiosBatch: %d audios (no DB write)", len(audios))
		return nil
	}
	return f.db.Create(&audios).Error
}

// CreateFollow persists a follow edge. Duplicate edges are ignored so seed
// presets can wire the graph without bookkeeping.
func (f *Factory) CreateFollow(followerID, followeeID uint) error {
	if followerID == followeeID {
		return nil
	}
	if f.opts.DryRun {
		log.Printf("[dry-run] CreateFollow: %d -> %d", followerID, followeeID)
		return nil
	}
	err := f.db.Create(&models.Follow{
		FollowerID: followerID,
		FolloweeID: followeeID,
	}).Error
	if err != nil && isDuplicateError(err) {
		return nil
	}
	return err
}

// CreateHistoryEntry persists a listening event for the given audio,
// snapshotting the audio's category.
func (f *Factory) CreateHistoryEntry(ownerID uint, audio *models.Audio) error {
	entry := &models.HistoryEntry{
		OwnerID:  ownerID,
		AudioID:  audio.ID,
		Category: audio.Category,
		Progress: float64(f.rng.Intn(100)),
		PlayedAt: time.Now().Add(-time.Duration(f.rng.Intn(30*24)) * time.Hour),
	}
	if f.opts.DryRun {
		log.Printf("[dry-run] CreateHistoryEntry: user %d played audio %d", ownerID, audio.ID)
		return nil
	}
	return f.db.Create(entry).Error
}

// CreateCuratedPlaylist persists an editorial playlist referencing the given
// audios.
func (f *Factory) CreateCuratedPlaylist(title string, audios []*models.Audio) error {
	playlist := &models.CuratedPlaylist{Title: title}
	for i, a := range audios {
		playlist.Items = append(playlist.Items, models.CuratedPlaylistItem{
			AudioID:  a.ID,
			Position: i,
		})
	}
	if f.opts.DryRun {
		log.Printf("[dry-run] CreateCuratedPlaylist: %s (%d items)", title, len(audios))
		return nil
	}
	return f.db.Create(playlist).Error
}
