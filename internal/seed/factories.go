// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"reconnect/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// languages mirrors the options offered by the onboarding form.
var languages = []string{
	"english", "spanish", "french", "german", "mandarin", "japanese",
	"korean", "hindi", "russian", "portuguese", "arabic", "italian",
	"turkish", "dutch",
}

// Options configures a seeding run.
type Options struct {
	// SkipBcrypt stores a plaintext password instead of hashing. Faster
	// for large local seeds; never use outside development.
	SkipBcrypt bool
	// DryRun builds entities without writing to the database.
	DryRun bool
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, opts: opts, nextID: 1000}
}

// CreateUser constructs and persists a sample onboarded user.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	native := languages[rand.Intn(len(languages))]
	learning := native
	for learning == native {
		learning = languages[rand.Intn(len(languages))]
	}

	user := &models.User{
		FullName:         gofakeit.Name(),
		Email:            strings.ToLower(gofakeit.Email()),
		Bio:              gofakeit.Sentence(10),
		NativeLanguage:   native,
		LearningLanguage: learning,
		Location:         fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.Country()),
		ProfilePic:       fmt.Sprintf("https://avatar.iran.liara.run/public/%d.png", rand.Intn(100)+1),
		IsOnboarded:      true,
	}

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
		log.Printf("[dry-run] CreateUser: %s <%s>", user.FullName, user.Email)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateFriendRequest persists a friend request between two users.
func (f *Factory) CreateFriendRequest(sender, recipient *models.User, status models.FriendRequestStatus) (*models.FriendRequest, error) {
	request := &models.FriendRequest{
		SenderID:    sender.ID,
		RecipientID: recipient.ID,
		Status:      status,
	}

	if f.opts.DryRun {
		f.nextID++
		request.ID = f.nextID
		log.Printf("[dry-run] CreateFriendRequest: %d -> %d (%s)", sender.ID, recipient.ID, status)
		return request, nil
	}

	if err := f.db.Create(request).Error; err != nil {
		return nil, err
	}
	return request, nil
}
