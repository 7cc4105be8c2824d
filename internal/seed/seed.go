package seed

import (
	"fmt"
	"log"
	"math/rand"

	"reconnect/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeder populates the database with demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder with default options.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db, Options{})}
}

// ClearAll removes all seeded rows.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	return s.db.Exec(`TRUNCATE TABLE friend_requests, users RESTART IDENTITY CASCADE;`).Error
}

// SeedCommunity creates numUsers onboarded users plus a handful of
// well-known accounts, then connects them with a mesh of pending and
// accepted friend requests. All seeded users share the password
// "password123".
func (s *Seeder) SeedCommunity(numUsers int) ([]models.User, error) {
	log.Printf("Seeding %d users...", numUsers)

	users := make([]models.User, 0, numUsers)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	wellKnown := []struct {
		name  string
		email string
	}{
		{"Ann Chovey", "ann@example.com"},
		{"Bo Vine", "bo@example.com"},
		{"Cy Press", "cy@example.com"},
	}
	for _, w := range wellKnown {
		if numUsers <= len(users) {
			break
		}
		w := w
		user, err := s.factory.CreateUser(func(u *models.User) {
			u.FullName = w.name
			u.Email = w.email
			u.Password = string(hashedPassword)
		})
		if err != nil {
			log.Printf("Failed to create user %s: %v", w.email, err)
			continue
		}
		users = append(users, *user)
	}

	for i := len(users); i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			log.Printf("Failed to create user: %v", err)
			continue
		}
		users = append(users, *user)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}

	if err := s.seedFriendMesh(users); err != nil {
		return nil, fmt.Errorf("failed to seed friend mesh: %w", err)
	}

	log.Printf("Seeded %d users", len(users))
	return users, nil
}

// seedFriendMesh connects users with accepted friendships and pending
// requests. At most one request exists per user pair.
func (s *Seeder) seedFriendMesh(users []models.User) error {
	if len(users) < 2 {
		return nil
	}

	seen := make(map[[2]uint]bool)
	target := len(users) * 2

	for i := 0; i < target; i++ {
		sender := &users[rand.Intn(len(users))]
		recipient := &users[rand.Intn(len(users))]
		if sender.ID == recipient.ID {
			continue
		}

		key := [2]uint{sender.ID, recipient.ID}
		if sender.ID > recipient.ID {
			key = [2]uint{recipient.ID, sender.ID}
		}
		if seen[key] {
			continue
		}
		seen[key] = true

		status := models.FriendRequestStatusPending
		if rand.Float32() < 0.6 {
			status = models.FriendRequestStatusAccepted
		}

		if _, err := s.factory.CreateFriendRequest(sender, recipient, status); err != nil {
			return err
		}
	}

	return nil
}
