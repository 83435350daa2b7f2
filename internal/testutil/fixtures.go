package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/eventhub/internal/domain/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *gorm.DB
	t  *testing.T
}

// NewFixtures creates a Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *gorm.DB) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *gorm.DB {
	return f.db
}

// TestPassword is the password every fixture account authenticates with.
const TestPassword = "testpass123"

func (f *Fixtures) createUser(ctx context.Context, username string, role models.Role) models.User {
	f.t.Helper()

	// MinCost keeps fixture creation fast; the hash is still real bcrypt.
	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("hash fixture password: %v", err)
	}

	u := models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := f.db.WithContext(ctx).Create(&u).Error; err != nil {
		f.t.Fatalf("create test user %q: %v", username, err)
	}
	return u
}

// CreateStudent creates a student account.
func (f *Fixtures) CreateStudent(ctx context.Context, username string) models.User {
	return f.createUser(ctx, username, models.RoleStudent)
}

// CreateOrganizer creates an organizer account.
func (f *Fixtures) CreateOrganizer(ctx context.Context, username string) models.User {
	return f.createUser(ctx, username, models.RoleOrganizer)
}

// CreateAdmin creates an admin account.
func (f *Fixtures) CreateAdmin(ctx context.Context, username string) models.User {
	return f.createUser(ctx, username, models.RoleAdmin)
}

// CreateEvent creates an event one week out, organized by organizerID.
func (f *Fixtures) CreateEvent(ctx context.Context, title string, organizerID uint) models.Event {
	return f.CreateEventAt(ctx, title, organizerID, time.Now().Add(7*24*time.Hour))
}

// CreateEventAt creates an event with an explicit date.
func (f *Fixtures) CreateEventAt(ctx context.Context, title string, organizerID uint, date time.Time) models.Event {
	f.t.Helper()

	e := models.Event{
		Title:       title,
		Description: "Test Description",
		Date:        date,
		Location:    "Test Location",
		OrganizerID: organizerID,
	}
	if err := f.db.WithContext(ctx).Create(&e).Error; err != nil {
		f.t.Fatalf("create test event %q: %v", title, err)
	}
	return e
}

// CreateRegistration registers the student for the event.
func (f *Fixtures) CreateRegistration(ctx context.Context, studentID, eventID uint) models.Registration {
	f.t.Helper()

	reg := models.Registration{StudentID: studentID, EventID: eventID}
	if err := f.db.WithContext(ctx).Create(&reg).Error; err != nil {
		f.t.Fatalf("create test registration: %v", err)
	}
	return reg
}
