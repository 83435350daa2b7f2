// Command seed populates the database with sample users, events, and
// registrations for local development and demos.
//
// Usage:
//
//	go run ./cmd/seed --dsn "host=localhost user=eventhub ..." \
//	    --organizers 2 --students 8 --events 6
//
// The DSN falls back to EVENTHUB_POSTGRES_DSN (a .env file is honored).
// Existing usernames are skipped, so re-running is safe.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	eventstore "github.com/dalemusser/eventhub/internal/app/store/events"
	regstore "github.com/dalemusser/eventhub/internal/app/store/registrations"
	userstore "github.com/dalemusser/eventhub/internal/app/store/users"
	"github.com/dalemusser/eventhub/internal/domain/models"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const defaultPassword = "changeme123"

var sampleEvents = []struct {
	title       string
	description string
	location    string
}{
	{"Welcome Week Mixer", "<p>Meet fellow students over snacks and games.</p>", "Student Union Ballroom"},
	{"Intro to Robotics Workshop", "<p>Hands-on session with the robotics club. No experience needed.</p>", "Engineering Lab 204"},
	{"Career Fair Prep Session", "<p>Resume reviews and mock interviews with alumni volunteers.</p>", "Career Center"},
	{"Open Mic Night", "<p>Music, poetry, and comedy. Sign-up sheet at the door.</p>", "Campus Coffee House"},
	{"Intramural Soccer Kickoff", "<p>Season opener. Bring cleats and water.</p>", "South Field"},
	{"Study Abroad Info Session", "<p>Programs, scholarships, and application timelines.</p>", "Global Education Office"},
}

func main() {
	_ = godotenv.Load()

	var (
		dsn        = flag.String("dsn", os.Getenv("EVENTHUB_POSTGRES_DSN"), "PostgreSQL DSN")
		organizers = flag.Int("organizers", 2, "number of organizer accounts")
		students   = flag.Int("students", 8, "number of student accounts")
		eventCount = flag.Int("events", len(sampleEvents), "number of events")
	)
	flag.Parse()

	if *dsn == "" {
		log.Fatal("no DSN: pass --dsn or set EVENTHUB_POSTGRES_DSN")
	}

	db, err := gorm.Open(postgres.Open(*dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatalf("connect: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := db.WithContext(ctx).AutoMigrate(&models.User{}, &models.Event{}, &models.Registration{}); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	users := userstore.New(db)
	events := eventstore.New(db)
	regs := regstore.New(db)

	admin := ensureUser(ctx, users, "admin", models.RoleAdmin)
	log.Printf("admin ready: %s (id=%d)", admin.Username, admin.ID)

	var organizerIDs []uint
	for i := 1; i <= *organizers; i++ {
		u := ensureUser(ctx, users, fmt.Sprintf("organizer%d", i), models.RoleOrganizer)
		organizerIDs = append(organizerIDs, u.ID)
	}

	var studentIDs []uint
	for i := 1; i <= *students; i++ {
		u := ensureUser(ctx, users, fmt.Sprintf("student%d", i), models.RoleStudent)
		studentIDs = append(studentIDs, u.ID)
	}

	var eventIDs []uint
	for i := 0; i < *eventCount; i++ {
		sample := sampleEvents[i%len(sampleEvents)]
		organizerID := organizerIDs[i%len(organizerIDs)]
		date := time.Now().AddDate(0, 0, 3+i*4).Truncate(time.Hour)

		ev, err := events.Create(ctx, organizerID, eventstore.Fields{
			Title:       sample.title,
			Description: sample.description,
			Date:        date,
			Location:    sample.location,
		})
		if err != nil {
			log.Fatalf("create event %q: %v", sample.title, err)
		}
		eventIDs = append(eventIDs, ev.ID)
		log.Printf("event created: %q on %s", ev.Title, ev.Date.Format("2006-01-02"))
	}

	// Register each student for a few random events. Duplicates from
	// earlier runs just skip.
	registered := 0
	for _, sid := range studentIDs {
		for _, eid := range pickEvents(eventIDs) {
			if _, err := regs.Create(ctx, sid, eid); err != nil {
				if err == regstore.ErrAlreadyRegistered {
					continue
				}
				log.Fatalf("register student %d for event %d: %v", sid, eid, err)
			}
			registered++
		}
	}

	log.Printf("done: %d organizers, %d students, %d events, %d new registrations (password for all: %q)",
		len(organizerIDs), len(studentIDs), len(eventIDs), registered, defaultPassword)
}

// ensureUser creates the account or returns the existing one.
func ensureUser(ctx context.Context, users *userstore.Store, username string, role models.Role) *models.User {
	u, err := users.Create(ctx, username, defaultPassword, role)
	if err == nil {
		log.Printf("user created: %s (%s)", username, role)
		return u
	}
	if err != userstore.ErrUsernameTaken {
		log.Fatalf("create user %q: %v", username, err)
	}

	existing, err := users.GetByUsername(ctx, username)
	if err != nil {
		log.Fatalf("lookup user %q: %v", username, err)
	}
	log.Printf("user exists, skipping: %s", username)
	return existing
}

// pickEvents returns a random subset of one to three event ids.
func pickEvents(ids []uint) []uint {
	if len(ids) == 0 {
		return nil
	}
	n := 1 + rand.Intn(3)
	if n > len(ids) {
		n = len(ids)
	}
	shuffled := append([]uint(nil), ids...)
	rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	return shuffled[:n]
}
