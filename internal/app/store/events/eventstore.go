// internal/app/store/events/eventstore.go
package eventstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/eventhub/internal/domain/models"
	"gorm.io/gorm"
)

// ErrEventNotFound is returned when the referenced event id does not exist.
var ErrEventNotFound = errors.New("event not found")

// Fields are the four editable event attributes. The organizer is set once
// at creation and never through this struct.
type Fields struct {
	Title       string
	Description string
	Date        time.Time
	Location    string
}

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Create persists a new event with the caller as organizer.
func (s *Store) Create(ctx context.Context, organizerID uint, f Fields) (*models.Event, error) {
	e := models.Event{
		Title:       f.Title,
		Description: f.Description,
		Date:        f.Date,
		Location:    f.Location,
		OrganizerID: organizerID,
	}
	if err := s.db.WithContext(ctx).Create(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// Update overwrites the four editable fields; id and organizer stay as they
// are and updated_at is refreshed by gorm.
func (s *Store) Update(ctx context.Context, event *models.Event, f Fields) error {
	return s.db.WithContext(ctx).Model(event).Updates(map[string]any{
		"title":       f.Title,
		"description": f.Description,
		"date":        f.Date,
		"location":    f.Location,
	}).Error
}

// Delete removes the event and all its registrations in one transaction.
// The cascade is explicit here rather than left to the database so the
// ownership rule is visible in the service layer.
func (s *Store) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&models.Registration{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Event{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrEventNotFound
		}
		return nil
	})
}

// GetByID fetches one event with its organizer preloaded.
func (s *Store) GetByID(ctx context.Context, id uint) (*models.Event, error) {
	var e models.Event
	err := s.db.WithContext(ctx).Preload("Organizer").First(&e, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &e, nil
}

// ListAll returns every event, newest date first. Used for the public home
// listing and the admin dashboard.
func (s *Store) ListAll(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := s.db.WithContext(ctx).
		Preload("Organizer").
		Order("date DESC, id DESC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// ListByOrganizer returns the organizer's own events, newest date first.
func (s *Store) ListByOrganizer(ctx context.Context, organizerID uint) ([]models.Event, error) {
	var events []models.Event
	err := s.db.WithContext(ctx).
		Preload("Organizer").
		Where("organizer_id = ?", organizerID).
		Order("date DESC, id DESC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
