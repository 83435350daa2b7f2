// internal/app/store/registrations/registrationstore.go
package registrationstore

import (
	"context"
	"errors"

	"github.com/dalemusser/eventhub/internal/domain/models"
	"gorm.io/gorm"
)

var (
	// ErrAlreadyRegistered is returned when the (student, event) unique
	// index rejects a second registration. Concurrent attempts race at the
	// database; the loser gets this error instead of a duplicate row.
	ErrAlreadyRegistered = errors.New("student is already registered for this event")

	// ErrNotRegistered is returned by Delete when no registration exists
	// for the (student, event) pair.
	ErrNotRegistered = errors.New("student is not registered for this event")
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Create registers the student for the event.
func (s *Store) Create(ctx context.Context, studentID, eventID uint) (*models.Registration, error) {
	reg := models.Registration{
		StudentID: studentID,
		EventID:   eventID,
	}
	if err := s.db.WithContext(ctx).Create(&reg).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyRegistered
		}
		return nil, err
	}
	return &reg, nil
}

// Delete unregisters the student from the event.
func (s *Store) Delete(ctx context.Context, studentID, eventID uint) error {
	res := s.db.WithContext(ctx).
		Where("student_id = ? AND event_id = ?", studentID, eventID).
		Delete(&models.Registration{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotRegistered
	}
	return nil
}

// IsRegistered reports whether the student holds a registration for the
// event.
func (s *Store) IsRegistered(ctx context.Context, studentID, eventID uint) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&models.Registration{}).
		Where("student_id = ? AND event_id = ?", studentID, eventID).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListForStudent returns the student's registrations with events eagerly
// loaded, newest registration first.
func (s *Store) ListForStudent(ctx context.Context, studentID uint) ([]models.Registration, error) {
	var regs []models.Registration
	err := s.db.WithContext(ctx).
		Preload("Event").
		Preload("Event.Organizer").
		Where("student_id = ?", studentID).
		Order("created_at DESC, id DESC").
		Find(&regs).Error
	if err != nil {
		return nil, err
	}
	return regs, nil
}

// ListForEvent returns the event's registrations with students eagerly
// loaded, newest registration first.
func (s *Store) ListForEvent(ctx context.Context, eventID uint) ([]models.Registration, error) {
	var regs []models.Registration
	err := s.db.WithContext(ctx).
		Preload("Student").
		Where("event_id = ?", eventID).
		Order("created_at DESC, id DESC").
		Find(&regs).Error
	if err != nil {
		return nil, err
	}
	return regs, nil
}

// CountForEvent returns the number of registrations for one event.
func (s *Store) CountForEvent(ctx context.Context, eventID uint) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&models.Registration{}).
		Where("event_id = ?", eventID).
		Count(&n).Error
	return n, err
}

// CountsByEvent returns registration counts for all events in one grouped
// query, keyed by event id. Listings use this instead of a count query per
// row.
func (s *Store) CountsByEvent(ctx context.Context) (map[uint]int64, error) {
	type row struct {
		EventID uint
		N       int64
	}
	var rows []row
	err := s.db.WithContext(ctx).
		Model(&models.Registration{}).
		Select("event_id, count(*) as n").
		Group("event_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.EventID] = r.N
	}
	return counts, nil
}
