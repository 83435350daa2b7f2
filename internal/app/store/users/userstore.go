// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"

	"github.com/dalemusser/eventhub/internal/domain/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrUsernameTaken is returned when the unique username index rejects
	// a create.
	ErrUsernameTaken = errors.New("username is already taken")

	// ErrInvalidCredentials is returned by Authenticate for an unknown
	// username or a wrong password; callers must not distinguish the two.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Create persists a new account with a bcrypt-hashed password.
func (s *Store) Create(ctx context.Context, username, password string, role models.Role) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return &u, nil
}

// GetByID fetches one user. Returns gorm.ErrRecordNotFound if absent.
func (s *Store) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByUsername fetches one user by username.
func (s *Store) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// Authenticate verifies a username/password pair.
func (s *Store) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}
