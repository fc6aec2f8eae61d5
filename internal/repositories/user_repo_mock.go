package repositories

import (
	"fmt"
	"sync"

	"stratbook/internal/models"

	"github.com/google/uuid"
)

// MockUserRepository is an in-memory implementation of UserRepository.
// It enforces the same email uniqueness invariant as the GORM backend so
// service behavior is identical against either.
type MockUserRepository struct {
	users map[string]models.User
	mu    sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]models.User),
	}
}

// Create adds a new user, rejecting duplicate emails.
func (r *MockUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return fmt.Errorf("create user %s: %w", user.Email, ErrDuplicateEmail)
		}
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	r.users[user.ID] = *user
	return nil
}

// GetByID returns a user by its ID.
func (r *MockUserRepository) GetByID(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user with ID %s: %w", id, ErrUserNotFound)
	}
	return &user, nil
}

// GetByEmail returns a user by its email.
func (r *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user with email %s: %w", email, ErrUserNotFound)
}

// ExistsByEmail reports whether an account with the given email exists.
func (r *MockUserRepository) ExistsByEmail(email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// UpdatePassword overwrites the stored password hash for a user.
func (r *MockUserRepository) UpdatePassword(id string, hashedPassword string) error {
	return r.updateUser(id, func(u *models.User) { u.Password = hashedPassword })
}

// UpdateUserName overwrites the display name for a user.
func (r *MockUserRepository) UpdateUserName(id string, userName string) error {
	return r.updateUser(id, func(u *models.User) { u.UserName = userName })
}

// UpdateCompletedTutorial sets the tutorial-completion flag for a user.
func (r *MockUserRepository) UpdateCompletedTutorial(id string, completed bool) error {
	return r.updateUser(id, func(u *models.User) { u.CompletedTutorial = completed })
}

// Len returns the number of stored users. Used by tests.
func (r *MockUserRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

func (r *MockUserRepository) updateUser(id string, apply func(*models.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user with ID %s: %w", id, ErrUserNotFound)
	}
	apply(&user)
	r.users[id] = user
	return nil
}
