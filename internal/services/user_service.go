package services

import (
	"fmt"
	"log"
	"time"

	"stratbook/internal/models"
	"stratbook/internal/repositories"
	"stratbook/pkg/rabbitmq"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the adaptive-hash work factor for stored passwords.
const bcryptCost = 10

// RegistrationPublisher publishes account-creation events for the mail worker.
type RegistrationPublisher interface {
	PublishUserRegistered(event rabbitmq.UserRegisteredEvent) error
}

// UserConfig is the configuration consumed by UserService. It is read once at
// startup and passed in as a plain struct.
type UserConfig struct {
	// CreateUserWithConfirmedMail marks new accounts as mail-confirmed
	// immediately. Intended only for non-production environments.
	CreateUserWithConfirmedMail bool
}

// UserService handles business logic for account creation and profile updates.
type UserService struct {
	userRepo  repositories.UserRepository
	publisher RegistrationPublisher // nil when no broker is wired
	cfg       UserConfig
}

// NewUserService creates a new UserService. publisher may be nil.
func NewUserService(userRepo repositories.UserRepository, publisher RegistrationPublisher, cfg UserConfig) *UserService {
	return &UserService{
		userRepo:  userRepo,
		publisher: publisher,
		cfg:       cfg,
	}
}

// CreateUser registers a new account. The email pre-check is advisory; the
// store's unique index is the source of truth and its violation surfaces as
// the same repositories.ErrDuplicateEmail.
func (s *UserService) CreateUser(userName, email, password string) (*models.User, error) {
	inUse, err := s.userRepo.ExistsByEmail(email)
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, fmt.Errorf("email '%s': %w", email, repositories.ErrDuplicateEmail)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		UserName:      userName,
		Email:         email,
		Password:      string(hashedPassword),
		MailConfirmed: s.cfg.CreateUserWithConfirmedMail,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	// Best effort: losing the mail event must not fail the registration.
	if s.publisher != nil {
		event := rabbitmq.UserRegisteredEvent{
			UserID:        user.ID,
			UserName:      user.UserName,
			Email:         user.Email,
			MailConfirmed: user.MailConfirmed,
			RegisteredAt:  time.Now(),
		}
		if err := s.publisher.PublishUserRegistered(event); err != nil {
			log.Printf("Failed to publish registration event for %s: %v", user.Email, err)
		}
	}

	return user, nil
}

// UpdatePassword rotates the stored credential. A fresh salt and hash are
// derived on every call; verification of the old password is the caller's
// concern (the HTTP layer only accepts the authenticated subject's own id).
func (s *UserService) UpdatePassword(id, newPassword string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.userRepo.UpdatePassword(id, string(hashedPassword))
}

// UpdateUserName changes the display name of an account.
func (s *UserService) UpdateUserName(id, userName string) error {
	return s.userRepo.UpdateUserName(id, userName)
}

// UpdateCompletedTutorial sets the tutorial-completion flag of an account.
func (s *UserService) UpdateCompletedTutorial(id string, completed bool) error {
	return s.userRepo.UpdateCompletedTutorial(id, completed)
}

// GetByID returns the account with the given id.
func (s *UserService) GetByID(id string) (*models.User, error) {
	return s.userRepo.GetByID(id)
}
