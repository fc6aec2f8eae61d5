package services_test

import (
	"errors"
	"fmt"
	"log"
	"os"
	"testing"

	"stratbook/internal/models"
	"stratbook/internal/repositories"
	"stratbook/internal/services"
	"stratbook/pkg/rabbitmq"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(email string) (bool, error) {
	args := m.Called(email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(id string, hashedPassword string) error {
	args := m.Called(id, hashedPassword)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUserName(id string, userName string) error {
	args := m.Called(id, userName)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateCompletedTutorial(id string, completed bool) error {
	args := m.Called(id, completed)
	return args.Error(0)
}

// MockRegistrationPublisher is a mock implementation of services.RegistrationPublisher
type MockRegistrationPublisher struct {
	mock.Mock
}

func (m *MockRegistrationPublisher) PublishUserRegistered(event rabbitmq.UserRegisteredEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

// TestMain is used to setup test environment
func TestMain(m *testing.M) {
	log.SetOutput(os.Stdout)
	code := m.Run()
	os.Exit(code)
}

func TestUserService_CreateUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo, nil, services.UserConfig{})

	mockRepo.On("ExistsByEmail", "justin@example.com").Return(false, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user, err := userService.CreateUser("Justin", "justin@example.com", "correct horse battery")
	assert.NoError(t, err)
	assert.Equal(t, "Justin", user.UserName)
	assert.Equal(t, "justin@example.com", user.Email)
	assert.False(t, user.MailConfirmed)
	assert.False(t, user.CompletedTutorial)

	// The stored credential must never be the plaintext, but must verify
	// against it through bcrypt's own comparison.
	assert.NotEqual(t, "correct horse battery", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("correct horse battery")))
	mockRepo.AssertExpectations(t)
}

func TestUserService_CreateUser_DuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo, nil, services.UserConfig{})

	// Pre-check finds the address in use; no Create must happen.
	mockRepo.On("ExistsByEmail", "taken@example.com").Return(true, nil).Once()

	user, err := userService.CreateUser("Justin", "taken@example.com", "correct horse battery")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, repositories.ErrDuplicateEmail)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestUserService_CreateUser_DuplicateAtStorage(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo, nil, services.UserConfig{})

	// The pre-check is advisory only: a concurrent insert can slip past it
	// and the unique index reports the violation as the same sentinel.
	mockRepo.On("ExistsByEmail", "raced@example.com").Return(false, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).
		Return(fmt.Errorf("create user raced@example.com: %w", repositories.ErrDuplicateEmail)).Once()

	user, err := userService.CreateUser("Justin", "raced@example.com", "correct horse battery")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, repositories.ErrDuplicateEmail)
	mockRepo.AssertExpectations(t)
}

func TestUserService_CreateUser_StorageErrorPassesThrough(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo, nil, services.UserConfig{})

	storageErr := errors.New("connection refused")
	mockRepo.On("ExistsByEmail", "justin@example.com").Return(false, storageErr).Once()

	user, err := userService.CreateUser("Justin", "justin@example.com", "correct horse battery")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, storageErr)
	assert.NotErrorIs(t, err, repositories.ErrDuplicateEmail)
	mockRepo.AssertExpectations(t)
}

func TestUserService_CreateUser_ConfirmedMailToggle(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo, nil, services.UserConfig{CreateUserWithConfirmedMail: true})

	mockRepo.On("ExistsByEmail", "debug@example.com").Return(false, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user, err := userService.CreateUser("Debug", "debug@example.com", "correct horse battery")
	assert.NoError(t, err)
	assert.True(t, user.MailConfirmed)
	mockRepo.AssertExpectations(t)
}

func TestUserService_CreateUser_PublishesRegistrationEvent(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockPublisher := new(MockRegistrationPublisher)
	userService := services.NewUserService(mockRepo, mockPublisher, services.UserConfig{})

	mockRepo.On("ExistsByEmail", "justin@example.com").Return(false, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()
	mockPublisher.On("PublishUserRegistered", mock.MatchedBy(func(e rabbitmq.UserRegisteredEvent) bool {
		return e.Email == "justin@example.com" && !e.MailConfirmed
	})).Return(nil).Once()

	_, err := userService.CreateUser("Justin", "justin@example.com", "correct horse battery")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)

	// A broken broker must never fail the registration itself.
	mockRepo.On("ExistsByEmail", "second@example.com").Return(false, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()
	mockPublisher.On("PublishUserRegistered", mock.AnythingOfType("rabbitmq.UserRegisteredEvent")).
		Return(errors.New("broker down")).Once()

	user, err := userService.CreateUser("Second", "second@example.com", "correct horse battery")
	assert.NoError(t, err)
	assert.NotNil(t, user)
	mockPublisher.AssertExpectations(t)
}

func TestUserService_UpdatePassword_FreshSaltPerCall(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo, nil, services.UserConfig{})

	var hashes []string
	mockRepo.On("UpdatePassword", "user-123", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			hashes = append(hashes, args.String(1))
		}).Return(nil).Twice()

	assert.NoError(t, userService.UpdatePassword("user-123", "new password 1234"))
	assert.NoError(t, userService.UpdatePassword("user-123", "new password 1234"))

	// Same plaintext, two calls: distinct salts produce distinct hashes,
	// yet both verify independently.
	assert.Len(t, hashes, 2)
	assert.NotEqual(t, hashes[0], hashes[1])
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hashes[0]), []byte("new password 1234")))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hashes[1]), []byte("new password 1234")))
	mockRepo.AssertExpectations(t)
}

func TestUserService_AgainstInMemoryStore(t *testing.T) {
	repo := repositories.NewMockUserRepository()
	userService := services.NewUserService(repo, nil, services.UserConfig{})

	created, err := userService.CreateUser("Justin", "justin@example.com", "correct horse battery")
	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	// Lookup after creation returns the hashed credential, never plaintext.
	stored, err := repo.GetByEmail("justin@example.com")
	assert.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", stored.Password)

	// Duplicate registration fails and leaves the store unchanged.
	before := repo.Len()
	_, err = userService.CreateUser("Impostor", "justin@example.com", "another password")
	assert.ErrorIs(t, err, repositories.ErrDuplicateEmail)
	assert.Equal(t, before, repo.Len())

	// Idempotence of intent: renaming twice is not an error.
	assert.NoError(t, userService.UpdateUserName(created.ID, "Alice"))
	assert.NoError(t, userService.UpdateUserName(created.ID, "Alice"))
	stored, err = repo.GetByID(created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Alice", stored.UserName)

	// Tutorial flag is independently mutable.
	assert.NoError(t, userService.UpdateCompletedTutorial(created.ID, true))
	stored, _ = repo.GetByID(created.ID)
	assert.True(t, stored.CompletedTutorial)

	// Unknown ids surface as not-found.
	err = userService.UpdateUserName("missing-id", "Bob")
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
}
