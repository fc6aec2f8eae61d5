package repositories

import "stratbook/internal/models"

// UserRepository defines the persistence contract for user accounts.
// Email uniqueness is enforced by the implementation (unique index or
// equivalent); Create returns ErrDuplicateEmail on a violation.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	ExistsByEmail(email string) (bool, error)
	UpdatePassword(id string, hashedPassword string) error
	UpdateUserName(id string, userName string) error
	UpdateCompletedTutorial(id string, completed bool) error
}
