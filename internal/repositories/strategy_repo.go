package repositories

import "stratbook/internal/models"

// StrategyRepository defines the persistence contract for strategies.
type StrategyRepository interface {
	GetByTeam(teamID string) ([]models.Strategy, error)
	GetByID(id string) (*models.Strategy, error)
	Create(strategy *models.Strategy) error
	Update(strategy *models.Strategy) error
	Delete(id string) error
}
