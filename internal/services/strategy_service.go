package services

import (
	"stratbook/internal/models"
	"stratbook/internal/repositories"
)

// StrategyService handles business logic related to strategies.
type StrategyService struct {
	repo repositories.StrategyRepository
}

// NewStrategyService creates a new StrategyService.
func NewStrategyService(repo repositories.StrategyRepository) *StrategyService {
	return &StrategyService{
		repo: repo,
	}
}

// GetTeamStrategies retrieves all strategies of a team.
func (s *StrategyService) GetTeamStrategies(teamID string) ([]models.Strategy, error) {
	return s.repo.GetByTeam(teamID)
}

// GetStrategyByID retrieves a single strategy by its ID.
func (s *StrategyService) GetStrategyByID(id string) (*models.Strategy, error) {
	return s.repo.GetByID(id)
}

// CreateStrategy persists a new strategy. The payload has already passed
// request validation; ownership fields are set by the handler from the
// authenticated subject.
func (s *StrategyService) CreateStrategy(strategy *models.Strategy) error {
	return s.repo.Create(strategy)
}

// UpdateStrategy updates an existing strategy.
func (s *StrategyService) UpdateStrategy(strategy *models.Strategy) error {
	return s.repo.Update(strategy)
}

// DeleteStrategy deletes a strategy by its ID.
func (s *StrategyService) DeleteStrategy(id string) error {
	return s.repo.Delete(id)
}
