package repositories

import (
	"fmt"
	"sync"

	"stratbook/internal/models"

	"github.com/google/uuid"
)

// MockStrategyRepository is an in-memory implementation of StrategyRepository.
type MockStrategyRepository struct {
	strategies map[string]models.Strategy
	mu         sync.RWMutex
}

// NewMockStrategyRepository creates a new instance of MockStrategyRepository.
func NewMockStrategyRepository() *MockStrategyRepository {
	return &MockStrategyRepository{
		strategies: make(map[string]models.Strategy),
	}
}

// GetByTeam returns all strategies belonging to a team.
func (r *MockStrategyRepository) GetByTeam(teamID string) ([]models.Strategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	strategies := make([]models.Strategy, 0)
	for _, s := range r.strategies {
		if s.TeamID == teamID {
			strategies = append(strategies, s)
		}
	}
	return strategies, nil
}

// GetByID returns a strategy by its ID.
func (r *MockStrategyRepository) GetByID(id string) (*models.Strategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	strategy, ok := r.strategies[id]
	if !ok {
		return nil, fmt.Errorf("strategy with ID %s: %w", id, ErrStrategyNotFound)
	}
	return &strategy, nil
}

// Create adds a new strategy.
func (r *MockStrategyRepository) Create(strategy *models.Strategy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strategy.ID == "" {
		strategy.ID = uuid.New().String()
	}
	r.strategies[strategy.ID] = *strategy
	return nil
}

// Update modifies an existing strategy.
func (r *MockStrategyRepository) Update(strategy *models.Strategy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.strategies[strategy.ID]
	if !ok {
		return fmt.Errorf("strategy with ID %s: %w", strategy.ID, ErrStrategyNotFound)
	}
	r.strategies[strategy.ID] = *strategy
	return nil
}

// Delete removes a strategy by its ID.
func (r *MockStrategyRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.strategies[id]
	if !ok {
		return fmt.Errorf("strategy with ID %s: %w", id, ErrStrategyNotFound)
	}
	delete(r.strategies, id)
	return nil
}
