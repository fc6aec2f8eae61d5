package repositories

import (
	"errors"
	"fmt"

	"stratbook/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMStrategyRepository is a GORM implementation of StrategyRepository.
type GORMStrategyRepository struct {
	db *gorm.DB
}

// NewGORMStrategyRepository creates a new instance of GORMStrategyRepository.
func NewGORMStrategyRepository(db *gorm.DB) *GORMStrategyRepository {
	return &GORMStrategyRepository{
		db: db,
	}
}

// GetByTeam retrieves all strategies belonging to a team.
func (r *GORMStrategyRepository) GetByTeam(teamID string) ([]models.Strategy, error) {
	var strategies []models.Strategy
	if err := r.db.Find(&strategies, "team_id = ?", teamID).Error; err != nil {
		return nil, fmt.Errorf("failed to list strategies for team %s: %w", teamID, err)
	}
	return strategies, nil
}

// GetByID retrieves a strategy by its ID.
func (r *GORMStrategyRepository) GetByID(id string) (*models.Strategy, error) {
	var strategy models.Strategy
	if err := r.db.First(&strategy, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("strategy with ID %s: %w", id, ErrStrategyNotFound)
		}
		return nil, fmt.Errorf("failed to get strategy by ID %s: %w", id, err)
	}
	return &strategy, nil
}

// Create persists a new strategy, assigning an id when none is set.
func (r *GORMStrategyRepository) Create(strategy *models.Strategy) error {
	if strategy.ID == "" {
		strategy.ID = uuid.New().String()
	}
	if err := r.db.Create(strategy).Error; err != nil {
		return fmt.Errorf("failed to create strategy: %w", err)
	}
	return nil
}

// Update saves changes to an existing strategy.
func (r *GORMStrategyRepository) Update(strategy *models.Strategy) error {
	// Select the mutable columns explicitly so zero values (active=false,
	// cleared note) are written too; struct Updates would skip them.
	res := r.db.Model(&models.Strategy{}).
		Where("id = ?", strategy.ID).
		Select("game_map", "name", "type", "side", "active", "note", "video_link").
		Updates(strategy)
	if res.Error != nil {
		return fmt.Errorf("failed to update strategy %s: %w", strategy.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("strategy with ID %s: %w", strategy.ID, ErrStrategyNotFound)
	}
	return nil
}

// Delete removes a strategy by its ID.
func (r *GORMStrategyRepository) Delete(id string) error {
	res := r.db.Delete(&models.Strategy{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete strategy %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("strategy with ID %s: %w", id, ErrStrategyNotFound)
	}
	return nil
}
