package handlers

import (
	"errors"
	"log"

	"stratbook/internal/models"
	"stratbook/internal/repositories"
	"stratbook/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// StrategyHandler handles HTTP requests for strategies. All routes sit
// behind the JWT middleware.
type StrategyHandler struct {
	strategyService *services.StrategyService
	validate        *validator.Validate
}

// NewStrategyHandler creates a new StrategyHandler.
func NewStrategyHandler(strategyService *services.StrategyService) *StrategyHandler {
	return &StrategyHandler{
		strategyService: strategyService,
		validate:        newValidator(),
	}
}

// RegisterRoutes registers the strategy routes with the Fiber app.
func (h *StrategyHandler) RegisterRoutes(router fiber.Router) {
	strategyRoutes := router.Group("/strategies")
	strategyRoutes.Get("/", h.HandleListStrategies)
	strategyRoutes.Get("/:id", h.HandleGetStrategy)
	strategyRoutes.Post("/", h.HandleAddStrategy)
	strategyRoutes.Patch("/:id/active", h.HandleSetActive)
	strategyRoutes.Delete("/:id", h.HandleDeleteStrategy)
}

// AddStrategyRequest is the payload for creating a strategy. Enumerated
// fields are checked against their closed sets; note and videoLink are
// optional and only validated when present. All field violations are
// reported together.
type AddStrategyRequest struct {
	TeamID    string `json:"teamId" validate:"required,uuid"`
	GameMap   string `json:"gameMap" validate:"required,gamemap"`        // e.g. DUST_2
	Name      string `json:"name" validate:"required,max=100"`           // e.g. Test Strategy
	Type      string `json:"type" validate:"required,strategytype"`      // e.g. PISTOL
	Side      string `json:"side" validate:"required,playerside"`        // e.g. CT
	Active    *bool  `json:"active" validate:"required"`                 // e.g. true
	Note      string `json:"note" validate:"omitempty,max=250"`          // e.g. Hello World :)
	VideoLink string `json:"videoLink" validate:"omitempty,url,max=250"` // e.g. https://www.youtube.com/
}

// HandleAddStrategy validates and persists a new strategy. The creator is
// taken from the token subject, never from the request body.
func (h *StrategyHandler) HandleAddStrategy(c *fiber.Ctx) error {
	creator, ok := subjectID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Missing authenticated subject",
		})
	}

	var req AddStrategyRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-strategy request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	strategy := &models.Strategy{
		TeamID:    req.TeamID,
		CreatedBy: creator,
		GameMap:   models.GameMap(req.GameMap),
		Name:      req.Name,
		Type:      models.StrategyType(req.Type),
		Side:      models.PlayerSide(req.Side),
		Active:    *req.Active,
		Note:      req.Note,
		VideoLink: req.VideoLink,
	}

	if err := h.strategyService.CreateStrategy(strategy); err != nil {
		log.Printf("Error creating strategy: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create strategy",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Strategy created",
		"strategy": strategy,
	})
}

// HandleListStrategies returns all strategies of a team.
func (h *StrategyHandler) HandleListStrategies(c *fiber.Ctx) error {
	teamID := c.Query("teamId")
	if teamID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Query parameter 'teamId' is required",
		})
	}

	strategies, err := h.strategyService.GetTeamStrategies(teamID)
	if err != nil {
		log.Printf("Error listing strategies for team %s: %v", teamID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not list strategies",
		})
	}

	return c.JSON(fiber.Map{"strategies": strategies})
}

// HandleGetStrategy returns a single strategy by id.
func (h *StrategyHandler) HandleGetStrategy(c *fiber.Ctx) error {
	id := c.Params("id")

	strategy, err := h.strategyService.GetStrategyByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrStrategyNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Strategy not found",
			})
		}
		log.Printf("Error getting strategy %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not get strategy",
		})
	}

	return c.JSON(fiber.Map{"strategy": strategy})
}

// SetActiveRequest is the payload for toggling a strategy's visibility.
type SetActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// HandleSetActive toggles the active flag of a strategy.
func (h *StrategyHandler) HandleSetActive(c *fiber.Ctx) error {
	id := c.Params("id")

	var req SetActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	strategy, err := h.strategyService.GetStrategyByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrStrategyNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Strategy not found",
			})
		}
		log.Printf("Error getting strategy %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update strategy",
		})
	}

	strategy.Active = *req.Active
	if err := h.strategyService.UpdateStrategy(strategy); err != nil {
		log.Printf("Error updating strategy %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update strategy",
		})
	}

	return c.JSON(fiber.Map{"message": "Strategy updated", "strategy": strategy})
}

// HandleDeleteStrategy removes a strategy.
func (h *StrategyHandler) HandleDeleteStrategy(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.strategyService.DeleteStrategy(id); err != nil {
		if errors.Is(err, repositories.ErrStrategyNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Strategy not found",
			})
		}
		log.Printf("Error deleting strategy %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete strategy",
		})
	}

	return c.JSON(fiber.Map{"message": "Strategy deleted"})
}
