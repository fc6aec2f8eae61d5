package handlers

import (
	"errors"
	"log"

	"stratbook/internal/repositories"
	"stratbook/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for profile updates. All routes sit
// behind the JWT middleware and mutate only the authenticated subject's own
// account; client-supplied ids are never accepted.
type UserHandler struct {
	userService *services.UserService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validate:    newValidator(),
	}
}

// RegisterRoutes registers the user profile routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/me", h.HandleGetProfile)
	userRoutes.Patch("/password", h.HandleUpdatePassword)
	userRoutes.Patch("/username", h.HandleUpdateUserName)
	userRoutes.Patch("/tutorial", h.HandleUpdateTutorial)
}

// subjectID extracts the authenticated user id set by the JWT middleware.
func subjectID(c *fiber.Ctx) (string, bool) {
	id, ok := c.Locals("user_id").(string)
	return id, ok && id != ""
}

// HandleGetProfile returns the authenticated user's account record.
func (h *UserHandler) HandleGetProfile(c *fiber.Ctx) error {
	id, ok := subjectID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Missing authenticated subject",
		})
	}

	user, err := h.userService.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
			})
		}
		log.Printf("Error loading profile for %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load profile",
		})
	}

	return c.JSON(fiber.Map{"user": user})
}

// UpdatePasswordRequest represents the request body for credential rotation.
type UpdatePasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=8,max=72"`
}

// HandleUpdatePassword rotates the authenticated user's password.
func (h *UserHandler) HandleUpdatePassword(c *fiber.Ctx) error {
	id, ok := subjectID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Missing authenticated subject",
		})
	}

	var req UpdatePasswordRequest
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

	if err := h.userService.UpdatePassword(id, req.NewPassword); err != nil {
		return h.updateError(c, id, err)
	}
	return c.JSON(fiber.Map{"message": "Password updated"})
}

// UpdateUserNameRequest represents the request body for a display-name change.
type UpdateUserNameRequest struct {
	UserName string `json:"userName" validate:"required,min=2,max=100"`
}

// HandleUpdateUserName changes the authenticated user's display name.
func (h *UserHandler) HandleUpdateUserName(c *fiber.Ctx) error {
	id, ok := subjectID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Missing authenticated subject",
		})
	}

	var req UpdateUserNameRequest
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

	if err := h.userService.UpdateUserName(id, req.UserName); err != nil {
		return h.updateError(c, id, err)
	}
	return c.JSON(fiber.Map{"message": "Username updated"})
}

// UpdateTutorialRequest represents the request body for the tutorial flag.
type UpdateTutorialRequest struct {
	Completed *bool `json:"completed" validate:"required"`
}

// HandleUpdateTutorial sets the authenticated user's tutorial-completion flag.
func (h *UserHandler) HandleUpdateTutorial(c *fiber.Ctx) error {
	id, ok := subjectID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Missing authenticated subject",
		})
	}

	var req UpdateTutorialRequest
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

	if err := h.userService.UpdateCompletedTutorial(id, *req.Completed); err != nil {
		return h.updateError(c, id, err)
	}
	return c.JSON(fiber.Map{"message": "Tutorial status updated"})
}

func (h *UserHandler) updateError(c *fiber.Ctx, id string, err error) error {
	log.Printf("Error updating user %s: %v", id, err)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Could not update user",
	})
}
