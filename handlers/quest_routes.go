// handlers/quest_routes.go
package handlers

import (
	"errors"
	"time"

	"life-progression-system/middleware"
	"life-progression-system/models"
	"life-progression-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupQuestRoutes(app *fiber.App, questService *services.QuestService, limiter *middleware.UserRateLimiter) {
	// The gateway forwards paths like /api/v1/life/quests -> /quests
	group := app.Group("/quests", middleware.UserContextMiddleware())

	group.Post("/", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var req struct {
			Title            string     `json:"title" validate:"required"`
			Description      string     `json:"description"`
			RequiredActions  int        `json:"required_actions" validate:"min=1"`
			XPReward         int64      `json:"xp_reward" validate:"min=0"`
			TargetFactionIDs []string   `json:"target_faction_ids"`
			TargetSkillKeys  []string   `json:"target_skill_keys"`
			ExpiresAt        *time.Time `json:"expires_at"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		quest := &models.Quest{
			ExternalUserID:   userID,
			Title:            req.Title,
			Description:      req.Description,
			RequiredActions:  req.RequiredActions,
			XPReward:         req.XPReward,
			TargetFactionIDs: req.TargetFactionIDs,
			TargetSkillKeys:  req.TargetSkillKeys,
			ExpiresAt:        req.ExpiresAt,
		}
		if err := questService.CreateQuest(c.Context(), quest); err != nil {
			return questError(c, err, "failed to create quest")
		}
		return c.Status(fiber.StatusCreated).JSON(quest)
	})

	group.Get("/", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		quests, err := questService.ListQuests(c.Context(), userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list quests",
				"cause": err.Error(),
			})
		}
		return c.JSON(quests)
	})

	// XP-mutating path is rate-limited per user
	group.Post("/:id/actions", limiter.Handler(), func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		questID := c.Params("id")

		var req struct {
			Action      string `json:"action" validate:"required,oneof=increment decrement complete"`
			Description string `json:"description" validate:"max=255"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		result, err := questService.ApplyQuestAction(c.Context(), questID, userID, models.QuestAction(req.Action), req.Description)
		if err != nil {
			return questError(c, err, "failed to apply quest action")
		}
		return c.JSON(result)
	})

	group.Get("/:id/actions", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		questID := c.Params("id")

		entries, err := questService.GetQuestActionHistory(c.Context(), questID, userID)
		if err != nil {
			return questError(c, err, "failed to load quest history")
		}
		return c.JSON(entries)
	})
}

// questError maps workflow errors onto HTTP statuses.
func questError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrQuestNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "quest not found"})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "quest belongs to another user"})
	case errors.Is(err, services.ErrInvalidState):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fallback,
			"cause": err.Error(),
		})
	}
}
