// handlers/progression_routes.go
package handlers

import (
	"strconv"

	"life-progression-system/middleware"
	"life-progression-system/repository"
	"life-progression-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupProgressionRoutes(
	app *fiber.App,
	progressionService *services.ProgressionService,
	skillService *services.SkillService,
	activityRepo *repository.ActivityLogRepository,
) {
	securedGroup := app.Group("/user", middleware.UserContextMiddleware())

	securedGroup.Get("/progress", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		summary, err := progressionService.GetUserProgress(c.Context(), userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load progress",
				"cause": err.Error(),
			})
		}
		return c.JSON(summary)
	})

	securedGroup.Get("/skills", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		stats, err := skillService.ListTracked(c.Context(), userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list skills",
				"cause": err.Error(),
			})
		}
		return c.JSON(stats)
	})

	securedGroup.Post("/skills", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		var req struct {
			SkillKey string `json:"skill_key" validate:"required"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		stat, err := skillService.TrackSkill(c.Context(), userID, req.SkillKey)
		if err != nil {
			return questError(c, err, "failed to track skill")
		}
		return c.Status(fiber.StatusCreated).JSON(stat)
	})

	securedGroup.Get("/activity", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		limit, _ := strconv.Atoi(c.Query("limit", "50"))
		entries, err := activityRepo.ListRecent(c.Context(), userID, limit)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load activity feed",
				"cause": err.Error(),
			})
		}
		return c.JSON(entries)
	})

	// Skill catalog (shared across users)
	catalogGroup := app.Group("/skills", middleware.UserContextMiddleware())

	catalogGroup.Get("/", func(c *fiber.Ctx) error {
		skills, err := skillService.ListSkills(c.Context())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list skill catalog",
				"cause": err.Error(),
			})
		}
		return c.JSON(skills)
	})

	catalogGroup.Post("/", func(c *fiber.Ctx) error {
		var req struct {
			Name      string `json:"name" validate:"required"`
			FactionID string `json:"faction_id"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		skill, err := skillService.CreateSkill(c.Context(), req.Name, req.FactionID)
		if err != nil {
			return questError(c, err, "failed to create skill")
		}
		return c.Status(fiber.StatusCreated).JSON(skill)
	})

	// Admin endpoints
	adminGroup := app.Group("/s/admin", middleware.UserContextMiddleware())

	adminGroup.Post("/xp/grant", func(c *fiber.Ctx) error {
		type Req struct {
			UserID string `json:"user_id" validate:"required,uuid"`
			XP     int64  `json:"xp" validate:"required,min=1"`
			Reason string `json:"reason" validate:"max=255"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		if req.XP <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "xp must be positive",
			})
		}

		prof, err := progressionService.GrantXP(c.Context(), req.UserID, req.XP, req.Reason)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "XP grant failed",
				"cause": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"message": "XP granted successfully",
			"user_id": req.UserID,
			"xp":      req.XP,
			"level":   prof.Level,
		})
	})
}
