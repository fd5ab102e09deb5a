package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"life-progression-system/handlers"
	"life-progression-system/middleware"
	"life-progression-system/models"
	"life-progression-system/repository"
	"life-progression-system/services"
	"life-progression-system/utils"
	"life-progression-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{})

	// 🔐 GLOBAL: Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, User-Agent, Cache-Control, X-User-ID, X-User-Roles",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	if err := utils.InitStorage(); err != nil {
		log.Fatal("failed to initialize archive storage client:", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.UserProfile{},
		&models.FactionStat{},
		&models.Skill{},
		&models.SkillStat{},
		&models.Quest{},
		&models.QuestActionEntry{},
		&models.ExperienceRecord{},
		&models.ActivityLogEntry{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	questRepo := repository.NewQuestRepository(db)
	factionRepo := repository.NewFactionStatRepository(db)
	skillRepo := repository.NewSkillRepository(db)
	skillStatRepo := repository.NewSkillStatRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)
	experienceRepo := repository.NewExperienceRepository(db)

	questService := services.NewQuestService(questRepo, factionRepo, skillStatRepo, profileRepo, activityRepo, experienceRepo)
	progressionService := services.NewProgressionService(profileRepo, factionRepo, skillStatRepo, activityRepo)
	skillService := services.NewSkillService(skillRepo, skillStatRepo)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Archive old activity-log entries to object storage once an hour
	archiver := workers.NewActivityArchiver(activityRepo, 90*24*time.Hour)
	go workers.Run(ctx, archiver, 1*time.Hour)

	services.NewMaintenanceScheduler(questRepo, factionRepo).Start()

	// ✅ Setup routes — enforced Gateway auth + per-user rate limit on XP mutations
	limiter := middleware.NewUserRateLimiter(60, 10)
	handlers.SetupQuestRoutes(app, questService, limiter)
	handlers.SetupProgressionRoutes(app, progressionService, skillService, activityRepo)

	go func() {
		if err := app.Listen(":5300"); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Println("✅ Server running on http://localhost:5300")
	log.Println("✅ Activity-log archiver running (hourly)")
	log.Println("✅ Maintenance scheduler running (quest expiry, weekly/monthly XP resets)")
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
}
