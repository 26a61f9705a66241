package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/draftwirehq/draftwire/configs"
	"github.com/draftwirehq/draftwire/internal/api/handlers"
	"github.com/draftwirehq/draftwire/internal/api/middleware"
	"github.com/draftwirehq/draftwire/internal/cache"
	job "github.com/draftwirehq/draftwire/internal/jobs"
	"github.com/draftwirehq/draftwire/internal/push"
	"github.com/draftwirehq/draftwire/internal/queue"
	"github.com/draftwirehq/draftwire/internal/ratelimit"
	"github.com/draftwirehq/draftwire/internal/repository"
	"github.com/draftwirehq/draftwire/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	rdb := cache.NewClient(cfg.RedisURI, cfg.RedisPassword)
	defer rdb.Close()
	cacheService := cache.NewService(rdb)
	limiter := ratelimit.NewLimiter(cacheService)

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI, Password: cfg.RedisPassword}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    20 * 1024 * 1024, // 20 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return origin == cfg.FrontendURL
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	userRepo := repository.NewUserRepository(db)
	draftRepo := repository.NewDraftRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	templateRepo := repository.NewTemplateRepository(db)

	pushSender := push.NewSender(cfg.Vapid)

	userService := service.NewUserService(userRepo, cacheService)
	draftService := service.NewDraftService(draftRepo)
	publishService := service.NewPublishService(*cfg, db, draftRepo, tweetRepo)
	notificationService := service.NewNotificationService(subscriptionRepo, pushSender)
	templateService := service.NewTemplateService(templateRepo)
	r2Service := service.NewR2Service(*cfg)
	mediaService := service.NewMediaService(*cfg, *r2Service)

	authMiddleware := middleware.NewAuthMiddleware(*cfg, userService)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	user := handlers.NewUserHandler(userService)
	api.Get("/user/info", user.GetUserInfo)

	draft := handlers.NewDraftHandler(draftService, client)
	api.Post("/drafts", draft.CreateDraft)
	api.Get("/drafts", draft.ListDrafts)
	api.Get("/drafts/:id", draft.GetDraft)
	api.Put("/drafts/:id", draft.UpdateDraft)
	api.Delete("/drafts/:id", draft.DeleteDraft)

	publish := handlers.NewPublishHandler(publishService)
	api.Post("/publish/:id", middleware.RateLimit(limiter, cfg.PublishRateLimit), publish.PublishDraft)

	media := handlers.NewMediaHandler(mediaService)
	api.Post("/media/upload", media.UploadImage)

	notification := handlers.NewNotificationHandler(notificationService)
	api.Post("/notifications/subscribe", notification.Subscribe)
	api.Post("/notifications/unsubscribe", notification.Unsubscribe)
	api.Post("/notifications/send", notification.SendNotification)

	template := handlers.NewTemplateHandler(templateService)
	api.Post("/templates", template.CreateTemplate)
	api.Get("/templates", template.ListTemplates)
	api.Get("/templates/:id", template.GetTemplate)
	api.Put("/templates/:id", template.UpdateTemplate)
	api.Delete("/templates/:id", template.DeleteTemplate)

	// cron jobs
	sweepJob := job.NewScheduleSweepJob(draftRepo, client)

	// queue
	queueW := queue.NewQueue(draftRepo, publishService)

	c := cron.New()
	c.AddFunc("@every 00h01m00s", sweepJob.SweepDueDrafts)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypePublishDraft, queueW.HandlePublishDraftTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
