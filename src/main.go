package main

import (
	_ "Backend-Results/docs"
	"Backend-Results/src/config"
	"Backend-Results/src/controllers"
	"Backend-Results/src/database"
	"Backend-Results/src/jobs"
	"Backend-Results/src/middleware"
	"Backend-Results/src/routes"
	"Backend-Results/src/services/auth"
	"Backend-Results/src/services/otp"
	"Backend-Results/src/services/results"
	"Backend-Results/src/services/sms"
	"Backend-Results/src/services/students"
	"Backend-Results/src/services/uploads"
	"Backend-Results/src/utils"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// @title School Results API
// @version 1.0
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := utils.NewLogger(cfg.Env)
	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.Config, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// เชื่อมต่อกับ MongoDB
	mongoClient, db, err := database.ConnectMongoDB(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()
	logger.Info().Str("database", cfg.Mongo.Database).Msg("✅ MongoDB connected")

	if err := database.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	redisClient, err := database.NewRedis(ctx, cfg.Redis.URI)
	if err != nil {
		return err
	}

	sender := sms.NewSender(cfg.SMS, logger)

	var (
		otpStore otp.Store
		guard    auth.SessionGuard = auth.NoopGuard{}
		queue    jobs.Enqueuer
	)
	if redisClient != nil {
		defer redisClient.Close()
		logger.Info().Msg("✅ Redis connected")

		otpStore = otp.NewRedisStore(redisClient)
		guard = auth.NewRedisGuard(redisClient, cfg.Login.MaxAttempts, cfg.Login.Lockout)

		asynqClient := database.NewAsynqClient(cfg.Redis.URI)
		defer asynqClient.Close()
		queue = asynqClient

		worker := jobs.NewServer(cfg.Redis.URI, logger)
		mux := asynq.NewServeMux()
		jobs.RegisterHandlers(mux, sender, logger)
		if err := worker.Start(mux); err != nil {
			return fmt.Errorf("start asynq worker: %w", err)
		}
		defer worker.Shutdown()
	} else {
		logger.Warn().Msg("⚠️ REDIS_URI not set: OTPs stored in MongoDB, login rate limit and logout blacklist disabled")
		otpStore = otp.NewMongoStore(db)
	}

	var captcha auth.CaptchaVerifier
	if cfg.Captcha.Enabled() {
		captcha = auth.NewRecaptchaVerifier(cfg.Captcha.SecretKey, cfg.Captcha.VerifyURL)
	}

	archiver, err := uploads.NewArchiver(ctx, cfg.Upload)
	if err != nil {
		return err
	}

	tokens := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TTL)
	authService := auth.NewService(auth.Deps{
		Users:    auth.NewMongoUserStore(db),
		OTPs:     otpStore,
		Notifier: jobs.NewOTPDispatcher(queue, sender, cfg.SMS.AdminPhone, logger),
		Captcha:  captcha,
		Guard:    guard,
		Tokens:   tokens,
		OTPTTL:   cfg.OTP.TTL,
		Logger:   logger,
	})
	resultsService := results.NewService(students.NewMongoStore(db), results.NewMongoStore(db), logger)

	// สร้าง app instance
	app := fiber.New(fiber.Config{
		AppName:               "school-results",
		DisableStartupMessage: !cfg.IsDevelopment(),
		BodyLimit:             10 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(logger))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Origins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// เปิดใช้งาน Swagger ที่ URL /swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	routes.InitRoutes(app, routes.Handlers{
		Auth:      controllers.NewAuthController(authService, logger),
		Results:   controllers.NewResultsController(resultsService, archiver, logger),
		Tokens:    tokens,
		Blacklist: guard,
	})

	listenErr := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.Port).Msg("🚀 Server is running")
		listenErr <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-listenErr:
		return err
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
		return app.ShutdownWithTimeout(10 * time.Second)
	}
}
