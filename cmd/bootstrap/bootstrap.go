package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vetclinic-booking/config"
	deliveryHttp "vetclinic-booking/internal/delivery/http"
	"vetclinic-booking/internal/delivery/http/handler"
	"vetclinic-booking/internal/delivery/http/middleware"
	"vetclinic-booking/internal/infrastructure/cache"
	"vetclinic-booking/internal/infrastructure/database"
	"vetclinic-booking/internal/repository"
	"vetclinic-booking/internal/service"
	"vetclinic-booking/internal/usecase"
	"vetclinic-booking/pkg/jwt"
	"vetclinic-booking/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const migrationsPath = "db/migrations"

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	setupLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	if err := database.RunMigrations(cfg.DB, migrationsPath); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	app.Server = initializeServer(cfg, db, redisClient)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()
	log := logrus.StandardLogger()

	// Repositories
	userRepo := repository.NewUserRepository()
	roleRepo := repository.NewRoleRepository()
	petRepo := repository.NewPetRepository()
	branchRepo := repository.NewBranchRepository()
	visitTypeRepo := repository.NewVisitTypeRepository()
	doctorProfileRepo := repository.NewDoctorProfileRepository()
	scheduleRepo := repository.NewScheduleRepository()
	bookingRepo := repository.NewBookingRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Services
	auditService := service.NewAuditService(db, log, auditLogRepo)
	availabilityCache := service.NewAvailabilityCache(redisClient, log)

	// Usecases
	authUsecase := usecase.NewAuthUsecase(db, log, cfg.Booking, userRepo, jwtService, redisClient, auditService)
	profileUsecase := usecase.NewProfileUsecase(db, log, userRepo, auditService)
	userAdminUsecase := usecase.NewUserAdminUsecase(db, log, userRepo, roleRepo, redisClient, auditService)
	petUsecase := usecase.NewPetUsecase(db, log, petRepo)
	visitTypeUsecase := usecase.NewVisitTypeUsecase(db, log, visitTypeRepo, auditService)
	branchUsecase := usecase.NewBranchUsecase(db, log, branchRepo)
	doctorUsecase := usecase.NewDoctorUsecase(db, log, userRepo, doctorProfileRepo, scheduleRepo, branchRepo, auditService)
	scheduleUsecase := usecase.NewScheduleUsecase(db, log, scheduleRepo, doctorProfileRepo, auditService, availabilityCache)
	availabilityUsecase := usecase.NewAvailabilityUsecase(db, log, cfg.Booking, branchRepo, visitTypeRepo, doctorProfileRepo, scheduleRepo, bookingRepo, availabilityCache)
	bookingUsecase := usecase.NewBookingUsecase(db, log, cfg.Booking, bookingRepo, userRepo, petRepo, visitTypeRepo, branchRepo, doctorProfileRepo, scheduleRepo, auditService, availabilityCache)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, jwtService)
	profileHandler := handler.NewProfileHandler(profileUsecase, customValidator)
	petHandler := handler.NewPetHandler(petUsecase, customValidator)
	visitTypeHandler := handler.NewVisitTypeHandler(visitTypeUsecase, customValidator)
	branchHandler := handler.NewBranchHandler(branchUsecase)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, customValidator)
	scheduleHandler := handler.NewScheduleHandler(scheduleUsecase, customValidator)
	availabilityHandler := handler.NewAvailabilityHandler(availabilityUsecase)
	bookingHandler := handler.NewBookingHandler(bookingUsecase, customValidator)
	userAdminHandler := handler.NewUserAdminHandler(userAdminUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Router
	router := deliveryHttp.NewRouter(
		authHandler,
		profileHandler,
		petHandler,
		visitTypeHandler,
		branchHandler,
		doctorHandler,
		scheduleHandler,
		availabilityHandler,
		bookingHandler,
		userAdminHandler,
		auditLogHandler,
		authMiddleware,
		corsMiddleware,
	)
	httpRouter := router.Setup()

	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
