package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/easycd-api/api/swagger"
	"github.com/noah-isme/easycd-api/internal/handler"
	"github.com/noah-isme/easycd-api/internal/middleware"
	"github.com/noah-isme/easycd-api/internal/repository"
	"github.com/noah-isme/easycd-api/internal/router"
	"github.com/noah-isme/easycd-api/internal/service"
	"github.com/noah-isme/easycd-api/pkg/cache"
	"github.com/noah-isme/easycd-api/pkg/config"
	"github.com/noah-isme/easycd-api/pkg/database"
	"github.com/noah-isme/easycd-api/pkg/jobs"
	"github.com/noah-isme/easycd-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/easycd-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/easycd-api/pkg/middleware/requestid"
	"github.com/noah-isme/easycd-api/pkg/ratelimit"
	"github.com/noah-isme/easycd-api/pkg/storage"
)

// @title easyCD API
// @version 1.0.0
// @description Academic records: courses, curricula, classrooms, enrollments, complementary activities and solicitations
// @BasePath /api
// @schemes http

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if err := run(cfg, logr); err != nil {
		logr.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logr *zap.Logger) error {
	ctx := context.Background()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	metrics := service.NewMetricsService()

	var (
		cacheRepo    service.CacheRepository = cache.NewMemory(cfg.Cache.TTL)
		loginLimiter ratelimit.Limiter       = ratelimit.NewMemoryLimiter(cfg.RateLimit.LoginMax, cfg.RateLimit.LoginWindow)
		redisClient  *redis.Client
	)
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer redisClient.Close()
		cacheRepo = repository.NewCacheRepository(redisClient, "easycd:")
		loginLimiter = ratelimit.NewRedisLimiter(redisClient, "easycd:rl:", cfg.RateLimit.LoginMax, cfg.RateLimit.LoginWindow)
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logr, cfg.Cache.Enabled)

	evidenceStore, err := storage.NewLocalStorage(cfg.Evidence.StorageDir)
	if err != nil {
		return fmt.Errorf("init evidence storage: %w", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Evidence.SignedURLSecret, cfg.Evidence.SignedURLTTL)

	personRepo := repository.NewPersonRepository(db)
	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	grideRepo := repository.NewCurriculumGrideRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	classroomRepo := repository.NewClassroomRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	activityTypeRepo := repository.NewComplementaryActivityTypeRepository(db)
	activityRepo := repository.NewComplementaryActivityRepository(db)
	solicitationTypeRepo := repository.NewSolicitationTypeRepository(db)
	solicitationRepo := repository.NewSolicitationRepository(db)

	validate := service.NewValidator()

	authSvc := service.NewAuthService(userRepo, validate, logr, metrics, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenSecret: cfg.JWT.RefreshSecret,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "easycd-api",
	})
	personSvc := service.NewPersonService(personRepo, userRepo, courseRepo, classroomRepo, validate, logr)
	userSvc := service.NewUserService(userRepo, personRepo, validate, logr)
	courseSvc := service.NewCourseService(courseRepo, grideRepo, personRepo, cacheSvc, validate, logr)
	grideSvc := service.NewCurriculumGrideService(grideRepo, courseRepo, subjectRepo, cacheSvc, validate, logr)
	subjectSvc := service.NewSubjectService(subjectRepo, grideRepo, classroomRepo, cacheSvc, validate, logr)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, classroomRepo, personRepo, validate, logr)
	classroomSvc := service.NewClassroomService(classroomRepo, subjectRepo, personRepo, enrollmentRepo, enrollmentSvc, cacheSvc, validate, logr)
	activitySvc := service.NewComplementaryActivityService(activityRepo, activityTypeRepo, personRepo, evidenceStore, signer, service.EvidenceConfig{
		MaxFileSizeBytes: cfg.Evidence.MaxFileSizeBytes,
		AllowedMIMEs:     cfg.Evidence.AllowedMIMEs,
	}, validate, logr)
	purgeQueue := jobs.NewQueue("evidence-purge", activitySvc.PurgeEvidence, jobs.QueueConfig{
		Workers:    2,
		MaxRetries: 3,
		RetryDelay: 5 * time.Second,
		Logger:     logr,
	})
	purgeQueue.Start(ctx)
	defer purgeQueue.Stop()
	activitySvc.UsePurgeQueue(purgeQueue)
	activityTypeSvc := service.NewComplementaryActivityTypeService(activityTypeRepo, activityRepo, activitySvc, cacheSvc, validate, logr)
	solicitationSvc := service.NewSolicitationService(solicitationRepo, solicitationTypeRepo, personRepo, validate, logr)
	solicitationTypeSvc := service.NewSolicitationTypeService(solicitationTypeRepo, solicitationRepo, solicitationSvc, cacheSvc, validate, logr)
	recordSvc := service.NewRecordService(personRepo, enrollmentRepo, activityRepo, activityTypeRepo, logr)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	router.Register(r, cfg.APIPrefix, router.Handlers{
		Auth: handler.NewAuthHandler(authSvc, handler.CookieConfig{
			MaxAge: cfg.JWT.Expiration,
			Domain: cfg.JWT.CookieDomain,
			Secure: cfg.JWT.CookieSecure,
		}),
		User:                      handler.NewUserHandler(userSvc),
		Person:                    handler.NewPersonHandler(personSvc, recordSvc),
		Course:                    handler.NewCourseHandler(courseSvc),
		CurriculumGride:           handler.NewCurriculumGrideHandler(grideSvc),
		Subject:                   handler.NewSubjectHandler(subjectSvc),
		Classroom:                 handler.NewClassroomHandler(classroomSvc),
		Enrollment:                handler.NewEnrollmentHandler(enrollmentSvc),
		ComplementaryActivityType: handler.NewComplementaryActivityTypeHandler(activityTypeSvc),
		ComplementaryActivity:     handler.NewComplementaryActivityHandler(activitySvc, cfg.APIPrefix),
		SolicitationType:          handler.NewSolicitationTypeHandler(solicitationTypeSvc),
		Solicitation:              handler.NewSolicitationHandler(solicitationSvc),
		Metrics:                   handler.NewMetricsHandler(metrics, db),
	}, router.Deps{
		Auth:         authSvc,
		LoginLimiter: loginLimiter,
		Metrics:      metrics,
		Logger:       logr,
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "redis", cfg.Redis.Enabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errs:
		return fmt.Errorf("listen: %w", err)
	case sig := <-shutdown:
		logr.Info("shutdown started", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown: %w", err)
		}
	}
	logr.Info("server stopped")
	return nil
}
