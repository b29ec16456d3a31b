package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sulakshana2003/BackEnd-R/api/handler"
	apiMiddleware "github.com/sulakshana2003/BackEnd-R/api/middleware"
	"github.com/sulakshana2003/BackEnd-R/api/routes"
	"github.com/sulakshana2003/BackEnd-R/config"
	"github.com/sulakshana2003/BackEnd-R/internal/cache"
	"github.com/sulakshana2003/BackEnd-R/internal/repository"
	"github.com/sulakshana2003/BackEnd-R/internal/service"
	"github.com/sulakshana2003/BackEnd-R/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("load config")
	}
	if level, errLevel := logrus.ParseLevel(cfg.LogLevel); errLevel == nil {
		logger.SetLevel(level)
	}

	db, err := config.ConnectionDb(cfg.Database, logger)
	if err != nil {
		logger.WithError(err).Fatal("database")
	}
	if err := config.Migrate(db); err != nil {
		logger.WithError(err).Fatal("migrate")
	}

	validate := validator.New()

	accessManager := utils.JWTManager{
		Secret:         []byte(cfg.JWT.Secret),
		Issuer:         cfg.JWT.Issuer,
		AccessTokenTTL: cfg.JWT.Expiry,
	}
	accessIssuer := service.JWTAccessIssuer{Manager: &accessManager}

	var catalogCache cache.Cache
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if errPing := client.Ping(pingCtx).Err(); errPing != nil {
			logger.WithError(errPing).Warn("redis unavailable, continuing without cache")
		} else {
			catalogCache = cache.NewRedisCache(client, "restaurant")
		}
		cancel()
	}

	userRepo := repository.NewUserRepository(db)
	codeRepo := repository.NewOneTimeCodeRepository(db)
	securityRepo := repository.NewSecurityLogRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)

	userService := service.NewUserService(
		userRepo,
		codeRepo,
		securityRepo,
		service.NewResendEmailSender(cfg.Email.ResendAPIKey, cfg.Email.From),
		service.BcryptPasswordHasher{},
		accessIssuer,
		service.NewGoogleUserInfoProvider(cfg.Google.UserInfoURL),
		service.RealClock{},
		service.AuthConfig{ResetCodeTTL: time.Hour},
		logger,
	)
	catalogService := service.NewCatalogService(categoryRepo, productRepo, catalogCache, logger)

	app := echo.New()
	app.HideBanner = true
	app.HidePort = true
	app.Use(echoMiddleware.Recover())
	app.Use(echoMiddleware.CORS())
	app.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogMethod:   true,
		LogURI:      true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"status": v.Status,
				"method": v.Method,
				"uri":    v.URI,
				"ip":     v.RemoteIP,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))

	authMiddleware := apiMiddleware.AuthMiddleware{JWT: &accessManager}
	router := routes.NewRouter(app,
		handler.NewUserHandler(userService, validate),
		handler.NewCatalogHandler(catalogService, validate),
		authMiddleware,
	)
	router.RegisterRoutes()

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.WithField("addr", cfg.HTTPAddr).Info("server started")
		if err := app.StartServer(server); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("shutdown")
	}
	logger.Info("server exited")
}
