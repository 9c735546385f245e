package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"hotelbooking/internal/cache"
	"hotelbooking/internal/config"
	"hotelbooking/internal/database"
	"hotelbooking/internal/middleware"
	"hotelbooking/internal/modules/admin"
	"hotelbooking/internal/modules/auth"
	"hotelbooking/internal/modules/booking"
	"hotelbooking/internal/modules/catalog"
	"hotelbooking/internal/modules/payment"
	"hotelbooking/internal/modules/review"
	"hotelbooking/internal/notification"
	"hotelbooking/internal/pkg/jwt"
	"hotelbooking/internal/repository"
	"hotelbooking/internal/worker"
)

// App holds the wired services shared by the API server and the sweep command.
type App struct {
	Config  *config.Config
	DB      *gorm.DB
	Redis   *redis.Client
	Hub     *notification.Hub
	Router  *gin.Engine
	Sweeper *worker.Sweeper
}

// New connects storage, wires every module and builds the HTTP router.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := repository.AutoMigrate(db); err != nil {
		return nil, err
	}

	a := &App{Config: cfg, DB: db, Hub: notification.NewHub()}

	var stats booking.StatsCache = cache.Noop{}
	notifiers := notification.Fanout{a.Hub}

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			logrus.WithError(err).Warn("Redis unavailable, continuing without stats cache and notification queue")
			_ = client.Close()
		} else {
			a.Redis = client
			stats = cache.NewStatsCache(client, cfg.StatsCacheTTL)
			notifiers = append(notifiers, notification.NewRedisQueue(client, cfg.NotifyQueue))
			logrus.WithField("addr", cfg.RedisAddr).Info("Redis connected")
		}
	}

	userRepo := repository.NewUserRepository(db)
	hotelRepo := repository.NewHotelRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	refundRepo := repository.NewRefundRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	jwtService := jwt.New(cfg.JWTSecret, cfg.JWTTTL)

	authService := auth.NewService(userRepo, jwtService, cfg.JWTTTL)
	bookingService := booking.NewService(bookingRepo, roomRepo, hotelRepo, stats, notifiers, booking.Pricing{
		TaxRate:  cfg.TaxRate,
		Currency: cfg.Currency,
	})
	paymentService := payment.NewService(bookingRepo, refundRepo, stats, notifiers)
	adminService := admin.NewService(userRepo, hotelRepo, bookingRepo, reviewRepo)
	catalogService := catalog.NewService(hotelRepo, roomRepo, cfg.Currency)
	reviewService := review.NewService(reviewRepo, bookingRepo)

	a.Sweeper = worker.NewSweeper(bookingRepo, bookingService, paymentService, cfg.SweepInterval, cfg.NoShowGrace)

	if cfg.IsProdLike() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.ErrorLogger(),
		middleware.RequestLogger(),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	notification.NewWSHandler(a.Hub, jwtService, hotelRepo, cfg.CORSAllowedOrigins).RegisterRoutes(r)

	v1 := r.Group("/api/v1", middleware.Timeout(cfg.RequestTimeout))
	authHandler := auth.NewHandler(authService)
	authHandler.RegisterPublicRoutes(v1)

	protected := v1.Group("", middleware.JWTAuth(jwtService))
	authHandler.RegisterProtectedRoutes(protected)
	booking.NewHandler(bookingService).RegisterRoutes(protected)
	payment.NewHandler(paymentService).RegisterRoutes(protected)
	admin.NewHandler(adminService).RegisterRoutes(protected)
	catalog.NewHandler(catalogService).RegisterRoutes(v1, protected)
	review.NewHandler(reviewService).RegisterRoutes(v1, protected)

	a.Router = r
	return a, nil
}

// Close releases the connections opened by New.
func (a *App) Close() {
	a.Hub.Close()
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			logrus.WithError(err).Warn("redis close failed")
		}
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
