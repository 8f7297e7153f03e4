package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"tawsila/internal/cache"
	"tawsila/internal/config"
	"tawsila/internal/metrics"
	"tawsila/internal/middleware"
	"tawsila/internal/models"
	"tawsila/internal/promo"
	"tawsila/internal/repository"
	"tawsila/internal/service"
	"tawsila/internal/storage"
)

type HandlerSet struct {
	log         zerolog.Logger
	cfg         *config.AppConfig
	authService *service.AuthService
	profiles    *service.ProfileService
	prefs       *service.PreferenceService
	requests    *service.RequestService
	avatars     *service.AvatarService
	nightFlag   *promo.NightFlag
	db          *pgxpool.Pool
	cache       *redis.Client
	store       *storage.ObjectStore
	users       *repository.UserRepository
	sessions    *repository.SessionRepository
	mirror      *cache.SessionCache
}

func NewHandlerSet(
	log zerolog.Logger,
	db *pgxpool.Pool,
	redisClient *redis.Client,
	store *storage.ObjectStore,
	cfg *config.AppConfig,
	m *metrics.Metrics,
	nightFlag *promo.NightFlag,
) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	prefRepo := repository.NewPreferenceRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	mirror := cache.NewSessionCache(redisClient, cfg.Security.JWTRefreshTTL)

	auth := service.NewAuthService(userRepo, sessionRepo, mirror, cfg, m, log)
	profiles := service.NewProfileService(userRepo, m, log)
	prefs := service.NewPreferenceService(prefRepo, time.Now)
	requests := service.NewRequestService(requestRepo, log)
	avatars := service.NewAvatarService(userRepo, store, cfg, log)

	return HandlerSet{
		log:         log,
		cfg:         cfg,
		authService: auth,
		profiles:    profiles,
		prefs:       prefs,
		requests:    requests,
		avatars:     avatars,
		nightFlag:   nightFlag,
		db:          db,
		cache:       redisClient,
		store:       store,
		users:       userRepo,
		sessions:    sessionRepo,
		mirror:      mirror,
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	// Locale runs after authentication so the stored preference can apply
	// when nothing explicit is on the request.
	locale := middleware.Locale(h.prefs, h.cfg.Locale.Default)
	authed := middleware.Auth(h.cfg, h.users, h.sessions, h.mirror)
	optional := middleware.OptionalAuth(h.cfg, h.users, h.sessions, h.mirror)

	v1 := router.Group("/v1")
	{
		auth := v1.Group("/auth", locale)
		auth.POST("/register", h.SignUp)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)

		protected := v1.Group("/auth", authed, locale)
		protected.POST("/logout", h.Logout)
		protected.GET("/me", h.Me)
		protected.GET("/sessions", h.ListSessions)
		protected.DELETE("/sessions/:deviceId", h.RevokeSession)

		profile := v1.Group("/profile", authed, locale)
		profile.PUT("/role", h.SwitchRole)
		profile.POST("/roles", h.EnrollRole)
		profile.PUT("/availability", h.SetAvailability)
		profile.GET("/preferences", h.GetPreferences)
		profile.PUT("/preferences", h.UpdatePreferences)
		profile.PUT("/avatar", h.UploadAvatar)

		requests := v1.Group("/requests", optional, locale)
		requests.GET("", h.ListRequests)
		requests.GET("/:id", h.GetRequest)

		guarded := v1.Group("/requests", authed, locale)
		guarded.POST("", middleware.RequireAnyRole(models.RoleBuyer), h.CreateRequest)
		guarded.GET("/mine", middleware.RequireAnyRole(models.RoleBuyer), h.ListMyRequests)
		guarded.POST("/:id/accept", middleware.RequireAnyRole(models.RoleDriver), h.AcceptRequest)

		market := v1.Group("/market", authed, locale, middleware.RequireAnyRole(models.RoleSeller, models.RoleDriver))
		market.GET("/feed", h.MarketFeed)

		v1.GET("/promo/night", locale, h.NightPromo)
	}
}
