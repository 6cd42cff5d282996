package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"mtogo/auth/internal/config"
	"mtogo/auth/internal/middleware"
	"mtogo/auth/internal/models"
	"mtogo/auth/internal/service"
	"mtogo/auth/internal/session"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HandlerSet struct {
	log      zerolog.Logger
	cfg      *config.AppConfig
	auth     *service.AuthService
	profiles *service.ProfileService
	db       Pinger
	cache    redis.Cmdable
	cookie   session.CookieOptions
}

func NewHandlerSet(
	log zerolog.Logger,
	cfg *config.AppConfig,
	db Pinger,
	cache redis.Cmdable,
	auth *service.AuthService,
	profiles *service.ProfileService,
) HandlerSet {
	return HandlerSet{
		log:      log,
		cfg:      cfg,
		auth:     auth,
		profiles: profiles,
		db:       db,
		cache:    cache,
		cookie: session.CookieOptions{
			Name:     cfg.Session.CookieName,
			Secure:   cfg.Session.CookieSecure,
			SameSite: http.SameSiteLaxMode,
		},
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/", h.Root)
	router.GET("/healthcheck", h.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireSession := middleware.Session(h.auth, h.cookie, h.log)

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		auth.POST("/login/customer", h.CustomerLogin)
		auth.POST("/login/restaurant", h.RestaurantLogin)
		auth.POST("/login/management", h.ManagementLogin)
		auth.POST("/register/customer", h.RegisterCustomer)
		auth.POST("/register/restaurant", h.RegisterRestaurant)
		auth.POST("/validate", h.Validate)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", requireSession, h.Me)

		api.GET("/restaurants", h.ListRestaurants)
		api.GET("/restaurants/:restaurantId", h.GetRestaurant)
		api.GET("/customer-and-restaurant", h.GetCustomerAndRestaurant)

		admin := api.Group("/admin")
		admin.Use(requireSession, middleware.RequireRoles(models.RoleAdmin))
		admin.GET("/principals/:principalId/sessions", h.ListPrincipalSessions)
	}
}

func (h HandlerSet) internalError(c *gin.Context, err error, msg string) {
	h.log.Error().
		Err(err).
		Str("correlation_id", middleware.GetCorrelationID(c)).
		Str("path", c.Request.URL.Path).
		Msg(msg)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
}
