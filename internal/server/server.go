package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"allyoucangym/internal/announcement"
	"allyoucangym/internal/auth"
	"allyoucangym/internal/booking"
	"allyoucangym/internal/config"
	"allyoucangym/internal/email"
	"allyoucangym/internal/gym"
	"allyoucangym/internal/gymadmin"
	"allyoucangym/internal/logger"
	"allyoucangym/internal/payment"
	"allyoucangym/internal/session"
	"allyoucangym/internal/subscription"
	"allyoucangym/internal/user"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
	email  *email.Service
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)

	userRepo := user.NewRepository(db)
	gymRepo := gym.NewRepository(db)
	sessionRepo := session.NewRepository(db)
	subscriptionRepo := subscription.NewRepository(db)

	userService := user.NewService(userRepo, tokens)
	gymService := gym.NewService(gymRepo)
	sessionService := session.NewService(sessionRepo)
	bookingService := booking.NewService(booking.NewRepository(db), sessionRepo, userRepo, emailService)
	subscriptionService := subscription.NewService(subscriptionRepo)
	paymentService := payment.NewService(payment.NewRepository(db), subscriptionRepo, subscriptionService, userRepo, emailService)
	adminService := gymadmin.NewService(gymadmin.NewRepository(db), tokens)
	announcementService := announcement.NewService(announcement.NewRepository(db))

	h := handlers{
		user:         user.NewHandler(userService),
		gym:          gym.NewHandler(gymService),
		session:      session.NewHandler(sessionService),
		booking:      booking.NewHandler(bookingService),
		subscription: subscription.NewHandler(subscriptionService),
		payment:      payment.NewHandler(paymentService),
		admin:        gymadmin.NewHandler(adminService),
		announcement: announcement.NewHandler(announcementService),
	}
	registerRoutes(router, auth.AuthMiddleware(cfg.JWTSecret), adminService, h)

	router.GET("/health", Health(db, emailService))
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		db:     db,
		config: cfg,
		email:  emailService,
	}
}

type handlers struct {
	user         *user.Handler
	gym          *gym.Handler
	session      *session.Handler
	booking      *booking.Handler
	subscription *subscription.Handler
	payment      *payment.Handler
	admin        *gymadmin.Handler
	announcement *announcement.Handler
}

func registerRoutes(router *gin.Engine, authMiddleware gin.HandlerFunc, admins gymadmin.Service, h handlers) {
	ensureAdmin := gymadmin.EnsureGymAdmin(admins)
	self := auth.AuthorizeSelf("userId")

	apiGroup := router.Group("/api")

	users := apiGroup.Group("/users")
	{
		users.POST("/register", h.user.Register)
		users.POST("/login", h.user.Login)
		users.GET("/search", authMiddleware, h.user.Search)
		users.GET("/:userId", authMiddleware, h.user.GetProfile)
		users.PUT("/:userId", authMiddleware, self, h.user.Update)
		users.DELETE("/:userId", authMiddleware, self, h.user.Delete)

		users.POST("/:userId/sessions", authMiddleware, self, h.booking.BookSession)
		users.GET("/:userId/sessions", authMiddleware, self, h.booking.ListUserSessions)
		users.DELETE("/:userId/sessions/:sessionId", authMiddleware, self, h.booking.UnbookSession)

		users.POST("/:userId/subscription", authMiddleware, self, h.subscription.CreateSubscription)
		users.GET("/:userId/subscription", authMiddleware, self, h.subscription.ListUserSubscriptions)
		users.PUT("/:userId/subscription/:subscriptionId", authMiddleware, self, h.subscription.UpdateSubscription)
		users.DELETE("/:userId/subscription/:subscriptionId", authMiddleware, self, h.subscription.CancelSubscription)
	}

	gyms := apiGroup.Group("/gyms")
	{
		gyms.GET("", h.gym.ListGyms)
		gyms.GET("/filter", h.gym.FilterGyms)
		gyms.GET("/search", h.gym.SearchGyms)
		gyms.GET("/:gymId", h.gym.GetGym)
		gyms.POST("", authMiddleware, ensureAdmin, h.gym.CreateGym)
		gyms.PUT("/:gymId", authMiddleware, ensureAdmin, gymadmin.AuthorizeGym(admins, "gymId"), h.gym.UpdateGym)
		gyms.DELETE("/:gymId", authMiddleware, ensureAdmin, gymadmin.AuthorizeGym(admins, "gymId"), h.gym.DeleteGym)
	}

	sessions := apiGroup.Group("/sessions")
	{
		sessions.GET("", h.session.ListSessions)
		sessions.GET("/search", h.session.SearchSessions)
		sessions.GET("/:sessionId", h.session.GetSession)
		sessions.POST("", authMiddleware, ensureAdmin, gymadmin.AuthorizeGym(admins, ""), h.session.CreateSession)
		sessions.PUT("/:sessionId", authMiddleware, ensureAdmin,
			gymadmin.AuthorizeSession(admins, "sessionId"), gymadmin.AuthorizeGymChange(admins), h.session.UpdateSession)
		sessions.DELETE("/:sessionId", authMiddleware, ensureAdmin, gymadmin.AuthorizeSession(admins, "sessionId"), h.session.DeleteSession)
	}

	subscriptions := apiGroup.Group("/subscriptions")
	{
		subscriptions.GET("/subscriptionPackages", h.subscription.ListPackages)
		subscriptions.GET("/subscriptionPackages/:packageKey", h.subscription.GetPackage)
	}

	payments := apiGroup.Group("/payments", authMiddleware)
	{
		payments.POST("/checkout/:packageKey", h.payment.Checkout)
		payments.GET("/history", h.payment.History)
	}

	gymAdmins := apiGroup.Group("/gymAdmins")
	{
		gymAdmins.POST("", h.admin.Register)
		gymAdmins.POST("/login", h.admin.Login)
		gymAdmins.GET("/:adminId", authMiddleware, h.admin.GetAdmin)
		gymAdmins.POST("/:adminId/gyms", authMiddleware, ensureAdmin, auth.AuthorizeSelf("adminId"), h.admin.AddGym)
	}

	announcements := apiGroup.Group("/announcements")
	{
		announcements.GET("", h.announcement.ListAnnouncements)
		announcements.GET("/:announcementId", h.announcement.GetAnnouncement)
		announcements.POST("", authMiddleware, ensureAdmin, gymadmin.AuthorizeSession(admins, ""), h.announcement.CreateAnnouncement)
		announcements.PUT("/:announcementId", authMiddleware, ensureAdmin,
			gymadmin.AuthorizeAnnouncement(admins, "announcementId"), h.announcement.UpdateAnnouncement)
		announcements.DELETE("/:announcementId", authMiddleware, ensureAdmin,
			gymadmin.AuthorizeAnnouncement(admins, "announcementId"), h.announcement.DeleteAnnouncement)
	}
}

func (s *Server) Router() http.Handler {
	return s.router
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	logger.Info("HTTP server listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
