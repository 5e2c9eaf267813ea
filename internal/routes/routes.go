package routes

import (
	"html/template"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/authz"
	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	"github.com/BruksfildServices01/barbershop-booking/internal/events"
	"github.com/BruksfildServices01/barbershop-booking/internal/handlers"
	"github.com/BruksfildServices01/barbershop-booking/internal/identity"
	infraRepo "github.com/BruksfildServices01/barbershop-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-booking/internal/metrics"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/storage"
	ucAppointment "github.com/BruksfildServices01/barbershop-booking/internal/usecase/appointment"
	ucReview "github.com/BruksfildServices01/barbershop-booking/internal/usecase/review"
	ucShop "github.com/BruksfildServices01/barbershop-booking/internal/usecase/shop"
	ucUser "github.com/BruksfildServices01/barbershop-booking/internal/usecase/user"
)

// Dependencies are the process-wide collaborators built in main.
type Dependencies struct {
	Log       *logrus.Logger
	Identity  identity.Provider
	Authz     authz.Authorizer
	Audit     audit.Recorder
	Publisher events.Publisher
	Uploader  storage.Uploader // nil disables image uploads
	Redis     *redis.Client    // nil disables the shared limiter and the cache
	Templates *template.Template
}

// NewEngine builds the bare engine. Only the listed proxies may set the client
// IP through X-Forwarded-For; an empty list trusts none.
func NewEngine(trustedProxies []string) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery())
	if err := r.SetTrustedProxies(trustedProxies); err != nil {
		return nil, err
	}
	return r, nil
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, deps Dependencies) error {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.RequestLogger(deps.Log),
		metrics.Middleware(),
		middleware.CORSMiddleware(cfg.CORSOriginList()),
	)

	// ======================================================
	// INFRA
	// ======================================================
	userRepo := infraRepo.NewUserGormRepository(db)
	shopRepo := infraRepo.NewShopGormRepository(db)
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	reviewRepo := infraRepo.NewReviewGormRepository(db)
	auditRepo := infraRepo.NewAuditGormRepository(db)

	// ======================================================
	// USE CASES
	// ======================================================
	provisionUC := ucUser.NewProvision(userRepo)
	listUsersUC := ucUser.NewListUsers(userRepo, deps.Authz)
	userShopsUC := ucUser.NewUserShops(userRepo, deps.Authz)

	shopQueries := ucShop.NewQueries(shopRepo)
	createShopUC := ucShop.NewCreateShop(shopRepo, deps.Authz, deps.Audit)
	addEmployeeUC := ucShop.NewAddEmployee(shopRepo, userRepo, deps.Authz, deps.Audit)
	removeEmployeeUC := ucShop.NewRemoveEmployee(shopRepo, deps.Authz, deps.Audit)
	createServiceUC := ucShop.NewCreateService(shopRepo, deps.Authz, deps.Audit)
	uploadImageUC := ucShop.NewUploadImage(shopRepo, deps.Authz, deps.Audit, deps.Uploader)

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		deps.Authz,
		deps.Audit,
		deps.Publisher,
		ucAppointment.Options{
			EnforceCapacity: cfg.BookingEnforceCapacity,
			FixedStaffCount: cfg.StatsFixedStaffCount,
		},
	)
	statsUC := ucAppointment.NewGetStats(appointmentRepo, cfg.StatsFixedStaffCount)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(appointmentRepo, deps.Authz, deps.Audit)
	completeAppointmentUC := ucAppointment.NewCompleteAppointment(appointmentRepo, deps.Authz, deps.Audit)
	listForUserUC := ucAppointment.NewListForUser(appointmentRepo, userRepo, deps.Authz)

	reviewQueries := ucReview.NewQueries(reviewRepo, shopRepo)
	createReviewUC := ucReview.NewCreate(reviewRepo, shopRepo, deps.Authz, deps.Audit)

	// ======================================================
	// HANDLERS
	// ======================================================
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	healthHandler := handlers.NewHealthHandler(sqlDB)
	authHandler := handlers.NewAuthHandler(deps.Identity, provisionUC, cfg.IsProduction(), cfg.ValidateEmailDomain)
	meHandler := handlers.NewMeHandler()
	shopHandler := handlers.NewShopHandler(
		shopQueries,
		createShopUC,
		addEmployeeUC,
		removeEmployeeUC,
		createServiceUC,
		uploadImageUC,
	)
	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		statsUC,
		cancelAppointmentUC,
		completeAppointmentUC,
	)
	reviewHandler := handlers.NewReviewHandler(reviewQueries, createReviewUC)
	userHandler := handlers.NewUserHandler(listUsersUC, userShopsUC, listForUserUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(auditRepo, deps.Authz)
	webHandler := handlers.NewWebHandler(shopQueries, reviewQueries, statsUC, userShopsUC, listForUserUC)

	session := middleware.Session(deps.Identity, provisionUC)
	limiter := middleware.NewRateLimiter(deps.Redis, cfg.RateLimitRPS, cfg.RateLimitBurst)
	cache := middleware.ResponseCache(deps.Redis, cfg.CacheDuration())

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", metrics.Handler())

	// ======================================================
	// WEB (HTML)
	// ======================================================
	r.SetHTMLTemplate(deps.Templates)

	pages := r.Group("/")
	pages.Use(session, middleware.RouteGate())
	{
		pages.GET("/", webHandler.Home)
		pages.GET("/shops", webHandler.Shops)
		pages.GET("/shops/:id", webHandler.Shop)
		pages.GET("/login", webHandler.Login)
		pages.GET("/register", webHandler.Register)
		pages.GET("/forgot-password", webHandler.ForgotPassword)
		pages.GET("/reset-password", webHandler.ResetPassword)
		pages.GET("/unauthorized", webHandler.Unauthorized)
		pages.GET("/dashboard", webHandler.DashboardRedirect)
		pages.GET("/dashboard/:role", webHandler.Dashboard)
	}

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	api.Use(session, limiter.Handler(), middleware.CacheInvalidation(deps.Redis))
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)
		api.POST("/auth/forgot-password", authHandler.ForgotPassword)
		api.POST("/auth/reset-password", authHandler.ResetPassword)

		// ------------------------------
		// PUBLIC READS
		// ------------------------------
		api.GET("/shops", cache, shopHandler.List)
		api.GET("/shops/:id", cache, shopHandler.Get)
		api.GET("/shops/:id/employees", cache, shopHandler.ListEmployees)
		api.GET("/shops/:id/services", cache, shopHandler.ListServices)
		api.GET("/shops/:id/reviews", cache, reviewHandler.ListForShop)
		api.GET("/shops/:id/appointments/stats", appointmentHandler.Stats)
		api.GET("/services", cache, shopHandler.Catalog)
		api.GET("/feedback", cache, reviewHandler.ListFeedback)

		// ------------------------------
		// SESSION REQUIRED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.RequireAuth())
		{
			secured.GET("/me", meHandler.GetMe)

			secured.POST("/shops", shopHandler.Create)
			secured.POST("/shops/:id/employees", shopHandler.AddEmployee)
			secured.DELETE("/shops/:id/employees/:employeeId", shopHandler.RemoveEmployee)
			secured.POST("/shops/:id/services", shopHandler.CreateService)
			secured.POST("/shops/:id/image", shopHandler.UploadImage)
			secured.POST("/shops/:id/reviews", reviewHandler.CreateForShop)
			secured.POST("/feedback", reviewHandler.CreateFeedback)

			secured.POST("/shops/:id/appointments", appointmentHandler.Create)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)

			secured.GET("/users", userHandler.List)
			secured.GET("/users/:id/shops", userHandler.Shops)
			secured.GET("/users/:id/appointments", userHandler.Appointments)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}

	r.NoRoute(session, webHandler.NotFound)
	return nil
}
