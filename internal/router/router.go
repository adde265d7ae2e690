package router

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/auth"
	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/constants"
	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/handlers"
	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/middleware"
	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/observability"
	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/services"
)

// Deps holds everything the HTTP layer needs.
type Deps struct {
	DB             *gorm.DB
	Logger         *slog.Logger
	Prom           *observability.Prom
	Gatherer       prometheus.Gatherer
	Resolver       *auth.Resolver
	Accounts       *services.AccountService
	Tasks          *services.TaskService
	AllowedOrigins []string
}

// New builds the gin engine with middleware and routes.
func New(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	if deps.Prom != nil {
		r.Use(deps.Prom.GinHandleMiddleware())
	}

	if len(deps.AllowedOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = deps.AllowedOrigins
		corsConfig.AllowCredentials = true
		corsConfig.AllowHeaders = []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Authorization",
			constants.RequestIDHeader,
		}
		corsConfig.ExposeHeaders = []string{constants.RequestIDHeader}
		r.Use(cors.New(corsConfig))
	}

	authHandler := handlers.NewAuthHandler(deps.Accounts, deps.Logger, deps.Prom)
	userHandler := handlers.NewUserHandler(deps.Accounts, deps.Logger)
	taskHandler := handlers.NewTaskHandler(deps.Tasks, deps.Logger, deps.Prom)
	requireAuth := middleware.RequireAuth(deps.Resolver, deps.Logger, deps.Prom)

	r.GET("/", handlers.Root)
	r.GET("/health", handlers.Health(deps.DB))
	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// Auth routes (public)
	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/signup", authHandler.Signup)
		authRoutes.POST("/login", authHandler.Login)
	}

	// User routes (protected)
	users := r.Group("/users")
	users.Use(requireAuth)
	{
		users.GET("/me", userHandler.GetMe)
		users.PATCH("/me", userHandler.UpdateMe)
	}

	// Task routes (protected)
	tasks := r.Group("/tasks")
	tasks.Use(requireAuth)
	{
		tasks.GET("", taskHandler.ListTasks)
		tasks.POST("", taskHandler.CreateTask)
		tasks.GET("/:id", middleware.RequireTaskID(), taskHandler.GetTask)
		tasks.PATCH("/:id", middleware.RequireTaskID(), taskHandler.UpdateTask)
		tasks.DELETE("/:id", middleware.RequireTaskID(), taskHandler.DeleteTask)
	}

	return r
}
