package router

import (
	"net/http"
	"time"

	"github.com/campusworks/rollbook-backend/internal/config"
	"github.com/campusworks/rollbook-backend/internal/handler"
	"github.com/campusworks/rollbook-backend/internal/metrics"
	"github.com/campusworks/rollbook-backend/internal/middleware"
	"github.com/campusworks/rollbook-backend/internal/response"
	"github.com/campusworks/rollbook-backend/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Admin   *handler.AdminHandler
	Faculty *handler.FacultyHandler
	Live    *handler.LiveHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
	pool *pgxpool.Pool,
	rdb *redis.Client,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowCredentials = len(cfg.AllowedOrigins) > 0
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())
	router.Use(metrics.Middleware())

	// Liveness with dependency status: degraded dependencies are reported
	// but the endpoint itself stays 200 while the process serves traffic.
	router.GET("/health", func(c *gin.Context) {
		dbStatus := "ok"
		if err := pool.Ping(c.Request.Context()); err != nil {
			dbStatus = "unreachable"
		}
		redisStatus := "ok"
		if err := rdb.Ping(c.Request.Context()).Err(); err != nil {
			redisStatus = "unreachable"
		}
		response.Success(c, http.StatusOK, gin.H{
			"status":   "ok",
			"postgres": dbStatus,
			"redis":    redisStatus,
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Rate limiter for credential endpoints (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	facultyAPI := router.Group("/api/faculty")
	{
		facultyAPI.POST("/signin", authLimiter.Middleware(), handlers.Faculty.SignIn)

		protected := facultyAPI.Group("")
		protected.Use(middleware.RequireFaculty(authService))
		{
			protected.GET("/get/student/:branch", handlers.Faculty.GetStudentsByBranch)
			protected.POST("/attendance", handlers.Faculty.MarkAttendance)
		}
	}

	adminAPI := router.Group("/api/admin")
	{
		adminAPI.POST("/signup", authLimiter.Middleware(), handlers.Admin.SignUp)
		adminAPI.POST("/verify-otp", authLimiter.Middleware(), handlers.Admin.VerifyOTP)
		adminAPI.POST("/signin", authLimiter.Middleware(), handlers.Admin.SignIn)

		protected := adminAPI.Group("")
		protected.Use(middleware.RequireAdmin(authService))
		{
			protected.POST("/add/student", handlers.Admin.AddStudent)
			protected.POST("/add/subject", handlers.Admin.AddSubject)
			protected.POST("/create/faculty", handlers.Admin.CreateFaculty)
			protected.GET("/get/students", handlers.Admin.GetStudents)
			protected.GET("/get/subjects", handlers.Admin.GetSubjects)
			protected.GET("/get/faculties", handlers.Admin.GetFaculties)
			protected.GET("/students/attendance/:branch", handlers.Admin.BranchAttendance)
			protected.GET("/attendance/live", handlers.Live.AttendanceStream)
		}
	}

	return router
}
