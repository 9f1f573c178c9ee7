package api

import (
	"net/http"

	"fittrack/fitness-app/internal/metrics"
	"fittrack/fitness-app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Services bundles everything the handlers call into.
type Services struct {
	Auth       service.AuthService
	Profile    service.ProfileService
	Plans      service.PlanService
	Workouts   service.WorkoutLogService
	Exercises  service.ExerciseService
	Challenges service.ChallengeService
	Dashboard  service.DashboardService
}

// RouterDeps configures SetupRoutes. Gatherer and Limiter are optional.
type RouterDeps struct {
	JWTSecret string
	Services  Services
	Logger    *zap.Logger
	Recorder  metrics.Recorder
	Gatherer  prometheus.Gatherer
	Limiter   *RateLimiter
}

func SetupRoutes(router *gin.Engine, deps RouterDeps) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Recorder == nil {
		deps.Recorder = metrics.Nop{}
	}

	authHandler := NewAuthHandler(deps.Services.Auth)
	profileHandler := NewProfileHandler(deps.Services.Profile)
	planHandler := NewPlanHandler(deps.Services.Plans)
	workoutHandler := NewWorkoutLogHandler(deps.Services.Workouts)
	exerciseHandler := NewExerciseHandler(deps.Services.Exercises)
	challengeHandler := NewChallengeHandler(deps.Services.Challenges)
	dashboardHandler := NewDashboardHandler(deps.Services.Dashboard)

	authMiddleware := AuthMiddleware(deps.JWTSecret)

	router.Use(RequestLogger(deps.Logger, deps.Recorder))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler(deps.Gatherer)))
	}

	apiV1 := router.Group("/api/v1")
	if deps.Limiter != nil {
		apiV1.Use(deps.Limiter.Middleware())
	}
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		// Public plans are readable without an account.
		apiV1.GET("/plans/public", planHandler.ListPublicPlans)
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		me := protected.Group("/me")
		{
			me.GET("", profileHandler.GetProfile)
			me.PUT("", profileHandler.UpdateProfile)
			me.POST("/avatar", profileHandler.RequestAvatarUpload)
			me.PUT("/avatar", profileHandler.ConfirmAvatar)
			me.GET("/avatar", profileHandler.GetAvatarURL)
		}

		// --- Workout Plan Routes ---
		plans := protected.Group("/plans")
		{
			plans.POST("", planHandler.CreatePlan)
			plans.GET("", planHandler.ListPlans)
			plans.GET("/:planId", planHandler.GetPlan)
			plans.DELETE("/:planId", planHandler.DeletePlan)
			plans.PUT("/:planId/privacy", planHandler.UpdatePrivacy)
			plans.POST("/:planId/days/:day/exercises", planHandler.AddExerciseToDay)
			plans.DELETE("/:planId/days/:day", planHandler.DeleteDay)
		}

		workouts := protected.Group("/workouts")
		{
			workouts.POST("", workoutHandler.LogWorkout)
			workouts.GET("", workoutHandler.ListHistory)
			workouts.PUT("/:id", workoutHandler.UpdateWorkout)
			workouts.DELETE("/:id", workoutHandler.DeleteWorkout)
		}

		exercises := protected.Group("/exercises")
		{
			exercises.POST("", exerciseHandler.CreateExercise)
			exercises.GET("", exerciseHandler.ListExercises)
			exercises.POST("/:id/favorite", exerciseHandler.ToggleFavorite)
			exercises.DELETE("/:id", exerciseHandler.DeleteExercise)
		}

		challenges := protected.Group("/challenges")
		{
			challenges.GET("", challengeHandler.ListChallenges)
			challenges.POST("", challengeHandler.CreateChallenge)
			challenges.POST("/:id/join", challengeHandler.JoinChallenge)
		}

		protected.GET("/dashboard", dashboardHandler.GetStats)
	}
}
