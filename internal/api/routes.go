package api

import (
	"net/http"

	"alcyxob/fitness-ai/internal/domain"
	"alcyxob/fitness-ai/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	gatherer prometheus.Gatherer,
	authService service.AuthService,
	libraryService service.LibraryService,
	exerciseAIService service.ExerciseAIService,
	workoutAIService service.WorkoutAIService,
) {
	authHandler := NewAuthHandler(authService)
	exerciseHandler := NewExerciseHandler(libraryService)
	aiHandler := NewAIHandler(exerciseAIService, workoutAIService)
	workoutHandler := NewWorkoutHandler(workoutAIService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/health", exerciseHandler.Health)
	if gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userID, ok := mustUserID(c)
			if !ok {
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userID.Hex(), "role": role})
		})

		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("/similar", exerciseHandler.SimilarExercises)
			exerciseGroup.GET("/search", exerciseHandler.SearchLibrary)
		}
		protected.GET("/suggestions/:userId", exerciseHandler.WorkoutSuggestions)

		aiGroup := protected.Group("/ai")
		{
			aiGroup.POST("/exercises/search", aiHandler.SearchExercise)
			aiGroup.POST("/exercises/variations", aiHandler.ExerciseVariations)
			aiGroup.POST("/workouts", aiHandler.GenerateWorkout)
			aiGroup.POST("/workouts/smart", aiHandler.GenerateSmartWorkout)
			aiGroup.POST("/workouts/replace", aiHandler.ReplaceExercise)
		}

		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.POST("/sessions", workoutHandler.LogSession)
			workoutGroup.GET("/generated", workoutHandler.ListGenerated)
			workoutGroup.GET("/generated/:id/raw", RoleMiddleware(domain.RoleAdmin), workoutHandler.RawResponseURL)
		}
	}
}
