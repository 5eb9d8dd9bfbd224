package api

import (
	"context"
	"fmt"
	"net/http"

	"alcyxob/fitness-ai/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AIHandler serves the model-backed endpoints.
type AIHandler struct {
	exercises service.ExerciseAIService
	workouts  service.WorkoutAIService
}

func NewAIHandler(exercises service.ExerciseAIService, workouts service.WorkoutAIService) *AIHandler {
	return &AIHandler{exercises: exercises, workouts: workouts}
}

type SearchExerciseRequest struct {
	Query string `json:"query" binding:"required"`
}

type VariationsRequest struct {
	ExerciseName string `json:"exerciseName" binding:"required"`
	Count        int    `json:"count" binding:"omitempty,min=1,max=5"`
}

type GenerateWorkoutRequest struct {
	Goal               string   `json:"goal" binding:"required"`
	TargetMuscleGroups []string `json:"targetMuscleGroups"`
	Duration           int      `json:"duration" binding:"omitempty,min=5,max=180"`
	FitnessLevel       string   `json:"fitnessLevel"`
	Equipment          []string `json:"equipment"`
	Focus              string   `json:"focus"`
}

func (r GenerateWorkoutRequest) toService() service.WorkoutRequest {
	return service.WorkoutRequest{
		Goal:               r.Goal,
		TargetMuscleGroups: r.TargetMuscleGroups,
		Duration:           r.Duration,
		FitnessLevel:       r.FitnessLevel,
		Equipment:          r.Equipment,
		Focus:              r.Focus,
	}
}

type ReplaceExerciseRequest struct {
	ExerciseName string   `json:"exerciseName" binding:"required"`
	MuscleGroups []string `json:"muscleGroups"`
	Equipment    []string `json:"equipment"`
	FitnessLevel string   `json:"fitnessLevel"`
	Exclude      []string `json:"exclude"`
}

// SearchExercise godoc
// @Summary Look up an exercise with the AI model
// @Tags AI
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param query body SearchExerciseRequest true "Search query"
// @Success 200 {object} service.SearchResult
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 404 {object} service.SearchResult "Not an exercise"
// @Failure 422 {object} gin.H "AI output could not be repaired"
// @Failure 429 {object} gin.H "Daily limit reached"
// @Failure 502 {object} gin.H "AI provider failure"
// @Router /ai/exercises/search [post]
func (h *AIHandler) SearchExercise(c *gin.Context) {
	var req SearchExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	res, err := h.exercises.Search(c.Request.Context(), userID, req.Query)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	if !res.Found {
		c.JSON(http.StatusNotFound, res)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ExerciseVariations godoc
// @Summary Generate variations of an exercise
// @Tags AI
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body VariationsRequest true "Base exercise"
// @Success 200 {object} service.VariationsResult
// @Failure 422 {object} gin.H "AI output could not be repaired"
// @Router /ai/exercises/variations [post]
func (h *AIHandler) ExerciseVariations(c *gin.Context) {
	var req VariationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	res, err := h.exercises.Variations(c.Request.Context(), userID, req.ExerciseName, req.Count)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GenerateWorkout godoc
// @Summary Generate a personalised workout
// @Description Always returns a usable workout; fallbackUsed marks a synthesized one.
// @Tags AI
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body GenerateWorkoutRequest true "Workout preferences"
// @Success 200 {object} service.WorkoutResult
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 429 {object} gin.H "Daily limit reached"
// @Router /ai/workouts [post]
func (h *AIHandler) GenerateWorkout(c *gin.Context) {
	h.generateWorkout(c, h.workouts.Generate)
}

// GenerateSmartWorkout godoc
// @Summary Generate a workout that avoids recent templates and exercises
// @Tags AI
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body GenerateWorkoutRequest true "Workout preferences"
// @Success 200 {object} service.WorkoutResult
// @Router /ai/workouts/smart [post]
func (h *AIHandler) GenerateSmartWorkout(c *gin.Context) {
	h.generateWorkout(c, h.workouts.GenerateSmart)
}

type generateFunc func(ctx context.Context, userID primitive.ObjectID, req service.WorkoutRequest) (*service.WorkoutResult, error)

func (h *AIHandler) generateWorkout(c *gin.Context, generate generateFunc) {
	var req GenerateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	res, err := generate(c.Request.Context(), userID, req.toService())
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ReplaceExercise godoc
// @Summary Suggest up to three alternatives for an exercise
// @Tags AI
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ReplaceExerciseRequest true "Exercise to replace"
// @Success 200 {object} service.ReplaceResult
// @Router /ai/workouts/replace [post]
func (h *AIHandler) ReplaceExercise(c *gin.Context) {
	var req ReplaceExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	res, err := h.workouts.ReplaceExercise(c.Request.Context(), userID, service.ReplaceRequest{
		ExerciseName: req.ExerciseName,
		MuscleGroups: req.MuscleGroups,
		Equipment:    req.Equipment,
		FitnessLevel: req.FitnessLevel,
		Exclude:      req.Exclude,
	})
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
