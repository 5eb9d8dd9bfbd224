package api

import (
	"fmt"
	"net/http"
	"time"

	"alcyxob/fitness-ai/internal/domain"
	"alcyxob/fitness-ai/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutHandler serves workout history.
type WorkoutHandler struct {
	workouts service.WorkoutAIService
}

func NewWorkoutHandler(workouts service.WorkoutAIService) *WorkoutHandler {
	return &WorkoutHandler{workouts: workouts}
}

type SessionExerciseRequest struct {
	Name         string   `json:"name" binding:"required"`
	MuscleGroups []string `json:"muscleGroups"`
}

type LogSessionRequest struct {
	WorkoutName     string                   `json:"workoutName" binding:"required"`
	Exercises       []SessionExerciseRequest `json:"exercises" binding:"required,min=1,dive"`
	DurationMinutes int                      `json:"durationMinutes" binding:"omitempty,min=1"`
	CompletedAt     *time.Time               `json:"completedAt"`
}

// LogSession godoc
// @Summary Record a completed workout
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param session body LogSessionRequest true "Completed workout"
// @Success 201 {object} domain.WorkoutSession
// @Failure 400 {object} gin.H "Invalid input"
// @Router /workouts/sessions [post]
func (h *WorkoutHandler) LogSession(c *gin.Context) {
	var req LogSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	session := &domain.WorkoutSession{
		WorkoutName:     req.WorkoutName,
		DurationMinutes: req.DurationMinutes,
	}
	if req.CompletedAt != nil {
		session.CompletedAt = req.CompletedAt.UTC()
	}
	for _, e := range req.Exercises {
		session.Exercises = append(session.Exercises, domain.SessionExercise{Name: e.Name, MuscleGroups: e.MuscleGroups})
	}

	saved, err := h.workouts.LogSession(c.Request.Context(), userID, session)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// ListGenerated godoc
// @Summary List the caller's generated workouts, newest first
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.GeneratedWorkout
// @Router /workouts/generated [get]
func (h *WorkoutHandler) ListGenerated(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	workouts, err := h.workouts.ListGenerated(c.Request.Context(), userID)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	if workouts == nil {
		workouts = []domain.GeneratedWorkout{}
	}
	c.JSON(http.StatusOK, workouts)
}

// RawResponseURL godoc
// @Summary Get a temporary link to the archived model reply of a workout
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Generated workout ID"
// @Success 200 {object} gin.H "url"
// @Failure 403 {object} gin.H "Forbidden (not an admin)"
// @Failure 404 {object} gin.H "Not found"
// @Failure 503 {object} gin.H "Archive not configured"
// @Router /workouts/generated/{id}/raw [get]
func (h *WorkoutHandler) RawResponseURL(c *gin.Context) {
	workoutID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID format")
		return
	}

	url, err := h.workouts.RawResponseURL(c.Request.Context(), workoutID)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
