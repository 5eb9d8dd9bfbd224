package api

import (
	"net/http"
	"strconv"
	"strings"

	"alcyxob/fitness-ai/internal/domain"
	"alcyxob/fitness-ai/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseHandler serves the curated exercise library.
type ExerciseHandler struct {
	library service.LibraryService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(library service.LibraryService) *ExerciseHandler {
	return &ExerciseHandler{library: library}
}

// SimilarExercises godoc
// @Summary Find library exercises similar to the given muscles
// @Description Falls back to built-in exercises when the library has no match.
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param muscles query string false "Comma-separated muscles"
// @Param equipment query string false "Comma-separated available equipment"
// @Param exclude query string false "Comma-separated exercise names to skip"
// @Success 200 {object} service.SimilarResult
// @Router /exercises/similar [get]
func (h *ExerciseHandler) SimilarExercises(c *gin.Context) {
	res := h.library.Similar(c.Request.Context(), service.SimilarQuery{
		Muscles:   queryList(c, "muscles"),
		Equipment: queryList(c, "equipment"),
		Exclude:   queryList(c, "exclude"),
	})
	c.JSON(http.StatusOK, res)
}

// SearchLibrary godoc
// @Summary Search the exercise library by name, description or muscle
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param q query string true "Search text"
// @Success 200 {object} map[string][]domain.LibraryExercise
// @Failure 400 {object} map[string]string
// @Router /exercises/search [get]
func (h *ExerciseHandler) SearchLibrary(c *gin.Context) {
	results, err := h.library.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// WorkoutSuggestions godoc
// @Summary Themed workouts built from the exercise library
// @Description Users may only read their own suggestions; admins may read anyone's.
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Param limit query int false "Number of suggestion sets (1-3)"
// @Success 200 {object} map[string][]service.WorkoutSuggestion
// @Router /suggestions/{userId} [get]
func (h *ExerciseHandler) WorkoutSuggestions(c *gin.Context) {
	callerID, ok := mustUserID(c)
	if !ok {
		return
	}
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}
	if role, _ := getUserRoleFromContext(c); userID != callerID && role != domain.RoleAdmin {
		abortWithError(c, http.StatusForbidden, "Access denied: suggestions belong to another user")
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	suggestions, err := h.library.Suggestions(c.Request.Context(), limit)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// Health reports whether the exercise library store answers.
func (h *ExerciseHandler) Health(c *gin.Context) {
	health := h.library.Health(c.Request.Context())
	status, code := "healthy", http.StatusOK
	if !health.Healthy {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":        status,
		"exerciseCount": health.ExerciseCount,
		"timestamp":     health.CheckedAt,
	})
}

// queryList accepts both repeated parameters and comma-separated values.
func queryList(c *gin.Context, key string) []string {
	var out []string
	for _, v := range c.QueryArray(key) {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
