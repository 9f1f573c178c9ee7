package api

import (
	"net/http"
	"time"

	"fittrack/fitness-app/internal/domain"
	"fittrack/fitness-app/internal/service"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- DTOs for API (Data Transfer Objects) ---

// CreateExerciseRequest defines the expected JSON for creating an exercise.
type CreateExerciseRequest struct {
	Name         string                 `json:"name" binding:"required"`
	Category     domain.WorkoutCategory `json:"category" binding:"required,oneof=cardio strength flexibility"`
	ThumbnailURL string                 `json:"thumbnailUrl" binding:"omitempty,url"`
}

// ExerciseResponse is the DTO for returning exercise details.
type ExerciseResponse struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	Category     domain.WorkoutCategory `json:"category"`
	Favorite     bool                   `json:"favorite"`
	ThumbnailURL string                 `json:"thumbnailUrl,omitempty"`
	CreatedAt    time.Time              `json:"createdAt"`
	UpdatedAt    time.Time              `json:"updatedAt"`
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	return ExerciseResponse{
		ID:           ex.ID.Hex(),
		Name:         ex.Name,
		Category:     ex.Category,
		Favorite:     ex.Favorite,
		ThumbnailURL: ex.ThumbnailURL,
		CreatedAt:    ex.CreatedAt,
		UpdatedAt:    ex.UpdatedAt,
	}
}

// MapExercisesToResponse converts a slice of domain.Exercise to a slice of ExerciseResponse DTO.
func MapExercisesToResponse(exercises []domain.Exercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i := range exercises {
		responses[i] = MapExerciseToResponse(&exercises[i])
	}
	return responses
}

// --- Handler Methods ---

// CreateExercise godoc
// @Summary Add an exercise to the library
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exercise body CreateExerciseRequest true "Exercise details"
// @Success 201 {object} ExerciseResponse "Exercise created successfully"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /exercises [post]
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercise, err := h.exerciseService.CreateExercise(c.Request.Context(), req.Name, req.Category, req.ThumbnailURL)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapExerciseToResponse(exercise))
}

// ListExercises godoc
// @Summary The caller's exercise library
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param q query string false "Case-insensitive name filter"
// @Success 200 {array} ExerciseResponse
// @Router /exercises [get]
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	exercises, err := h.exerciseService.ListExercises(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}

// ToggleFavorite godoc
// @Summary Flip the favorite flag
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Success 200 {object} ExerciseResponse
// @Failure 404 {object} gin.H "Not found"
// @Router /exercises/{id}/favorite [post]
func (h *ExerciseHandler) ToggleFavorite(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	exercise, err := h.exerciseService.ToggleFavorite(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// DeleteExercise godoc
// @Summary Remove an exercise from the library
// @Tags Exercises
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Success 204
// @Failure 404 {object} gin.H "Not found"
// @Router /exercises/{id} [delete]
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	if err := h.exerciseService.DeleteExercise(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
