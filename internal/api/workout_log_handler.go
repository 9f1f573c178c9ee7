package api

import (
	"net/http"
	"time"

	"fittrack/fitness-app/internal/domain"
	"fittrack/fitness-app/internal/service"

	"github.com/gin-gonic/gin"
)

type WorkoutLogHandler struct {
	logService service.WorkoutLogService
}

func NewWorkoutLogHandler(logService service.WorkoutLogService) *WorkoutLogHandler {
	return &WorkoutLogHandler{logService: logService}
}

// WorkoutRequest is used for both logging and editing. Category is ignored
// on edit.
type WorkoutRequest struct {
	Name           string                 `json:"name" binding:"required"`
	Category       domain.WorkoutCategory `json:"category" binding:"omitempty,oneof=cardio strength flexibility"`
	DurationHours  float64                `json:"durationHours" binding:"gte=0"`
	CaloriesBurned int                    `json:"caloriesBurned" binding:"gte=0"`
	DistanceKm     *float64               `json:"distanceKm" binding:"omitempty,gte=0"`
	Sets           *int                   `json:"sets" binding:"omitempty,gte=0"`
	Reps           *int                   `json:"reps" binding:"omitempty,gte=0"`
	Notes          string                 `json:"notes"`
}

func (r WorkoutRequest) input() service.WorkoutInput {
	return service.WorkoutInput{
		Name:           r.Name,
		Category:       r.Category,
		DurationHours:  r.DurationHours,
		CaloriesBurned: r.CaloriesBurned,
		DistanceKm:     r.DistanceKm,
		Sets:           r.Sets,
		Reps:           r.Reps,
		Notes:          r.Notes,
	}
}

// LogWorkout godoc
// @Summary Record a performed workout
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workout body WorkoutRequest true "Workout"
// @Success 201 {object} domain.WorkoutLog
// @Failure 400 {object} gin.H "Invalid input"
// @Router /workouts [post]
func (h *WorkoutLogHandler) LogWorkout(c *gin.Context) {
	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	log, err := h.logService.LogWorkout(c.Request.Context(), req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, log)
}

// ListHistory godoc
// @Summary Workout history, newest first
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param date query string false "Only this UTC day, YYYY-MM-DD"
// @Success 200 {array} domain.WorkoutLog
// @Router /workouts [get]
func (h *WorkoutLogHandler) ListHistory(c *gin.Context) {
	var day *time.Time
	if raw := c.Query("date"); raw != "" {
		d, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
			return
		}
		day = &d
	}
	logs, err := h.logService.ListHistory(c.Request.Context(), day)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// UpdateWorkout godoc
// @Summary Edit a logged workout
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workout ID"
// @Param workout body WorkoutRequest true "New values"
// @Success 200 {object} domain.WorkoutLog
// @Router /workouts/{id} [put]
func (h *WorkoutLogHandler) UpdateWorkout(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	log, err := h.logService.UpdateWorkout(c.Request.Context(), id, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, log)
}

// DeleteWorkout godoc
// @Summary Delete a logged workout
// @Tags Workouts
// @Security BearerAuth
// @Param id path string true "Workout ID"
// @Success 204
// @Router /workouts/{id} [delete]
func (h *WorkoutLogHandler) DeleteWorkout(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	if err := h.logService.DeleteWorkout(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
