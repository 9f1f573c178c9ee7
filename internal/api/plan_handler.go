package api

import (
	"net/http"
	"time"

	"fittrack/fitness-app/internal/domain"
	"fittrack/fitness-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanHandler exposes workout plans.
type PlanHandler struct {
	planService service.PlanService
}

func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- DTOs ---

type CreatePlanRequest struct {
	Name    string         `json:"name" binding:"required"`
	Privacy domain.Privacy `json:"privacy"` // Defaults to Private
}

type UpdatePrivacyRequest struct {
	Privacy domain.Privacy `json:"privacy" binding:"required"`
}

type AddExerciseRequest struct {
	Exercise string `json:"exercise" binding:"required"`
}

// PlanResponse is the wire form of a plan. Days holds only scheduled days.
type PlanResponse struct {
	ID        string              `json:"id"`
	OwnerID   string              `json:"ownerId"`
	Name      string              `json:"name"`
	Privacy   domain.Privacy      `json:"privacy"`
	Days      map[string][]string `json:"days"`
	Revision  int64               `json:"revision"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

func MapPlanToResponse(p *domain.WorkoutPlan) PlanResponse {
	if p == nil {
		return PlanResponse{}
	}
	days := make(map[string][]string, len(p.Days))
	for day, exercises := range p.Days {
		if exercises == nil {
			exercises = []string{}
		}
		days[string(day)] = exercises
	}
	return PlanResponse{
		ID:        p.ID.Hex(),
		OwnerID:   p.OwnerID.Hex(),
		Name:      p.Name,
		Privacy:   p.Privacy,
		Days:      days,
		Revision:  p.Revision,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func MapPlansToResponse(plans []domain.WorkoutPlan) []PlanResponse {
	responses := make([]PlanResponse, len(plans))
	for i := range plans {
		responses[i] = MapPlanToResponse(&plans[i])
	}
	return responses
}

// pathObjectID parses an ObjectID route parameter, answering 400 on failure.
func pathObjectID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid "+name+" format")
		return primitive.NilObjectID, false
	}
	return id, true
}

// --- Handler Methods ---

// CreatePlan godoc
// @Summary Create a workout plan
// @Description New plans have all seven days scheduled and empty.
// @Tags Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param plan body CreatePlanRequest true "Plan name and privacy"
// @Success 201 {object} PlanResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Router /plans [post]
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	plan, err := h.planService.CreatePlan(c.Request.Context(), req.Name, req.Privacy)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapPlanToResponse(plan))
}

// ListPlans godoc
// @Summary The caller's plans, newest first
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Success 200 {array} PlanResponse
// @Router /plans [get]
func (h *PlanHandler) ListPlans(c *gin.Context) {
	plans, err := h.planService.ListPlans(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapPlansToResponse(plans))
}

// ListPublicPlans godoc
// @Summary Public plans of all users, newest first
// @Tags Plans
// @Produce json
// @Success 200 {array} PlanResponse
// @Router /plans/public [get]
func (h *PlanHandler) ListPublicPlans(c *gin.Context) {
	plans, err := h.planService.ListPublicPlans(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapPlansToResponse(plans))
}

// GetPlan godoc
// @Summary One plan, if owned by the caller or public
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Success 200 {object} PlanResponse
// @Failure 404 {object} gin.H "Not found"
// @Router /plans/{planId} [get]
func (h *PlanHandler) GetPlan(c *gin.Context) {
	planID, ok := pathObjectID(c, "planId")
	if !ok {
		return
	}
	plan, err := h.planService.GetPlan(c.Request.Context(), planID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

// UpdatePrivacy godoc
// @Summary Make a plan Private or Public
// @Tags Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Param privacy body UpdatePrivacyRequest true "New privacy"
// @Success 200 {object} PlanResponse
// @Failure 409 {object} gin.H "Plan changed concurrently"
// @Router /plans/{planId}/privacy [put]
func (h *PlanHandler) UpdatePrivacy(c *gin.Context) {
	planID, ok := pathObjectID(c, "planId")
	if !ok {
		return
	}
	var req UpdatePrivacyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	plan, err := h.planService.UpdatePrivacy(c.Request.Context(), planID, req.Privacy)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

// AddExerciseToDay godoc
// @Summary Append an exercise to a day
// @Description Schedules the day if it was not scheduled.
// @Tags Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Param day path string true "Weekday, e.g. Monday"
// @Param exercise body AddExerciseRequest true "Exercise name"
// @Success 200 {object} PlanResponse
// @Failure 409 {object} gin.H "Plan changed concurrently"
// @Router /plans/{planId}/days/{day}/exercises [post]
func (h *PlanHandler) AddExerciseToDay(c *gin.Context) {
	planID, ok := pathObjectID(c, "planId")
	if !ok {
		return
	}
	var req AddExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	plan, err := h.planService.AddExerciseToDay(c.Request.Context(), planID, domain.Weekday(c.Param("day")), req.Exercise)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

// DeleteDay godoc
// @Summary Unschedule a day
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Param day path string true "Weekday, e.g. Monday"
// @Success 200 {object} PlanResponse
// @Router /plans/{planId}/days/{day} [delete]
func (h *PlanHandler) DeleteDay(c *gin.Context) {
	planID, ok := pathObjectID(c, "planId")
	if !ok {
		return
	}
	plan, err := h.planService.DeleteDay(c.Request.Context(), planID, domain.Weekday(c.Param("day")))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

// DeletePlan godoc
// @Summary Delete a plan permanently
// @Tags Plans
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Success 204
// @Failure 404 {object} gin.H "Not found"
// @Router /plans/{planId} [delete]
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	planID, ok := pathObjectID(c, "planId")
	if !ok {
		return
	}
	if err := h.planService.DeletePlan(c.Request.Context(), planID); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
