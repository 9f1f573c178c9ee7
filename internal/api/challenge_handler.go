package api

import (
	"net/http"
	"time"

	"fittrack/fitness-app/internal/service"

	"github.com/gin-gonic/gin"
)

type ChallengeHandler struct {
	challengeService service.ChallengeService
}

func NewChallengeHandler(challengeService service.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{challengeService: challengeService}
}

type CreateChallengeRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	StartsAt    *time.Time `json:"startsAt"`
	EndsAt      *time.Time `json:"endsAt"`
}

// ListChallenges godoc
// @Summary All challenges with participants, newest first
// @Tags Challenges
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Challenge
// @Router /challenges [get]
func (h *ChallengeHandler) ListChallenges(c *gin.Context) {
	challenges, err := h.challengeService.ListChallenges(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, challenges)
}

// CreateChallenge godoc
// @Summary Start a community challenge
// @Tags Challenges
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param challenge body CreateChallengeRequest true "Challenge"
// @Success 201 {object} domain.Challenge
// @Router /challenges [post]
func (h *ChallengeHandler) CreateChallenge(c *gin.Context) {
	var req CreateChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	challenge, err := h.challengeService.CreateChallenge(c.Request.Context(), req.Name, req.Description, req.StartsAt, req.EndsAt)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, challenge)
}

// JoinChallenge godoc
// @Summary Join a challenge
// @Tags Challenges
// @Produce json
// @Security BearerAuth
// @Param id path string true "Challenge ID"
// @Success 200 {object} domain.Challenge
// @Failure 409 {object} gin.H "Already joined"
// @Router /challenges/{id}/join [post]
func (h *ChallengeHandler) JoinChallenge(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	challenge, err := h.challengeService.JoinChallenge(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, challenge)
}
