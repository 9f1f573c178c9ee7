package api

import (
	"net/http"

	"fittrack/fitness-app/internal/service"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileService service.ProfileService
}

func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

type UpdateProfileRequest struct {
	FullName string `json:"fullName" binding:"required"`
}

type AvatarUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type ConfirmAvatarRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
}

// GetProfile godoc
// @Summary Current user's profile
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Router /me [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	user, err := h.profileService.GetProfile(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// UpdateProfile godoc
// @Summary Change the display name
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body UpdateProfileRequest true "New profile fields"
// @Success 200 {object} UserResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Router /me [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	user, err := h.profileService.UpdateProfile(c.Request.Context(), req.FullName)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// RequestAvatarUpload godoc
// @Summary Get a presigned URL to upload a new avatar
// @Description The client PUTs the image to uploadUrl with the same Content-Type, then confirms objectKey.
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param upload body AvatarUploadRequest true "Image content type"
// @Success 200 {object} service.AvatarUpload
// @Failure 400 {object} gin.H "Unsupported content type"
// @Failure 503 {object} gin.H "Storage not configured"
// @Router /me/avatar [post]
func (h *ProfileHandler) RequestAvatarUpload(c *gin.Context) {
	var req AvatarUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	upload, err := h.profileService.RequestAvatarUpload(c.Request.Context(), req.ContentType)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, upload)
}

// ConfirmAvatar godoc
// @Summary Use an uploaded image as the avatar
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param avatar body ConfirmAvatarRequest true "Object key from the upload request"
// @Success 200 {object} UserResponse
// @Router /me/avatar [put]
func (h *ProfileHandler) ConfirmAvatar(c *gin.Context) {
	var req ConfirmAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	user, err := h.profileService.ConfirmAvatar(c.Request.Context(), req.ObjectKey)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// GetAvatarURL godoc
// @Summary Presigned download URL of the avatar
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} gin.H "{\"avatarUrl\": \"...\"}"
// @Failure 404 {object} gin.H "No avatar"
// @Router /me/avatar [get]
func (h *ProfileHandler) GetAvatarURL(c *gin.Context) {
	u, err := h.profileService.GetAvatarURL(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"avatarUrl": u})
}
