package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/you/foodauth/domain"
	"github.com/you/foodauth/internal/http/middleware"
	"github.com/you/foodauth/internal/http/response"
)

type ProfileHandlers struct {
	profileSvc domain.ProfileService
}

func NewProfileHandlers(profileSvc domain.ProfileService) *ProfileHandlers {
	return &ProfileHandlers{profileSvc: profileSvc}
}

type UpdateProfileRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,max=100"`
}

func (h *ProfileHandlers) Get(c *gin.Context) {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, domain.ErrUserOnly)
		return
	}
	user, err := h.profileSvc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, toUserDTO(user), "")
}

func (h *ProfileHandlers) Update(c *gin.Context) {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, domain.ErrUserOnly)
		return
	}
	var req UpdateProfileRequest
	if !bindAndValidate(c, &req) {
		return
	}

	user, err := h.profileSvc.Update(c.Request.Context(), id, domain.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, toUserDTO(user), "Profile updated successfully")
}
