package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/you/foodauth/domain"
	"github.com/you/foodauth/internal/http/middleware"
	"github.com/you/foodauth/internal/http/response"
)

// StaffHandlers serves staff administration
type StaffHandlers struct {
	staffSvc domain.StaffService
}

func NewStaffHandlers(staffSvc domain.StaffService) *StaffHandlers {
	return &StaffHandlers{staffSvc: staffSvc}
}

// CreateStaffRequest represents a new staff member
type CreateStaffRequest struct {
	Email      string            `json:"email" validate:"omitempty,email,max=255"`
	Password   string            `json:"password" validate:"max=128"`
	Phone      string            `json:"phone" validate:"max=20"`
	FirstName  string            `json:"firstName" validate:"max=100"`
	LastName   string            `json:"lastName" validate:"max=100"`
	Role       *domain.StaffRole `json:"role"`
	LocationID string            `json:"locationId" validate:"max=64"`
	IsActive   *bool             `json:"isActive"`
}

// UpdateStaffRequest is a partial staff update; absent fields are kept
type UpdateStaffRequest struct {
	Email      *string           `json:"email" validate:"omitempty,email,max=255"`
	Password   *string           `json:"password" validate:"omitempty,max=128"`
	Phone      *string           `json:"phone" validate:"omitempty,max=20"`
	FirstName  *string           `json:"firstName" validate:"omitempty,max=100"`
	LastName   *string           `json:"lastName" validate:"omitempty,max=100"`
	Role       *domain.StaffRole `json:"role"`
	LocationID *string           `json:"locationId" validate:"omitempty,max=64"`
	IsActive   *bool             `json:"isActive"`
}

// ListStaffQuery holds the listing query string
type ListStaffQuery struct {
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
	Search     string `form:"search"`
	Role       string `form:"role"`
	LocationID string `form:"locationId"`
	IsActive   string `form:"isActive"`
}

// List returns a page of staff members
func (h *StaffHandlers) List(c *gin.Context) {
	var q ListStaffQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Invalid(c, err)
		return
	}

	filter := domain.StaffFilter{
		Search:     q.Search,
		LocationID: q.LocationID,
		Page:       q.Page,
		Limit:      q.Limit,
	}
	if q.Role != "" {
		role, err := domain.ParseStaffRole(q.Role)
		if err != nil {
			response.Error(c, domain.ErrInvalidRole)
			return
		}
		filter.Role = &role
	}
	if q.IsActive != "" {
		active, err := strconv.ParseBool(q.IsActive)
		if err != nil {
			response.Error(c, domain.NewValidationError("isActive must be true or false"))
			return
		}
		filter.IsActive = &active
	}

	page, err := h.staffSvc.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, toStaffListDTO(page), "")
}

// Get returns one staff member
func (h *StaffHandlers) Get(c *gin.Context) {
	staff, err := h.staffSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, toStaffDTO(staff), "")
}

// Create adds a staff member
func (h *StaffHandlers) Create(c *gin.Context) {
	var req CreateStaffRequest
	if !bindAndValidate(c, &req) {
		return
	}

	in := domain.StaffInput{
		Email:      req.Email,
		Password:   req.Password,
		Phone:      req.Phone,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		LocationID: req.LocationID,
		IsActive:   req.IsActive,
	}
	if req.Role != nil {
		in.Role = *req.Role
	}

	staff, err := h.staffSvc.Create(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusCreated, toStaffDTO(staff), "Staff member created successfully")
}

// Update changes a staff member
func (h *StaffHandlers) Update(c *gin.Context) {
	var req UpdateStaffRequest
	if !bindAndValidate(c, &req) {
		return
	}
	actorID, actorRole, ok := middleware.CurrentStaff(c)
	if !ok {
		response.Error(c, domain.ErrStaffOnly)
		return
	}

	staff, err := h.staffSvc.Update(c.Request.Context(), actorID, actorRole, c.Param("id"), domain.StaffUpdate{
		Email:      req.Email,
		Password:   req.Password,
		Phone:      req.Phone,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Role:       req.Role,
		LocationID: req.LocationID,
		IsActive:   req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, toStaffDTO(staff), "Staff member updated successfully")
}

// Deactivate soft-deletes a staff member
func (h *StaffHandlers) Deactivate(c *gin.Context) {
	actorID, _, ok := middleware.CurrentStaff(c)
	if !ok {
		response.Error(c, domain.ErrStaffOnly)
		return
	}

	if err := h.staffSvc.Deactivate(c.Request.Context(), actorID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, nil, "Staff member deactivated successfully")
}
