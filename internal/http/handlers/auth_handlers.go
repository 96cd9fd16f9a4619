package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/you/foodauth/domain"
	"github.com/you/foodauth/internal/http/middleware"
	"github.com/you/foodauth/internal/http/response"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc domain.AuthService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc}
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	Email     string `json:"email" validate:"omitempty,email,max=255"`
	Password  string `json:"password" validate:"max=128"`
	Phone     string `json:"phone" validate:"max=20"`
	FirstName string `json:"firstName" validate:"max=100"`
	LastName  string `json:"lastName" validate:"max=100"`
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email" validate:"max=255"`
	Password string `json:"password" validate:"max=128"`
}

// OTPVerifyRequest represents OTP verification request
type OTPVerifyRequest struct {
	UserID string `json:"userId" validate:"max=64"`
	Code   string `json:"code" validate:"omitempty,numeric,max=10"`
}

// ResendOTPRequest represents an OTP resend request
type ResendOTPRequest struct {
	UserID string `json:"userId" validate:"max=64"`
}

// RefreshRequest represents token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Register handles user registration
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}

	result, err := h.authSvc.RegisterUser(c.Request.Context(), domain.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		Phone:     req.Phone,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusCreated, toAuthDTO(result), "Registration successful. Please verify your phone number.")
}

// Login handles customer login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	result, err := h.authSvc.LoginUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	msg := ""
	if result.RequiresVerification {
		msg = "Phone verification required"
	}
	response.OK(c, http.StatusOK, toAuthDTO(result), msg)
}

// StaffLogin handles staff login
func (h *AuthHandlers) StaffLogin(c *gin.Context) {
	var req LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	result, err := h.authSvc.LoginStaff(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, toAuthDTO(result), "")
}

// VerifyOTP handles OTP verification
func (h *AuthHandlers) VerifyOTP(c *gin.Context) {
	var req OTPVerifyRequest
	if !bindAndValidate(c, &req) {
		return
	}

	result, err := h.authSvc.VerifyOTP(c.Request.Context(), req.UserID, req.Code)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, toAuthDTO(result), "Phone verified successfully")
}

// ResendOTP issues and sends a fresh code
func (h *AuthHandlers) ResendOTP(c *gin.Context) {
	var req ResendOTPRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.authSvc.ResendOTP(c.Request.Context(), req.UserID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, nil, "OTP code resent successfully")
}

// Refresh exchanges a refresh token for a new access token. It serves both
// the customer and the staff refresh routes.
func (h *AuthHandlers) Refresh(c *gin.Context) {
	var req RefreshRequest
	if !bindAndValidate(c, &req) {
		return
	}

	access, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"accessToken": access}, "")
}

// Me returns the authenticated principal
func (h *AuthHandlers) Me(c *gin.Context) {
	ctx := c.Request.Context()

	switch middleware.CurrentPrincipalType(c) {
	case domain.PrincipalUser:
		id, _ := middleware.CurrentUserID(c)
		user, err := h.authSvc.CurrentUser(ctx, id)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, http.StatusOK, gin.H{"type": domain.PrincipalUser, "user": toUserDTO(user)}, "")
	case domain.PrincipalStaff:
		id, _, _ := middleware.CurrentStaff(c)
		staff, err := h.authSvc.CurrentStaff(ctx, id)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, http.StatusOK, gin.H{"type": domain.PrincipalStaff, "staff": toStaffDTO(staff)}, "")
	default:
		response.Error(c, domain.ErrAuthRequired)
	}
}
