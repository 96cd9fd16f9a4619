package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/you/foodauth/domain"
	"github.com/you/foodauth/internal/http/response"
)

// PolicyHandlers administers the casbin access policies
type PolicyHandlers struct {
	policySvc domain.PolicyService
}

func NewPolicyHandlers(policySvc domain.PolicyService) *PolicyHandlers {
	return &PolicyHandlers{policySvc: policySvc}
}

type policyReq struct {
	Role     domain.StaffRole `json:"role" validate:"required"`
	Resource string           `json:"resource" validate:"required,startswith=/,max=255"`
	Action   string           `json:"action" validate:"required,max=16"`
}

func (h *PolicyHandlers) List(c *gin.Context) {
	policies, err := h.policySvc.GetPolicies()
	if err != nil {
		response.Error(c, err)
		return
	}
	out := make([]PolicyDTO, 0, len(policies))
	for _, p := range policies {
		if len(p) < 3 {
			continue
		}
		out = append(out, PolicyDTO{Role: strings.TrimPrefix(p[0], "role_"), Resource: p[1], Action: p[2]})
	}
	response.OK(c, http.StatusOK, out, "")
}

func (h *PolicyHandlers) Add(c *gin.Context) {
	var r policyReq
	if !bindAndValidate(c, &r) {
		return
	}
	if err := h.policySvc.AddPolicy(r.Role, r.Resource, r.Action); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusCreated, PolicyDTO{Role: r.Role.String(), Resource: r.Resource, Action: strings.ToUpper(r.Action)}, "Policy added")
}

func (h *PolicyHandlers) Remove(c *gin.Context) {
	var r policyReq
	if !bindAndValidate(c, &r) {
		return
	}
	if err := h.policySvc.RemovePolicy(r.Role, r.Resource, r.Action); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, nil, "Policy removed")
}

// Check reports whether role may perform action on resource.
func (h *PolicyHandlers) Check(c *gin.Context) {
	role, err := domain.ParseStaffRole(c.Query("role"))
	if err != nil {
		response.Error(c, domain.ErrInvalidRole)
		return
	}
	resource := c.Query("resource")
	action := c.Query("action")
	if resource == "" || action == "" {
		response.Error(c, domain.NewValidationError("role, resource and action are required"))
		return
	}

	allowed, err := h.policySvc.CheckPermission(role, resource, action)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"allowed": allowed}, "")
}
