package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/you/foodauth/internal/http/response"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// bindAndValidate binds the JSON body and runs the validate tags. Presence
// rules live in the services so their messages reach the client; the tags
// here only check format. On failure the response is written and false
// returned.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Invalid(c, err)
		return false
	}
	if err := validate.Struct(req); err != nil {
		response.Invalid(c, err)
		return false
	}
	return true
}
