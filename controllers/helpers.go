package controllers

import (
	"strconv"

	"github.com/Govind-619/ebook-store/utils"
	"github.com/gin-gonic/gin"
)

// parseIDParam reads a positive numeric path parameter
func parseIDParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, utils.ValidationError("Invalid " + name + ": " + raw)
	}
	return uint(id), nil
}

// bindJSON decodes the body into req and maps decoding failures to a
// ValidationError response. It reports whether the handler may continue.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.LogDebug("Invalid request body on %s: %v", c.Request.URL.Path, err)
		utils.RespondError(c, utils.BindError(err))
		return false
	}
	return true
}
