// Package handlers is the HTTP boundary. Handlers bind the request, thread
// the caller identity into the command, dispatch through the pipeline and
// translate the result into a response. No business rules live here.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"real-estate-backend/internal/result"
)

// respond writes either the success payload or the full error list. The
// status comes from the first error because errors keep encounter order.
func respond[T any](c *gin.Context, status int, res result.Result[T]) {
	if res.IsFailed() {
		c.JSON(res.FirstStatus(), gin.H{"errors": res.Errors})
		return
	}
	c.JSON(status, gin.H{"data": res.Value})
}

// bindJSON binds the body and reports a 400 on malformed input. Returns
// false when the request was already answered.
func bindJSON(c *gin.Context, out interface{}) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []*result.Error{
			result.ValidationError("MalformedBody", "", "request body is not valid JSON"),
		}})
		return false
	}
	return true
}
