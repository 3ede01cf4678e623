package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/0xF5T9/vyfood-backend-sub000/internal/apperr"
)

// Response is the uniform wire shape every endpoint returns.
type Response struct {
	Message    string `json:"message"`
	Success    bool   `json:"success"`
	Data       any    `json:"data"`
	StatusCode int    `json:"statusCode"`
}

func respondOK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Response{
		Message:    message,
		Success:    true,
		Data:       data,
		StatusCode: http.StatusOK,
	})
}

func respondError(c *gin.Context, err error) {
	status := apperr.StatusCode(err)
	c.AbortWithStatusJSON(status, Response{
		Message:    apperr.Message(err),
		Success:    false,
		Data:       nil,
		StatusCode: status,
	})
}

func respondStatus(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Response{
		Message:    message,
		Success:    false,
		Data:       nil,
		StatusCode: status,
	})
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if v := c.Query(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
