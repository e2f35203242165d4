package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewOKResp returns a new OK response with the given data.
func NewOKResp(data any) Resp {
	return Resp{
		Code:    http.StatusOK,
		Message: MessageSuccess,
		Data:    data,
	}
}

// OK sends 200 JSON with data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, NewOKResp(data))
}

// Created sends 201 JSON with data.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Resp{
		Code:    http.StatusCreated,
		Message: MessageCreated,
		Data:    data,
	})
}

// BadRequest sends 400 with the given message.
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = MessageBadRequest
	}
	c.JSON(http.StatusBadRequest, Resp{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// Unauthorized sends 401 response.
func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, Resp{
		Code:    http.StatusUnauthorized,
		Message: MessageUnauthorized,
	})
}

// Forbidden sends 403 response.
func Forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, Resp{
		Code:    http.StatusForbidden,
		Message: MessageForbidden,
	})
}

// Internal sends 500 response.
func Internal(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, Resp{
		Code:    http.StatusInternalServerError,
		Message: MessageInternal,
	})
}
