package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type DataResponse struct {
	Data interface{} `json:"data"`
}

type ErrorResponse struct {
	Message interface{} `json:"message"`
}

// RespondJSON writes data wrapped as {"data": ...}.
func RespondJSON(c *gin.Context, code int, data interface{}) {
	c.JSON(code, DataResponse{Data: data})
}

// RespondError writes err as {"message": ...} with the given status.
func RespondError(c *gin.Context, code int, err error) {
	if code >= http.StatusInternalServerError {
		ErrorLogger.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Error(err)
	}
	c.AbortWithStatusJSON(code, ErrorResponse{Message: err.Error()})
}

// RespondFailure maps err to a status: RequestError keeps its own status and
// messages, a missing record is a 404 and anything else is an internal error.
func RespondFailure(c *gin.Context, err error) {
	var reqErr *RequestError
	if errors.Is(err, gorm.ErrRecordNotFound) {
		RespondError(c, http.StatusNotFound, err)
		return
	}
	if !errors.As(err, &reqErr) {
		RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var message interface{} = reqErr.Messages
	if len(reqErr.Messages) == 1 {
		message = reqErr.Messages[0]
	}
	c.AbortWithStatusJSON(reqErr.Status, ErrorResponse{Message: message})
}
