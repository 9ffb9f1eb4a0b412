package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-event-management/internal/interface/middleware"
)

func clientIP(c *gin.Context) string {
	if ip := c.GetString(middleware.CtxRealIPKey); ip != "" {
		return ip
	}
	return c.ClientIP()
}

func logFields(c *gin.Context, extra logrus.Fields) logrus.Fields {
	f := logrus.Fields{
		"request_id": c.GetString(middleware.CtxRequestIDKey),
		"ip":         clientIP(c),
		"method":     c.Request.Method,
		"path":       c.FullPath(),
	}
	for k, v := range extra {
		f[k] = v
	}
	return f
}

func isValidationError(err error) bool {
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs)
}
