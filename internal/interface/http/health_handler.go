package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-event-management/pkg/response"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

// Test GET /test
func (h *HealthHandler) Test(c *gin.Context) {
	response.Message(c, http.StatusOK, "The server is running")
}
