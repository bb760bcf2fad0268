package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// statusRunning is the status flag reported while the process serves requests.
// Deployment probes treat a 200 from the status endpoint as a passing signal.
const statusRunning = "running"

// StatusResponse describes the running service and its resource paths.
type StatusResponse struct {
	Message            string   `json:"message"`
	Status             string   `json:"status"`
	AvailableEndpoints []string `json:"available_endpoints"`
}

// StatusHandler handles the service status endpoint.
type StatusHandler struct {
	message   string
	endpoints []string
}

// NewStatusHandler creates a status handler announcing the given endpoints.
func NewStatusHandler(message string, endpoints []string) *StatusHandler {
	return &StatusHandler{
		message:   message,
		endpoints: endpoints,
	}
}

// Status handles GET /
// Always succeeds while the process is alive.
//
// @Summary Service status
// @Description Reports that the service is running and lists available endpoints
// @Tags status
// @Produce json
// @Success 200 {object} StatusResponse
// @Router / [get]
func (h *StatusHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{
		Message:            h.message,
		Status:             statusRunning,
		AvailableEndpoints: h.endpoints,
	})
}

// RegisterStatusRoutes registers the status route on the given router group.
func (h *StatusHandler) RegisterStatusRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.Status)
}
