package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/hostelms/backend/internal/interfaces/http/dto"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether the backing database is reachable
type Pinger interface {
	Ping() error
}

// SystemHandler handles health and system info endpoints
type SystemHandler struct {
	BaseHandler
	db        Pinger
	startTime time.Time
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(db Pinger) *SystemHandler {
	return &SystemHandler{
		db:        db,
		startTime: time.Now(),
	}
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// GetSystemInfo returns version and uptime information
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	info := SystemInfoResponse{
		Name:      "Hostel Fee Ledger API",
		Version:   "1.0.0",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}

	h.Success(c, info)
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Health reports liveness
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// Ready reports readiness, checking database connectivity
func (h *SystemHandler) Ready(c *gin.Context) {
	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable,
				dto.NewErrorResponse("NOT_READY", "Database is not reachable"))
			return
		}
	}

	h.Success(c, HealthResponse{
		Status:    "ready",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
	rg.GET("/ready", h.Ready)

	system := rg.Group("/system")
	{
		system.GET("/info", h.GetSystemInfo)
	}
}
