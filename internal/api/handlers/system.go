package handlers

import (
	"net/http"

	"github.com/ndewijer/mutualfund-tracker/internal/api/response"
	"github.com/ndewijer/mutualfund-tracker/internal/apperrors"
	"github.com/ndewijer/mutualfund-tracker/internal/service"
)

// SystemHandler handles system-related HTTP requests
type SystemHandler struct {
	systemService *service.SystemService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(systemService *service.SystemService) *SystemHandler {
	return &SystemHandler{
		systemService: systemService,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}

// Health checks the health of the system and database connectivity
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.systemService.CheckHealth(); err != nil {
		response.RespondJSON(w, r, http.StatusServiceUnavailable, HealthResponse{
			Status:   "unhealthy",
			Database: "disconnected",
			Error:    err.Error(),
		})
		return
	}

	response.RespondJSON(w, r, http.StatusOK, HealthResponse{
		Status:   "healthy",
		Database: "connected",
	})
}

// VersionInfoResponse carries the application version and the applied
// schema version.
type VersionInfoResponse struct {
	AppVersion string `json:"app_version"`
	DbVersion  int64  `json:"db_version"`
}

// Version handles GET requests to retrieve version information.
//
// Endpoint: GET /api/system/version
// Response: 200 OK with VersionInfoResponse
// Error: 500 Internal Server Error if the schema version cannot be read
func (h *SystemHandler) Version(w http.ResponseWriter, r *http.Request) {
	version, err := h.systemService.GetVersionInfo(r.Context())
	if err != nil {
		response.RespondError(w, r, http.StatusInternalServerError, apperrors.ErrFailedToGetVersionInfo.Error(), err.Error())
		return
	}

	response.RespondJSON(w, r, http.StatusOK, VersionInfoResponse{
		AppVersion: version.AppVersion,
		DbVersion:  version.DbVersion,
	})
}
