package handler

import (
	"encoding/json"
	"net/http"

	"boardhub/internal/service"

	"github.com/gin-gonic/gin"
)

// ServiceHandler covers the service catalog and per-board service
// enablement/configuration.
type ServiceHandler struct {
	boards *service.BoardService
}

func NewServiceHandler(boards *service.BoardService) *ServiceHandler {
	return &ServiceHandler{boards: boards}
}

type enableServiceRequest struct {
	Config json.RawMessage `json:"config"`
}

// Catalog lists the available service definitions.
func (h *ServiceHandler) Catalog(c *gin.Context) {
	services, err := h.boards.ListAvailableServices(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

// Enable turns a service on for a board, or replaces its configuration.
func (h *ServiceHandler) Enable(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req enableServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := h.boards.EnableService(c.Request.Context(), userID, boardID, c.Param("key"), req.Config); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// Disable turns a service off and cascades its cleanup.
func (h *ServiceHandler) Disable(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.boards.DisableService(c.Request.Context(), userID, boardID, c.Param("key")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"disabled": true})
}

// Settings lists the board's service settings. Owner only.
func (h *ServiceHandler) Settings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	settings, err := h.boards.ListSettings(c.Request.Context(), userID, boardID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
