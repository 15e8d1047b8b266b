package handler

import (
	"net/http"

	"boardhub/internal/service"

	"github.com/gin-gonic/gin"
)

type PermissionHandler struct {
	perms *service.PermissionService
}

func NewPermissionHandler(perms *service.PermissionService) *PermissionHandler {
	return &PermissionHandler{perms: perms}
}

type PermissionResponse struct {
	UserID    string  `json:"user_id"`
	GrantedBy *string `json:"granted_by,omitempty"`
	GrantedAt string  `json:"granted_at"`
}

// Grant delegates a service capability to a user. Owner only.
func (h *PermissionHandler) Grant(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	targetID, ok := parseUUIDParam(c, "user_id")
	if !ok {
		return
	}

	if err := h.perms.Grant(c.Request.Context(), actorID, boardID, c.Param("key"), targetID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"granted": true})
}

// Revoke removes a delegated capability. Owner only.
func (h *PermissionHandler) Revoke(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	targetID, ok := parseUUIDParam(c, "user_id")
	if !ok {
		return
	}

	if err := h.perms.Revoke(c.Request.Context(), actorID, boardID, c.Param("key"), targetID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"revoked": true})
}

// List returns who holds the capability on this board. Owner only.
func (h *PermissionHandler) List(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	perms, err := h.perms.List(c.Request.Context(), actorID, boardID, c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]PermissionResponse, len(perms))
	for i, p := range perms {
		var grantedBy *string
		if p.GrantedBy != nil {
			s := p.GrantedBy.String()
			grantedBy = &s
		}
		response[i] = PermissionResponse{
			UserID:    p.UserID.String(),
			GrantedBy: grantedBy,
			GrantedAt: p.GrantedAt.Format(http.TimeFormat),
		}
	}
	c.JSON(http.StatusOK, response)
}

// Me answers whether the authenticated user currently holds the capability,
// applying the owner/role/edge rule.
func (h *PermissionHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	has, err := h.perms.Check(c.Request.Context(), boardID, userID, c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"has": has})
}
