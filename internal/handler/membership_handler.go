package handler

import (
	"net/http"

	"boardhub/internal/model"
	"boardhub/internal/service"

	"github.com/gin-gonic/gin"
)

type MembershipHandler struct {
	memberships *service.MembershipService
	join        *service.JoinService
}

func NewMembershipHandler(memberships *service.MembershipService, join *service.JoinService) *MembershipHandler {
	return &MembershipHandler{memberships: memberships, join: join}
}

type updateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=member manager"`
}

type MemberResponse struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	Role     string `json:"role"`
	JoinedAt string `json:"joined_at"`
}

type MembershipResponse struct {
	BoardID string `json:"board_id"`
	Role    string `json:"role"`
}

// Join attempts to join a board directly; on approval-gated boards it files
// a join request instead.
func (h *MembershipHandler) Join(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.join.Join(c.Request.Context(), boardID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// MyMemberships lists the authenticated user's memberships across boards.
func (h *MembershipHandler) MyMemberships(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	memberships, err := h.memberships.ListMine(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]MembershipResponse, len(memberships))
	for i, m := range memberships {
		response[i] = MembershipResponse{
			BoardID: m.BoardID.String(),
			Role:    m.Role,
		}
	}
	c.JSON(http.StatusOK, gin.H{"memberships": response})
}

// ListMembers lists board members with the role given in ?role=.
func (h *MembershipHandler) ListMembers(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	members, err := h.memberships.ListMembers(c.Request.Context(), userID, boardID, c.Query("role"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]MemberResponse, len(members))
	for i, m := range members {
		response[i] = toMemberResponse(m)
	}
	c.JSON(http.StatusOK, gin.H{"members": response})
}

// SearchMembers finds board members whose user name matches :username.
func (h *MembershipHandler) SearchMembers(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	members, err := h.memberships.SearchMembers(c.Request.Context(), userID, boardID, c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]MemberResponse, len(members))
	for i, m := range members {
		response[i] = toMemberResponse(m)
	}
	c.JSON(http.StatusOK, gin.H{"members": response})
}

// UpdateRole promotes or demotes a member. Owner only.
func (h *MembershipHandler) UpdateRole(c *gin.Context) {
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

	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := h.memberships.UpdateRole(c.Request.Context(), actorID, boardID, targetID, req.Role); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

func toMemberResponse(m model.Membership) MemberResponse {
	userName := m.User.UserName
	if userName == "" {
		userName = m.UserID.String()
	}
	return MemberResponse{
		UserID:   m.UserID.String(),
		UserName: userName,
		Role:     m.Role,
		JoinedAt: m.JoinedAt.Format(http.TimeFormat),
	}
}
