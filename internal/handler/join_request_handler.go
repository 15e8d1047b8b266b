package handler

import (
	"net/http"

	"boardhub/internal/service"

	"github.com/gin-gonic/gin"
)

type JoinRequestHandler struct {
	join *service.JoinService
}

func NewJoinRequestHandler(join *service.JoinService) *JoinRequestHandler {
	return &JoinRequestHandler{join: join}
}

type requestJoinRequest struct {
	Answer string `json:"answer"`
}

type JoinRequestResponse struct {
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	Answer    string `json:"answer"`
	ExpiresAt int64  `json:"expires_at"`
	CreatedAt string `json:"created_at"`
}

// Request files a join request, carrying the answer to the board's question
// when one is configured.
func (h *JoinRequestHandler) Request(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req requestJoinRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	result, err := h.join.RequestJoin(c.Request.Context(), boardID, userID, req.Answer)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// List returns the board's pending join requests. Owner only.
func (h *JoinRequestHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	requests, err := h.join.ListPending(c.Request.Context(), userID, boardID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]JoinRequestResponse, len(requests))
	for i, r := range requests {
		userName := r.User.UserName
		if userName == "" {
			userName = r.UserID.String()
		}
		response[i] = JoinRequestResponse{
			UserID:    r.UserID.String(),
			UserName:  userName,
			Answer:    r.Answer,
			ExpiresAt: r.ExpiresAt,
			CreatedAt: r.CreatedAt.Format(http.TimeFormat),
		}
	}
	c.JSON(http.StatusOK, gin.H{"requests": response})
}

// Approve admits the requester as a member. Owner only.
func (h *JoinRequestHandler) Approve(c *gin.Context) {
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

	if err := h.join.Approve(c.Request.Context(), actorID, boardID, targetID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"approved": true})
}

// Reject drops the pending request. Owner only.
func (h *JoinRequestHandler) Reject(c *gin.Context) {
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

	if err := h.join.Reject(c.Request.Context(), actorID, boardID, targetID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rejected": true})
}
