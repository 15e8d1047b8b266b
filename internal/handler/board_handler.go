package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"boardhub/internal/model"
	"boardhub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BoardHandler struct {
	boards *service.BoardService
}

func NewBoardHandler(boards *service.BoardService) *BoardHandler {
	return &BoardHandler{boards: boards}
}

type CreateBoardRequest struct {
	Name            string                     `json:"name" binding:"required"`
	EnabledServices []string                   `json:"enabled_services"`
	ServiceSettings map[string]json.RawMessage `json:"service_settings"`
}

type UpdateBoardRequest struct {
	Name            *string   `json:"name"`
	EnabledServices *[]string `json:"enabled_services"`
}

type BoardResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	OwnerID         string   `json:"owner_id"`
	EnabledServices []string `json:"enabled_services"`
	CreatedAt       string   `json:"created_at"`
}

func toBoardResponse(b *model.Board) BoardResponse {
	services := b.EnabledServices
	if services == nil {
		services = []string{}
	}
	return BoardResponse{
		ID:              b.ID.String(),
		Name:            b.Name,
		OwnerID:         b.OwnerID.String(),
		EnabledServices: services,
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
	}
}

func toBoardResponses(boards []model.Board) []BoardResponse {
	response := make([]BoardResponse, len(boards))
	for i := range boards {
		response[i] = toBoardResponse(&boards[i])
	}
	return response
}

// Create creates a new board owned by the authenticated user.
func (h *BoardHandler) Create(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	board, err := h.boards.Create(c.Request.Context(), ownerID, req.Name, req.EnabledServices, req.ServiceSettings)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBoardResponse(board))
}

// List returns all boards, or the boards of one owner with ?owner_id=.
func (h *BoardHandler) List(c *gin.Context) {
	if ownerParam := c.Query("owner_id"); ownerParam != "" {
		ownerID, err := uuid.Parse(ownerParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid owner_id format"})
			return
		}
		boards, err := h.boards.ListByOwner(c.Request.Context(), ownerID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toBoardResponses(boards))
		return
	}

	boards, err := h.boards.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBoardResponses(boards))
}

// My returns boards the user owns or manages.
func (h *BoardHandler) My(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boards, err := h.boards.MyBoards(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBoardResponses(boards))
}

func (h *BoardHandler) GetByID(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	boardID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	board, err := h.boards.Get(c.Request.Context(), boardID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBoardResponse(board))
}

// Update renames the board and/or replaces its enabled-service set. Owner
// only.
func (h *BoardHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	board, err := h.boards.Update(c.Request.Context(), userID, boardID, service.BoardPatch{
		Name:            req.Name,
		EnabledServices: req.EnabledServices,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBoardResponse(board))
}
