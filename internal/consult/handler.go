package consult

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"contract-backend/internal/documents"
	"contract-backend/internal/shared/server/middleware"
	"contract-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the consultation service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches chat routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/chats", h.ask)
	rg.GET("/documents/:id/chats", h.history)
}

type askRequest struct {
	DocumentID string `json:"documentId"`
	Message    string `json:"message"`
}

type messageResponse struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

func (h *Handler) ask(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	result, err := h.Svc.Ask(c.Request.Context(), userID, req.DocumentID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "documentId and message are required", nil)
		case errors.Is(err, documents.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process chat turn", nil)
		}
		return
	}

	respond.OK(c, gin.H{
		"userMessage": messageResponse{ID: result.UserMessage.ID, Text: result.UserMessage.Text},
		"aiMessage":   messageResponse{ID: result.AIMessage.ID, Text: result.AIMessage.Text},
	})
}

func (h *Handler) history(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	documentID := c.Param("id")

	msgs, err := h.Svc.History(c.Request.Context(), userID, documentID)
	if err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load chat history", nil)
		return
	}

	if msgs == nil {
		msgs = []ChatMessage{}
	}
	respond.OK(c, gin.H{
		"documentId": documentID,
		"chats":      msgs,
	})
}
