// Package handlers provides HTTP handlers for the API.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/selectchat/chat-service/internal/api/dto"
	"github.com/selectchat/chat-service/internal/api/middleware"
	"github.com/selectchat/chat-service/internal/domain/errors"
	"github.com/selectchat/chat-service/internal/services/archive"
)

// HistoryHandler serves the read-only transcript archive.
type HistoryHandler struct {
	archive archive.Service
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(archive archive.Service) *HistoryHandler {
	return &HistoryHandler{
		archive: archive,
	}
}

// listQuery holds pagination query parameters.
type listQuery struct {
	Limit  int64 `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset int64 `form:"offset" binding:"omitempty,min=0"`
}

// ListConversations handles GET /history/conversations.
// @Summary List archived conversations
// @Tags History
// @Produce json
// @Param limit query int false "Maximum number of conversations" default(50) minimum(1) maximum(100)
// @Success 200 {object} dto.ConversationsResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /history/conversations [get]
func (h *HistoryHandler) ListConversations(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid query parameters", err.Error()))
		return
	}

	summaries, err := h.archive.ListConversations(c.Request.Context(), q.Limit)
	if err != nil {
		middleware.HandleError(c, errors.NewInternalError("failed to list conversations", err))
		return
	}

	c.JSON(http.StatusOK, dto.ConversationsResponse{Conversations: summaries})
}

// ListMessages handles GET /history/conversations/:conversationId/messages.
// @Summary List an archived transcript
// @Tags History
// @Produce json
// @Param conversationId path string true "Conversation id"
// @Param limit query int false "Maximum number of messages" default(50) minimum(1) maximum(100)
// @Param offset query int false "Offset for pagination" default(0) minimum(0)
// @Success 200 {object} dto.TranscriptResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /history/conversations/{conversationId}/messages [get]
func (h *HistoryHandler) ListMessages(c *gin.Context) {
	conversationID := c.Param("conversationId")

	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid query parameters", err.Error()))
		return
	}
	if q.Limit == 0 {
		q.Limit = archive.DefaultListLimit
	}

	messages, err := h.archive.ListMessages(c.Request.Context(), conversationID, q.Limit, q.Offset)
	if err != nil {
		middleware.HandleError(c, errors.NewInternalError("failed to list transcript", err))
		return
	}

	c.JSON(http.StatusOK, dto.TranscriptResponse{
		ConversationID: conversationID,
		Messages:       messages,
		Total:          int64(len(messages)),
		Limit:          q.Limit,
		Offset:         q.Offset,
	})
}
