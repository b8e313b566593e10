// Package handlers provides HTTP handlers for the API.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/selectchat/chat-service/internal/api/dto"
	"github.com/selectchat/chat-service/internal/api/middleware"
	"github.com/selectchat/chat-service/internal/api/sse"
	"github.com/selectchat/chat-service/internal/domain/errors"
	"github.com/selectchat/chat-service/internal/services/chat"
	"github.com/selectchat/chat-service/internal/services/settings"
)

// ConversationHandler exposes the conversation pipeline over HTTP. Turns run
// asynchronously; callers observe progress via the snapshot endpoint or the
// SSE stream.
type ConversationHandler struct {
	store        *chat.Store
	orchestrator *chat.Orchestrator
	settings     settings.Service
}

// NewConversationHandler creates a new ConversationHandler.
func NewConversationHandler(store *chat.Store, orchestrator *chat.Orchestrator, settings settings.Service) *ConversationHandler {
	return &ConversationHandler{
		store:        store,
		orchestrator: orchestrator,
		settings:     settings,
	}
}

// Open handles POST /conversation/open.
// @Summary Open a conversation
// @Description Resets the conversation, selects a feature and optionally submits initial content
// @Tags Conversation
// @Accept json
// @Produce json
// @Param request body dto.OpenConversationRequest true "Feature and initial content"
// @Success 202 {object} dto.AcceptedResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /conversation/open [post]
func (h *ConversationHandler) Open(c *gin.Context) {
	var req dto.OpenConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	if !h.store.TryBeginTurn() {
		middleware.HandleError(c, errors.NewPipelineBusyError())
		return
	}

	feature, ok := h.settings.Feature(c.Request.Context(), req.FeatureID)
	if !ok {
		h.store.EndTurn()
		middleware.HandleError(c, errors.NewNotFoundError("feature", req.FeatureID))
		return
	}

	h.store.Reset(feature)

	if req.Content == "" {
		h.store.EndTurn()
		c.JSON(http.StatusAccepted, dto.AcceptedResponse{Status: "accepted"})
		return
	}

	h.runTurn(func(ctx context.Context) {
		h.orchestrator.Submit(ctx, req.Content, false, false)
	})

	c.JSON(http.StatusAccepted, dto.AcceptedResponse{Status: "accepted"})
}

// SendMessage handles POST /conversation/messages.
// @Summary Submit a message
// @Description Appends a message to the conversation and starts response generation
// @Tags Conversation
// @Accept json
// @Produce json
// @Param request body dto.SendMessageRequest true "Message content"
// @Success 202 {object} dto.AcceptedResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /conversation/messages [post]
func (h *ConversationHandler) SendMessage(c *gin.Context) {
	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	if !h.store.TryBeginTurn() {
		middleware.HandleError(c, errors.NewPipelineBusyError())
		return
	}

	h.runTurn(func(ctx context.Context) {
		h.orchestrator.Submit(ctx, req.Content, req.AsAssistant, false)
	})

	c.JSON(http.StatusAccepted, dto.AcceptedResponse{Status: "accepted"})
}

// GetConversation handles GET /conversation.
// @Summary Conversation snapshot
// @Description Returns the full conversation state
// @Tags Conversation
// @Produce json
// @Success 200 {object} chat.Snapshot
// @Router /conversation [get]
func (h *ConversationHandler) GetConversation(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Snapshot())
}

// Stream handles GET /conversation/stream. It pushes a snapshot event on
// every store change until the client disconnects.
// @Summary Conversation event stream
// @Description Streams conversation snapshots as Server-Sent Events
// @Tags Conversation
// @Produce text/event-stream
// @Success 200 {string} string "SSE stream"
// @Router /conversation/stream [get]
func (h *ConversationHandler) Stream(c *gin.Context) {
	writer, err := sse.NewWriter(c.Writer)
	if err != nil {
		middleware.HandleError(c, errors.NewInternalError("streaming not supported", err))
		return
	}

	snapshots, cancel := h.store.Subscribe()
	defer cancel()

	if err := writer.WriteStreamStart(h.store.Feature().ID); err != nil {
		return
	}
	if err := writer.WriteSnapshot(h.store.Snapshot()); err != nil {
		return
	}

	done := c.Request.Context().Done()
	for {
		select {
		case <-done:
			return
		case snapshot, ok := <-snapshots:
			if !ok {
				writer.WriteStreamEnd()
				return
			}
			if err := writer.WriteSnapshot(snapshot); err != nil {
				return
			}
		}
	}
}

// Regenerate handles POST /conversation/regenerate.
// @Summary Regenerate a response
// @Description Discards an assistant reply and replays the preceding user turn
// @Tags Conversation
// @Accept json
// @Produce json
// @Param request body dto.RegenerateRequest true "Assistant message id"
// @Success 202 {object} dto.AcceptedResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /conversation/regenerate [post]
func (h *ConversationHandler) Regenerate(c *gin.Context) {
	var req dto.RegenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	if !h.store.TryBeginTurn() {
		middleware.HandleError(c, errors.NewPipelineBusyError())
		return
	}

	h.runTurn(func(ctx context.Context) {
		h.orchestrator.Regenerate(ctx, req.MessageID)
	})

	c.JSON(http.StatusAccepted, dto.AcceptedResponse{Status: "accepted"})
}

// EditMessage handles PUT /conversation/messages/:messageId.
// @Summary Edit a message
// @Description Rewrites the content of an existing message
// @Tags Conversation
// @Accept json
// @Produce json
// @Param messageId path string true "Message id"
// @Param request body dto.EditMessageRequest true "Replacement content"
// @Success 200 {object} chat.Snapshot
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /conversation/messages/{messageId} [put]
func (h *ConversationHandler) EditMessage(c *gin.Context) {
	messageID := c.Param("messageId")

	var req dto.EditMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	if !h.messageExists(messageID) {
		middleware.HandleError(c, errors.NewNotFoundError("message", messageID))
		return
	}

	h.orchestrator.EditMessage(messageID, req.Content)
	c.JSON(http.StatusOK, h.store.Snapshot())
}

// DeleteMessage handles DELETE /conversation/messages/:messageId.
// @Summary Delete a message
// @Description Removes a single message from the conversation
// @Tags Conversation
// @Produce json
// @Param messageId path string true "Message id"
// @Success 200 {object} chat.Snapshot
// @Failure 404 {object} dto.ErrorResponse
// @Router /conversation/messages/{messageId} [delete]
func (h *ConversationHandler) DeleteMessage(c *gin.Context) {
	messageID := c.Param("messageId")

	if !h.messageExists(messageID) {
		middleware.HandleError(c, errors.NewNotFoundError("message", messageID))
		return
	}

	h.orchestrator.DeleteMessage(messageID)
	c.JSON(http.StatusOK, h.store.Snapshot())
}

// SwitchFeature handles PUT /conversation/feature. A feature switch is only
// allowed before the conversation has settled content.
// @Summary Switch the conversation feature
// @Description Selects the feature context for subsequent turns
// @Tags Conversation
// @Accept json
// @Produce json
// @Param request body dto.SwitchFeatureRequest true "Feature id"
// @Success 200 {object} chat.Snapshot
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /conversation/feature [put]
func (h *ConversationHandler) SwitchFeature(c *gin.Context) {
	var req dto.SwitchFeatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	for _, msg := range h.store.Messages() {
		if msg.Settled() {
			middleware.HandleError(c, errors.NewConflictError("conversation already started", "open a new conversation to switch features"))
			return
		}
	}

	feature, ok := h.settings.Feature(c.Request.Context(), req.FeatureID)
	if !ok {
		middleware.HandleError(c, errors.NewNotFoundError("feature", req.FeatureID))
		return
	}

	h.store.SetFeature(feature)
	c.JSON(http.StatusOK, h.store.Snapshot())
}

// GetSuggestions handles GET /conversation/suggestions.
// @Summary Suggested follow-up questions
// @Tags Conversation
// @Produce json
// @Success 200 {object} dto.SuggestionsResponse
// @Router /conversation/suggestions [get]
func (h *ConversationHandler) GetSuggestions(c *gin.Context) {
	c.JSON(http.StatusOK, dto.SuggestionsResponse{
		SuggestedQuestions: h.store.SuggestedQuestions(),
	})
}

// runTurn executes one pipeline turn detached from the request lifecycle.
// The request returns immediately; the turn must not die with the caller's
// context. The caller has already claimed the pipeline via TryBeginTurn;
// the claim is released here, panic or not.
func (h *ConversationHandler) runTurn(turn func(ctx context.Context)) {
	go func() {
		defer h.store.EndTurn()
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Msg("conversation turn panicked")
			}
		}()
		turn(context.Background())
	}()
}

func (h *ConversationHandler) messageExists(id string) bool {
	for _, msg := range h.store.Messages() {
		if msg.ID == id {
			return true
		}
	}
	return false
}
