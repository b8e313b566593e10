// Package handlers provides HTTP handlers for the API.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/selectchat/chat-service/internal/api/dto"
	"github.com/selectchat/chat-service/internal/api/middleware"
	"github.com/selectchat/chat-service/internal/domain/errors"
	"github.com/selectchat/chat-service/internal/services/settings"
)

// SettingsHandler exposes the persisted settings: feature catalog, provider
// configurations and provider selection.
type SettingsHandler struct {
	settings settings.Service
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settings settings.Service) *SettingsHandler {
	return &SettingsHandler{
		settings: settings,
	}
}

// GetFeatures handles GET /settings/features.
// @Summary Feature catalog
// @Tags Settings
// @Produce json
// @Success 200 {object} dto.FeaturesResponse
// @Router /settings/features [get]
func (h *SettingsHandler) GetFeatures(c *gin.Context) {
	ctx := c.Request.Context()
	c.JSON(http.StatusOK, dto.FeaturesResponse{
		Features:         h.settings.Features(ctx),
		DefaultFeatureID: h.settings.DefaultFeatureID(ctx),
	})
}

// SaveFeatures handles PUT /settings/features.
// @Summary Replace the feature catalog
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body dto.SaveFeaturesRequest true "Feature catalog"
// @Success 200 {object} dto.FeaturesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /settings/features [put]
func (h *SettingsHandler) SaveFeatures(c *gin.Context) {
	var req dto.SaveFeaturesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	ctx := c.Request.Context()
	if err := h.settings.SaveFeatures(ctx, req.Features); err != nil {
		middleware.HandleError(c, errors.NewInternalError("failed to save features", err))
		return
	}

	c.JSON(http.StatusOK, dto.FeaturesResponse{
		Features:         h.settings.Features(ctx),
		DefaultFeatureID: h.settings.DefaultFeatureID(ctx),
	})
}

// SetDefaultFeature handles PUT /settings/features/default.
// @Summary Set the default feature
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body dto.SetDefaultFeatureRequest true "Feature id"
// @Success 200 {object} dto.FeaturesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /settings/features/default [put]
func (h *SettingsHandler) SetDefaultFeature(c *gin.Context) {
	var req dto.SetDefaultFeatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	ctx := c.Request.Context()
	if _, ok := h.settings.Feature(ctx, req.FeatureID); !ok {
		middleware.HandleError(c, errors.NewNotFoundError("feature", req.FeatureID))
		return
	}

	if err := h.settings.SetDefaultFeatureID(ctx, req.FeatureID); err != nil {
		middleware.HandleError(c, errors.NewInternalError("failed to set default feature", err))
		return
	}

	c.JSON(http.StatusOK, dto.FeaturesResponse{
		Features:         h.settings.Features(ctx),
		DefaultFeatureID: h.settings.DefaultFeatureID(ctx),
	})
}

// GetProviders handles GET /settings/providers.
// @Summary Provider configurations
// @Tags Settings
// @Produce json
// @Success 200 {object} dto.ProvidersResponse
// @Router /settings/providers [get]
func (h *SettingsHandler) GetProviders(c *gin.Context) {
	ctx := c.Request.Context()
	chatProvider, reasoningProvider := h.settings.Selection(ctx)
	c.JSON(http.StatusOK, dto.ProvidersResponse{
		Providers:         h.settings.Providers(ctx),
		ChatProvider:      chatProvider,
		ReasoningProvider: reasoningProvider,
	})
}

// SaveProviders handles PUT /settings/providers.
// @Summary Replace the provider configurations
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body dto.SaveProvidersRequest true "Provider map"
// @Success 200 {object} dto.ProvidersResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /settings/providers [put]
func (h *SettingsHandler) SaveProviders(c *gin.Context) {
	var req dto.SaveProvidersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	ctx := c.Request.Context()
	if err := h.settings.SaveProviders(ctx, req.Providers); err != nil {
		middleware.HandleError(c, errors.NewInternalError("failed to save providers", err))
		return
	}

	chatProvider, reasoningProvider := h.settings.Selection(ctx)
	c.JSON(http.StatusOK, dto.ProvidersResponse{
		Providers:         h.settings.Providers(ctx),
		ChatProvider:      chatProvider,
		ReasoningProvider: reasoningProvider,
	})
}

// SetProviderSelection handles PUT /settings/providers/selection.
// @Summary Select the active providers
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body dto.SetProviderSelectionRequest true "Provider names"
// @Success 200 {object} dto.ProvidersResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /settings/providers/selection [put]
func (h *SettingsHandler) SetProviderSelection(c *gin.Context) {
	var req dto.SetProviderSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	ctx := c.Request.Context()
	providers := h.settings.Providers(ctx)
	if _, ok := providers[req.ChatProvider]; !ok {
		middleware.HandleError(c, errors.NewNotFoundError("provider", req.ChatProvider))
		return
	}
	if _, ok := providers[req.ReasoningProvider]; !ok {
		middleware.HandleError(c, errors.NewNotFoundError("provider", req.ReasoningProvider))
		return
	}

	if err := h.settings.SetSelection(ctx, req.ChatProvider, req.ReasoningProvider); err != nil {
		middleware.HandleError(c, errors.NewInternalError("failed to set provider selection", err))
		return
	}

	chatProvider, reasoningProvider := h.settings.Selection(ctx)
	c.JSON(http.StatusOK, dto.ProvidersResponse{
		Providers:         providers,
		ChatProvider:      chatProvider,
		ReasoningProvider: reasoningProvider,
	})
}
