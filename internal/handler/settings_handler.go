package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-intake-ledger/internal/domain"
	"github.com/KasumiMercury/primind-intake-ledger/internal/service/dose"
	"github.com/KasumiMercury/primind-intake-ledger/internal/service/settings"
)

type SettingsHandler struct {
	settings   *settings.Service
	calculator *dose.Calculator
}

func NewSettingsHandler(settingsService *settings.Service, calculator *dose.Calculator) *SettingsHandler {
	return &SettingsHandler{
		settings:   settingsService,
		calculator: calculator,
	}
}

func (h *SettingsHandler) HandleGet(c *gin.Context) {
	s, err := h.settings.Get(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSettingsResponse(s))
}

func (h *SettingsHandler) HandleUpdate(c *gin.Context) {
	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	s, result, err := h.settings.Update(c.Request.Context(), req.toDomain())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, UpdateSettingsResponse{
		Settings: newSettingsResponse(s),
		Schedule: result,
	})
}

// HandleCalculateDose uses the stored tie rule unless the request names one.
func (h *SettingsHandler) HandleCalculateDose(c *gin.Context) {
	var req DoseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	rule := domain.TieRule(req.TieRule)
	if rule == "" {
		s, err := h.settings.Get(c.Request.Context())
		if err != nil {
			respondServiceError(c, err)
			return
		}
		rule = s.TieRule
	}

	result, err := h.calculator.Calculate(req.TargetDoseMg, req.PillStrengthMg, req.HalfDivisible, rule)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
