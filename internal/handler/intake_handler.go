package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-intake-ledger/internal/service/ledger"
)

type IntakeHandler struct {
	ledger *ledger.Service
}

func NewIntakeHandler(ledgerService *ledger.Service) *IntakeHandler {
	return &IntakeHandler{ledger: ledgerService}
}

// HandleComplete answers 200 for no-ops too; the body tells them apart.
func (h *IntakeHandler) HandleComplete(c *gin.Context) {
	outcome, err := h.ledger.MarkCompleted(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newIntakeOutcomeResponse(outcome))
}

func (h *IntakeHandler) HandleMiss(c *gin.Context) {
	outcome, err := h.ledger.MarkMissed(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newIntakeOutcomeResponse(outcome))
}
