package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-intake-ledger/internal/domain"
	"github.com/KasumiMercury/primind-intake-ledger/internal/infra/writerlock"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func respondError(c *gin.Context, status int, errType, message string) {
	c.JSON(status, ErrorResponse{
		Error:   errType,
		Message: message,
	})
}

func respondBindError(c *gin.Context, err error) {
	slog.WarnContext(c.Request.Context(), "request validation failed",
		slog.String("error", err.Error()),
		slog.String("path", c.Request.URL.Path),
	)
	respondError(c, http.StatusBadRequest, "validation_error", err.Error())
}

// respondServiceError maps service sentinels to HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()
	_ = c.Error(err)

	switch {
	case errors.Is(err, domain.ErrMedicationNotFound),
		errors.Is(err, domain.ErrPackageNotFound),
		errors.Is(err, domain.ErrIntakeNotFound):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrInvalidMedication),
		errors.Is(err, domain.ErrInvalidPurchase),
		errors.Is(err, domain.ErrInvalidSettings),
		errors.Is(err, domain.ErrInvalidDoseInput):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, domain.ErrCurrentPackageConflict):
		respondError(c, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, writerlock.ErrNotAcquired):
		respondError(c, http.StatusServiceUnavailable, "busy", "another writer holds the ledger lock, retry later")
	default:
		slog.ErrorContext(ctx, "request processing failed",
			slog.String("path", c.Request.URL.Path),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", "failed to process request")
	}
}
