package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-intake-ledger/internal/service/medication"
	"github.com/KasumiMercury/primind-intake-ledger/internal/service/purchase"
)

type MedicationHandler struct {
	medications *medication.Service
	purchases   *purchase.Service
}

func NewMedicationHandler(medications *medication.Service, purchases *purchase.Service) *MedicationHandler {
	return &MedicationHandler{
		medications: medications,
		purchases:   purchases,
	}
}

func (h *MedicationHandler) HandleCreate(c *gin.Context) {
	ctx := c.Request.Context()

	var req CreateMedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.medications.Create(ctx, req.toParams())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	slog.InfoContext(ctx, "medication created",
		slog.String("medication_id", result.Medication.ID),
		slog.String("package_id", result.Package.ID),
	)

	c.JSON(http.StatusCreated, CreateMedicationResponse{
		Medication: newMedicationResponse(result.Medication),
		Package:    newPackageResponse(result.Package),
		Schedule:   result.Schedule,
	})
}

func (h *MedicationHandler) HandleSetActive(c *gin.Context) {
	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	med, result, err := h.medications.SetActive(c.Request.Context(), c.Param("id"), *req.Active)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SetActiveResponse{
		Medication: newMedicationResponse(med),
		Schedule:   result,
	})
}

func (h *MedicationHandler) HandlePurchase(c *gin.Context) {
	ctx := c.Request.Context()
	medicationID := c.Param("id")

	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.purchases.ConfirmPackagePurchase(ctx, req.toParams(medicationID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	slog.InfoContext(ctx, "package purchase confirmed",
		slog.String("medication_id", medicationID),
		slog.String("kind", string(result.Kind)),
		slog.String("package_id", result.NewPackage.ID),
	)

	c.JSON(http.StatusCreated, newPurchaseResponse(result))
}
