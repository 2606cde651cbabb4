package handler

import "github.com/gin-gonic/gin"

type Handlers struct {
	Medication *MedicationHandler
	Intake     *IntakeHandler
	Settings   *SettingsHandler
	Job        *JobHandler
}

// Register mounts the ledger API on an /api/v1 group.
func Register(v1 *gin.RouterGroup, h Handlers) {
	medications := v1.Group("/medications")
	{
		medications.POST("", h.Medication.HandleCreate)
		medications.POST("/:id/active", h.Medication.HandleSetActive)
		medications.POST("/:id/purchases", h.Medication.HandlePurchase)
	}

	intakes := v1.Group("/intakes")
	{
		intakes.POST("/:id/complete", h.Intake.HandleComplete)
		intakes.POST("/:id/miss", h.Intake.HandleMiss)
	}

	v1.GET("/settings", h.Settings.HandleGet)
	v1.PUT("/settings", h.Settings.HandleUpdate)
	v1.POST("/dose/calculate", h.Settings.HandleCalculateDose)
	v1.GET("/low-stock", h.Job.HandleLowStock)

	jobs := v1.Group("/jobs")
	{
		jobs.POST("/generate", h.Job.HandleGenerate)
		jobs.POST("/refresh", h.Job.HandleRefresh)
		jobs.POST("/reminders", h.Job.HandleReminders)
		jobs.POST("/low-stock", h.Job.HandleLowStockJob)
	}
}
