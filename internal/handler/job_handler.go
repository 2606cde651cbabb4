package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/singleflight"

	"github.com/KasumiMercury/primind-intake-ledger/internal/service/lowstock"
	"github.com/KasumiMercury/primind-intake-ledger/internal/service/reminder"
	"github.com/KasumiMercury/primind-intake-ledger/internal/service/schedule"
)

// JobHandler exposes the periodic jobs to an external scheduler. Concurrent
// triggers of the same job share one run.
type JobHandler struct {
	schedule *schedule.Service
	reminder *reminder.Service
	lowStock *lowstock.Service
	group    singleflight.Group
}

func NewJobHandler(scheduleService *schedule.Service, reminderService *reminder.Service, lowStockService *lowstock.Service) *JobHandler {
	return &JobHandler{
		schedule: scheduleService,
		reminder: reminderService,
		lowStock: lowStockService,
	}
}

func (h *JobHandler) HandleGenerate(c *gin.Context) {
	h.run(c, "generate", func(ctx context.Context) (any, error) {
		return h.schedule.Generate(ctx)
	})
}

func (h *JobHandler) HandleRefresh(c *gin.Context) {
	h.run(c, "refresh", func(ctx context.Context) (any, error) {
		return h.schedule.RefreshFuturePlanned(ctx)
	})
}

func (h *JobHandler) HandleReminders(c *gin.Context) {
	h.run(c, "reminders", func(ctx context.Context) (any, error) {
		return h.reminder.Sweep(ctx)
	})
}

func (h *JobHandler) HandleLowStockJob(c *gin.Context) {
	h.run(c, "low-stock", func(ctx context.Context) (any, error) {
		return h.lowStock.RunJob(ctx)
	})
}

// HandleLowStock reports the current forecast without notifying anyone.
func (h *JobHandler) HandleLowStock(c *gin.Context) {
	forecasts, err := h.lowStock.EstimateCurrent(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"forecasts": newLowStockResponse(forecasts)})
}

func (h *JobHandler) run(c *gin.Context, job string, fn func(ctx context.Context) (any, error)) {
	ctx := c.Request.Context()

	result, err, shared := h.group.Do(job, func() (any, error) {
		// A shared run outlives the request that started it.
		return fn(context.WithoutCancel(ctx))
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	slog.InfoContext(ctx, "job completed",
		slog.String("job", job),
		slog.Bool("shared", shared),
	)

	c.JSON(http.StatusOK, result)
}
