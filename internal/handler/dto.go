package handler

import (
	"time"

	"github.com/KasumiMercury/primind-intake-ledger/internal/domain"
	"github.com/KasumiMercury/primind-intake-ledger/internal/service/ledger"
	"github.com/KasumiMercury/primind-intake-ledger/internal/service/medication"
	"github.com/KasumiMercury/primind-intake-ledger/internal/service/purchase"
	"github.com/KasumiMercury/primind-intake-ledger/internal/service/schedule"
)

type RecurrenceRequest struct {
	Kind          string   `json:"kind" binding:"required,oneof=ANCHOR_BASED FIXED_INTERVAL"`
	Anchors       []string `json:"anchors"`
	IntervalHours int      `json:"interval_hours" binding:"gte=0,lte=8760"`
	FirstDoseTime string   `json:"first_dose_time"`
}

type DurationRequest struct {
	Kind       string  `json:"kind" binding:"required,oneof=FIXED_DAYS FIXED_PILL_TOTAL REPEATING_COURSE"`
	Days       int     `json:"days" binding:"gte=0"`
	TotalPills float64 `json:"total_pills" binding:"gte=0"`
	TakeDays   int     `json:"take_days" binding:"gte=0"`
	RestDays   int     `json:"rest_days" binding:"gte=0"`
	Cycles     *int    `json:"cycles,omitempty" binding:"omitempty,gte=0"`
}

type PackageRequest struct {
	PillStrengthMg int     `json:"pill_strength_mg" binding:"required,gt=0"`
	HalfDivisible  bool    `json:"half_divisible"`
	PillsInPack    float64 `json:"pills_in_pack" binding:"required,gt=0"`
	PurchaseLink   string  `json:"purchase_link" binding:"omitempty,url"`
	WarnLowStock   bool    `json:"warn_low_stock"`
}

type CreateMedicationRequest struct {
	Name         string            `json:"name" binding:"required"`
	TargetDoseMg int               `json:"target_dose_mg" binding:"required,gt=0"`
	Recurrence   RecurrenceRequest `json:"recurrence" binding:"required"`
	Duration     DurationRequest   `json:"duration" binding:"required"`
	Package      PackageRequest    `json:"package" binding:"required"`
}

func (r CreateMedicationRequest) toParams() medication.CreateParams {
	anchors := make([]domain.Anchor, 0, len(r.Recurrence.Anchors))
	for _, a := range r.Recurrence.Anchors {
		anchors = append(anchors, domain.Anchor(a))
	}

	return medication.CreateParams{
		Name:         r.Name,
		TargetDoseMg: r.TargetDoseMg,
		Recurrence: domain.Recurrence{
			Kind:          domain.RecurrenceKind(r.Recurrence.Kind),
			Anchors:       anchors,
			IntervalHours: r.Recurrence.IntervalHours,
			FirstDoseTime: r.Recurrence.FirstDoseTime,
		},
		Duration: domain.DurationPolicy{
			Kind:       domain.DurationKind(r.Duration.Kind),
			Days:       r.Duration.Days,
			TotalPills: r.Duration.TotalPills,
			TakeDays:   r.Duration.TakeDays,
			RestDays:   r.Duration.RestDays,
			Cycles:     r.Duration.Cycles,
		},
		Package: medication.PackageParams{
			PillStrengthMg: r.Package.PillStrengthMg,
			HalfDivisible:  r.Package.HalfDivisible,
			PillsInPack:    r.Package.PillsInPack,
			PurchaseLink:   r.Package.PurchaseLink,
			WarnLowStock:   r.Package.WarnLowStock,
		},
	}
}

type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

type PurchaseRequest struct {
	OldPillsLeft float64 `json:"old_pills_left"`
	PackageRequest
}

func (r PurchaseRequest) toParams(medicationID string) purchase.Params {
	return purchase.Params{
		MedicationID:   medicationID,
		OldPillsLeft:   r.OldPillsLeft,
		PillStrengthMg: r.PillStrengthMg,
		HalfDivisible:  r.HalfDivisible,
		PillsInPack:    r.PillsInPack,
		PurchaseLink:   r.PurchaseLink,
		WarnLowStock:   r.WarnLowStock,
	}
}

type SettingsRequest struct {
	WakeTime               string `json:"wake_time" binding:"required"`
	BreakfastTime          string `json:"breakfast_time" binding:"required"`
	LunchTime              string `json:"lunch_time" binding:"required"`
	DinnerTime             string `json:"dinner_time" binding:"required"`
	SleepTime              string `json:"sleep_time" binding:"required"`
	TieRule                string `json:"tie_rule" binding:"omitempty,oneof=PREFER_HIGHER PREFER_LOWER"`
	LowStockWarningEnabled bool   `json:"low_stock_warning_enabled"`
	LowStockWarningDays    int    `json:"low_stock_warning_days" binding:"gte=0"`
}

func (r SettingsRequest) toDomain() domain.Settings {
	return domain.Settings{
		WakeTime:               r.WakeTime,
		BreakfastTime:          r.BreakfastTime,
		LunchTime:              r.LunchTime,
		DinnerTime:             r.DinnerTime,
		SleepTime:              r.SleepTime,
		TieRule:                domain.TieRule(r.TieRule),
		LowStockWarningEnabled: r.LowStockWarningEnabled,
		LowStockWarningDays:    r.LowStockWarningDays,
	}
}

type DoseRequest struct {
	TargetDoseMg   int    `json:"target_dose_mg" binding:"required,gt=0"`
	PillStrengthMg int    `json:"pill_strength_mg" binding:"required,gt=0"`
	HalfDivisible  bool   `json:"half_divisible"`
	TieRule        string `json:"tie_rule" binding:"omitempty,oneof=PREFER_HIGHER PREFER_LOWER"`
}

type MedicationResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	TargetDoseMg int       `json:"target_dose_mg"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func newMedicationResponse(m *domain.Medication) MedicationResponse {
	return MedicationResponse{
		ID:           m.ID,
		Name:         m.Name,
		TargetDoseMg: m.TargetDoseMg,
		Active:       m.Active,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

type PackageResponse struct {
	ID             string  `json:"id"`
	MedicationID   string  `json:"medication_id"`
	PillStrengthMg int     `json:"pill_strength_mg"`
	HalfDivisible  bool    `json:"half_divisible"`
	PillsTotal     float64 `json:"pills_total"`
	PillsRemaining float64 `json:"pills_remaining"`
	IsCurrent      bool    `json:"is_current"`
	WarnLowStock   bool    `json:"warn_low_stock"`
	PurchaseLink   string  `json:"purchase_link,omitempty"`
}

func newPackageResponse(p *domain.PillPackage) *PackageResponse {
	if p == nil {
		return nil
	}
	return &PackageResponse{
		ID:             p.ID,
		MedicationID:   p.MedicationID,
		PillStrengthMg: p.PillStrengthMg,
		HalfDivisible:  p.HalfDivisible,
		PillsTotal:     p.PillsTotal,
		PillsRemaining: p.PillsRemaining,
		IsCurrent:      p.IsCurrent,
		WarnLowStock:   p.WarnLowStock,
		PurchaseLink:   p.PurchaseLink,
	}
}

type CreateMedicationResponse struct {
	Medication MedicationResponse `json:"medication"`
	Package    *PackageResponse   `json:"package"`
	Schedule   *schedule.Result   `json:"schedule,omitempty"`
}

type SetActiveResponse struct {
	Medication MedicationResponse `json:"medication"`
	Schedule   *schedule.Result   `json:"schedule,omitempty"`
}

type TransitionResponse struct {
	ID               string  `json:"id"`
	OldPackageID     string  `json:"old_package_id"`
	NewPackageID     string  `json:"new_package_id"`
	OldPillsLeft     float64 `json:"old_pills_left"`
	OldPillsConsumed float64 `json:"old_pills_consumed"`
}

type PurchaseResponse struct {
	Kind         purchase.Kind       `json:"kind"`
	NewPackage   *PackageResponse    `json:"new_package"`
	OldPackageID string              `json:"old_package_id,omitempty"`
	Transition   *TransitionResponse `json:"transition,omitempty"`
	Schedule     *schedule.Result    `json:"schedule,omitempty"`
}

func newPurchaseResponse(r *purchase.Result) PurchaseResponse {
	resp := PurchaseResponse{
		Kind:         r.Kind,
		NewPackage:   newPackageResponse(r.NewPackage),
		OldPackageID: r.OldPackageID,
		Schedule:     r.Schedule,
	}
	if t := r.Transition; t != nil {
		resp.Transition = &TransitionResponse{
			ID:               t.ID,
			OldPackageID:     t.OldPackageID,
			NewPackageID:     t.NewPackageID,
			OldPillsLeft:     t.OldPillsLeft,
			OldPillsConsumed: t.OldPillsConsumed,
		}
	}
	return resp
}

type IntakeOutcomeResponse struct {
	Kind           ledger.OutcomeKind  `json:"kind"`
	Reason         ledger.NoopReason   `json:"reason,omitempty"`
	IntakeID       string              `json:"intake_id"`
	Status         domain.IntakeStatus `json:"status,omitempty"`
	PackageID      string              `json:"package_id,omitempty"`
	DebitedPills   float64             `json:"debited_pills,omitempty"`
	FromOldPackage bool                `json:"from_old_package,omitempty"`
}

func newIntakeOutcomeResponse(o ledger.Outcome) IntakeOutcomeResponse {
	return IntakeOutcomeResponse{
		Kind:           o.Kind,
		Reason:         o.Reason,
		IntakeID:       o.IntakeID,
		Status:         o.Status,
		PackageID:      o.PackageID,
		DebitedPills:   o.DebitedPills,
		FromOldPackage: o.FromOldPackage,
	}
}

type SettingsResponse struct {
	WakeTime               string         `json:"wake_time"`
	BreakfastTime          string         `json:"breakfast_time"`
	LunchTime              string         `json:"lunch_time"`
	DinnerTime             string         `json:"dinner_time"`
	SleepTime              string         `json:"sleep_time"`
	TieRule                domain.TieRule `json:"tie_rule"`
	LowStockWarningEnabled bool           `json:"low_stock_warning_enabled"`
	LowStockWarningDays    int            `json:"low_stock_warning_days"`
	UpdatedAt              time.Time      `json:"updated_at"`
}

func newSettingsResponse(s *domain.Settings) SettingsResponse {
	return SettingsResponse{
		WakeTime:               s.WakeTime,
		BreakfastTime:          s.BreakfastTime,
		LunchTime:              s.LunchTime,
		DinnerTime:             s.DinnerTime,
		SleepTime:              s.SleepTime,
		TieRule:                s.TieRule,
		LowStockWarningEnabled: s.LowStockWarningEnabled,
		LowStockWarningDays:    s.LowStockWarningDays,
		UpdatedAt:              s.UpdatedAt,
	}
}

type UpdateSettingsResponse struct {
	Settings SettingsResponse `json:"settings"`
	Schedule *schedule.Result `json:"schedule,omitempty"`
}

type LowStockForecastResponse struct {
	MedicationID   string  `json:"medication_id"`
	MedicationName string  `json:"medication_name"`
	PackageID      string  `json:"package_id"`
	PillsRemaining float64 `json:"pills_remaining"`
	AvgDailyPills  float64 `json:"avg_daily_pills"`
	DaysRemaining  float64 `json:"days_remaining"`
	PurchaseLink   string  `json:"purchase_link,omitempty"`
}

func newLowStockResponse(forecasts []domain.LowStockForecast) []LowStockForecastResponse {
	out := make([]LowStockForecastResponse, 0, len(forecasts))
	for _, f := range forecasts {
		out = append(out, LowStockForecastResponse(f))
	}
	return out
}
