package taskqueue

import "time"

const (
	TaskTypeOverdueIntake = "overdue_intake"
	TaskTypeLowStock      = "low_stock"
)

type NotificationTask struct {
	TaskID     string    `json:"task_id"`
	TaskType   string    `json:"task_type"`
	ScheduleAt time.Time `json:"-"`

	Reminder *ReminderPayload  `json:"reminder,omitempty"`
	LowStock []LowStockPayload `json:"low_stock,omitempty"`
}

type ReminderPayload struct {
	IntakeID       string    `json:"intake_id"`
	MedicationID   string    `json:"medication_id"`
	MedicationName string    `json:"medication_name"`
	PlannedAt      time.Time `json:"planned_at"`
	PillCount      float64   `json:"pill_count"`
}

type LowStockPayload struct {
	MedicationID   string  `json:"medication_id"`
	MedicationName string  `json:"medication_name"`
	PackageID      string  `json:"package_id"`
	PillsRemaining float64 `json:"pills_remaining"`
	AvgDailyPills  float64 `json:"avg_daily_pills"`
	DaysRemaining  float64 `json:"days_remaining"`
	PurchaseLink   string  `json:"purchase_link,omitempty"`
}

type TaskResponse struct {
	Name         string    `json:"name"`
	ScheduleTime time.Time `json:"schedule_time"`
	CreateTime   time.Time `json:"create_time"`
}

type PrimindTaskRequest struct {
	Task PrimindTask `json:"task"`
}

type PrimindTask struct {
	Name         string             `json:"name,omitempty"`
	HTTPRequest  PrimindHTTPRequest `json:"httpRequest"`
	ScheduleTime string             `json:"scheduleTime,omitempty"`
}

type PrimindHTTPRequest struct {
	Body    string            `json:"body"`
	Headers map[string]string `json:"headers,omitempty"`
}

type PrimindTaskResponse struct {
	Name         string `json:"name"`
	ScheduleTime string `json:"scheduleTime"`
	CreateTime   string `json:"createTime"`
}
