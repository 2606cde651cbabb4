package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/KasumiMercury/primind-intake-ledger/internal/domain"
)

type repository struct {
	db *gorm.DB
}

var forUpdate = clause.Locking{Strength: "UPDATE"}

func (r *repository) ListActiveMedications(ctx context.Context) ([]*domain.Medication, error) {
	var rows []medicationModel
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("created_at, id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Medication, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

func (r *repository) GetMedication(ctx context.Context, id string) (*domain.Medication, error) {
	var row medicationModel
	err := r.db.WithContext(ctx).
		Clauses(forUpdate).
		Where("id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, notFound(err, domain.ErrMedicationNotFound)
	}
	return row.toDomain(), nil
}

func (r *repository) InsertMedication(ctx context.Context, medication *domain.Medication) error {
	return r.db.WithContext(ctx).Create(toMedicationModel(medication)).Error
}

func (r *repository) UpdateMedication(ctx context.Context, medication *domain.Medication) error {
	return r.update(ctx, toMedicationModel(medication), medication.ID, domain.ErrMedicationNotFound)
}

func (r *repository) GetPackage(ctx context.Context, id string) (*domain.PillPackage, error) {
	var row packageModel
	if err := r.db.WithContext(ctx).Clauses(forUpdate).Where("id = ?", id).Take(&row).Error; err != nil {
		return nil, notFound(err, domain.ErrPackageNotFound)
	}
	return row.toDomain(), nil
}

func (r *repository) GetCurrentPackage(ctx context.Context, medicationID string) (*domain.PillPackage, error) {
	var row packageModel
	err := r.db.WithContext(ctx).
		Clauses(forUpdate).
		Where("medication_id = ? AND is_current = ?", medicationID, true).
		Order("created_at DESC").
		Take(&row).Error
	if err != nil {
		return nil, notFound(err, domain.ErrPackageNotFound)
	}
	return row.toDomain(), nil
}

func (r *repository) ListCurrentPackages(ctx context.Context) ([]*domain.PillPackage, error) {
	var rows []packageModel
	err := r.db.WithContext(ctx).
		Where("is_current = ?", true).
		Order("medication_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*domain.PillPackage, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

func (r *repository) InsertPackage(ctx context.Context, pkg *domain.PillPackage) error {
	err := r.db.WithContext(ctx).Create(toPackageModel(pkg)).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrCurrentPackageConflict
	}
	return err
}

func (r *repository) UpdatePackage(ctx context.Context, pkg *domain.PillPackage) error {
	return r.update(ctx, toPackageModel(pkg), pkg.ID, domain.ErrPackageNotFound)
}

func (r *repository) GetTransition(ctx context.Context, medicationID string) (*domain.PackageTransition, error) {
	var row transitionModel
	err := r.db.WithContext(ctx).
		Clauses(forUpdate).
		Where("medication_id = ?", medicationID).
		Take(&row).Error
	if err != nil {
		return nil, notFound(err, domain.ErrTransitionNotFound)
	}
	return row.toDomain(), nil
}

func (r *repository) UpsertTransition(ctx context.Context, transition *domain.PackageTransition) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "medication_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"id", "old_package_id", "new_package_id", "old_pills_left", "old_pills_consumed", "created_at"}),
		}).
		Create(toTransitionModel(transition)).Error
}

func (r *repository) GetIntake(ctx context.Context, id string) (*domain.Intake, error) {
	var row intakeModel
	if err := r.db.WithContext(ctx).Clauses(forUpdate).Where("id = ?", id).Take(&row).Error; err != nil {
		return nil, notFound(err, domain.ErrIntakeNotFound)
	}
	return row.toDomain(), nil
}

func (r *repository) InsertIntakes(ctx context.Context, intakes []*domain.Intake) (int, error) {
	if len(intakes) == 0 {
		return 0, nil
	}

	rows := make([]*intakeModel, 0, len(intakes))
	for _, i := range intakes {
		rows = append(rows, toIntakeModel(i))
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "medication_id"}, {Name: "planned_at"}},
			DoNothing: true,
		}).
		Create(&rows)
	if result.Error != nil {
		return 0, result.Error
	}

	return int(result.RowsAffected), nil
}

func (r *repository) UpdateIntake(ctx context.Context, intake *domain.Intake) error {
	return r.update(ctx, toIntakeModel(intake), intake.ID, domain.ErrIntakeNotFound)
}

func (r *repository) PlannedTimestamps(ctx context.Context, medicationID string, from, to time.Time) ([]time.Time, error) {
	var out []time.Time
	err := r.db.WithContext(ctx).
		Model(&intakeModel{}).
		Where("medication_id = ? AND planned_at BETWEEN ? AND ?", medicationID, from.UTC(), to.UTC()).
		Order("planned_at").
		Pluck("planned_at", &out).Error
	return out, err
}

func (r *repository) SumPlannedPills(ctx context.Context, medicationID string) (float64, error) {
	var sum float64
	err := r.db.WithContext(ctx).
		Model(&intakeModel{}).
		Select("COALESCE(SUM(pill_count), 0)").
		Where("medication_id = ?", medicationID).
		Scan(&sum).Error
	return sum, err
}

func (r *repository) ListPlannedIntakes(ctx context.Context, medicationID string, from, to time.Time) ([]*domain.Intake, error) {
	return r.findIntakes(r.db.WithContext(ctx).
		Where("medication_id = ? AND status = ? AND planned_at BETWEEN ? AND ?",
			medicationID, string(domain.IntakePlanned), from.UTC(), to.UTC()))
}

func (r *repository) ListPlannedBetween(ctx context.Context, from, to time.Time) ([]*domain.Intake, error) {
	return r.findIntakes(r.db.WithContext(ctx).
		Where("status = ? AND planned_at >= ? AND planned_at < ?",
			string(domain.IntakePlanned), from.UTC(), to.UTC()))
}

func (r *repository) NextIntake(ctx context.Context, medicationID string, after time.Time) (*domain.Intake, error) {
	var row intakeModel
	err := r.db.WithContext(ctx).
		Where("medication_id = ? AND planned_at > ?", medicationID, after.UTC()).
		Order("planned_at, id").
		Take(&row).Error
	if err != nil {
		return nil, notFound(err, domain.ErrIntakeNotFound)
	}
	return row.toDomain(), nil
}

func (r *repository) DeletePlannedFrom(ctx context.Context, from time.Time) (int, error) {
	result := r.db.WithContext(ctx).
		Where("status = ? AND planned_at >= ?", string(domain.IntakePlanned), from.UTC()).
		Delete(&intakeModel{})
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}

func (r *repository) GetSettings(ctx context.Context) (*domain.Settings, error) {
	var row settingsModel
	if err := r.db.WithContext(ctx).Where("id = ?", settingsRowID).Take(&row).Error; err != nil {
		return nil, notFound(err, domain.ErrSettingsNotFound)
	}
	return row.toDomain(), nil
}

func (r *repository) UpsertSettings(ctx context.Context, settings *domain.Settings) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(toSettingsModel(settings)).Error
}

func (r *repository) findIntakes(q *gorm.DB) ([]*domain.Intake, error) {
	var rows []intakeModel
	if err := q.Order("planned_at, id").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]*domain.Intake, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

// update writes every column of model, returning missing when no row has id.
func (r *repository) update(ctx context.Context, model any, id string, missing error) error {
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ?", id).
		Select("*").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("update %T: %w", model, result.Error)
	}
	if result.RowsAffected == 0 {
		return missing
	}
	return nil
}

func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
