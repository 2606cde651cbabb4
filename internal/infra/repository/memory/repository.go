package memory

import (
	"context"
	"sort"
	"time"

	"github.com/KasumiMercury/primind-intake-ledger/internal/domain"
)

type repository struct {
	state *state
}

func (r *repository) ListActiveMedications(_ context.Context) ([]*domain.Medication, error) {
	out := make([]*domain.Medication, 0, len(r.state.medications))
	for _, m := range r.state.medications {
		if m.Active {
			out = append(out, copyMedication(m))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *repository) GetMedication(_ context.Context, id string) (*domain.Medication, error) {
	m, ok := r.state.medications[id]
	if !ok {
		return nil, domain.ErrMedicationNotFound
	}
	return copyMedication(m), nil
}

func (r *repository) InsertMedication(_ context.Context, medication *domain.Medication) error {
	r.state.medications[medication.ID] = copyMedication(medication)
	return nil
}

func (r *repository) UpdateMedication(_ context.Context, medication *domain.Medication) error {
	if _, ok := r.state.medications[medication.ID]; !ok {
		return domain.ErrMedicationNotFound
	}
	r.state.medications[medication.ID] = copyMedication(medication)
	return nil
}

func (r *repository) GetPackage(_ context.Context, id string) (*domain.PillPackage, error) {
	p, ok := r.state.packages[id]
	if !ok {
		return nil, domain.ErrPackageNotFound
	}
	c := *p
	return &c, nil
}

func (r *repository) GetCurrentPackage(_ context.Context, medicationID string) (*domain.PillPackage, error) {
	for _, p := range r.state.packages {
		if p.MedicationID == medicationID && p.IsCurrent {
			c := *p
			return &c, nil
		}
	}
	return nil, domain.ErrPackageNotFound
}

func (r *repository) ListCurrentPackages(_ context.Context) ([]*domain.PillPackage, error) {
	out := make([]*domain.PillPackage, 0)
	for _, p := range r.state.packages {
		if p.IsCurrent {
			c := *p
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *repository) InsertPackage(_ context.Context, pkg *domain.PillPackage) error {
	if pkg.IsCurrent {
		for _, p := range r.state.packages {
			if p.MedicationID == pkg.MedicationID && p.IsCurrent {
				return domain.ErrCurrentPackageConflict
			}
		}
	}
	c := *pkg
	r.state.packages[pkg.ID] = &c
	return nil
}

func (r *repository) UpdatePackage(_ context.Context, pkg *domain.PillPackage) error {
	if _, ok := r.state.packages[pkg.ID]; !ok {
		return domain.ErrPackageNotFound
	}
	c := *pkg
	r.state.packages[pkg.ID] = &c
	return nil
}

func (r *repository) GetTransition(_ context.Context, medicationID string) (*domain.PackageTransition, error) {
	t, ok := r.state.transitions[medicationID]
	if !ok {
		return nil, domain.ErrTransitionNotFound
	}
	c := *t
	return &c, nil
}

func (r *repository) UpsertTransition(_ context.Context, transition *domain.PackageTransition) error {
	c := *transition
	r.state.transitions[transition.MedicationID] = &c
	return nil
}

func (r *repository) GetIntake(_ context.Context, id string) (*domain.Intake, error) {
	i, ok := r.state.intakes[id]
	if !ok {
		return nil, domain.ErrIntakeNotFound
	}
	c := *i
	return &c, nil
}

func (r *repository) InsertIntakes(_ context.Context, intakes []*domain.Intake) (int, error) {
	taken := make(map[string]struct{}, len(r.state.intakes))
	for _, i := range r.state.intakes {
		taken[slotKey(i.MedicationID, i.PlannedAt)] = struct{}{}
	}

	inserted := 0
	for _, i := range intakes {
		key := slotKey(i.MedicationID, i.PlannedAt)
		if _, dup := taken[key]; dup {
			continue
		}
		taken[key] = struct{}{}
		c := *i
		r.state.intakes[i.ID] = &c
		inserted++
	}
	return inserted, nil
}

func (r *repository) UpdateIntake(_ context.Context, intake *domain.Intake) error {
	if _, ok := r.state.intakes[intake.ID]; !ok {
		return domain.ErrIntakeNotFound
	}
	c := *intake
	r.state.intakes[intake.ID] = &c
	return nil
}

func (r *repository) PlannedTimestamps(_ context.Context, medicationID string, from, to time.Time) ([]time.Time, error) {
	out := make([]time.Time, 0)
	for _, i := range r.state.intakes {
		if i.MedicationID == medicationID && within(i.PlannedAt, from, to) {
			out = append(out, i.PlannedAt)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Before(out[b]) })
	return out, nil
}

func (r *repository) SumPlannedPills(_ context.Context, medicationID string) (float64, error) {
	sum := 0.0
	for _, i := range r.state.intakes {
		if i.MedicationID == medicationID {
			sum += i.PillCount
		}
	}
	return sum, nil
}

func (r *repository) ListPlannedIntakes(_ context.Context, medicationID string, from, to time.Time) ([]*domain.Intake, error) {
	out := make([]*domain.Intake, 0)
	for _, i := range r.state.intakes {
		if i.MedicationID == medicationID && i.Status == domain.IntakePlanned && within(i.PlannedAt, from, to) {
			c := *i
			out = append(out, &c)
		}
	}
	sortIntakes(out)
	return out, nil
}

func (r *repository) ListPlannedBetween(_ context.Context, from, to time.Time) ([]*domain.Intake, error) {
	out := make([]*domain.Intake, 0)
	for _, i := range r.state.intakes {
		if i.Status == domain.IntakePlanned && !i.PlannedAt.Before(from) && i.PlannedAt.Before(to) {
			c := *i
			out = append(out, &c)
		}
	}
	sortIntakes(out)
	return out, nil
}

func (r *repository) NextIntake(_ context.Context, medicationID string, after time.Time) (*domain.Intake, error) {
	var next *domain.Intake
	for _, i := range r.state.intakes {
		if i.MedicationID != medicationID || !i.PlannedAt.After(after) {
			continue
		}
		if next == nil || i.PlannedAt.Before(next.PlannedAt) {
			next = i
		}
	}
	if next == nil {
		return nil, domain.ErrIntakeNotFound
	}
	c := *next
	return &c, nil
}

func (r *repository) DeletePlannedFrom(_ context.Context, from time.Time) (int, error) {
	deleted := 0
	for id, i := range r.state.intakes {
		if i.Status == domain.IntakePlanned && !i.PlannedAt.Before(from) {
			delete(r.state.intakes, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *repository) GetSettings(_ context.Context) (*domain.Settings, error) {
	if r.state.settings == nil {
		return nil, domain.ErrSettingsNotFound
	}
	c := *r.state.settings
	return &c, nil
}

func (r *repository) UpsertSettings(_ context.Context, settings *domain.Settings) error {
	c := *settings
	r.state.settings = &c
	return nil
}

func within(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}

func slotKey(medicationID string, at time.Time) string {
	return medicationID + "@" + at.UTC().Format(time.RFC3339Nano)
}

func sortIntakes(intakes []*domain.Intake) {
	sort.Slice(intakes, func(i, j int) bool {
		if !intakes[i].PlannedAt.Equal(intakes[j].PlannedAt) {
			return intakes[i].PlannedAt.Before(intakes[j].PlannedAt)
		}
		return intakes[i].ID < intakes[j].ID
	})
}
