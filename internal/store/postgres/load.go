package postgres

import (
	"context"
	"fmt"

	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/seed"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Load inserts ds in a single transaction and reports whether it did. A
// database that already holds patients is left untouched. Seed ids are derived
// from natural keys, so rows that collide with an earlier load are skipped.
func Load(ctx context.Context, db *gorm.DB, ds *seed.Dataset) (bool, error) {
	loaded := false
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&patient.Patient{}).Limit(1).Count(&existing).Error; err != nil {
			return fmt.Errorf("checking existing patients: %w", err)
		}
		if existing > 0 {
			return nil
		}

		tx = tx.Clauses(clause.OnConflict{DoNothing: true})

		steps := []struct {
			name string
			rows any
			n    int
		}{
			{"users", ds.Users, len(ds.Users)},
			{"staff", ds.Staff, len(ds.Staff)},
			{"patients", ds.Patients, len(ds.Patients)},
			{"appointments", ds.Appointments, len(ds.Appointments)},
			{"medical records", ds.MedicalRecords, len(ds.MedicalRecords)},
			{"lab tests", ds.LabTests, len(ds.LabTests)},
			{"medications", ds.Medications, len(ds.Medications)},
			{"referrals", ds.Referrals, len(ds.Referrals)},
			{"health programs", ds.HealthPrograms, len(ds.HealthPrograms)},
			{"equipment", ds.Equipment, len(ds.Equipment)},
		}
		for _, s := range steps {
			if s.n == 0 {
				continue
			}
			if err := tx.Create(s.rows).Error; err != nil {
				return fmt.Errorf("loading %s: %w", s.name, err)
			}
		}
		loaded = true
		return nil
	})
	return loaded && err == nil, err
}
