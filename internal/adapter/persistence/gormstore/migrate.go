package gormstore

import (
	"fmt"

	"gorm.io/gorm"
)

// Migrate creates the clinic tables and the partial unique index that keeps
// one scheduled/confirmed appointment per (date, slot).
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&clientRecord{},
		&petRecord{},
		&appointmentRecord{},
		&consultationRecord{},
		&invoiceRecord{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}

	const activeSlotIndex = `CREATE UNIQUE INDEX IF NOT EXISTS ux_appointments_active_slot
		ON appointments (date, slot)
		WHERE status IN ('scheduled', 'confirmed')`
	if err := db.Exec(activeSlotIndex).Error; err != nil {
		return fmt.Errorf("create active slot index: %w", err)
	}
	return nil
}
