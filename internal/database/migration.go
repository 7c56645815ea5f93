package database

import (
	"fmt"

	"payroll-directory/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate creates the users and employees tables with their unique
// indexes on email and employee_id.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Employee{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
