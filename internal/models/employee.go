package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee is a directory record. EmployeeID is the caller-supplied business
// key; ID is assigned by the storage backend.
type Employee struct {
	ID             string    `gorm:"primaryKey;size:36"`
	EmployeeID     string    `gorm:"column:employee_id;size:64;uniqueIndex;not null"`
	FirstName      string    `gorm:"size:128;not null"`
	LastName       string    `gorm:"size:128;not null"`
	Email          string    `gorm:"size:255;not null"`
	Phone          string    `gorm:"size:64;not null"`
	Department     string    `gorm:"size:128;not null"`
	Designation    string    `gorm:"size:128;not null"`
	DateOfJoining  time.Time `gorm:"not null"`
	EmploymentType string    `gorm:"size:64;not null"`
	Location       string    `gorm:"size:128;not null"`
	CreatedAt      time.Time `gorm:"index"`
}

func (e *Employee) BeforeCreate(*gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
