// Package repository holds the credential and employee stores. Each store
// has a GORM implementation (SQLite, PostgreSQL) and a MongoDB one.
package repository

import (
	"context"
	"errors"

	"payroll-directory/internal/models"
)

var (
	// ErrNotFound is returned when no record matches the lookup key.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique key (user email, employee id)
	// already exists.
	ErrDuplicate = errors.New("duplicate key")
)

type UserRepository interface {
	// Create inserts u and fills in its storage ID.
	Create(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

type EmployeeRepository interface {
	// Create inserts e and fills in its storage ID.
	Create(ctx context.Context, e *models.Employee) error
	FindByEmployeeID(ctx context.Context, employeeID string) (*models.Employee, error)
	List(ctx context.Context) ([]models.Employee, error)
	Search(ctx context.Context, f EmployeeFilter) ([]models.Employee, error)
	// Update replaces every mutable field of the employee with e.EmployeeID.
	Update(ctx context.Context, e *models.Employee) error
	Delete(ctx context.Context, employeeID string) error
}

// EmployeeFilter holds case-insensitive substring filters; empty fields do
// not constrain the result.
type EmployeeFilter struct {
	FirstName string
	LastName  string
}

