package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"payroll-directory/internal/database"
	"payroll-directory/internal/models"

	"gorm.io/gorm"
)

type GormEmployeeRepository struct {
	db *gorm.DB
}

func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

func (r *GormEmployeeRepository) Create(ctx context.Context, e *models.Employee) error {
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("create employee %q: %w", e.EmployeeID, ErrDuplicate)
		}
		return fmt.Errorf("create employee: %w", err)
	}
	return nil
}

func (r *GormEmployeeRepository) FindByEmployeeID(ctx context.Context, employeeID string) (*models.Employee, error) {
	var emp models.Employee
	if err := r.db.WithContext(ctx).Where("employee_id = ?", employeeID).First(&emp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find employee: %w", err)
	}
	return &emp, nil
}

func (r *GormEmployeeRepository) List(ctx context.Context) ([]models.Employee, error) {
	return r.Search(ctx, EmployeeFilter{})
}

func (r *GormEmployeeRepository) Search(ctx context.Context, f EmployeeFilter) ([]models.Employee, error) {
	q := r.db.WithContext(ctx).Model(&models.Employee{})
	if f.FirstName != "" {
		q = q.Where(r.containsClause("first_name"), containsPattern(f.FirstName))
	}
	if f.LastName != "" {
		q = q.Where(r.containsClause("last_name"), containsPattern(f.LastName))
	}

	employees := make([]models.Employee, 0)
	if err := q.Order("created_at ASC, id ASC").Find(&employees).Error; err != nil {
		return nil, fmt.Errorf("search employees: %w", err)
	}
	return employees, nil
}

func (r *GormEmployeeRepository) Update(ctx context.Context, e *models.Employee) error {
	res := r.db.WithContext(ctx).
		Model(&models.Employee{}).
		Where("employee_id = ?", e.EmployeeID).
		Updates(map[string]any{
			"first_name":      e.FirstName,
			"last_name":       e.LastName,
			"email":           e.Email,
			"phone":           e.Phone,
			"department":      e.Department,
			"designation":     e.Designation,
			"date_of_joining": e.DateOfJoining,
			"employment_type": e.EmploymentType,
			"location":        e.Location,
		})
	if res.Error != nil {
		return fmt.Errorf("update employee: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormEmployeeRepository) Delete(ctx context.Context, employeeID string) error {
	res := r.db.WithContext(ctx).Where("employee_id = ?", employeeID).Delete(&models.Employee{})
	if res.Error != nil {
		return fmt.Errorf("delete employee: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// containsClause compares column against a containsPattern value without
// regard to case, including non-ASCII letters.
func (r *GormEmployeeRepository) containsClause(column string) string {
	switch r.db.Dialector.Name() {
	case "postgres":
		return column + ` ILIKE ? ESCAPE '\'`
	case "sqlite":
		return database.SQLiteLowerFunc + "(" + column + `) LIKE ? ESCAPE '\'`
	default:
		return "LOWER(" + column + `) LIKE ? ESCAPE '\'`
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns s into a LIKE pattern matching any value that
// contains s, compared in lower case.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
