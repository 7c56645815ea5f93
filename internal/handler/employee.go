package handler

import (
	"errors"
	"net/http"
	"time"

	"payroll-directory/internal/models"
	"payroll-directory/internal/repository"
	"payroll-directory/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// EmployeeHandler serves employee CRUD and search.
type EmployeeHandler struct {
	Employees repository.EmployeeRepository
	Log       *zap.Logger
}

func NewEmployeeHandler(employees repository.EmployeeRepository, log *zap.Logger) *EmployeeHandler {
	return &EmployeeHandler{Employees: employees, Log: log}
}

// ---------- request/response ----------

// EmployeeFields are the mutable employee fields; all of them must be supplied on
// every write.
type EmployeeFields struct {
	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name" binding:"required"`
	Email          string `json:"email" binding:"required"`
	Phone          string `json:"phone" binding:"required"`
	Department     string `json:"department" binding:"required"`
	Designation    string `json:"designation" binding:"required"`
	DateOfJoining  string `json:"date_of_joining" binding:"required"`
	EmploymentType string `json:"employment_type" binding:"required"`
	Location       string `json:"location" binding:"required"`
}

type addEmployeeReq struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	EmployeeFields
}

type updateEmployeeReq struct {
	EmployeeFields
}

// employeeResp is the labeled projection returned by every read.
type employeeResp struct {
	EmployeeID     string    `json:"EmployeeID"`
	FirstName      string    `json:"First Name"`
	LastName       string    `json:"Last Name"`
	Email          string    `json:"Email"`
	Phone          string    `json:"Phone"`
	Department     string    `json:"Department"`
	Designation    string    `json:"Designation"`
	DateOfJoining  time.Time `json:"Date of Joining"`
	EmploymentType string    `json:"Employment Type"`
	Location       string    `json:"Location"`
}

func toEmployeeResp(e *models.Employee) employeeResp {
	return employeeResp{
		EmployeeID:     e.EmployeeID,
		FirstName:      e.FirstName,
		LastName:       e.LastName,
		Email:          e.Email,
		Phone:          e.Phone,
		Department:     e.Department,
		Designation:    e.Designation,
		DateOfJoining:  e.DateOfJoining,
		EmploymentType: e.EmploymentType,
		Location:       e.Location,
	}
}

func toEmployeeResps(employees []models.Employee) []employeeResp {
	items := make([]employeeResp, 0, len(employees))
	for i := range employees {
		items = append(items, toEmployeeResp(&employees[i]))
	}
	return items
}

// apply copies the request fields onto e, parsing the joining date.
func (f *EmployeeFields) apply(e *models.Employee) error {
	joined, err := util.ParseDate(f.DateOfJoining)
	if err != nil {
		return err
	}
	e.FirstName = f.FirstName
	e.LastName = f.LastName
	e.Email = f.Email
	e.Phone = f.Phone
	e.Department = f.Department
	e.Designation = f.Designation
	e.DateOfJoining = joined
	e.EmploymentType = f.EmploymentType
	e.Location = f.Location
	return nil
}

// bindEmployee binds the JSON body into req and answers 400 on failure.
func bindEmployee(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			util.Error(c, http.StatusBadRequest, "All fields are required")
		} else {
			util.Error(c, http.StatusBadRequest, "Invalid request body")
		}
		return false
	}
	return true
}

const invalidDateMsg = "Invalid date_of_joining, expected YYYY-MM-DD"

// ---------- reads ----------

func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	employees, err := h.Employees.List(c.Request.Context())
	if err != nil {
		internalError(c, h.Log, "list employees", err)
		return
	}
	c.JSON(http.StatusOK, toEmployeeResps(employees))
}

func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	emp, err := h.Employees.FindByEmployeeID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			util.Error(c, http.StatusNotFound, "Employee not found")
			return
		}
		internalError(c, h.Log, "get employee", err)
		return
	}
	c.JSON(http.StatusOK, toEmployeeResp(emp))
}

// SearchEmployees filters by ?firstName= and ?lastName=, both optional.
func (h *EmployeeHandler) SearchEmployees(c *gin.Context) {
	filter := repository.EmployeeFilter{
		FirstName: c.Query("firstName"),
		LastName:  c.Query("lastName"),
	}

	employees, err := h.Employees.Search(c.Request.Context(), filter)
	if err != nil {
		internalError(c, h.Log, "search employees", err)
		return
	}
	c.JSON(http.StatusOK, toEmployeeResps(employees))
}

// ---------- writes ----------

func (h *EmployeeHandler) AddEmployee(c *gin.Context) {
	var req addEmployeeReq
	if !bindEmployee(c, &req) {
		return
	}

	emp := models.Employee{EmployeeID: req.EmployeeID}
	if err := req.apply(&emp); err != nil {
		util.Error(c, http.StatusBadRequest, invalidDateMsg)
		return
	}

	// the unique index on employee_id decides duplicates
	if err := h.Employees.Create(c.Request.Context(), &emp); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			util.Error(c, http.StatusBadRequest, "Employee ID already exists")
			return
		}
		internalError(c, h.Log, "add employee", err)
		return
	}

	h.Log.Info("employee added", zap.String("employee_id", emp.EmployeeID), zap.String("id", emp.ID))
	util.Message(c, http.StatusCreated, "Employee added successfully", gin.H{"id": emp.ID})
}

// UpdateEmployee replaces all mutable fields. An unknown id is reported
// before the body is validated.
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	employeeID := c.Param("id")
	ctx := c.Request.Context()

	if _, err := h.Employees.FindByEmployeeID(ctx, employeeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			util.Error(c, http.StatusNotFound, "Employee not found")
			return
		}
		internalError(c, h.Log, "find employee", err)
		return
	}

	var req updateEmployeeReq
	if !bindEmployee(c, &req) {
		return
	}

	emp := models.Employee{EmployeeID: employeeID}
	if err := req.apply(&emp); err != nil {
		util.Error(c, http.StatusBadRequest, invalidDateMsg)
		return
	}

	if err := h.Employees.Update(ctx, &emp); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			util.Error(c, http.StatusNotFound, "Employee not found")
			return
		}
		internalError(c, h.Log, "update employee", err)
		return
	}

	h.Log.Info("employee updated", zap.String("employee_id", employeeID))
	util.Message(c, http.StatusOK, "Employee updated successfully", nil)
}

func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	employeeID := c.Param("id")

	if err := h.Employees.Delete(c.Request.Context(), employeeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			util.Error(c, http.StatusNotFound, "Employee not found")
			return
		}
		internalError(c, h.Log, "delete employee", err)
		return
	}

	h.Log.Info("employee deleted", zap.String("employee_id", employeeID))
	util.Message(c, http.StatusOK, "Employee deleted successfully", nil)
}
