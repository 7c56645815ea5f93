package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
	"time"

	"payroll-directory/internal/models"
	"payroll-directory/internal/repository"
	"payroll-directory/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ExportHandler downloads the employee directory as a spreadsheet.
type ExportHandler struct {
	Employees repository.EmployeeRepository
	Log       *zap.Logger
}

func NewExportHandler(employees repository.EmployeeRepository, log *zap.Logger) *ExportHandler {
	return &ExportHandler{Employees: employees, Log: log}
}

// same labels as the JSON projection
var exportHeaders = []string{
	"EmployeeID", "First Name", "Last Name", "Email", "Phone",
	"Department", "Designation", "Date of Joining", "Employment Type", "Location",
}

func exportRow(e *models.Employee) []string {
	return []string{
		e.EmployeeID, e.FirstName, e.LastName, e.Email, e.Phone,
		e.Department, e.Designation, e.DateOfJoining.UTC().Format(util.DateLayout), e.EmploymentType, e.Location,
	}
}

// csvRow prefixes cells a spreadsheet would evaluate as a formula with a
// quote so they open as text. XLSX cells are written as typed strings and
// need no escaping.
func csvRow(cells []string) []string {
	for i, v := range cells {
		if v != "" && strings.ContainsRune("=+-@\t\r", rune(v[0])) {
			cells[i] = "'" + v
		}
	}
	return cells
}

func attachment(c *gin.Context, contentType, ext string) {
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"employees_%s.%s\"",
		time.Now().Format("20060102"), ext))
}

// ExportCSV streams all employees as CSV.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	employees, err := h.Employees.List(c.Request.Context())
	if err != nil {
		internalError(c, h.Log, "export employees", err)
		return
	}

	attachment(c, "text/csv; charset=utf-8", "csv")
	c.Status(http.StatusOK)

	writer := csv.NewWriter(c.Writer)
	_ = writer.Write(exportHeaders)
	for i := range employees {
		_ = writer.Write(csvRow(exportRow(&employees[i])))
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		h.Log.Warn("csv export interrupted", zap.Error(err))
	}
}

// ExportXLSX writes all employees to a single-sheet workbook.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	employees, err := h.Employees.List(c.Request.Context())
	if err != nil {
		internalError(c, h.Log, "export employees", err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Employees"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		internalError(c, h.Log, "create sheet", err)
		return
	}

	if err := f.SetSheetRow(sheetName, "A1", &exportHeaders); err != nil {
		internalError(c, h.Log, "write header", err)
		return
	}
	for i := range employees {
		row := exportRow(&employees[i])
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			internalError(c, h.Log, "write row", err)
			return
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 12)
	_ = f.SetColWidth(sheetName, "B", "G", 18)
	_ = f.SetColWidth(sheetName, "D", "D", 28)
	_ = f.SetColWidth(sheetName, "H", "J", 16)

	attachment(c, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx")
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		h.Log.Warn("xlsx export interrupted", zap.Error(err))
	}
}
