package router

import (
	"net/http"

	"payroll-directory/internal/config"
	"payroll-directory/internal/handler"
	"payroll-directory/internal/middleware"
	"payroll-directory/internal/repository"
	"payroll-directory/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps is everything the HTTP layer needs, built once at startup.
type Deps struct {
	Config    *config.Config
	Log       *zap.Logger
	Users     repository.UserRepository
	Employees repository.EmployeeRepository
	Tokens    *util.TokenService
}

// SetupRouter configures the Gin engine with all directory routes.
func SetupRouter(d Deps) *gin.Engine {
	if d.Config.Server.Mode != "" {
		gin.SetMode(d.Config.Server.Mode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(d.Log), gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Welcome to the Payroll Management System")
	})

	// registration and login need no token
	authHandler := handler.NewAuthHandler(d.Users, d.Tokens, d.Config.Security.BcryptCost, d.Log)
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)

	protected := r.Group("")
	protected.Use(middleware.AuthMiddleware(d.Tokens, d.Log))

	userHandler := handler.NewUserHandler(d.Users, d.Log)
	protected.GET("/users", userHandler.ListUsers)
	protected.GET("/user/:email", userHandler.GetUser)

	employeeHandler := handler.NewEmployeeHandler(d.Employees, d.Log)
	protected.GET("/employees", employeeHandler.ListEmployees)
	protected.GET("/employee/:id", employeeHandler.GetEmployee)
	protected.GET("/search/employee", employeeHandler.SearchEmployees)
	protected.POST("/employee/add", employeeHandler.AddEmployee)
	protected.PUT("/employee/update/:id", employeeHandler.UpdateEmployee)
	protected.DELETE("/employee/delete/:id", employeeHandler.DeleteEmployee)

	exportHandler := handler.NewExportHandler(d.Employees, d.Log)
	protected.GET("/employees/export/csv", exportHandler.ExportCSV)
	protected.GET("/employees/export/xlsx", exportHandler.ExportXLSX)

	return r
}
