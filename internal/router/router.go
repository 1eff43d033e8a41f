package router

import (
	"net/http"

	"ems/backend/foundation/web"
	"ems/backend/internal/auth"
	"ems/backend/internal/middleware"
	"ems/backend/internal/pkg/repository/postgresql"
	"ems/backend/internal/repository/postgres/attendance"
	"ems/backend/internal/repository/postgres/department"
	"ems/backend/internal/repository/postgres/employee"
	"ems/backend/internal/repository/postgres/leave"
	"ems/backend/internal/repository/postgres/position"
	"ems/backend/internal/repository/postgres/rfid"
	"ems/backend/internal/repository/postgres/settings"
	"ems/backend/internal/repository/postgres/ticket"
	"ems/backend/internal/repository/redisdb"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	attendance_controller "ems/backend/internal/controller/http/v1/attendance"
	auth_controller "ems/backend/internal/controller/http/v1/auth"
	department_controller "ems/backend/internal/controller/http/v1/department"
	employee_controller "ems/backend/internal/controller/http/v1/employee"
	leave_controller "ems/backend/internal/controller/http/v1/leave"
	position_controller "ems/backend/internal/controller/http/v1/position"
	rfid_controller "ems/backend/internal/controller/http/v1/rfid"
	settings_controller "ems/backend/internal/controller/http/v1/settings"
	ticket_controller "ems/backend/internal/controller/http/v1/ticket"
)

type Router struct {
	*web.App
	postgresDB *postgresql.Database
	redisDB    *redis.Client
	port       string
	auth       *auth.Auth
}

func NewRouter(
	app *web.App,
	postgresDB *postgresql.Database,
	redisDB *redis.Client,
	port string,
	auth *auth.Auth,
) *Router {
	return &Router{
		app,
		postgresDB,
		redisDB,
		port,
		auth,
	}
}

// AttendanceRepository exposes the attendance store for the snapshot job
// wired up in main.
func (r Router) AttendanceRepository() *attendance.Repository {
	return attendance.NewRepository(r.postgresDB, redisdb.NewHintStore(r.redisDB))
}

func (r Router) Init() error {

	r.HandleMethodNotAllowed = true
	r.Use(middleware.CORSMiddleware())

	// Reader agents probe this endpoint to find a live backend.
	r.GET("/api/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": true})
	})

	// - postgresql
	hintStore := redisdb.NewHintStore(r.redisDB)
	employeePostgres := employee.NewRepository(r.postgresDB)
	departmentPostgres := department.NewRepository(r.postgresDB)
	positionPostgres := position.NewRepository(r.postgresDB)
	settingsPostgres := settings.NewRepository(r.postgresDB)
	attendancePostgres := attendance.NewRepository(r.postgresDB, hintStore)
	leavePostgres := leave.NewRepository(r.postgresDB)
	rfidPostgres := rfid.NewRepository(r.postgresDB)
	ticketPostgres := ticket.NewRepository(r.postgresDB)

	// controller
	authController := auth_controller.NewController(employeePostgres)
	employeeController := employee_controller.NewController(employeePostgres, departmentPostgres, positionPostgres)
	departmentController := department_controller.NewController(departmentPostgres)
	positionController := position_controller.NewController(positionPostgres)
	settingsController := settings_controller.NewController(settingsPostgres)
	attendanceController := attendance_controller.NewController(attendancePostgres, settingsPostgres)
	leaveController := leave_controller.NewController(leavePostgres)
	rfidController := rfid_controller.NewController(rfidPostgres)
	ticketController := ticket_controller.NewController(ticketPostgres)

	// #auth
	r.Post("/api/v1/sign-in", authController.SignIn)
	r.Post("/api/v1/refresh-token", authController.RefreshToken)

	// #employee
	r.Get("/api/v1/employee/list", employeeController.GetEmployeeList, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/employee/export", employeeController.ExportEmployee, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/employee/badge", employeeController.GetEmployeeBadge, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/employee/:id", employeeController.GetEmployeeDetailById, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/employee/create", employeeController.CreateEmployee, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/employee/import", employeeController.ImportEmployees, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/employee/:id/photo", employeeController.UploadEmployeePhoto, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/employee/:id", employeeController.UpdateEmployeeColumns, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/employee/:id", employeeController.ArchiveEmployee, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #department
	r.Get("/api/v1/department/list", departmentController.GetList, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleDashboard))
	r.Get("/api/v1/department/:id", departmentController.GetDetailById, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/department/create", departmentController.Create, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/department/:id", departmentController.UpdateColumns, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/department/:id", departmentController.Delete, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #position
	r.Get("/api/v1/position/list", positionController.GetList, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleDashboard))
	r.Get("/api/v1/position/:id", positionController.GetDetailById, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/position/create", positionController.Create, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/position/:id", positionController.UpdateColumns, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/position/:id", positionController.Delete, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #attendance
	r.Get("/api/v1/attendance/list", attendanceController.GetList, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleEmployee, auth.RoleDashboard))
	r.Get("/api/v1/attendance/dashboard", attendanceController.GetDashboard, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleDashboard))
	r.Get("/api/v1/attendance/report", attendanceController.MonthlyReport, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/attendance/:id", attendanceController.GetDetailById, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/attendance/timein", attendanceController.TimeIn, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/attendance/timeout", attendanceController.TimeOut, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/attendance/scan", attendanceController.Scan, middleware.Authenticate(r.auth, auth.RoleScanner, auth.RoleAdmin))
	r.Delete("/api/v1/attendance/:id", attendanceController.Delete, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/attendance", attendanceController.GetStatistics, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleDashboard))
	r.Get("/api/v1/attendance/piechart", attendanceController.GetPieChartStatistics, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleDashboard))
	r.Get("/api/v1/attendance/barchart", attendanceController.GetBarChartStatistics, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleDashboard))

	// #leave
	r.Get("/api/v1/leave/list", leaveController.GetList, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/leave/create", leaveController.Create, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/leave/:id", leaveController.UpdateStatus, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/leave/:id", leaveController.Delete, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #rfid
	r.Get("/api/v1/rfid/list", rfidController.GetList, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/rfid/assign", rfidController.Assign, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/rfid/remove", rfidController.Remove, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #ticket
	r.Get("/api/v1/ticket/list", ticketController.GetList, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/ticket/create", ticketController.Create, middleware.Authenticate(r.auth))

	// #settings
	r.Get("/api/v1/settings", settingsController.GetInfo, middleware.Authenticate(r.auth))
	r.Put("/api/v1/settings", settingsController.Update, middleware.Authenticate(r.auth, auth.RoleAdmin))

	return r.Run(r.port)
}
