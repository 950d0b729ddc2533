// Package server exposes the HTTP API: auth and invitation glue, task
// CRUD with submission rules, report viewing and delivery, and the
// payroll ledger.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/tedhq/ted/internal/config"
	"github.com/tedhq/ted/internal/db"
	"github.com/tedhq/ted/internal/delivery"
	"github.com/tedhq/ted/internal/render"
	"github.com/tedhq/ted/internal/report"
	"github.com/tedhq/ted/pkg/models"
	"go.uber.org/zap"
)

type Server struct {
	echo     *echo.Echo
	db       *db.DB
	cfg      *config.Config
	mailer   *delivery.Mailer
	delivery *delivery.Service
	logger   *zap.Logger

	// now is swappable for tests of the submission window.
	now func() time.Time
}

func NewServer(database *db.DB, cfg *config.Config, mailer *delivery.Mailer, svc *delivery.Service, logger *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", time.Since(start)),
			)
			return err
		}
	})

	s := &Server{
		echo:     e,
		db:       database,
		cfg:      cfg,
		mailer:   mailer,
		delivery: svc,
		logger:   logger,
		now:      time.Now,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	e := s.echo

	e.POST("/invite", s.handleInvite)
	e.POST("/register", s.handleRegister)
	e.POST("/login", s.handleLogin)

	e.POST("/tasks", s.handleAddTask)
	e.GET("/tasks", s.handleListTasks)
	e.PUT("/tasks/:id", s.handleUpdateTask)
	e.DELETE("/tasks/:id", s.handleDeleteTask)
	e.POST("/tasks/:id/manager-note", s.handleManagerNote)
	e.POST("/tasks/:id/reviewer-note", s.handleReviewerNote)

	e.GET("/users", s.handleListUsers)
	e.GET("/special-users", s.handleSpecialUsers)

	e.GET("/report", s.handleGetReport)
	e.POST("/report/send", s.handleSendReport)

	e.POST("/employees", s.handleAddEmployee)
	e.POST("/payroll", s.handleAddPayroll)
	e.GET("/payroll", s.handleListPayroll)
}

func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Echo returns the underlying router, used by tests and by main for
// graceful shutdown.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

type message struct {
	Message string `json:"message"`
}

func msg(format string, args ...any) message {
	return message{Message: fmt.Sprintf(format, args...)}
}

// ---- auth and invitations ----

type inviteRequest struct {
	Email  string `json:"email"`
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

func (s *Server) handleInvite(c echo.Context) error {
	var req inviteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, msg("invalid request body"))
	}
	if req.Email == "" || req.UserID == "" || req.Role == "" {
		return c.JSON(http.StatusBadRequest, msg("Email, user_id, and role are required"))
	}
	role, err := models.ParseRole(req.Role)
	if err != nil {
		return c.JSON(http.StatusBadRequest, msg("Invalid role"))
	}

	inv, err := s.db.CreateInvitation(c.Request().Context(), req.Email, req.UserID, role)
	if err != nil {
		return c.JSON(http.StatusBadRequest, msg("Invitation already exists for this email or user_id"))
	}

	if err := s.mailer.SendInvitation(inv.Email, inv.Code); err != nil {
		s.logger.Error("invitation mail failed", zap.String("email", inv.Email), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, msg("An error occurred: %v", err))
	}
	return c.JSON(http.StatusCreated, msg("Invitation sent successfully"))
}

type registerRequest struct {
	UserID     string `json:"user_id"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	Invitation string `json:"invitation"`
}

func (s *Server) handleRegister(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, msg("invalid request body"))
	}
	role, err := models.ParseRole(req.Role)
	if err != nil {
		return c.JSON(http.StatusBadRequest, msg("Invalid role"))
	}
	ctx := c.Request().Context()

	user := &models.User{UserID: req.UserID, Email: req.Email, Password: req.Password, Role: role}

	// Allowlisted managers and reviewers register without invitations.
	if s.cfg.Special.Allows(req.UserID, req.Role) {
		if err := s.db.CreateUser(ctx, user); err != nil {
			return c.JSON(http.StatusBadRequest, msg("User ID or email already exists"))
		}
		return c.JSON(http.StatusCreated, echo.Map{"user_id": user.UserID, "role": user.Role})
	}

	inv, err := s.db.GetInvitation(ctx, req.UserID, role, req.Invitation)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, msg("An error occurred: %v", err))
	}
	if inv == nil {
		return c.JSON(http.StatusBadRequest, msg("Invalid invitation or role"))
	}

	if err := s.db.CreateUser(ctx, user); err != nil {
		return c.JSON(http.StatusBadRequest, msg("User ID or email already exists"))
	}
	if err := s.db.DeleteInvitation(ctx, inv.ID); err != nil {
		s.logger.Error("failed to consume invitation", zap.Int64("id", inv.ID), zap.Error(err))
	}
	return c.JSON(http.StatusCreated, echo.Map{"user_id": user.UserID, "role": user.Role})
}

type loginRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, msg("invalid request body"))
	}
	u, err := s.db.Authenticate(c.Request().Context(), req.UserID, req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, msg("An error occurred: %v", err))
	}
	if u == nil {
		return c.JSON(http.StatusUnauthorized, msg("Invalid credentials"))
	}
	return c.JSON(http.StatusOK, echo.Map{"user_id": u.UserID, "role": u.Role})
}

// ---- task CRUD ----

type taskRequest struct {
	UserID         string `json:"user_id"`
	AreaOfEffort   string `json:"area_of_effort"`
	EffortHours    int    `json:"effort_hours"`
	EffortMinutes  int    `json:"effort_minutes"`
	EffortTowards  string `json:"effort_towards"`
	TimeLogType    string `json:"time_log_type"`
	OutputFile     string `json:"output_file"`
	OutputLocation string `json:"output_location"`
	TaskDate       string `json:"task_date"`
}

func (s *Server) handleAddTask(c echo.Context) error {
	if !s.cfg.Submission.Contains(s.now()) {
		return c.JSON(http.StatusForbidden,
			msg("Tasks can only be submitted between %s and %s", s.cfg.Submission.Start, s.cfg.Submission.End))
	}

	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, msg("invalid request body"))
	}
	if req.EffortHours < 0 || req.EffortMinutes < 0 {
		return c.JSON(http.StatusBadRequest, msg("Effort hours and minutes must be non-negative"))
	}

	today := models.DateOf(s.now())
	date := today
	if req.TaskDate != "" {
		var err error
		if date, err = models.ParseDate(req.TaskDate); err != nil {
			return c.JSON(http.StatusBadRequest, msg("Invalid task_date"))
		}
		if date.Before(today.Time) {
			return c.JSON(http.StatusBadRequest, msg("Cannot add a task for a previous date"))
		}
	}

	ctx := c.Request().Context()
	u, err := s.db.GetUser(ctx, req.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, msg("An error occurred: %v", err))
	}
	if u != nil && u.Role != models.RoleEmployee {
		return c.JSON(http.StatusForbidden, msg("Only employees can add tasks"))
	}

	t := &models.TaskRecord{
		UserID:         req.UserID,
		AreaOfEffort:   req.AreaOfEffort,
		EffortHours:    req.EffortHours,
		EffortMinutes:  req.EffortMinutes,
		EffortTowards:  req.EffortTowards,
		TimeLogType:    req.TimeLogType,
		OutputFile:     req.OutputFile,
		OutputLocation: req.OutputLocation,
		Date:           date,
	}
	if err := s.db.CreateTask(ctx, t); err != nil {
		return c.JSON(http.StatusInternalServerError, msg("An error occurred: %v", err))
	}
	return c.JSON(http.StatusCreated, msg("Task added successfully"))
}

func (s *Server) handleUpdateTask(c echo.Context) error {
	var id int64
	if err := echo.PathParamsBinder(c).Int64("id", &id).BindError(); err != nil {
		return c.JSON(http.StatusBadRequest, msg("invalid task id"))
	}
	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, msg("invalid request body"))
	}

	ctx := c.Request().Context()
	existing, err := s.db.GetTask(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, msg("An error occurred: %v", err))
	}
	if existing == nil {
		return c.JSON(http.StatusNotFound, msg("Task not found"))
	}
	if existing.Date.Key() != models.DateOf(s.now()).Key() {
		return c.JSON(http.StatusForbidden, msg("You can only edit tasks for the current day"))
	}

	existing.AreaOfEffort = req.AreaOfEffort
	existing.EffortHours = req.EffortHours
	existing.EffortMinutes = req.EffortMinutes
	existing.EffortTowards = req.EffortTowards
	existing.TimeLogType = req.TimeLogType
	existing.OutputFile = req.OutputFile
	existing.OutputLocation = req.OutputLocation

	if err := s.db.UpdateTask(ctx, existing); err != nil {
		return c.JSON(http.StatusInternalServerError, msg("An error occurred: %v", err))
	}
	return c.JSON(http.StatusOK, msg("Task updated successfully"))
}

func (s *Server) handleDeleteTask(c echo.Context) error {
	var id int64
	if err := echo.PathParamsBinder(c).Int64("id", &id).BindError(); err != nil {
		return c.JSON(http.StatusBadRequest, msg("invalid task id"))
	}
	if err := s.db.DeleteTask(c.Request().Context(), id); err != nil {
		return c.JSON(http.StatusInternalServerError, msg("An error occurred: %v", err))
	}
	return c.JSON(http.StatusOK, msg("Task deleted successfully"))
}

// handleListTasks serves both single-date and period queries. Date
// queries include the summed effort total.
func (s *Server) handleListTasks(c echo.Context) error {
	userID := c.QueryParam("user_id")
	ctx := c.Request().Context()

	if taskDate := c.QueryParam("task_date"); taskDate != "" {
		date, err := models.ParseDate(taskDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, msg("Invalid task_date"))
		}
		tasks, err := s.db.ListTasksForDate(ctx, userID, date)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, msg("An error occurred: %v", err))
		}
		total := 0.0
		for i := range tasks {
			total += tasks[i].Hours()
		}
		return c.JSON(http.StatusOK, echo.Map{"tasks": tasks, "total_effort_hours": total})
	}

	from, to, err := parseRange(c.QueryParam("from_date"), c.QueryParam("to_date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, msg("Invalid date range"))
	}
	tasks, err := s.db.ListTasksForRange(ctx, userID, from, to)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, msg("An error occurred: %v", err))
	}
	return c.JSON(http.StatusOK, tasks)
}

type managerNoteRequest struct {
	ManagerNote string `json:"manager_note"`
	BroadArea   string `json:"broad_area_of_work"`
}

func (s *Server) handleManagerNote(c echo.Context) error {
	var id int64
	if err := echo.PathParamsBinder(c).Int64("id", &id).BindError(); err != nil {
		return c.JSON(http.StatusBadRequest, msg("invalid task id"))
	}
	var req managerNoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, msg("invalid request body"))
	}
	if err := s.db.SetManagerNote(c.Request().Context(), id, req.ManagerNote, req.BroadArea); err != nil {
		return c.JSON(http.StatusInternalServerError, msg("An error occurred: %v", err))
	}
	return c.JSON(http.StatusOK, msg("Manager note added successfully"))
}

type reviewerNoteRequest struct {
	ReviewerNote string `json:"reviewer_note"`
}

func (s *Server) handleReviewerNote(c echo.Context) error {
	var id int64
	if err := echo.PathParamsBinder(c).Int64("id", &id).BindError(); err != nil {
		return c.JSON(http.StatusBadRequest, msg("invalid task id"))
	}
	var req reviewerNoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, msg("invalid request body"))
	}
	if err := s.db.SetReviewerNote(c.Request().Context(), id, req.ReviewerNote); err != nil {
		return c.JSON(http.StatusInternalServerError, msg("An error occurred: %v", err))
	}
	return c.JSON(http.StatusOK, msg("Reviewer note added successfully"))
}

// ---- directory ----

func (s *Server) handleListUsers(c echo.Context) error {
	users, err := s.db.ListEmployees(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, msg("An error occurred: %v", err))
	}
	out := make([]echo.Map, 0, len(users))
	for _, u := range users {
		out = append(out, echo.Map{"user_id": u.UserID, "email": u.Email})
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleSpecialUsers(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"managers":  s.cfg.Special.Managers,
		"reviewers": s.cfg.Special.Reviewers,
	})
}

// ---- reports ----

func parseRange(fromStr, toStr string) (models.Date, models.Date, error) {
	from, err := models.ParseDate(fromStr)
	if err != nil {
		return models.Date{}, models.Date{}, fmt.Errorf("%w: %v", report.ErrInvalidRange, err)
	}
	to, err := models.ParseDate(toStr)
	if err != nil {
		return models.Date{}, models.Date{}, fmt.Errorf("%w: %v", report.ErrInvalidRange, err)
	}
	if to.Before(from.Time) {
		return models.Date{}, models.Date{}, fmt.Errorf("%w: %s > %s", report.ErrInvalidRange, fromStr, toStr)
	}
	return from, to, nil
}

func (s *Server) handleGetReport(c echo.Context) error {
	userID := c.QueryParam("user_id")
	from, to, err := parseRange(c.QueryParam("from_date"), c.QueryParam("to_date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, msg("Invalid date range"))
	}

	records, err := s.db.ListTasksForRange(c.Request().Context(), userID, from, to)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, msg("An error occurred: %v", err))
	}
	return c.JSON(http.StatusOK, report.Build(records, from, to))
}

type sendReportRequest struct {
	UserID   string `json:"user_id"`
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
	TaskDate string `json:"task_date"`
	Role     string `json:"role"`
}

func (s *Server) handleSendReport(c echo.Context) error {
	var req sendReportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, msg("invalid request body"))
	}
	ctx := c.Request().Context()

	u, err := s.db.GetUser(ctx, req.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, msg("An error occurred: %v", err))
	}
	if u == nil {
		return c.JSON(http.StatusNotFound, msg("User not found"))
	}

	// The requester's role decides column visibility; unknown values
	// degrade to the employee view.
	role, err := models.ParseRole(req.Role)
	if err != nil {
		role = models.RoleEmployee
	}

	var scope models.ReportScope
	var records []models.TaskRecord
	if req.TaskDate != "" {
		date, err := models.ParseDate(req.TaskDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, msg("Invalid task_date"))
		}
		scope = models.ScopeForDay(date)
		records, err = s.db.ListTasksForDate(ctx, req.UserID, date)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, msg("An error occurred: %v", err))
		}
	} else {
		from, to, err := parseRange(req.FromDate, req.ToDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, msg("Invalid date range"))
		}
		scope = models.ScopeForRange(from, to)
		records, err = s.db.ListTasksForRange(ctx, req.UserID, from, to)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, msg("An error occurred: %v", err))
		}
	}

	// NoData is a distinct outcome: the renderer is never invoked
	// without tasks.
	if len(records) == 0 {
		return c.JSON(http.StatusNotFound, msg("No tasks found for the specified date(s)"))
	}

	in := render.Input{
		UserID: req.UserID,
		Email:  u.Email,
		Role:   role,
		Scope:  scope,
		Report: report.ForScope(records, scope),
		Days:   report.GroupByDay(records),
	}

	artifacts, err := render.Render(in)
	if err != nil {
		s.logger.Error("report rendering failed", zap.String("user_id", req.UserID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, msg("Failed to generate report: %v", err))
	}

	if _, err := s.delivery.Send(in, artifacts); err != nil {
		if errors.Is(err, delivery.ErrDeliver) {
			// Artifacts are on disk; only transmission failed.
			return c.JSON(http.StatusInternalServerError, msg("Failed to send report: %v", err))
		}
		return c.JSON(http.StatusInternalServerError, msg("Failed to save report: %v", err))
	}
	return c.JSON(http.StatusOK, msg("Report sent and saved successfully"))
}

// ---- payroll ----

type employeeRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

func (s *Server) handleAddEmployee(c echo.Context) error {
	var req employeeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, msg("invalid request body"))
	}
	e := &models.Employee{Name: req.Name, Email: req.Email, Department: req.Department}
	if err := s.db.CreateEmployee(c.Request().Context(), e); err != nil {
		return c.JSON(http.StatusBadRequest, msg("Email already exists"))
	}
	return c.JSON(http.StatusCreated, msg("Employee added successfully"))
}

type payrollRequest struct {
	EmployeeID int64   `json:"employee_id"`
	Period     string  `json:"period"`
	Salary     float64 `json:"salary"`
	Bonus      float64 `json:"bonus"`
	Deductions float64 `json:"deductions"`
	Tax        float64 `json:"tax"`
}

func (s *Server) handleAddPayroll(c echo.Context) error {
	var req payrollRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, msg("invalid request body"))
	}
	p := &models.PayrollRecord{
		EmployeeID: req.EmployeeID,
		Period:     req.Period,
		Salary:     req.Salary,
		Bonus:      req.Bonus,
		Deductions: req.Deductions,
		Tax:        req.Tax,
	}
	if err := s.db.CreatePayrollRecord(c.Request().Context(), p); err != nil {
		return c.JSON(http.StatusBadRequest, msg("Failed to add payroll record"))
	}
	return c.JSON(http.StatusCreated, msg("Payroll record added successfully"))
}

func (s *Server) handleListPayroll(c echo.Context) error {
	var employeeID int64
	if err := echo.QueryParamsBinder(c).Int64("employee_id", &employeeID).BindError(); err != nil {
		return c.JSON(http.StatusBadRequest, msg("invalid employee_id"))
	}
	records, err := s.db.ListPayrollRecords(c.Request().Context(), employeeID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, msg("An error occurred: %v", err))
	}
	return c.JSON(http.StatusOK, records)
}
