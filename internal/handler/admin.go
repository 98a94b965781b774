package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/office-seat-reservation/internal/config"
	"github.com/iliyamo/office-seat-reservation/internal/model"
	"github.com/iliyamo/office-seat-reservation/internal/repository"
	"github.com/iliyamo/office-seat-reservation/internal/schedule"
)

// AdminHandler serves the management panel: employee roster plus
// per-date booking and leave listings.  Every route behind it
// requires the admin role.
type AdminHandler struct {
	Cfg       config.Config
	Oracle    *schedule.Oracle
	Employees *repository.EmployeeRepo
	Bookings  *repository.BookingRepo
	Leaves    *repository.LeaveRepo
}

func NewAdminHandler(cfg config.Config, o *schedule.Oracle,
	e *repository.EmployeeRepo, b *repository.BookingRepo, l *repository.LeaveRepo) *AdminHandler {
	return &AdminHandler{Cfg: cfg, Oracle: o, Employees: e, Bookings: b, Leaves: l}
}

// ListEmployees returns the full roster ordered by batch then name.
func (h *AdminHandler) ListEmployees(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	emps, err := h.Employees.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]employeePart, 0, len(emps))
	for _, e := range emps {
		out = append(out, employeePart{ID: e.ID, Name: e.Name, Email: e.Email, Batch: e.Batch, Role: e.Role})
	}
	return c.JSON(http.StatusOK, echo.Map{"employees": out})
}

type createEmployeeReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Batch    int    `json:"batch"`
	Role     string `json:"role"` // user | admin
}

// CreateEmployee provisions an account, including admin accounts,
// which self-registration never issues.
func (h *AdminHandler) CreateEmployee(c echo.Context) error {
	var req createEmployeeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/email/password required"})
	}
	if req.Batch != 1 && req.Batch != 2 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "batch must be 1 or 2"})
	}
	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role != model.RoleAdmin {
		role = model.RoleUser
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Employees.Create(ctx, req.Name, req.Email, req.Password, req.Batch, role, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create employee failed"})
	}
	return c.JSON(http.StatusCreated, employeePart{
		ID: id, Name: req.Name, Email: req.Email, Batch: req.Batch, Role: role,
	})
}

// DeleteEmployee removes a non-admin account.
func (h *AdminHandler) DeleteEmployee(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid employee id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ok, err := h.Employees.Delete(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "employee not found or is an admin"})
	}
	return c.NoContent(http.StatusNoContent)
}

// adminDate parses the date query parameter, defaulting to today.
func (h *AdminHandler) adminDate(c echo.Context) (time.Time, error) {
	loc := h.Oracle.Location()
	s := c.QueryParam("date")
	if s == "" {
		s = time.Now().In(loc).Format(dateLayout)
	}
	return parseDate(s, loc)
}

// ListBookings returns all active bookings for a date with employee
// details.
func (h *AdminHandler) ListBookings(c echo.Context) error {
	date, err := h.adminDate(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.Bookings.ListForDate(ctx, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"date":     date.Format(dateLayout),
		"bookings": bookings,
	})
}

// ListLeaves returns all declared leaves for a date with employee
// details.
func (h *AdminHandler) ListLeaves(c echo.Context) error {
	date, err := h.adminDate(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	leaves, err := h.Leaves.ListByDate(ctx, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"date":   date.Format(dateLayout),
		"leaves": leaves,
	})
}
