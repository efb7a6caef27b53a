// Package handler contains HTTP handlers for the API.
// Handlers are responsible for:
// - Parsing and validating HTTP requests
// - Calling use case methods
// - Converting results to HTTP responses
package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"employeedirectory/src/app/http/dto"
	"employeedirectory/src/app/http/response"
	"employeedirectory/src/app/middleware"
	"employeedirectory/src/core/usecase"
)

// EmployeeHandler handles the employee directory endpoints.
type EmployeeHandler struct {
	directory usecase.DirectoryUseCase
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(directory usecase.DirectoryUseCase) *EmployeeHandler {
	return &EmployeeHandler{directory: directory}
}

// List returns every employee.
// GET /v1/employees
func (h *EmployeeHandler) List(c *gin.Context) {
	employees, err := h.directory.List(c.Request.Context())
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, dto.FromDomainList(employees))
}

// Get returns a single employee by id.
// GET /v1/employees/:employee_id
func (h *EmployeeHandler) Get(c *gin.Context) {
	id, ok := h.employeeID(c)
	if !ok {
		return
	}
	emp, err := h.directory.Get(c.Request.Context(), id)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, dto.FromDomain(emp))
}

// AverageSalary reports the employee count and mean salary for a role.
// GET /v1/employees/average-salary?role=Dev
func (h *EmployeeHandler) AverageSalary(c *gin.Context) {
	summary, err := h.directory.AverageSalaryByRole(c.Request.Context(), c.Query("role"))
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, dto.FromSummary(summary))
}

// BossPeers lists every employee sharing the given employee's boss tag.
// GET /v1/employees/:employee_id/boss-peers
func (h *EmployeeHandler) BossPeers(c *gin.Context) {
	id, ok := h.employeeID(c)
	if !ok {
		return
	}
	employees, err := h.directory.ListBossPeers(c.Request.Context(), id)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, dto.FromDomainList(employees))
}

// Search filters employees by first-name substring and birthdate range.
// GET /v1/employees/search?name=John&start_date=2000-01-01&end_date=2023-10-12
func (h *EmployeeHandler) Search(c *gin.Context) {
	start, ok := h.queryDate(c, "start_date")
	if !ok {
		return
	}
	end, ok := h.queryDate(c, "end_date")
	if !ok {
		return
	}

	employees, err := h.directory.SearchByNameAndDateRange(c.Request.Context(), c.Query("name"), start, end)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, dto.FromDomainList(employees))
}

// Create adds a new employee to the directory.
// POST /v1/employees
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req dto.EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error(), middleware.GetRequestID(c))
		return
	}
	transfer, err := req.ToTransfer()
	if err != nil {
		response.BadRequest(c, err.Error(), middleware.GetRequestID(c))
		return
	}

	emp, err := h.directory.Create(c.Request.Context(), transfer)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.Created(c, dto.FromDomain(emp))
}

// Update fully replaces an employee's fields.
// PUT /v1/employees/:employee_id
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := h.employeeID(c)
	if !ok {
		return
	}
	var req dto.EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error(), middleware.GetRequestID(c))
		return
	}
	transfer, err := req.ToTransfer()
	if err != nil {
		response.BadRequest(c, err.Error(), middleware.GetRequestID(c))
		return
	}

	emp, err := h.directory.Update(c.Request.Context(), id, transfer)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, dto.FromDomain(emp))
}

// UpdateSalary reassigns only the employee's salary.
// PUT /v1/employees/:employee_id/salary
func (h *EmployeeHandler) UpdateSalary(c *gin.Context) {
	id, ok := h.employeeID(c)
	if !ok {
		return
	}
	var req dto.UpdateSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error(), middleware.GetRequestID(c))
		return
	}

	emp, err := h.directory.UpdateSalary(c.Request.Context(), id, req.Salary)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, dto.FromDomain(emp))
}

// Delete removes an employee and returns its last snapshot.
// DELETE /v1/employees/:employee_id
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := h.employeeID(c)
	if !ok {
		return
	}
	emp, err := h.directory.Delete(c.Request.Context(), id)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, dto.FromDomain(emp))
}

// employeeID parses the employee_id path parameter, replying 400 itself when
// the value is not a UUID.
func (h *EmployeeHandler) employeeID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("employee_id"))
	if err != nil {
		response.BadRequest(c, "invalid employee id", middleware.GetRequestID(c))
		return uuid.Nil, false
	}
	return id, true
}

// queryDate parses an optional date query parameter. An absent parameter maps
// to the zero time so the facade can report the missing field; a malformed
// one is rejected here.
func (h *EmployeeHandler) queryDate(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(dto.DateLayout, raw)
	if err != nil {
		response.BadRequest(c, "invalid "+name+": expected "+dto.DateLayout+" format", middleware.GetRequestID(c))
		return time.Time{}, false
	}
	return t, true
}
