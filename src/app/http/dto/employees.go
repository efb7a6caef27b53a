package dto

import (
	"fmt"
	"time"

	"employeedirectory/src/core/domain"
	"employeedirectory/src/core/usecase"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// EmployeeRequest is the payload for creating or fully updating an employee.
// Every field is required.
type EmployeeRequest struct {
	FirstName      string  `json:"first_name" binding:"required"`
	LastName       string  `json:"last_name" binding:"required"`
	Birthdate      string  `json:"birthdate" binding:"required"`
	EmploymentDate string  `json:"employment_date" binding:"required"`
	HomeAddress    string  `json:"home_address" binding:"required"`
	CurrentSalary  float64 `json:"current_salary" binding:"required"`
	Role           string  `json:"role" binding:"required"`
	Boss           string  `json:"boss" binding:"required"`
}

// ToTransfer converts the request into the domain transfer shape,
// parsing the wire-format dates.
func (r *EmployeeRequest) ToTransfer() (domain.EmployeeTransfer, error) {
	birthdate, err := parseDate(r.Birthdate)
	if err != nil {
		return domain.EmployeeTransfer{}, fmt.Errorf("birthdate: %w", err)
	}
	employmentDate, err := parseDate(r.EmploymentDate)
	if err != nil {
		return domain.EmployeeTransfer{}, fmt.Errorf("employment_date: %w", err)
	}
	return domain.EmployeeTransfer{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Birthdate:      birthdate,
		EmploymentDate: employmentDate,
		HomeAddress:    r.HomeAddress,
		CurrentSalary:  r.CurrentSalary,
		Role:           r.Role,
		Boss:           r.Boss,
	}, nil
}

// UpdateSalaryRequest is the payload for the salary-only update.
type UpdateSalaryRequest struct {
	Salary int `json:"salary" binding:"required"`
}

// EmployeeResponse is the wire representation of an employee record.
type EmployeeResponse struct {
	ID             string  `json:"id"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Birthdate      string  `json:"birthdate"`
	EmploymentDate string  `json:"employment_date"`
	HomeAddress    string  `json:"home_address"`
	CurrentSalary  float64 `json:"current_salary"`
	Role           string  `json:"role"`
	Boss           string  `json:"boss"`
}

// FromDomain maps a domain entity to its wire representation.
func FromDomain(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:             e.ID.String(),
		FirstName:      e.FirstName,
		LastName:       e.LastName,
		Birthdate:      e.Birthdate.Format(DateLayout),
		EmploymentDate: e.EmploymentDate.Format(DateLayout),
		HomeAddress:    e.HomeAddress,
		CurrentSalary:  e.CurrentSalary,
		Role:           e.Role,
		Boss:           e.Boss,
	}
}

// FromDomainList maps a slice of entities, always yielding a non-nil slice
// so empty results serialize as [] rather than null.
func FromDomainList(employees []domain.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(employees))
	for i := range employees {
		out = append(out, FromDomain(&employees[i]))
	}
	return out
}

// AverageSalaryResponse shapes the salary aggregate, including the
// traditional report line.
type AverageSalaryResponse struct {
	Role          string  `json:"role"`
	Count         int     `json:"count"`
	AverageSalary float64 `json:"average_salary"`
	Message       string  `json:"message"`
}

// FromSummary maps the usecase aggregate to its wire representation.
func FromSummary(s *usecase.RoleSalarySummary) AverageSalaryResponse {
	return AverageSalaryResponse{
		Role:          s.Role,
		Count:         s.Count,
		AverageSalary: s.AverageSalary,
		Message:       s.String(),
	}
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected %s format: %w", DateLayout, err)
	}
	return t, nil
}
