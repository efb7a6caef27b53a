package domain

import (
	"time"

	"github.com/google/uuid"
)

// CEORole is the role value subject to the collection-wide uniqueness rule:
// at most one employee may hold it at any time. The rule itself is enforced
// above the entity, in the directory facade, because no single record can
// see the whole collection.
const CEORole = "CEO"

// Age bounds evaluated when a birthdate is assigned. Age is computed as a
// plain year difference, matching the store's historical behavior.
const (
	MinAge = 18
	MaxAge = 70
)

// EmploymentEpoch is the earliest accepted employment date.
var EmploymentEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// EmployeeTransfer is the unvalidated flat shape that carries create/update
// input across the service boundary. Every field is required at the boundary;
// the entity setters decide whether the values are acceptable.
type EmployeeTransfer struct {
	FirstName      string
	LastName       string
	Birthdate      time.Time
	EmploymentDate time.Time
	HomeAddress    string
	CurrentSalary  float64
	Role           string
	Boss           string
}

// Employee is the validated directory record. Field values only change
// through the setters below, each of which enforces its own invariant at
// assignment time. A construction or full replace that trips any invariant
// aborts without leaving a partially-assigned entity behind.
type Employee struct {
	ID             uuid.UUID
	FirstName      string
	LastName       string
	Birthdate      time.Time
	EmploymentDate time.Time
	HomeAddress    string
	CurrentSalary  float64
	Role           string
	Boss           string
}

// NewEmployee builds a validated Employee from a transfer shape.
// The id is generated here and never changes afterwards. today is the
// reference date for the age and employment-date invariants; they are not
// re-validated later if the clock advances.
func NewEmployee(t EmployeeTransfer, today time.Time) (*Employee, error) {
	e := &Employee{ID: uuid.New()}
	if err := e.assign(t, today); err != nil {
		return nil, err
	}
	return e, nil
}

// ApplyTransfer overwrites every field except the id from the transfer shape,
// re-validating all entity invariants. On failure the receiver is left
// untouched.
func (e *Employee) ApplyTransfer(t EmployeeTransfer, today time.Time) error {
	scratch := *e
	if err := scratch.assign(t, today); err != nil {
		return err
	}
	*e = scratch
	return nil
}

// assign runs every setter in turn and stops at the first violation.
// The setters are independent except for the first/last name clash check,
// which compares against whichever name is already resident.
func (e *Employee) assign(t EmployeeTransfer, today time.Time) error {
	if err := e.SetFirstName(t.FirstName); err != nil {
		return err
	}
	if err := e.SetLastName(t.LastName); err != nil {
		return err
	}
	if err := e.SetBirthdate(t.Birthdate, today); err != nil {
		return err
	}
	if err := e.SetEmploymentDate(t.EmploymentDate, today); err != nil {
		return err
	}
	if err := e.SetHomeAddress(t.HomeAddress); err != nil {
		return err
	}
	if err := e.SetSalary(t.CurrentSalary); err != nil {
		return err
	}
	e.Role = t.Role
	e.Boss = t.Boss
	return nil
}

// SetFirstName assigns the first name. It must be non-empty and must differ
// from the resident last name (exact, case-sensitive comparison).
func (e *Employee) SetFirstName(v string) error {
	if v == "" {
		return NewValidationError("first_name", "first name is required")
	}
	if v == e.LastName {
		return NewValidationError("name", "first name cannot be the same as last name")
	}
	e.FirstName = v
	return nil
}

// SetLastName assigns the last name. It must be non-empty and must differ
// from the resident first name (exact, case-sensitive comparison).
func (e *Employee) SetLastName(v string) error {
	if v == "" {
		return NewValidationError("last_name", "last name is required")
	}
	if v == e.FirstName {
		return NewValidationError("name", "last name cannot be the same as first name")
	}
	e.LastName = v
	return nil
}

// SetBirthdate assigns the birthdate. The age computed against today must
// fall in [MinAge, MaxAge].
func (e *Employee) SetBirthdate(v, today time.Time) error {
	age := today.Year() - v.Year()
	if age < MinAge || age > MaxAge {
		return NewValidationError("age", "employee must be at least 18 years old and not older than 70 years")
	}
	e.Birthdate = v
	return nil
}

// SetEmploymentDate assigns the employment date, which must lie in
// [EmploymentEpoch, today].
func (e *Employee) SetEmploymentDate(v, today time.Time) error {
	if v.After(today) {
		return NewValidationError("employment_date", "employment date cannot be a future date")
	}
	if v.Before(EmploymentEpoch) {
		return NewValidationError("employment_date", "employment date cannot be earlier than 2000-01-01")
	}
	e.EmploymentDate = v
	return nil
}

// SetHomeAddress assigns the home address. Free-form, but required.
func (e *Employee) SetHomeAddress(v string) error {
	if v == "" {
		return NewValidationError("home_address", "home address is required")
	}
	e.HomeAddress = v
	return nil
}

// SetSalary assigns the current salary, which must be greater than 0.
func (e *Employee) SetSalary(v float64) error {
	if v <= 0 {
		return NewValidationError("salary", "salary must be greater than 0")
	}
	e.CurrentSalary = v
	return nil
}

// IsCEO reports whether this record holds the CEO role.
func (e *Employee) IsCEO() bool {
	return e.Role == CEORole
}
