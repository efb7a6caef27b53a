package domain

import (
	"errors"
	"testing"
	"time"
)

var testToday = time.Date(2023, time.October, 12, 0, 0, 0, 0, time.UTC)

func validTransfer() EmployeeTransfer {
	return EmployeeTransfer{
		FirstName:      "John",
		LastName:       "Doe",
		Birthdate:      time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC),
		EmploymentDate: time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
		HomeAddress:    "12 Main Street",
		CurrentSalary:  50000,
		Role:           "CEO",
		Boss:           "John",
	}
}

func assertViolation(t *testing.T, err error, field string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected validation error on field %q, got nil", field)
	}
	if !IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	var domainErr *DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected *DomainError, got %T", err)
	}
	if domainErr.Field != field {
		t.Fatalf("expected field %q, got %q (%v)", field, domainErr.Field, err)
	}
}

func TestNewEmployee_Valid(t *testing.T) {
	t.Parallel()

	transfer := validTransfer()
	emp, err := NewEmployee(transfer, testToday)
	if err != nil {
		t.Fatalf("NewEmployee returned error: %v", err)
	}

	if emp.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatal("expected a generated id")
	}
	if emp.FirstName != transfer.FirstName || emp.LastName != transfer.LastName {
		t.Fatalf("unexpected names: %s %s", emp.FirstName, emp.LastName)
	}
	if emp.CurrentSalary != transfer.CurrentSalary {
		t.Fatalf("expected salary %v, got %v", transfer.CurrentSalary, emp.CurrentSalary)
	}
	if !emp.IsCEO() {
		t.Fatalf("expected CEO role, got %q", emp.Role)
	}
}

func TestNewEmployee_GeneratesUniqueIDs(t *testing.T) {
	t.Parallel()

	a, err := NewEmployee(validTransfer(), testToday)
	if err != nil {
		t.Fatalf("NewEmployee returned error: %v", err)
	}
	b, err := NewEmployee(validTransfer(), testToday)
	if err != nil {
		t.Fatalf("NewEmployee returned error: %v", err)
	}
	if a.ID == b.ID {
		t.Fatalf("expected distinct ids, both were %s", a.ID)
	}
}

func TestNewEmployee_Invariants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*EmployeeTransfer)
		field  string
	}{
		{
			name:   "first name equals last name",
			mutate: func(tr *EmployeeTransfer) { tr.FirstName = "Test"; tr.LastName = "Test" },
			field:  "name",
		},
		{
			name:   "empty first name",
			mutate: func(tr *EmployeeTransfer) { tr.FirstName = "" },
			field:  "first_name",
		},
		{
			name:   "empty last name",
			mutate: func(tr *EmployeeTransfer) { tr.LastName = "" },
			field:  "last_name",
		},
		{
			name:   "too young",
			mutate: func(tr *EmployeeTransfer) { tr.Birthdate = time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC) },
			field:  "age",
		},
		{
			name:   "too old",
			mutate: func(tr *EmployeeTransfer) { tr.Birthdate = time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC) },
			field:  "age",
		},
		{
			name:   "employment date in the future",
			mutate: func(tr *EmployeeTransfer) { tr.EmploymentDate = testToday.AddDate(0, 0, 1) },
			field:  "employment_date",
		},
		{
			name:   "employment date before 2000",
			mutate: func(tr *EmployeeTransfer) { tr.EmploymentDate = time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC) },
			field:  "employment_date",
		},
		{
			name:   "empty home address",
			mutate: func(tr *EmployeeTransfer) { tr.HomeAddress = "" },
			field:  "home_address",
		},
		{
			name:   "zero salary",
			mutate: func(tr *EmployeeTransfer) { tr.CurrentSalary = 0 },
			field:  "salary",
		},
		{
			name:   "negative salary",
			mutate: func(tr *EmployeeTransfer) { tr.CurrentSalary = -100 },
			field:  "salary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			transfer := validTransfer()
			tt.mutate(&transfer)

			if _, err := NewEmployee(transfer, testToday); err == nil {
				t.Fatal("expected error, got nil")
			} else {
				assertViolation(t, err, tt.field)
			}
		})
	}
}

func TestNewEmployee_AgeBoundsInclusive(t *testing.T) {
	t.Parallel()

	// Age is a plain year difference, so month and day are irrelevant.
	for _, age := range []int{MinAge, MaxAge} {
		transfer := validTransfer()
		transfer.Birthdate = time.Date(testToday.Year()-age, time.June, 15, 0, 0, 0, 0, time.UTC)
		if _, err := NewEmployee(transfer, testToday); err != nil {
			t.Fatalf("age %d should be accepted: %v", age, err)
		}
	}
}

func TestNewEmployee_EmploymentDateBoundsInclusive(t *testing.T) {
	t.Parallel()

	for _, date := range []time.Time{EmploymentEpoch, testToday} {
		transfer := validTransfer()
		transfer.EmploymentDate = date
		if _, err := NewEmployee(transfer, testToday); err != nil {
			t.Fatalf("employment date %s should be accepted: %v", date.Format("2006-01-02"), err)
		}
	}
}

func TestApplyTransfer_KeepsIDAndReplacesFields(t *testing.T) {
	t.Parallel()

	emp, err := NewEmployee(validTransfer(), testToday)
	if err != nil {
		t.Fatalf("NewEmployee returned error: %v", err)
	}
	id := emp.ID

	next := validTransfer()
	next.FirstName = "Adam"
	next.CurrentSalary = 20000
	next.Role = "Dev"
	next.Boss = "Tom"

	if err := emp.ApplyTransfer(next, testToday); err != nil {
		t.Fatalf("ApplyTransfer returned error: %v", err)
	}
	if emp.ID != id {
		t.Fatalf("expected id %s to be retained, got %s", id, emp.ID)
	}
	if emp.FirstName != "Adam" || emp.CurrentSalary != 20000 || emp.Role != "Dev" {
		t.Fatalf("fields not replaced: %+v", emp)
	}
}

func TestApplyTransfer_FailureLeavesEntityUntouched(t *testing.T) {
	t.Parallel()

	emp, err := NewEmployee(validTransfer(), testToday)
	if err != nil {
		t.Fatalf("NewEmployee returned error: %v", err)
	}
	before := *emp

	bad := validTransfer()
	bad.CurrentSalary = -1

	if err := emp.ApplyTransfer(bad, testToday); err == nil {
		t.Fatal("expected error, got nil")
	}
	if *emp != before {
		t.Fatalf("entity mutated on failed transfer: %+v", emp)
	}
}

func TestSetFirstName_ChecksResidentLastName(t *testing.T) {
	t.Parallel()

	emp, err := NewEmployee(validTransfer(), testToday)
	if err != nil {
		t.Fatalf("NewEmployee returned error: %v", err)
	}

	err = emp.SetFirstName(emp.LastName)
	assertViolation(t, err, "name")
	if emp.FirstName != "John" {
		t.Fatalf("first name mutated on rejected assignment: %q", emp.FirstName)
	}
}

func TestSetSalary(t *testing.T) {
	t.Parallel()

	emp, err := NewEmployee(validTransfer(), testToday)
	if err != nil {
		t.Fatalf("NewEmployee returned error: %v", err)
	}

	if err := emp.SetSalary(0); err == nil {
		t.Fatal("expected error for zero salary")
	}
	if emp.CurrentSalary != 50000 {
		t.Fatalf("salary mutated on rejected assignment: %v", emp.CurrentSalary)
	}

	if err := emp.SetSalary(60000); err != nil {
		t.Fatalf("SetSalary returned error: %v", err)
	}
	if emp.CurrentSalary != 60000 {
		t.Fatalf("expected salary 60000, got %v", emp.CurrentSalary)
	}
}
