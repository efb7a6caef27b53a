package repo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"employeedirectory/src/core/domain"
)

// Querier is the subset of *pgxpool.Pool the repository needs.
// pgxmock satisfies the same interface in tests.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

const employeeColumns = `id, first_name, last_name, birthdate, employment_date, home_address, current_salary, role, boss`

// EmployeeRepository implements ports.EmployeeRepository using pgx.
type EmployeeRepository struct {
	db    Querier
	clock domain.Clock
	log   *slog.Logger
}

// NewEmployeeRepository constructs a repository backed by Postgres.
// A nil clock defaults to the system clock.
func NewEmployeeRepository(db Querier, clock domain.Clock, log *slog.Logger) *EmployeeRepository {
	if clock == nil {
		clock = domain.SystemClock()
	}
	return &EmployeeRepository{
		db:    db,
		clock: clock,
		log:   log,
	}
}

func (r *EmployeeRepository) Health(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	const q = `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE id = $1
	`
	return scanEmployee(r.db.QueryRow(ctx, q, id))
}

func (r *EmployeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	const q = `
		SELECT ` + employeeColumns + `
		FROM employees
	`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	return collectEmployees(rows)
}

func (r *EmployeeRepository) ListByRole(ctx context.Context, role string) ([]domain.Employee, error) {
	const q = `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE role = $1
	`
	rows, err := r.db.Query(ctx, q, role)
	if err != nil {
		return nil, err
	}
	return collectEmployees(rows)
}

func (r *EmployeeRepository) ListByBossTag(ctx context.Context, tag string) ([]domain.Employee, error) {
	const q = `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE boss = $1
	`
	rows, err := r.db.Query(ctx, q, tag)
	if err != nil {
		return nil, err
	}
	return collectEmployees(rows)
}

// ListByNameAndDateRange matches first names containing namePart as a
// case-sensitive substring. position() is used instead of LIKE so the caller
// input needs no wildcard escaping. The birthdate bounds are inclusive.
func (r *EmployeeRepository) ListByNameAndDateRange(ctx context.Context, namePart string, start, end time.Time) ([]domain.Employee, error) {
	const q = `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE position($1 IN first_name) > 0
		  AND birthdate >= $2
		  AND birthdate <= $3
	`
	rows, err := r.db.Query(ctx, q, namePart, start, end)
	if err != nil {
		return nil, err
	}
	return collectEmployees(rows)
}

func (r *EmployeeRepository) Create(ctx context.Context, t domain.EmployeeTransfer) (*domain.Employee, error) {
	emp, err := domain.NewEmployee(t, r.clock.Now())
	if err != nil {
		return nil, err
	}

	const q = `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	if _, err := r.db.Exec(ctx, q,
		emp.ID, emp.FirstName, emp.LastName, emp.Birthdate, emp.EmploymentDate,
		emp.HomeAddress, emp.CurrentSalary, emp.Role, emp.Boss,
	); err != nil {
		return nil, fmt.Errorf("insert employee: %w", err)
	}
	return emp, nil
}

func (r *EmployeeRepository) UpdateFull(ctx context.Context, id uuid.UUID, t domain.EmployeeTransfer) (*domain.Employee, error) {
	emp, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := emp.ApplyTransfer(t, r.clock.Now()); err != nil {
		return nil, err
	}
	return emp, r.persist(ctx, emp)
}

func (r *EmployeeRepository) UpdateSalary(ctx context.Context, id uuid.UUID, salary int) (*domain.Employee, error) {
	emp, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := emp.SetSalary(float64(salary)); err != nil {
		return nil, err
	}

	const q = `
		UPDATE employees
		SET current_salary = $2
		WHERE id = $1
	`
	res, err := r.db.Exec(ctx, q, emp.ID, emp.CurrentSalary)
	if err != nil {
		return nil, fmt.Errorf("update employee salary: %w", err)
	}
	if res.RowsAffected() == 0 {
		return nil, domain.NewNotFoundError("employee")
	}
	return emp, nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	emp, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	const q = `
		DELETE FROM employees
		WHERE id = $1
	`
	res, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return nil, fmt.Errorf("delete employee: %w", err)
	}
	if res.RowsAffected() == 0 {
		return nil, domain.NewNotFoundError("employee")
	}
	return emp, nil
}

func (r *EmployeeRepository) HasCEO(ctx context.Context) (bool, error) {
	const q = `
		SELECT EXISTS (SELECT 1 FROM employees WHERE role = $1)
	`
	var exists bool
	if err := r.db.QueryRow(ctx, q, domain.CEORole).Scan(&exists); err != nil {
		return false, fmt.Errorf("check ceo existence: %w", err)
	}
	return exists, nil
}

// persist writes every mutable field of a validated entity back to its row.
func (r *EmployeeRepository) persist(ctx context.Context, emp *domain.Employee) error {
	const q = `
		UPDATE employees
		SET first_name = $2, last_name = $3, birthdate = $4, employment_date = $5,
		    home_address = $6, current_salary = $7, role = $8, boss = $9
		WHERE id = $1
	`
	res, err := r.db.Exec(ctx, q,
		emp.ID, emp.FirstName, emp.LastName, emp.Birthdate, emp.EmploymentDate,
		emp.HomeAddress, emp.CurrentSalary, emp.Role, emp.Boss,
	)
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	if res.RowsAffected() == 0 {
		return domain.NewNotFoundError("employee")
	}
	return nil
}

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var e domain.Employee
	err := row.Scan(
		&e.ID, &e.FirstName, &e.LastName, &e.Birthdate, &e.EmploymentDate,
		&e.HomeAddress, &e.CurrentSalary, &e.Role, &e.Boss,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("employee")
		}
		return nil, err
	}
	return &e, nil
}

func collectEmployees(rows pgx.Rows) ([]domain.Employee, error) {
	defer rows.Close()

	var employees []domain.Employee
	for rows.Next() {
		var e domain.Employee
		if err := rows.Scan(
			&e.ID, &e.FirstName, &e.LastName, &e.Birthdate, &e.EmploymentDate,
			&e.HomeAddress, &e.CurrentSalary, &e.Role, &e.Boss,
		); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}
