// Package usecase contains the application services orchestrating domain
// and repository calls. Services perform boundary-level input checks and
// enforce the cross-record rules that no single entity can see.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"employeedirectory/src/core/domain"
	"employeedirectory/src/core/ports"
)

// DirectoryUseCase is the public surface of the directory facade.
// Handlers depend on this interface so they can be tested against a stub.
type DirectoryUseCase interface {
	List(ctx context.Context) ([]domain.Employee, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
	AverageSalaryByRole(ctx context.Context, role string) (*RoleSalarySummary, error)
	ListBossPeers(ctx context.Context, id uuid.UUID) ([]domain.Employee, error)
	SearchByNameAndDateRange(ctx context.Context, namePart string, start, end time.Time) ([]domain.Employee, error)
	Create(ctx context.Context, t domain.EmployeeTransfer) (*domain.Employee, error)
	Update(ctx context.Context, id uuid.UUID, t domain.EmployeeTransfer) (*domain.Employee, error)
	UpdateSalary(ctx context.Context, id uuid.UUID, salary int) (*domain.Employee, error)
	Delete(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
}

// RoleSalarySummary is the aggregate returned by AverageSalaryByRole.
type RoleSalarySummary struct {
	Role          string  `json:"role"`
	Count         int     `json:"count"`
	AverageSalary float64 `json:"average_salary"`
}

// String renders the summary in the directory's traditional report format.
func (s *RoleSalarySummary) String() string {
	return fmt.Sprintf("Employee Count = %d, Average Salary = %s",
		s.Count, strconv.FormatFloat(s.AverageSalary, 'f', -1, 64))
}

// DirectoryService is the directory facade. It holds no state of its own;
// every call is independently dispatched to the repository.
type DirectoryService struct {
	repo ports.EmployeeRepository
	log  *slog.Logger
}

var _ DirectoryUseCase = (*DirectoryService)(nil)

// NewDirectoryService creates a new DirectoryService.
func NewDirectoryService(repo ports.EmployeeRepository, log *slog.Logger) *DirectoryService {
	if log == nil {
		log = slog.Default()
	}
	return &DirectoryService{repo: repo, log: log}
}

// List returns every employee in the directory.
func (s *DirectoryService) List(ctx context.Context) ([]domain.Employee, error) {
	return s.repo.List(ctx)
}

// Get returns a single employee by id.
func (s *DirectoryService) Get(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	if id == uuid.Nil {
		return nil, s.refuse("get", domain.NewValidationError("id", "id is required"))
	}
	emp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.refuse("get", err)
	}
	return emp, nil
}

// AverageSalaryByRole fetches all employees holding role and reports their
// count together with the mean of their current salaries. Zero matches yield
// an empty-result outcome rather than a division by zero.
func (s *DirectoryService) AverageSalaryByRole(ctx context.Context, role string) (*RoleSalarySummary, error) {
	if role == "" {
		return nil, s.refuse("average_salary", domain.NewValidationError("role", "role is required"))
	}

	employees, err := s.repo.ListByRole(ctx, role)
	if err != nil {
		return nil, s.refuse("average_salary", err)
	}
	if len(employees) == 0 {
		return nil, s.refuse("average_salary",
			domain.NewEmptyResultError(fmt.Sprintf("no employees found with role: %s", role)))
	}

	var sum float64
	for _, e := range employees {
		sum += e.CurrentSalary
	}
	return &RoleSalarySummary{
		Role:          role,
		Count:         len(employees),
		AverageSalary: sum / float64(len(employees)),
	}, nil
}

// ListBossPeers resolves the boss tag of the given employee and returns
// every employee sharing that tag. The grouping is a single hop over the
// denormalized tag, not a hierarchy traversal.
func (s *DirectoryService) ListBossPeers(ctx context.Context, id uuid.UUID) ([]domain.Employee, error) {
	if id == uuid.Nil {
		return nil, s.refuse("boss_peers", domain.NewValidationError("id", "id is required"))
	}
	emp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.refuse("boss_peers", err)
	}
	peers, err := s.repo.ListByBossTag(ctx, emp.Boss)
	if err != nil {
		return nil, s.refuse("boss_peers", err)
	}
	return peers, nil
}

// SearchByNameAndDateRange returns employees whose first name contains
// namePart and whose birthdate falls within [start, end].
func (s *DirectoryService) SearchByNameAndDateRange(ctx context.Context, namePart string, start, end time.Time) ([]domain.Employee, error) {
	if namePart == "" {
		return nil, s.refuse("search", domain.NewValidationError("name", "name is required"))
	}
	if start.IsZero() {
		return nil, s.refuse("search", domain.NewValidationError("start_date", "start date is required"))
	}
	if end.IsZero() {
		return nil, s.refuse("search", domain.NewValidationError("end_date", "end date is required"))
	}
	employees, err := s.repo.ListByNameAndDateRange(ctx, namePart, start, end)
	if err != nil {
		return nil, s.refuse("search", err)
	}
	return employees, nil
}

// Create validates the transfer shape, applies the CEO-uniqueness guard and
// persists a new employee. The guard is check-then-act: two concurrent
// creates can both pass it before either write lands. The store offers no
// conditional write to close that window, so the race is accepted scope
// rather than papered over with locking.
func (s *DirectoryService) Create(ctx context.Context, t domain.EmployeeTransfer) (*domain.Employee, error) {
	if err := validateTransfer(t); err != nil {
		return nil, s.refuse("create", err)
	}

	if t.Role == domain.CEORole {
		if err := s.guardCEO(ctx); err != nil {
			return nil, s.refuse("create", err)
		}
	}

	emp, err := s.repo.Create(ctx, t)
	if err != nil {
		return nil, s.refuse("create", err)
	}
	return emp, nil
}

// Update performs a full replace of the employee's fields from the transfer
// shape, keeping the original id. Any update carrying the CEO role is refused
// while a CEO exists, including an update of the record currently holding it.
func (s *DirectoryService) Update(ctx context.Context, id uuid.UUID, t domain.EmployeeTransfer) (*domain.Employee, error) {
	if id == uuid.Nil {
		return nil, s.refuse("update", domain.NewValidationError("id", "id is required"))
	}
	if err := validateTransfer(t); err != nil {
		return nil, s.refuse("update", err)
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, s.refuse("update", err)
	}

	if t.Role == domain.CEORole {
		if err := s.guardCEO(ctx); err != nil {
			return nil, s.refuse("update", err)
		}
	}

	emp, err := s.repo.UpdateFull(ctx, id, t)
	if err != nil {
		return nil, s.refuse("update", err)
	}
	return emp, nil
}

// UpdateSalary reassigns only the employee's salary. A non-positive salary
// is rejected here, before any store mutation.
func (s *DirectoryService) UpdateSalary(ctx context.Context, id uuid.UUID, salary int) (*domain.Employee, error) {
	if id == uuid.Nil {
		return nil, s.refuse("update_salary", domain.NewValidationError("id", "id is required"))
	}
	if salary <= 0 {
		return nil, s.refuse("update_salary", domain.NewValidationError("salary", "salary must be greater than 0"))
	}
	emp, err := s.repo.UpdateSalary(ctx, id, salary)
	if err != nil {
		return nil, s.refuse("update_salary", err)
	}
	return emp, nil
}

// Delete removes the employee and returns its last snapshot.
func (s *DirectoryService) Delete(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	if id == uuid.Nil {
		return nil, s.refuse("delete", domain.NewValidationError("id", "id is required"))
	}
	emp, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, s.refuse("delete", err)
	}
	return emp, nil
}

// guardCEO refuses the pending write when another record already holds the
// CEO role.
func (s *DirectoryService) guardCEO(ctx context.Context) error {
	exists, err := s.repo.HasCEO(ctx)
	if err != nil {
		return err
	}
	if exists {
		return domain.NewConflictError("there can be only one employee with the CEO role")
	}
	return nil
}

// refuse forwards the failure to the diagnostic sink and hands it back
// unchanged. Logging is fire-and-forget and never alters the outcome.
func (s *DirectoryService) refuse(op string, err error) error {
	s.log.Warn("directory operation refused", "op", op, "error", err.Error())
	return err
}

// validateTransfer performs the boundary presence/shape checks on a transfer
// shape before any storage call. Entity invariants are checked again, and
// more strictly, when the values are assigned.
func validateTransfer(t domain.EmployeeTransfer) error {
	switch {
	case t.FirstName == "":
		return domain.NewValidationError("first_name", "first name is required")
	case t.LastName == "":
		return domain.NewValidationError("last_name", "last name is required")
	case t.Birthdate.IsZero():
		return domain.NewValidationError("birthdate", "birthdate is required")
	case t.EmploymentDate.IsZero():
		return domain.NewValidationError("employment_date", "employment date is required")
	case t.HomeAddress == "":
		return domain.NewValidationError("home_address", "home address is required")
	case t.CurrentSalary <= 0:
		return domain.NewValidationError("salary", "salary must be greater than 0")
	case t.Role == "":
		return domain.NewValidationError("role", "role is required")
	case t.Boss == "":
		return domain.NewValidationError("boss", "boss is required")
	}
	return nil
}
