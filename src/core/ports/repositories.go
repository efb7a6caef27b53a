// Package ports defines interfaces (ports) that connect core domain to infrastructure.
// These interfaces follow the ports and adapters (hexagonal) architecture pattern.
//
// Ports are defined here in the core layer, while implementations (adapters)
// live in src/infra/repo. This ensures the core has no dependency on infrastructure.
package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"employeedirectory/src/core/domain"
)

// Repository is the base interface for all repositories.
// Concrete repositories should embed this and add entity-specific methods.
type Repository interface {
	// Health checks if the underlying storage is reachable.
	Health(ctx context.Context) error
}

// EmployeeRepository owns all reads and writes of employee records against
// the persistent store, plus the per-call invariant checks it can see
// locally. Write operations are load-then-mutate-then-persist; the store is
// durable per write but offers no multi-record transaction, so cross-record
// rules (CEO uniqueness) are guarded above this interface.
type EmployeeRepository interface {
	Repository

	// GetByID returns the employee with the given id, or a not-found error.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error)

	// List returns every employee in store order.
	List(ctx context.Context) ([]domain.Employee, error)

	// ListByRole returns employees whose role matches exactly.
	ListByRole(ctx context.Context, role string) ([]domain.Employee, error)

	// ListByBossTag returns employees whose boss tag matches exactly.
	ListByBossTag(ctx context.Context, tag string) ([]domain.Employee, error)

	// ListByNameAndDateRange returns employees whose first name contains
	// namePart (case-sensitive) and whose birthdate lies in [start, end],
	// inclusive on both ends.
	ListByNameAndDateRange(ctx context.Context, namePart string, start, end time.Time) ([]domain.Employee, error)

	// Create validates a new employee from the transfer shape, persists it
	// and returns the stored entity including its generated id. The write
	// never partially succeeds.
	Create(ctx context.Context, t domain.EmployeeTransfer) (*domain.Employee, error)

	// UpdateFull overwrites every field of the stored employee from the
	// transfer shape, re-validating entity invariants. The id is retained.
	UpdateFull(ctx context.Context, id uuid.UUID, t domain.EmployeeTransfer) (*domain.Employee, error)

	// UpdateSalary reassigns only the current salary of the stored employee.
	UpdateSalary(ctx context.Context, id uuid.UUID, salary int) (*domain.Employee, error)

	// Delete removes the employee from the store and returns the removed
	// record's snapshot.
	Delete(ctx context.Context, id uuid.UUID) (*domain.Employee, error)

	// HasCEO reports whether any employee currently holds the CEO role.
	// Named here so the collection-wide uniqueness rule stays centrally
	// testable instead of being re-derived by callers.
	HasCEO(ctx context.Context) (bool, error)
}
