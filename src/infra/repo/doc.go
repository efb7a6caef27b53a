// Package repo contains the PostgreSQL implementation of the repository
// ports defined in src/core/ports.
//
// The repository receives a Querier (satisfied by *pgxpool.Pool in
// production and by pgxmock in tests) via constructor injection. Entity
// invariants are enforced here at the write path: rows are only inserted or
// updated through a validated domain.Employee.
package repo
