// Package domain contains the core domain model for the employee directory.
//
// This package defines:
//   - Employee: the self-validating directory entity
//   - EmployeeTransfer: the unvalidated transfer shape used across the
//     service boundary for create and update
//   - Domain Errors: categorized business rule violation errors
//
// Rules for this package:
//   - No infrastructure concerns (database, HTTP, etc.)
//   - Entities validate their own invariants at the point of assignment
//   - An invalid field value is never observable on a persisted entity
package domain
