// Package dto contains Data Transfer Objects for HTTP requests and responses.
//
// DTOs are separate from domain entities to:
//   - Control what data is exposed in the API
//   - Handle JSON serialization/deserialization
//   - Add validation tags for request binding
//   - Version the API without changing domain models
//
// Dates cross the wire as "YYYY-MM-DD" strings and are parsed here, so the
// core never sees raw request payloads.
package dto
