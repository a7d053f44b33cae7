// Package repositories implements SQLite persistence for all domain entities.
//
// Each repository handles CRUD operations with atomic sequence generation for human-readable ordering.
// Repositories support soft deletes via deleted_at timestamps and exclude deleted records from queries by default.
//
// Key Implementations:
//   - [UserRepository] : User account persistence with email-based lookups and role assignments
//   - [SessionRepository] : Login session persistence keyed by hashed cookie tokens
//
// Sequence numbers provide stable, human-readable ordering (e.g., user #42) independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
