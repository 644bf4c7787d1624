// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, allowing the HTTP layer to run against
// either the in-memory backend or PostgreSQL without modification.
package store
