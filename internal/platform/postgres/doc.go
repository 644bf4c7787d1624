// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package. It handles query
// execution, error-code mapping, and data mapping between domain entities and
// database records. Connections use database/sql over the pgx stdlib driver.
package postgres
