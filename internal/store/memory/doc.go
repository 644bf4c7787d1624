// Package memory provides in-memory implementations of the store
// interfaces. Data lives in process memory guarded by a read-write mutex
// and is lost on restart; the backend exists for demos, tests, and
// running the API without a database.
package memory
