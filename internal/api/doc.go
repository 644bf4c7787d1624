// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It acts as an adapter between external clients
// and the storage layer, translating HTTP concerns to store operations.
package api
