// Package service holds the receiver's business logic between the HTTP
// handlers and the monitor and repository layers, and the event bus that
// fans state changes out to SSE clients.
package service
