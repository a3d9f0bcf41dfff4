// Package handler implements the HTTP surfaces of mooring.
//
// # Handlers
//
// ReceiverHandler ingests posted port snapshots and exposes the live hook
// state, alerts and reading history as JSON.
//
// EchoHandler prints every request it receives and answers 200 OK. It is the
// simplest target for the generator when checking what goes over the wire.
//
// DevHandler serves the newest snapshot file written by the generator on
// GET /hooks and static files for everything else.
//
// Middleware provides request logging, panic recovery and CORS support.
//
// # Response Format
//
// Success responses return JSON data with appropriate status codes.
// Error responses return JSON with {error, details} structure.
//
// # Server-Sent Events
//
// The /events endpoint streams service events (readings_received,
// hook_attention, hook_critical, snapshot_written) to connected clients.
package handler
