// Package repository defines the persistence boundary of the receiver.
//
// The receiver keeps its live state in memory (internal/monitor); a
// ReadingStore adds durable history of every received batch so that hook
// timelines survive restarts and can be queried beyond the in-memory window.
package repository
