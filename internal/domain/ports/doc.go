// Package ports defines the interfaces (ports) that storage and event adapters must implement.
// Services depend only on these interfaces so the in-memory store used by default and the
// MySQL store are interchangeable, and tests can substitute fakes.
package ports
