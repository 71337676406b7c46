// Package services holds the application layer of the menu service:
// authentication and sessions, the menu catalog, per-session baskets,
// permission checks, rule-based validation and the background scheduler.
// ServiceManager wires them together over a ports.Store.
package services
