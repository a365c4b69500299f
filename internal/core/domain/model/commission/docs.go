// Package commission contains the commission ledger Entry: one row booked
// per delivered order, keyed by order ID for idempotence. The ledger is the
// source of truth for courier earnings; the courier aggregate's cached total
// is a derived projection.
package commission
