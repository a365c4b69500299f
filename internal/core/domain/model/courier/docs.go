// Package courier contains the Courier aggregate: the registered delivery
// partner identity, its on/off shift availability used by dispatch, and the
// cached commission total reconciled against the commission ledger.
package courier
