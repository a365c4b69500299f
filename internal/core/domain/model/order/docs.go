// Package order contains the Order aggregate and its supporting value
// objects: the lifecycle Status with its role-gated transition table, the
// immutable ProductLine snapshot, and the append-only TimelineEntry audit
// history.
//
// An order is placed by a buyer against one shop, confirmed or declined by
// the vendor, handed to a courier, and closed by a code-verified handoff to
// the buyer. Each state change appends exactly one timeline entry recording
// who did what and when.
package order
