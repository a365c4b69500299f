// Package notification contains the persisted Notification produced by the
// transition fan-out: addressed to one user or broadcast to a role, with a
// read flag for later retrieval.
package notification
