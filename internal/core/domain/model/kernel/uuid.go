package kernel

import (
	"fmt"

	"hyperlocal/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned by Validate for a zero-value UUID.
// Aggregates call Validate on every identifier they receive, so an ID that
// skipped the constructors is caught at the domain boundary.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID identifies every aggregate in the system: orders, shops, buyers,
// couriers, ledger entries. It wraps github.com/google/uuid so the rest of
// the domain never imports the library directly, and so the zero value is
// distinguishable from a real identifier.
//
// Construct through NewUUID, UUIDFromString, or UUIDFromBytes; the zero
// value fails Validate. Values are immutable and safe to copy.
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (version 4) identifier. This is how every new
// aggregate gets its identity.
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses the canonical textual form, as received in route
// parameters and caller headers.
//
// Example:
//
//	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
//	if err != nil {
//	    // reject the request, the path segment is not an identifier
//	}
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes rebuilds an identifier from its 16-byte binary form, the
// shape the postgres adapters store and scan. Rejects malformed input and
// the nil UUID, since a nil identifier in a stored row is data corruption,
// not a value to round-trip.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// String returns the canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" form.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes exposes the underlying uuid.UUID for the persistence layer; assign
// it to a variable and slice it where a []byte is needed. Domain code has
// no reason to call this.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether two identifiers are the same value.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate rejects the zero value with ErrUUIDIsNotConstructed. Any UUID
// that came out of a constructor passes.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
