package courier

import (
	"crypto/rand"
	"errors"

	"hyperlocal/internal/core/domain/model/kernel"

	"hyperlocal/internal/pkg/errs"
	"hyperlocal/internal/pkg/guard"
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to register a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrContactIsRequired is returned when attempting to register a courier without a contact.
	ErrContactIsRequired = errs.NewValueIsRequiredError("contact")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// Courier represents a delivery courier registered by an operator.
// It is an aggregate root that manages courier identity, availability for
// dispatch, and the cached commission total.
//
// Key responsibilities:
//   - Managing courier identity (ID, name, contact, login code)
//   - Tracking availability so dispatch only targets couriers on shift
//   - Caching the earned commission total
//
// Business rules:
//   - A courier must have a valid UUID, a non-empty name and a contact
//   - A 6-digit login code is generated once at registration and never rotated
//   - New couriers start unavailable until they explicitly go on shift
//   - The commission ledger is the source of truth for earnings; the total
//     held here is a cached read model reconciled against the ledger
type Courier struct {
	// id uniquely identifies the courier
	id kernel.UUID
	// name is the human-readable name of the courier
	name string
	// contact is the phone number or other reachable address
	contact string
	// loginCode is the 6-digit code the courier authenticates with
	loginCode string
	// isAvailable reports whether dispatch may hand orders to this courier
	isAvailable bool
	// totalCommission is the cached sum of the courier's ledger entries
	totalCommission float64
	// guard ensures the courier was properly constructed
	guard guard.ConstructorGuard
}

// NewCourier registers a new Courier with the specified identity.
// This is the only way to create a fresh Courier instance.
//
// The constructor validates all input parameters, generates the courier's
// 6-digit login code and starts the courier off shift with a zero
// commission total.
//
// Parameters:
//   - id: Unique identifier for the courier (must be valid UUID)
//   - name: Human-readable name (must be non-empty)
//   - contact: Phone number or other reachable address (must be non-empty)
//
// Returns:
//   - *Courier: A fully initialized courier, unavailable until SetAvailability
//   - error: Validation error if any parameter is invalid (aggregated errors
//     for multiple issues)
func NewCourier(id kernel.UUID, name string, contact string) (*Courier, error) {
	c := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setContact(contact),
	); err != nil {
		return nil, err
	}

	c.loginCode = newLoginCode()
	return c, nil
}

// RestoreCourier reconstructs a Courier aggregate from persistent storage,
// preserving its availability, login code and cached commission total.
// Unlike NewCourier it does not generate a login code.
func RestoreCourier(
	id kernel.UUID,
	name string,
	contact string,
	loginCode string,
	isAvailable bool,
	totalCommission float64,
) (*Courier, error) {
	c := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setContact(contact),
	); err != nil {
		return nil, err
	}

	c.loginCode = loginCode
	c.isAvailable = isAvailable
	c.totalCommission = totalCommission
	return c, nil
}

// Validate ensures the Courier was created through a constructor.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// IsEqual compares two couriers by identity.
func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the courier's human-readable name.
func (c *Courier) Name() string {
	return c.name
}

// Contact returns the courier's contact address.
func (c *Courier) Contact() string {
	return c.contact
}

// LoginCode returns the courier's 6-digit login code.
func (c *Courier) LoginCode() string {
	return c.loginCode
}

// IsAvailable reports whether dispatch may hand orders to this courier.
func (c *Courier) IsAvailable() bool {
	return c.isAvailable
}

// TotalCommission returns the cached sum of the courier's ledger entries.
func (c *Courier) TotalCommission() float64 {
	return c.totalCommission
}

// SetAvailability puts the courier on or off shift. Going off shift does not
// touch orders already assigned; it only removes the courier from future
// dispatch scans.
func (c *Courier) SetAvailability(available bool) error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.isAvailable = available
	return nil
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Courier) setContact(contact string) error {
	if contact == "" {
		return ErrContactIsRequired
	}
	c.contact = contact
	return nil
}

// newLoginCode generates the 6-digit login code couriers authenticate
// with, drawn from the system's secure randomness source.
func newLoginCode() string {
	var buf [6]byte
	rand.Read(buf[:])
	for i, b := range buf {
		buf[i] = '0' + b%10
	}
	return string(buf[:])
}
