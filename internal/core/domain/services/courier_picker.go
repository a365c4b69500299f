package services

import (
	"errors"

	"hyperlocal/internal/core/domain/model/courier"
)

// ErrNoCourierAvailable is returned when the picker has no available courier
// to hand out. During a sweep this marks orders that must wait for the next
// sweep rather than failing the sweep itself.
var ErrNoCourierAvailable = errors.New("no courier available")

// CourierPicker is a domain service that deals couriers out to the dispatch
// sweep, round-robin over the available pool.
//
// Business rules:
//   - Couriers are handed out in pool order
//   - The cursor wraps around: when the backlog is larger than the pool a
//     courier may legitimately receive more than one order per sweep, but
//     never a second one before every other courier has received a first
//
// A picker is built per sweep from a snapshot of available couriers and is
// not safe for concurrent use.
type CourierPicker struct {
	pool []*courier.Courier
	next int
}

// NewCourierPicker creates a picker over the given availability snapshot.
// Couriers that are not available are excluded from the pool.
func NewCourierPicker(couriers []*courier.Courier) (*CourierPicker, error) {
	pool := make([]*courier.Courier, 0, len(couriers))
	for _, c := range couriers {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if c.IsAvailable() {
			pool = append(pool, c)
		}
	}
	return &CourierPicker{pool: pool}, nil
}

// PoolSize returns the number of couriers the picker deals over.
func (p *CourierPicker) PoolSize() int {
	return len(p.pool)
}

// Pick returns the next courier in round-robin order, wrapping around the
// pool, or ErrNoCourierAvailable when the pool is empty.
func (p *CourierPicker) Pick() (*courier.Courier, error) {
	if len(p.pool) == 0 {
		return nil, ErrNoCourierAvailable
	}
	c := p.pool[p.next%len(p.pool)]
	p.next++
	return c, nil
}
