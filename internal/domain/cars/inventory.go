package cars

import "errors"

var (
	ErrNotFound    = errors.New("car not found")
	ErrNoInventory = errors.New("car is not available for rental")
)

func (c *Car) Available() bool {
	return c.Inventory > 0
}

// Debit reserves exactly one unit. Inventory never goes below zero;
// the caller persists the car in the same transaction that created the
// rental, so two racing debits cannot both take the last unit.
func (c *Car) Debit() error {
	if c.Inventory <= 0 {
		return ErrNoInventory
	}
	c.Inventory--
	return nil
}

// Credit returns one unit to the fleet. Credits are paired 1:1 with
// prior debits because closing a rental is a one-way transition.
func (c *Car) Credit() {
	c.Inventory++
}
