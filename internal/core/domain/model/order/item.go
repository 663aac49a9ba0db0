package order

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

// ErrItemLineIsNotConstructed is returned when an ItemLine was not created
// through the NewItemLine factory function.
var ErrItemLineIsNotConstructed = errors.New("ItemLine must be created via NewItemLine constructor")

// ErrItemNameIsRequired is returned when creating an item line without a dish name.
var ErrItemNameIsRequired = errs.NewValueIsRequiredError("name")

// ItemLine is a value object holding a snapshot of one ordered dish.
//
// Name and price are copied from the catalog at order placement, not
// referenced live, so later catalog edits do not retroactively change
// placed orders.
type ItemLine struct {
	dishID kernel.UUID
	name   string
	qty    int
	price  int

	guard guard.ConstructorGuard
}

// NewItemLine creates a validated item snapshot.
//
// Parameters:
//   - dishID: catalog identifier of the dish (must be a valid UUID)
//   - name: dish name at placement time (must be non-empty)
//   - qty: ordered quantity (must be positive)
//   - price: unit price in minor currency units at placement time (must be positive)
func NewItemLine(dishID kernel.UUID, name string, qty, price int) (ItemLine, error) {
	if err := dishID.Validate(); err != nil {
		return ItemLine{}, err
	}
	if name == "" {
		return ItemLine{}, ErrItemNameIsRequired
	}
	if qty < 1 || qty > maxItemQty {
		return ItemLine{}, errs.NewValueIsOutOfRangeError("qty", qty, 1, maxItemQty)
	}
	if price <= 0 {
		return ItemLine{}, errs.NewValueIsInvalidError("price")
	}

	return ItemLine{
		dishID: dishID,
		name:   name,
		qty:    qty,
		price:  price,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// maxItemQty bounds a single line to keep totals within int range.
const maxItemQty = 1000

// Validate ensures the item line was created through the constructor.
func (i ItemLine) Validate() error {
	return i.guard.Validate(ErrItemLineIsNotConstructed)
}

// DishID returns the catalog identifier of the snapshotted dish.
func (i ItemLine) DishID() kernel.UUID {
	return i.dishID
}

// Name returns the dish name as it was at placement time.
func (i ItemLine) Name() string {
	return i.name
}

// Qty returns the ordered quantity.
func (i ItemLine) Qty() int {
	return i.qty
}

// Price returns the unit price at placement time, in minor currency units.
func (i ItemLine) Price() int {
	return i.price
}

// Subtotal returns price multiplied by quantity.
func (i ItemLine) Subtotal() int {
	return i.price * i.qty
}

// ComputeTotal sums price*qty over the item snapshot.
// Used as the fallback when no explicit total is supplied at order creation.
func ComputeTotal(items []ItemLine) int {
	total := 0
	for _, item := range items {
		total += item.Subtotal()
	}
	return total
}
