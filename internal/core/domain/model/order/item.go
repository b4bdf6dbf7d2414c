package order

import (
	"errors"
	"fmt"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/pkg/errs"
)

// Item is a snapshot of one purchased product line.
// Name and unit price are captured at checkout time and never re-read from
// the catalog, so the order total stays stable even if the product changes.
type Item struct {
	productID kernel.UUID
	name      string
	unitPrice kernel.Money
	quantity  int
	shopID    kernel.UUID
}

// NewItem creates a validated line item.
// Quantity must be positive and the snapshot name must not be empty.
func NewItem(productID kernel.UUID, name string, unitPrice kernel.Money, quantity int, shopID kernel.UUID) (Item, error) {
	if err := productID.Validate(); err != nil {
		return Item{}, err
	}
	if name == "" {
		return Item{}, errs.NewValueIsRequiredError("item name")
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if err := shopID.Validate(); err != nil {
		return Item{}, err
	}

	return Item{
		productID: productID,
		name:      name,
		unitPrice: unitPrice,
		quantity:  quantity,
		shopID:    shopID,
	}, nil
}

// ProductID returns the identifier of the purchased product.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// Name returns the product name snapshot taken at checkout.
func (i Item) Name() string {
	return i.name
}

// UnitPrice returns the unit price snapshot taken at checkout.
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Quantity returns the purchased quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// ShopID returns the shop the product belongs to.
func (i Item) ShopID() kernel.UUID {
	return i.shopID
}

// Subtotal returns unit price multiplied by quantity.
func (i Item) Subtotal() kernel.Money {
	return i.unitPrice.MulInt(i.quantity)
}

// Validate checks the item carries a constructed product reference.
// The zero value of Item is invalid.
func (i Item) Validate() error {
	if err := i.productID.Validate(); err != nil {
		return errors.Join(errors.New("item is not constructed"), err)
	}
	return nil
}
