package order

import (
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one order line: a product snapshot with the price charged at checkout.
// Later catalog price changes never touch a placed item.
type Item struct {
	productID string
	quantity  int
	price     kernel.Money

	guard guard.ConstructorGuard
}

// NewItem validates a line.
//
// Returns:
//   - ValueIsRequiredError if productID is blank
//   - ValueIsOutOfRangeError if quantity is less than 1
//   - the Money validation error if price was not constructed
func NewItem(productID string, quantity int, price kernel.Money) (Item, error) {
	item := Item{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		item.setProductID(productID),
		item.setQuantity(quantity),
		item.setPrice(price),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) ProductID() string {
	return i.productID
}

func (i Item) Quantity() int {
	return i.quantity
}

func (i Item) Price() kernel.Money {
	return i.price
}

// LineTotal is price × quantity.
func (i Item) LineTotal() kernel.Money {
	return i.price.Mul(i.quantity)
}

func (i *Item) setProductID(productID string) error {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return errs.NewValueIsRequiredError("productId")
	}
	i.productID = productID
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeErrorWithCause(
			"quantity", quantity, 1, "unbounded",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	i.price = price
	return nil
}
