// Package cart holds the in-progress shopping basket. Transitions are pure
// bookkeeping over a line list; persistence lives behind the Adapter
// interface so the logic is testable without a store.
package cart

import "github.com/shopspring/decimal"

// Item is one cart line: a product id keyed snapshot with a quantity.
type Item struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	Quantity  int
	Image     string
}

func (it Item) Subtotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Cart is an ordered line list with at most one line per product id.
type Cart struct {
	Items []Item
}

// Add merges by product id: an existing line gets its quantity incremented,
// otherwise a new line is appended. Quantities below 1 count as 1.
func (c *Cart) Add(item Item) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity += item.Quantity
			return
		}
	}
	c.Items = append(c.Items, item)
}

// Remove drops the line entirely. Unknown ids are a no-op.
func (c *Cart) Remove(productID string) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// SetQuantity sets a line's quantity; zero or negative removes the line.
func (c *Cart) SetQuantity(productID string, qty int) {
	if qty <= 0 {
		c.Remove(productID)
		return
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = qty
			return
		}
	}
}

// Clear empties the basket; called once after an order is created.
func (c *Cart) Clear() { c.Items = nil }

func (c *Cart) IsEmpty() bool { return len(c.Items) == 0 }

// Total is the derived sum of price x quantity over all lines.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// ItemCount is the derived sum of quantities (the header badge number).
func (c *Cart) ItemCount() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}
