package domain

import (
	"fmt"
	"math"
)

// MaxLineQuantity bounds the units a single cart line may hold.
const MaxLineQuantity = 999

// CartLine pairs a product snapshot with a quantity. Quantity is never below 1.
type CartLine struct {
	Product
	Quantity int `json:"quantity" bson:"quantity"`
}

// Subtotal is price × quantity.
func (l CartLine) Subtotal() int64 {
	return l.Price * int64(l.Quantity)
}

// Cart holds at most one line per product id, in insertion order.
// It is not safe for concurrent use; the owning service serializes access.
type Cart struct {
	Lines []CartLine `json:"lines" bson:"lines"`
}

func (c *Cart) index(id int64) int {
	for i := range c.Lines {
		if c.Lines[i].ID == id {
			return i
		}
	}
	return -1
}

// Add merges p into the cart: an existing line gains one unit, otherwise a
// new line with quantity 1 is appended. The cart is left unchanged when the
// line would exceed MaxLineQuantity or the total would not fit in an int64.
func (c *Cart) Add(p Product) (CartLine, error) {
	if i := c.index(p.ID); i >= 0 {
		if err := c.setQuantity(i, c.Lines[i].Quantity+1); err != nil {
			return CartLine{}, err
		}
		return c.Lines[i], nil
	}
	line := CartLine{Product: p.Clone(), Quantity: 1}
	c.Lines = append(c.Lines, line)
	if _, ok := c.checkedTotal(); !ok {
		c.Lines = c.Lines[:len(c.Lines)-1]
		return CartLine{}, fmt.Errorf("%w: cart total out of range", ErrInvalidArgument)
	}
	return line, nil
}

// UpdateQuantity applies delta to the line for id, clamping at 1. An unknown
// id is a no-op. Deltas that would push the line past MaxLineQuantity are
// rejected with ErrInvalidArgument.
func (c *Cart) UpdateQuantity(id int64, delta int) error {
	i := c.index(id)
	if i < 0 {
		return nil
	}
	if delta > MaxLineQuantity || delta < -MaxLineQuantity {
		return fmt.Errorf("%w: quantity change %d out of range", ErrInvalidArgument, delta)
	}
	return c.setQuantity(i, max(1, c.Lines[i].Quantity+delta))
}

func (c *Cart) setQuantity(i, q int) error {
	if q > MaxLineQuantity {
		return fmt.Errorf("%w: at most %d units per product", ErrInvalidArgument, MaxLineQuantity)
	}
	prev := c.Lines[i].Quantity
	c.Lines[i].Quantity = q
	if _, ok := c.checkedTotal(); !ok {
		c.Lines[i].Quantity = prev
		return fmt.Errorf("%w: cart total out of range", ErrInvalidArgument)
	}
	return nil
}

// Remove deletes the line for id. It reports whether a line was removed.
func (c *Cart) Remove(id int64) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	return true
}

// Total is the exact sum of price × quantity over all lines. Add and
// UpdateQuantity keep it within int64.
func (c *Cart) Total() int64 {
	total, _ := c.checkedTotal()
	return total
}

func (c *Cart) checkedTotal() (int64, bool) {
	var total int64
	for _, l := range c.Lines {
		if l.Quantity < 0 || l.Price < 0 {
			return 0, false
		}
		if l.Quantity > 0 && l.Price > math.MaxInt64/int64(l.Quantity) {
			return 0, false
		}
		sub := l.Subtotal()
		if sub > math.MaxInt64-total {
			return 0, false
		}
		total += sub
	}
	return total, true
}

// ItemCount is the number of units in the cart.
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// Clone returns a deep copy of the cart.
func (c *Cart) Clone() *Cart {
	out := &Cart{Lines: make([]CartLine, len(c.Lines))}
	for i, l := range c.Lines {
		out.Lines[i] = CartLine{Product: l.Product.Clone(), Quantity: l.Quantity}
	}
	return out
}
