package domain

// CartLine is one distinct dish in the cart: a snapshot of the dish plus
// the requested quantity. Lines are unique by dish id.
type CartLine struct {
	Dish
	Quantity int `json:"quantity"`
}

// Cart holds the session's line items. The zero value is an empty cart.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Add inserts the dish at quantity 1, or bumps the existing line by one.
func (c *Cart) Add(dish Dish) {
	for i := range c.Lines {
		if c.Lines[i].ID == dish.ID {
			c.Lines[i].Quantity++
			return
		}
	}
	c.Lines = append(c.Lines, CartLine{Dish: dish, Quantity: 1})
}

// SetQuantity updates the line for dishID in place. A quantity of zero or
// less removes the line. Unknown ids are a no-op.
func (c *Cart) SetQuantity(dishID, quantity int) {
	if quantity <= 0 {
		kept := c.Lines[:0]
		for _, line := range c.Lines {
			if line.ID != dishID {
				kept = append(kept, line)
			}
		}
		c.Lines = kept
		return
	}
	for i := range c.Lines {
		if c.Lines[i].ID == dishID {
			c.Lines[i].Quantity = quantity
			return
		}
	}
}

// Total is the sum of price times quantity over all lines.
func (c *Cart) Total() int {
	total := 0
	for _, line := range c.Lines {
		total += line.Price * line.Quantity
	}
	return total
}

// Count is the badge number: the sum of all line quantities.
func (c *Cart) Count() int {
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

func (c *Cart) Empty() bool {
	return len(c.Lines) == 0
}

func (c *Cart) Clear() {
	c.Lines = nil
}

// Items converts the cart into order items for checkout.
func (c *Cart) Items() []OrderItem {
	items := make([]OrderItem, 0, len(c.Lines))
	for _, line := range c.Lines {
		items = append(items, OrderItem{
			DishID:   line.ID,
			DishName: line.Name,
			Quantity: line.Quantity,
			Price:    line.Price,
		})
	}
	return items
}
