package models

// BasketItem is a snapshot of a menu item plus the desired quantity
type BasketItem struct {
	MenuItem
	Quantity int `json:"quantity"`
}

// LineTotal is price times quantity
func (b BasketItem) LineTotal() float64 {
	return b.Price * float64(b.Quantity)
}

// Basket is the ordered content of one session's basket
type Basket struct {
	SessionID string       `json:"-"`
	Items     []BasketItem `json:"items"`
}

// Total sums every line of the basket
func (b *Basket) Total() float64 {
	total := 0.0
	for _, item := range b.Items {
		total += item.LineTotal()
	}
	return total
}

// ItemCount sums quantities across lines
func (b *Basket) ItemCount() int {
	n := 0
	for _, item := range b.Items {
		n += item.Quantity
	}
	return n
}
