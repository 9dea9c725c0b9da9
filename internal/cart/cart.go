package cart

import "farmer-hub/internal/domain"

// Session is the active user's cart: an ordered set of lines aggregated by
// product name. At most one Session exists per process; it is only mutated
// from the single control thread, so it carries no locking.
type Session struct {
	lines []domain.CartLine
}

// NewSession creates an empty cart.
func NewSession() *Session {
	return &Session{}
}

// AddItem merges the product into an existing line with the same name or
// appends a new line with quantity 1. Matching by name rather than ID is a
// preserved compatibility quirk: two distinct listings that share a name
// collapse into one line.
func (s *Session) AddItem(product domain.Product) {
	for i := range s.lines {
		if s.lines[i].Product.Name == product.Name {
			s.lines[i].Quantity++
			return
		}
	}
	s.lines = append(s.lines, domain.CartLine{Product: product, Quantity: 1})
}

// Lines returns a snapshot of the cart in insertion order.
func (s *Session) Lines() []domain.CartLine {
	return append([]domain.CartLine(nil), s.lines...)
}

// Subtotal computes the cart total fresh on every call.
func (s *Session) Subtotal() float64 {
	var total float64
	for _, line := range s.lines {
		total += line.Total()
	}
	return total
}

// Checkout returns the subtotal as of the call and clears the cart. The
// confirmation is simulated; there is no payment step to fail or roll back.
func (s *Session) Checkout() float64 {
	total := s.Subtotal()
	s.lines = nil
	return total
}

// Clear empties the cart. Called on logout.
func (s *Session) Clear() {
	s.lines = nil
}

// ItemCount returns the sum of all line quantities.
func (s *Session) ItemCount() int {
	var count int
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}
