package deck

// Hand represents the cards a player is still holding, in display order
type Hand []Card

// Find returns the index of the first card structurally equal to c
func (h Hand) Find(c Card) (int, bool) {
	for i, held := range h {
		if held == c {
			return i, true
		}
	}
	return -1, false
}

// Contains reports whether the hand holds a card structurally equal to c
func (h Hand) Contains(c Card) bool {
	_, ok := h.Find(c)
	return ok
}

// Remove returns a copy of the hand without the first card structurally
// equal to c. The original hand is left untouched.
func (h Hand) Remove(c Card) Hand {
	idx, ok := h.Find(c)
	if !ok {
		return h
	}
	removed := make(Hand, 0, len(h)-1)
	removed = append(removed, h[:idx]...)
	removed = append(removed, h[idx+1:]...)
	return removed
}
