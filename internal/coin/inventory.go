package coin

// Inventory holds the remaining count of each denomination. Counts never go
// negative.
type Inventory [numDenominations]int

// DefaultInventory is the starting purse: 5 nickels, 3 dimes, 2 quarters.
func DefaultInventory() Inventory {
	return Inventory{Nickel: 5, Dime: 3, Quarter: 2}
}

// Remaining returns the count for d.
func (inv Inventory) Remaining(d Denomination) int {
	if !d.Valid() {
		return 0
	}
	return inv[d]
}

// Total returns the number of coins left across all denominations.
func (inv Inventory) Total() int {
	total := 0
	for _, n := range inv {
		total += n
	}
	return total
}

// Empty reports whether every denomination is used up.
func (inv Inventory) Empty() bool {
	return inv.Total() == 0
}

// FirstAvailable returns the first denomination in priority order that still
// has coins.
func (inv Inventory) FirstAvailable() (Denomination, bool) {
	for _, d := range Priority {
		if inv[d] > 0 {
			return d, true
		}
	}
	return Nickel, false
}

// take removes one coin of d. Returns false if none were left.
func (inv *Inventory) take(d Denomination) bool {
	if !d.Valid() || inv[d] <= 0 {
		return false
	}
	inv[d]--
	return true
}

// normalize clamps negative counts from configuration to zero.
func (inv *Inventory) normalize() {
	for i := range inv {
		if inv[i] < 0 {
			inv[i] = 0
		}
	}
}
