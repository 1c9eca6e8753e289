// Package coin implements the per-coin shot lifecycle: denomination selection,
// inventory, aiming, launch, spin window and outcome resolution.
package coin

import "time"

// Denomination is one of the three coin value tiers.
type Denomination int

const (
	Nickel Denomination = iota
	Dime
	Quarter

	numDenominations
)

// Priority is the fixed order used when auto-selecting the next coin.
var Priority = [...]Denomination{Nickel, Dime, Quarter}

func (d Denomination) String() string {
	switch d {
	case Nickel:
		return "nickel"
	case Dime:
		return "dime"
	case Quarter:
		return "quarter"
	default:
		return "unknown"
	}
}

// Plural returns the display name used on the inventory panel.
func (d Denomination) Plural() string {
	switch d {
	case Nickel:
		return "Nickels"
	case Dime:
		return "Dimes"
	case Quarter:
		return "Quarters"
	default:
		return "Coins"
	}
}

// Valid reports whether d names a real denomination.
func (d Denomination) Valid() bool {
	return d >= Nickel && d < numDenominations
}

// Spec is the fixed point value and spin window of a denomination.
// Higher value coins get less spin time.
type Spec struct {
	Value    int
	SpinTime time.Duration
}

// Table maps each denomination to its Spec.
type Table [numDenominations]Spec

// DefaultTable returns the stock values: 5c/5s, 10c/3.5s, 25c/2s.
func DefaultTable() Table {
	return Table{
		Nickel:  {Value: 5, SpinTime: 5 * time.Second},
		Dime:    {Value: 10, SpinTime: 3500 * time.Millisecond},
		Quarter: {Value: 25, SpinTime: 2 * time.Second},
	}
}

// Spec returns the entry for d, or the zero Spec for an invalid denomination.
func (t Table) Spec(d Denomination) Spec {
	if !d.Valid() {
		return Spec{}
	}
	return t[d]
}
