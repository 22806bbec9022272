package domain

import "fmt"

// Amount is a monetary value in minor units of an ISO 4217 currency.
// It is a value type with no identity.
type Amount struct {
	Currency   string `json:"currency"`
	MinorUnits int64  `json:"minor_units"`
}

// NewAmount creates an Amount.
func NewAmount(currency string, minorUnits int64) Amount {
	return Amount{Currency: currency, MinorUnits: minorUnits}
}

// Add returns the sum of two amounts. Currencies must match.
func (a Amount) Add(b Amount) (Amount, error) {
	if a.Currency != b.Currency {
		return Amount{}, fmt.Errorf("cannot add %s to %s", b.Currency, a.Currency)
	}
	return Amount{Currency: a.Currency, MinorUnits: a.MinorUnits + b.MinorUnits}, nil
}

// Times returns the amount scaled by a quantity.
func (a Amount) Times(quantity int64) Amount {
	return Amount{Currency: a.Currency, MinorUnits: a.MinorUnits * quantity}
}

func (a Amount) String() string {
	return fmt.Sprintf("%d %s", a.MinorUnits, a.Currency)
}
