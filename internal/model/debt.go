package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Debt is a non-negative money amount in cents. Amounts are entered as
// decimal strings with at most two decimal places and never go negative:
// repayments are modelled as resets, not negative adjustments.
type Debt int64

// DebtZero is the debt of a contact who owes nothing.
const DebtZero Debt = 0

// NewDebt parses a decimal amount like "120" or "120.50".
func NewDebt(s string) (Debt, error) {
	s = strings.TrimSpace(s)
	if err := validate.Var(s, "required,debtamount"); err != nil {
		return 0, invalid("debt", "debt must be a non-negative number with at most 2 decimal places")
	}
	whole, frac, _ := strings.Cut(s, ".")
	cents, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || cents > (math.MaxInt64-99)/100 {
		return 0, invalid("debt", "debt amount is too large")
	}
	cents *= 100
	if frac != "" {
		for len(frac) < 2 {
			frac += "0"
		}
		f, _ := strconv.ParseInt(frac, 10, 64)
		cents += f
	}
	return Debt(cents), nil
}

// Plus returns the sum of two amounts as a new value.
func (d Debt) Plus(amount Debt) Debt { return d + amount }

// Cents returns the raw amount in cents.
func (d Debt) Cents() int64 { return int64(d) }

func (d Debt) IsZero() bool { return d == 0 }

// String renders the amount with exactly two decimal places.
func (d Debt) String() string {
	return fmt.Sprintf("%d.%02d", int64(d)/100, int64(d)%100)
}
