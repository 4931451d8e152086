package domain

import "github.com/shopspring/decimal"

// balancePrecision is the number of decimal places balances are kept at
const balancePrecision = 4

// maxBalance is the largest balance magnitude the ledger accepts. It mirrors
// the 96-bit ceiling of fixed-point decimal representations; anything beyond
// it is reported as an overflow.
var maxBalance = decimal.RequireFromString("79228162514264337593543950335")

// Account holds the funds of a single client. Available funds are usable,
// held funds are frozen pending a dispute. A locked account rejects every
// further operation; locking is permanent.
type Account struct {
	ClientID  ClientID
	Available decimal.Decimal
	Held      decimal.Decimal
	Locked    bool
}

// NewAccount creates an empty, unlocked account for the given client
func NewAccount(id ClientID) *Account {
	return &Account{
		ClientID:  id,
		Available: decimal.Zero,
		Held:      decimal.Zero,
	}
}

// Deposit credits amount to the available funds
func (a *Account) Deposit(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrInvalidAmount
	}
	if a.Locked {
		return ErrAccountLocked
	}

	next := a.Available.Add(amount)
	if overflows(next) {
		return ErrOverflow
	}

	a.Available = round(next)
	return nil
}

// Withdraw debits amount from the available funds
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrInvalidAmount
	}
	if a.Locked {
		return ErrAccountLocked
	}
	if amount.GreaterThan(a.Available) {
		return ErrInsufficientFunds
	}

	next := a.Available.Sub(amount)
	if overflows(next) {
		return ErrOverflow
	}

	a.Available = round(next)
	return nil
}

// Hold moves amount from available to held funds while a dispute is open.
// Available may go negative here: the disputed funds can already have been
// withdrawn by the time the dispute arrives.
func (a *Account) Hold(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrInvalidAmount
	}
	if a.Locked {
		return ErrAccountLocked
	}

	nextAvailable := a.Available.Sub(amount)
	nextHeld := a.Held.Add(amount)
	if overflows(nextAvailable) || overflows(nextHeld) {
		return ErrOverflow
	}

	a.Available = round(nextAvailable)
	a.Held = round(nextHeld)
	return nil
}

// Release moves amount back from held to available funds, undoing a Hold
func (a *Account) Release(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrInvalidAmount
	}
	if a.Locked {
		return ErrAccountLocked
	}

	nextAvailable := a.Available.Add(amount)
	nextHeld := a.Held.Sub(amount)
	if overflows(nextAvailable) || overflows(nextHeld) {
		return ErrOverflow
	}

	a.Available = round(nextAvailable)
	a.Held = round(nextHeld)
	return nil
}

// Chargeback withdraws amount from the held funds and locks the account
func (a *Account) Chargeback(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrInvalidAmount
	}
	if a.Locked {
		return ErrAccountLocked
	}

	nextHeld := a.Held.Sub(amount)
	if overflows(nextHeld) {
		return ErrOverflow
	}

	a.Held = round(nextHeld)
	a.Locked = true
	return nil
}

// Total returns the sum of available and held funds
func (a *Account) Total() decimal.Decimal {
	return a.Available.Add(a.Held)
}

// Summary returns the reportable snapshot of the account
func (a *Account) Summary() AccountSummary {
	return AccountSummary{
		ClientID:  a.ClientID,
		Available: a.Available,
		Held:      a.Held,
		Total:     a.Total(),
		Locked:    a.Locked,
	}
}

// AccountSummary is the read-only export of an account's final state,
// consumed by the report formatters
type AccountSummary struct {
	ClientID  ClientID        `json:"client"`
	Available decimal.Decimal `json:"available"`
	Held      decimal.Decimal `json:"held"`
	Total     decimal.Decimal `json:"total"`
	Locked    bool            `json:"locked"`
}

func round(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(balancePrecision)
}

func overflows(d decimal.Decimal) bool {
	return d.Abs().GreaterThan(maxBalance)
}
