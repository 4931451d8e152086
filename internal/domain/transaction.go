package domain

import "github.com/shopspring/decimal"

// ClientID identifies a client account
type ClientID uint16

// TxID identifies a deposit or withdrawal transaction
type TxID uint32

// TransactionType represents the type of transaction
type TransactionType string

// Transaction types
const (
	Deposit    TransactionType = "deposit"
	Withdrawal TransactionType = "withdrawal"
	Dispute    TransactionType = "dispute"
	Resolve    TransactionType = "resolve"
	Chargeback TransactionType = "chargeback"
)

// DisputeState represents where a ledger entry is in the dispute lifecycle.
// A charged-back entry is final and can never be disputed again.
type DisputeState string

// Dispute states
const (
	DisputeNone DisputeState = "none"
	Disputed    DisputeState = "disputed"
	ChargedBack DisputeState = "charged_back"
)

// Transaction represents a single input record from the transaction stream.
// Amount is nil for dispute, resolve, and chargeback records.
type Transaction struct {
	Type     TransactionType
	ClientID ClientID
	TxID     TxID
	Amount   *decimal.Decimal
}

// LedgerEntry is the retained record of an accepted deposit or withdrawal,
// used to validate later dispute, resolve, and chargeback references
type LedgerEntry struct {
	TxID         TxID
	ClientID     ClientID
	Type         TransactionType
	Amount       decimal.Decimal
	DisputeState DisputeState
}
