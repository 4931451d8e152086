package engine

import (
	"fmt"
	"sort"

	"github.com/tirasundara/payments-engine/internal/domain"
)

// Engine replays a stream of transaction records against client accounts.
// It owns the account map and the log of accepted deposits and withdrawals;
// records are applied strictly in input order by a single caller, and a
// rejected record leaves both maps untouched.
type Engine struct {
	accounts map[domain.ClientID]*domain.Account
	txLog    map[domain.TxID]*domain.LedgerEntry
}

// New creates an Engine with no accounts and an empty transaction log
func New() *Engine {
	return &Engine{
		accounts: make(map[domain.ClientID]*domain.Account),
		txLog:    make(map[domain.TxID]*domain.LedgerEntry),
	}
}

// Apply validates and applies a single transaction record. The returned
// errors are the business-rule sentinels from the domain package; an unknown
// transaction type is reported as a generic error instead.
func (e *Engine) Apply(tx domain.Transaction) error {
	account := e.account(tx.ClientID)
	if account.Locked {
		return domain.ErrAccountLocked
	}

	switch tx.Type {
	case domain.Deposit:
		return e.applyDeposit(account, tx)
	case domain.Withdrawal:
		return e.applyWithdrawal(account, tx)
	case domain.Dispute:
		return e.applyDispute(account, tx)
	case domain.Resolve:
		return e.applyResolve(account, tx)
	case domain.Chargeback:
		return e.applyChargeback(account, tx)
	default:
		return fmt.Errorf("unknown transaction type %q", tx.Type)
	}
}

// Snapshot returns the final state of every account, sorted by client id
func (e *Engine) Snapshot() []domain.AccountSummary {
	summaries := make([]domain.AccountSummary, 0, len(e.accounts))
	for _, account := range e.accounts {
		summaries = append(summaries, account.Summary())
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].ClientID < summaries[j].ClientID
	})

	return summaries
}

// account returns the account for the given client, creating an empty one on
// first reference
func (e *Engine) account(id domain.ClientID) *domain.Account {
	if account, ok := e.accounts[id]; ok {
		return account
	}

	account := domain.NewAccount(id)
	e.accounts[id] = account
	return account
}

func (e *Engine) applyDeposit(account *domain.Account, tx domain.Transaction) error {
	if tx.Amount == nil || tx.Amount.IsNegative() {
		return domain.ErrInvalidAmount
	}
	if _, ok := e.txLog[tx.TxID]; ok {
		return domain.ErrDuplicateTransaction
	}

	if err := account.Deposit(*tx.Amount); err != nil {
		return err
	}

	e.txLog[tx.TxID] = &domain.LedgerEntry{
		TxID:         tx.TxID,
		ClientID:     tx.ClientID,
		Type:         domain.Deposit,
		Amount:       *tx.Amount,
		DisputeState: domain.DisputeNone,
	}
	return nil
}

func (e *Engine) applyWithdrawal(account *domain.Account, tx domain.Transaction) error {
	if tx.Amount == nil || tx.Amount.IsNegative() {
		return domain.ErrInvalidAmount
	}
	if _, ok := e.txLog[tx.TxID]; ok {
		return domain.ErrDuplicateTransaction
	}

	if err := account.Withdraw(*tx.Amount); err != nil {
		return err
	}

	// Recorded for duplicate detection only; withdrawals are never disputable
	e.txLog[tx.TxID] = &domain.LedgerEntry{
		TxID:         tx.TxID,
		ClientID:     tx.ClientID,
		Type:         domain.Withdrawal,
		Amount:       *tx.Amount,
		DisputeState: domain.DisputeNone,
	}
	return nil
}

func (e *Engine) applyDispute(account *domain.Account, tx domain.Transaction) error {
	entry, err := e.entry(tx)
	if err != nil {
		return err
	}

	if entry.Type == domain.Withdrawal || entry.DisputeState != domain.DisputeNone {
		return domain.ErrNotDisputable
	}

	if err := account.Hold(entry.Amount); err != nil {
		return err
	}

	entry.DisputeState = domain.Disputed
	return nil
}

func (e *Engine) applyResolve(account *domain.Account, tx domain.Transaction) error {
	entry, err := e.entry(tx)
	if err != nil {
		return err
	}

	if entry.DisputeState != domain.Disputed {
		return domain.ErrNotDisputed
	}

	if err := account.Release(entry.Amount); err != nil {
		return err
	}

	entry.DisputeState = domain.DisputeNone
	return nil
}

func (e *Engine) applyChargeback(account *domain.Account, tx domain.Transaction) error {
	entry, err := e.entry(tx)
	if err != nil {
		return err
	}

	if entry.DisputeState != domain.Disputed {
		return domain.ErrNotDisputed
	}

	if err := account.Chargeback(entry.Amount); err != nil {
		return err
	}

	entry.DisputeState = domain.ChargedBack
	return nil
}

// entry resolves the ledger entry a dispute, resolve, or chargeback record
// refers to
func (e *Engine) entry(tx domain.Transaction) (*domain.LedgerEntry, error) {
	entry, ok := e.txLog[tx.TxID]
	if !ok {
		return nil, domain.ErrUnknownTransaction
	}
	if entry.ClientID != tx.ClientID {
		return nil, domain.ErrClientMismatch
	}
	return entry, nil
}
