package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/tirasundara/payments-engine/internal/domain"
	"github.com/tirasundara/payments-engine/internal/engine"
	"github.com/tirasundara/payments-engine/internal/repository"
	"github.com/tirasundara/payments-engine/internal/service"
)

type MockTransactionRepository struct {
	transactions []domain.Transaction
}

func (m *MockTransactionRepository) StreamTransactions(processorFn func(domain.Transaction) error) error {
	for _, txn := range m.transactions {
		if err := processorFn(txn); err != nil {
			return err
		}
	}
	return nil
}

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestProcessingService(t *testing.T) {
	repo := &MockTransactionRepository{
		transactions: []domain.Transaction{
			{Type: domain.Deposit, ClientID: 1, TxID: 1, Amount: amount("5.0")},
			{Type: domain.Deposit, ClientID: 2, TxID: 2, Amount: amount("3.0")},
			{Type: domain.Withdrawal, ClientID: 1, TxID: 3, Amount: amount("1.5")},
			{Type: domain.Withdrawal, ClientID: 2, TxID: 4, Amount: amount("50.0")}, // insufficient funds
			{Type: domain.Dispute, ClientID: 1, TxID: 1},
			{Type: domain.Dispute, ClientID: 1, TxID: 99}, // unknown tx
		},
	}

	processingService := service.NewProcessingService(repo, engine.New(), false)

	result, err := processingService.Run()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.RunID == "" {
		t.Error("Expected a non-empty run id")
	}

	if result.TotalRecords != 6 {
		t.Errorf("Expected 6 records processed, got %d", result.TotalRecords)
	}

	if result.Accepted != 4 {
		t.Errorf("Expected 4 accepted records, got %d", result.Accepted)
	}

	if result.Rejected != 2 {
		t.Errorf("Expected 2 rejected records, got %d", result.Rejected)
	}

	if result.RejectedByReason[domain.ErrInsufficientFunds.Error()] != 1 {
		t.Errorf("Expected 1 insufficient-funds rejection, got %d",
			result.RejectedByReason[domain.ErrInsufficientFunds.Error()])
	}

	if result.RejectedByReason[domain.ErrUnknownTransaction.Error()] != 1 {
		t.Errorf("Expected 1 unknown-transaction rejection, got %d",
			result.RejectedByReason[domain.ErrUnknownTransaction.Error()])
	}

	if len(result.Accounts) != 2 {
		t.Fatalf("Expected 2 accounts, got %d", len(result.Accounts))
	}

	client1 := result.Accounts[0]
	if client1.ClientID != 1 {
		t.Fatalf("Expected first account to be client 1, got %d", client1.ClientID)
	}
	if !client1.Available.Equal(decimal.RequireFromString("-1.5")) {
		t.Errorf("Expected client 1 available to be -1.5, got %s", client1.Available)
	}
	if !client1.Held.Equal(decimal.RequireFromString("5.0")) {
		t.Errorf("Expected client 1 held to be 5.0, got %s", client1.Held)
	}

	client2 := result.Accounts[1]
	if !client2.Available.Equal(decimal.RequireFromString("3.0")) {
		t.Errorf("Expected client 2 available to be 3.0, got %s", client2.Available)
	}
}

func TestProcessingService_WithCSVRepository(t *testing.T) {
	repo := repository.NewCSVTransactionRepository("../../test/testdata/transactions.csv")
	processingService := service.NewProcessingService(repo, engine.New(), false)

	result, err := processingService.Run()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// 6 parseable records; the chargeback targets an undisputed deposit
	if result.TotalRecords != 6 {
		t.Errorf("Expected 6 records processed, got %d", result.TotalRecords)
	}

	if result.Accepted != 5 {
		t.Errorf("Expected 5 accepted records, got %d", result.Accepted)
	}

	if result.RejectedByReason[domain.ErrNotDisputed.Error()] != 1 {
		t.Errorf("Expected 1 not-under-dispute rejection, got %d",
			result.RejectedByReason[domain.ErrNotDisputed.Error()])
	}

	if len(result.Accounts) != 2 {
		t.Fatalf("Expected 2 accounts, got %d", len(result.Accounts))
	}

	client1 := result.Accounts[0]
	if !client1.Available.Equal(decimal.RequireFromString("0.5")) {
		t.Errorf("Expected client 1 available to be 0.5, got %s", client1.Available)
	}
	if !client1.Held.IsZero() {
		t.Errorf("Expected client 1 held to be 0, got %s", client1.Held)
	}

	client2 := result.Accounts[1]
	if !client2.Available.Equal(decimal.RequireFromString("2.0")) {
		t.Errorf("Expected client 2 available to be 2.0, got %s", client2.Available)
	}
	if client2.Locked {
		t.Error("Expected client 2 to stay unlocked after rejected chargeback")
	}
}
