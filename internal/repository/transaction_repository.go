package repository

import (
	"fmt"
	"log"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/tirasundara/payments-engine/internal/domain"
	"github.com/tirasundara/payments-engine/pkg/fileutil"
)

var transactionHeaderFields = []string{"type", "client", "tx"}

// amountField is optional: dispute, resolve, and chargeback rows omit it
const amountField = "amount"

// CSVTransactionRepository streams transaction records out of a CSV file with
// a "type, client, tx, amount" header. Malformed rows are logged and skipped
// so a bad row never aborts the run.
type CSVTransactionRepository struct {
	FilePath string
}

// Compile-time check: ensure CSVTransactionRepository implements TransactionRepository
var _ domain.TransactionRepository = (*CSVTransactionRepository)(nil)

// NewCSVTransactionRepository creates a new CSVTransactionRepository
func NewCSVTransactionRepository(filePath string) *CSVTransactionRepository {
	return &CSVTransactionRepository{
		FilePath: filePath,
	}
}

// StreamTransactions reads the CSV file row by row, parses each row into a
// domain.Transaction, and hands it to processorFn. Returning an error from
// processorFn stops the stream.
func (r *CSVTransactionRepository) StreamTransactions(processorFn func(domain.Transaction) error) error {
	reader := fileutil.NewCSVReader(r.FilePath)

	header, err := reader.ReadHeader()
	if err != nil {
		return fmt.Errorf("reading transactions header: %w", err)
	}

	columnMap, err := crateHeaderMap(header, transactionHeaderFields)
	if err != nil {
		return fmt.Errorf("mapping CSV columns: %w", err)
	}

	// The amount column may be missing entirely in headerless-amount files
	amountIdx := -1
	if m, err := crateHeaderMap(header, []string{amountField}); err == nil {
		amountIdx = m[amountField]
	}

	var rowProcessorFn = func(row []string) error {
		txn, ok := r.parseRow(row, columnMap, amountIdx)
		if !ok {
			return nil
		}
		return processorFn(txn)
	}

	if err := reader.ReadAndProcessByRow(rowProcessorFn); err != nil {
		return fmt.Errorf("processing transactions: %w", err)
	}

	return nil
}

// parseRow converts one CSV row into a transaction record. The second return
// value reports whether the row was usable.
func (r *CSVTransactionRepository) parseRow(row []string, columnMap map[string]int, amountIdx int) (domain.Transaction, bool) {
	maxIndex := -1
	for _, idx := range columnMap {
		if idx > maxIndex {
			maxIndex = idx
		}
	}

	// Skip if row doesn't have enough fields
	if len(row) <= maxIndex {
		return domain.Transaction{}, false
	}

	txType := domain.TransactionType(row[columnMap["type"]])
	switch txType {
	case domain.Deposit, domain.Withdrawal, domain.Dispute, domain.Resolve, domain.Chargeback:
	default:
		log.Printf("warning: unknown transaction type %q", txType)
		return domain.Transaction{}, false
	}

	clientID, err := strconv.ParseUint(row[columnMap["client"]], 10, 16)
	if err != nil {
		log.Printf("warning: invalid client id: %v", err)
		return domain.Transaction{}, false
	}

	txID, err := strconv.ParseUint(row[columnMap["tx"]], 10, 32)
	if err != nil {
		log.Printf("warning: invalid tx id: %v", err)
		return domain.Transaction{}, false
	}

	var amount *decimal.Decimal
	if amountIdx >= 0 && amountIdx < len(row) && row[amountIdx] != "" {
		parsed, err := decimal.NewFromString(row[amountIdx])
		if err != nil {
			log.Printf("warning: invalid amount format: %v", err)
			return domain.Transaction{}, false
		}
		amount = &parsed
	}

	txn := domain.Transaction{
		Type:     txType,
		ClientID: domain.ClientID(clientID),
		TxID:     domain.TxID(txID),
		Amount:   amount,
	}

	return txn, true
}
