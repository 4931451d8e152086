package domain

// TransactionRepository defines the interface for streaming parsed
// transaction records from an input source. Implementations skip rows they
// cannot parse; an error from processorFn stops the stream.
type TransactionRepository interface {
	StreamTransactions(processorFn func(Transaction) error) error
}
