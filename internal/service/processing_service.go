package service

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/tirasundara/payments-engine/internal/domain"
	"github.com/tirasundara/payments-engine/internal/engine"
)

// ProcessingService orchestrates a single processing run: it drains the
// transaction repository into the engine and collects the run summary
type ProcessingService struct {
	repo    domain.TransactionRepository
	engine  *engine.Engine
	verbose bool
}

// NewProcessingService creates a new ProcessingService
func NewProcessingService(repo domain.TransactionRepository, eng *engine.Engine, verbose bool) *ProcessingService {
	return &ProcessingService{
		repo:    repo,
		engine:  eng,
		verbose: verbose,
	}
}

// ProcessingResult contains the outcome of a processing run
type ProcessingResult struct {
	RunID            string
	TotalRecords     int
	Accepted         int
	Rejected         int
	RejectedByReason map[string]int
	Accounts         []domain.AccountSummary
}

// Run processes every record in input order. Rejected records are counted
// (and logged in verbose mode) but never stop the run.
func (s *ProcessingService) Run() (ProcessingResult, error) {
	result := ProcessingResult{
		RunID:            uuid.NewString(),
		RejectedByReason: make(map[string]int),
	}

	err := s.repo.StreamTransactions(func(txn domain.Transaction) error {
		result.TotalRecords++

		if err := s.engine.Apply(txn); err != nil {
			result.Rejected++
			result.RejectedByReason[err.Error()]++

			if s.verbose {
				log.Printf("run %s: rejected %s tx %d (client %d): %v",
					result.RunID, txn.Type, txn.TxID, txn.ClientID, err)
			}
			return nil
		}

		result.Accepted++
		return nil
	})
	if err != nil {
		return ProcessingResult{}, fmt.Errorf("streaming transactions: %w", err)
	}

	result.Accounts = s.engine.Snapshot()
	return result, nil
}
