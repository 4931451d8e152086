package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tirasundara/payments-engine/internal/domain"
)

// OutputFormatter defines the interface for formatting the final account snapshot
type OutputFormatter interface {
	Format(accounts []domain.AccountSummary) ([]byte, error)
	FileExtension() string
}

var csvHeader = []string{"client", "available", "held", "total", "locked"}

// CSVFormatter formats the account snapshot as CSV, one row per client
type CSVFormatter struct{}

func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

// Format implements the OutputFormatter interface for CSV
func (f *CSVFormatter) Format(accounts []domain.AccountSummary) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("writing CSV header: %w", err)
	}

	for _, account := range accounts {
		row := []string{
			strconv.FormatUint(uint64(account.ClientID), 10),
			account.Available.String(),
			account.Held.String(),
			account.Total.String(),
			strconv.FormatBool(account.Locked),
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("writing CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flushing CSV output: %w", err)
	}

	return buf.Bytes(), nil
}

func (f *CSVFormatter) FileExtension() string {
	return "csv"
}

// JSONFormatter formats the account snapshot as JSON
type JSONFormatter struct {
	PrettyPrint bool
}

func NewJSONFormatter(prettyPrint bool) *JSONFormatter {
	return &JSONFormatter{
		PrettyPrint: prettyPrint,
	}
}

// Format implements the OutputFormatter interface for JSON
func (f *JSONFormatter) Format(accounts []domain.AccountSummary) ([]byte, error) {
	if f.PrettyPrint {
		return json.MarshalIndent(accounts, "", "  ")
	}
	return json.Marshal(accounts)
}

func (f *JSONFormatter) FileExtension() string {
	return "json"
}
