package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/tirasundara/payments-engine/internal/engine"
	"github.com/tirasundara/payments-engine/internal/report"
	"github.com/tirasundara/payments-engine/internal/repository"
	"github.com/tirasundara/payments-engine/internal/service"
)

func main() {
	log.SetOutput(os.Stderr)

	// Optional .env file provides defaults; flags override them
	_ = godotenv.Load()

	var (
		inputFile    string
		outputFormat string
		outputFile   string
		prettyPrint  bool
		verbose      bool
	)

	flag.StringVar(&inputFile, "input", "", "Path to transactions CSV file")
	flag.StringVar(&outputFormat, "format", envOrDefault("PAYMENTS_FORMAT", "csv"), "Output format: csv or json")
	flag.StringVar(&outputFile, "output", os.Getenv("PAYMENTS_OUTPUT"), "Path to output file (if empty, writes to stdout)")
	flag.BoolVar(&prettyPrint, "pretty", true, "Pretty print JSON output")
	flag.BoolVar(&verbose, "verbose", os.Getenv("PAYMENTS_VERBOSE") == "true", "Log every rejected record")

	flag.Parse()

	// Also accept the input file as a positional argument
	if inputFile == "" && flag.NArg() > 0 {
		inputFile = flag.Arg(0)
	}
	if inputFile == "" {
		exitWithError("Transactions file path is required")
	}

	repo := repository.NewCSVTransactionRepository(inputFile)
	processingService := service.NewProcessingService(repo, engine.New(), verbose)

	result, err := processingService.Run()
	if err != nil {
		exitWithError(fmt.Sprintf("Processing failed: %v", err))
	}

	log.Printf("run %s: processed %d records (%d accepted, %d rejected), %d accounts",
		result.RunID, result.TotalRecords, result.Accepted, result.Rejected, len(result.Accounts))

	var formatter report.OutputFormatter
	switch outputFormat {
	case "csv":
		formatter = report.NewCSVFormatter()
	case "json":
		formatter = report.NewJSONFormatter(prettyPrint)
	default:
		exitWithError(fmt.Sprintf("Unsupported output format: %s", outputFormat))
		return
	}

	output, err := formatter.Format(result.Accounts)
	if err != nil {
		exitWithError(fmt.Sprintf("Failed to format output: %v", err))
	}

	if outputFile != "" {
		// If no extension is provided, add the formatter's default extension
		if !strings.Contains(outputFile, ".") {
			outputFile = fmt.Sprintf("%s.%s", outputFile, formatter.FileExtension())
		}

		if err := os.WriteFile(outputFile, output, 0644); err != nil {
			exitWithError(fmt.Sprintf("Failed to write output file: %v", err))
		}

	} else {
		fmt.Print(string(output))
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func exitWithError(message string) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
	fmt.Fprintf(os.Stderr, "Run with -h flag for usage information.\n")
	os.Exit(1)
}
