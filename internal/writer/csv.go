package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sorinciupitu/extrase-trezorerie/internal/models"
)

// CSVWriter writes parsed statement data to CSV format.
type CSVWriter struct {
	IncludeHeader bool
}

// WriteToFile writes the statement to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, info *models.StatementInfo) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, info)
}

// Write writes the statement in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, info *models.StatementInfo) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	if w.IncludeHeader {
		if info.Kind != "" {
			writer.Write([]string{"# Statement", string(info.Kind)})
		}
		if info.BalanceUpdate != nil {
			writer.Write([]string{"# Closing Balance", formatAmount(info.BalanceUpdate.Value)})
			writer.Write([]string{"# Balance As Of", info.BalanceUpdate.AsOfDateISO})
		}
	}

	header := []string{"Date", "DateISO", "Partner", "Details", "Reference", "Type", "Amount"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, txn := range info.Transactions {
		row := []string{
			txn.Date,
			txn.DateISO,
			txn.Partner,
			txn.Details,
			txn.RefNumber,
			string(txn.Direction),
			formatAmount(txn.Amount),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}
