package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sorinciupitu/extrase-trezorerie/internal/extractor"
	"github.com/sorinciupitu/extrase-trezorerie/internal/parser"
	"github.com/sorinciupitu/extrase-trezorerie/internal/writer"
)

var (
	convertOutput string
	convertHeader bool

	convertCmd = &cobra.Command{
		Use:   "convert <input.pdf> [input2.pdf ...]",
		Short: "Convert statement PDFs to CSV files.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, inputPath := range args {
				if err := convertFile(inputPath); err != nil {
					return fmt.Errorf("processing %s: %w", inputPath, err)
				}
			}
			return nil
		},
	}
)

func init() {
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "output CSV path (defaults to input filename with .csv extension)")
	convertCmd.Flags().BoolVar(&convertHeader, "header", true, "include statement metadata header rows in CSV")
	rootCmd.AddCommand(convertCmd)
}

func convertFile(inputPath string) error {
	if ext := strings.ToLower(filepath.Ext(inputPath)); ext != ".pdf" {
		return fmt.Errorf("expected .pdf file, got %q", ext)
	}

	log := Log.WithField("file", inputPath)

	doc, err := extractor.ExtractDocument(inputPath, filepath.Base(inputPath))
	if err != nil {
		return err
	}
	log.WithField("pages", len(doc.Pages)).Info("extracted positioned text")

	kind, err := parser.AutoDetect(doc)
	if err != nil {
		return err
	}

	p, err := parser.New(kind)
	if err != nil {
		return err
	}
	log.WithField("statement", p.StatementName()).Info("parsing")

	info, err := p.Parse(doc)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	log.WithField("transactions", len(info.Transactions)).Info("parsed")

	if len(info.Transactions) == 0 {
		log.Warn("no transactions found; the PDF layout may not match the expected statement family")
	}
	if info.BalanceUpdate != nil {
		log.WithFields(logrus.Fields{
			"balance": info.BalanceUpdate.Value,
			"as_of":   info.BalanceUpdate.AsOfDateISO,
		}).Info("closing balance found")
	}

	outPath := convertOutput
	if outPath == "" {
		outPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".csv"
	}

	w := &writer.CSVWriter{IncludeHeader: convertHeader}
	if err := w.WriteToFile(outPath, info); err != nil {
		return fmt.Errorf("CSV write failed: %w", err)
	}

	log.WithField("output", outPath).Info("done")
	return nil
}
