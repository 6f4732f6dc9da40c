package cmd

import (
	"errors"
	"fmt"

	"shopscore/internal/catalog"
	"shopscore/internal/csv"
	"shopscore/internal/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	csvFile    string
	exportFile string
	exportSort string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import products from a CSV file",
	Long: `Import products from a CSV file into the catalog. Each row is validated
like a registration; rows that fail are skipped and reported.

Expected columns (case-insensitive): category, product_name, price,
shelf_life, ease, comment`,
	RunE: runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog to a CSV file",
	RunE:  runExport,
}

func init() {
	importCmd.Flags().StringVarP(&csvFile, "csv", "c", "", "CSV file to import (required)")
	importCmd.MarkFlagRequired("csv")

	exportCmd.Flags().StringVarP(&exportFile, "output", "o", "products.csv", "CSV file to write")
	exportCmd.Flags().StringVar(&exportSort, "sort", "", "Sort key: category, price, shelf_life or ease")

	rootCmd.AddCommand(importCmd, exportCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	parser := csv.NewParser(csvFile)
	records, err := parser.ParseRecords()
	if err != nil {
		return fmt.Errorf("failed to parse CSV: %w", err)
	}

	logger.Info("Parsed product records", zap.Int("records", len(records)), zap.String("file", csvFile))

	svc := catalogService()
	successCount := 0
	skippedCount := 0
	for i, record := range records {
		if !models.IsCategory(record.Category) {
			logger.Warn("Skipping record with unknown category",
				zap.Int("row", i+1),
				zap.String("category", record.Category),
				zap.String("product", record.ProductName))
			skippedCount++
			continue
		}

		reg, err := svc.Register(catalog.Input{
			Category:  record.Category,
			Name:      record.ProductName,
			Price:     record.Price,
			ShelfLife: record.ShelfLife,
			Ease:      record.Ease,
			Comment:   record.Comment,
		})
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			logger.Warn("Skipping invalid record",
				zap.Int("row", i+1),
				zap.String("product", record.ProductName),
				zap.Error(err))
			skippedCount++
			continue
		}
		if err != nil {
			return fmt.Errorf("import stopped at row %d: %w", i+1, err)
		}
		printWarning(cmd, reg.Warning)
		successCount++

		if successCount%100 == 0 {
			logger.Info("Import progress", zap.Int("imported", successCount))
		}
	}

	if skippedCount > 0 {
		logger.Warn("Some records were skipped",
			zap.Int("skipped", skippedCount),
			zap.Strings("expected_columns", csv.Header))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d/%d records into %s\n", successCount, len(records), cfg.ProductsFile)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	key, err := catalog.ParseSortKey(exportSort)
	if err != nil {
		return err
	}

	listing, err := catalogService().List(key, false)
	if err != nil {
		return err
	}
	printWarning(cmd, listing.Warning)

	if err := csv.ExportFile(exportFile, listing.Records); err != nil {
		return err
	}

	logger.Info("Exported catalog", zap.String("file", exportFile), zap.Int("records", len(listing.Records)))
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d records to %s\n", len(listing.Records), exportFile)
	return nil
}
