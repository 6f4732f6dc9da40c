package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"shopscore/internal/backup"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	inputFile        string
	dropExisting     bool
	skipConfirmation bool
)

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore the product catalog from a backup",
	Long: `Restore the product catalog from a JSON backup file. By default the
backup's products are appended to the catalog; --drop replaces it.`,
	RunE: runRestore,
}

func init() {
	restoreCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input backup file to restore (required)")
	restoreCmd.Flags().BoolVar(&dropExisting, "drop", false, "Replace the current catalog instead of appending")
	restoreCmd.Flags().BoolVar(&skipConfirmation, "yes", false, "Skip confirmation prompts")

	restoreCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(restoreCmd)
}

func runRestore(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(inputFile); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("backup file does not exist: %s", inputFile)
	}

	backupService := backup.NewService(productStore(), logger)
	if err := backupService.ValidateBackupFile(inputFile); err != nil {
		return fmt.Errorf("backup file validation failed: %w", err)
	}

	if !skipConfirmation {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "About to restore:")
		fmt.Fprintf(out, "  Source file: %s\n", inputFile)
		fmt.Fprintf(out, "  Target store: %s\n", cfg.ProductsFile)
		if dropExisting {
			fmt.Fprintln(out, "  WARNING: The current catalog will be REPLACED!")
		}

		if !confirmAction("Do you want to continue?") {
			fmt.Fprintln(out, "Restore cancelled")
			return nil
		}
	}

	logger.Info("Starting restore", zap.String("file", inputFile), zap.Bool("drop", dropExisting))

	n, warning, err := backupService.RestoreStore(inputFile, dropExisting)
	if err != nil {
		return err
	}
	printWarning(cmd, warning)

	fmt.Fprintf(cmd.OutOrStdout(), "Restore completed successfully: %d products in catalog\n", n)
	return nil
}

func confirmAction(message string) bool {
	fmt.Printf("%s (y/N): ", message)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
