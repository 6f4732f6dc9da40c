package cmd

import (
	"fmt"

	"shopscore/internal/backup"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var outputDir string

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Back up the product catalog",
	Long:  "Write a timestamped JSON copy of the product catalog into the backup directory",
	RunE:  runBackup,
}

func init() {
	backupCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory for backup files (default from config)")
	rootCmd.AddCommand(backupCmd)
}

func runBackup(cmd *cobra.Command, args []string) error {
	dir := outputDir
	if dir == "" {
		dir = cfg.BackupDir
	}

	logger.Info("Starting backup", zap.String("store", cfg.ProductsFile), zap.String("output", dir))

	backupFile, err := backup.NewService(productStore(), logger).BackupStore(dir)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Backup completed successfully: %s\n", backupFile)
	return nil
}
