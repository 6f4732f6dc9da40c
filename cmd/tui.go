package cmd

import (
	"fmt"

	"shopscore/internal/store"
	"shopscore/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive menu (same as default)",
	Long: `Start the Terminal User Interface. From the menu you can register
products, browse and sort the catalog, evaluate a purchase and use the
bulletin board.

Changes written by other running copies show up without a restart.

Note: This is the same as running the program without any commands.`,
	Annotations: map[string]string{interactiveAnnotation: "true"},
	RunE:        runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var opts tui.Options
	if w := startWatcher(cmd, cfg.ProductsFile); w != nil {
		defer w.Stop()
		opts.ProductsChanged = w.Events()
	}
	if w := startWatcher(cmd, cfg.BoardFile); w != nil {
		defer w.Stop()
		opts.BoardChanged = w.Events()
	}

	model := tui.NewModel(tui.Services{
		Catalog: catalogService(),
		Board:   boardService(),
		Logger:  logger,
	}, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

// startWatcher returns nil when the file cannot be watched; the menu then works without live reload.
func startWatcher(cmd *cobra.Command, path string) *store.Watcher {
	w, err := store.NewWatcher(path, logger)
	if err != nil {
		logger.Warn("Live reload disabled", zap.String("file", path), zap.Error(err))
		return nil
	}
	if err := w.Start(cmd.Context()); err != nil {
		logger.Warn("Live reload disabled", zap.String("file", path), zap.Error(err))
		w.Stop()
		return nil
	}
	return w
}
