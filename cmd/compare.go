package cmd

import (
	"fmt"

	"shopscore/internal/compare"
	"shopscore/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var compareSummary bool

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare items for two people with different price/value priorities",
	Long: `Start the standalone comparator. Items added here live only for the
session; they are not written to the catalog. Each user sets how much price
matters against value (performance) and the list is ranked for both.`,
	Annotations: map[string]string{interactiveAnnotation: "true"},
	RunE:        runCompare,
}

func init() {
	compareCmd.Flags().BoolVar(&compareSummary, "summary", true, "Print the final ranking after exiting")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	model := tui.NewCompareModel(compare.New())

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running comparator: %w", err)
	}

	ranked := model.Ranked()
	logger.Info("Comparator closed", zap.Int("items", len(ranked)))
	if compareSummary && len(ranked) > 0 {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Final ranking (user A order):")
		for i, r := range ranked {
			fmt.Fprintf(out, "%2d. [%s] %s  price %.2f  performance %d  A %.2f  B %.2f\n",
				i+1, r.Item.Category, r.Item.Name, r.Item.Price, r.Item.Performance, r.ScoreA, r.ScoreB)
		}
	}
	return nil
}
