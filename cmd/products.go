package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"shopscore/internal/catalog"
	"shopscore/internal/models"
	"shopscore/internal/scoring"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var (
	productCategory  string
	productName      string
	productPrice     float64
	productShelfLife int
	productEase      int
	productComment   string
	listSort         string
	listDescending   bool
	deleteName       string
	deleteCategory   string
	deleteYes        bool
	evalName         string
	evalPrice        float64
	evalShelfLife    int
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a product in the catalog",
	Long: `Append a product to the catalog. Registering the same name twice keeps both
records; evaluation uses the most recent one.

Categories: ` + strings.Join(models.Categories, ", "),
	RunE: runRegister,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered products",
	RunE:  runList,
}

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete every record with the given name and category",
	RunE:  runDelete,
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score today's offer against a registered product",
	Long: `Score today's offer against a registered product. When several records
share the name, the most recently registered one is used.

` + scoring.Formula,
	RunE:  runEvaluate,
}

func init() {
	registerCmd.Flags().StringVarP(&productCategory, "category", "c", models.Categories[0], "Product category")
	registerCmd.Flags().StringVarP(&productName, "name", "n", "", "Product name (required)")
	registerCmd.Flags().Float64VarP(&productPrice, "price", "p", 0, "Price in yen")
	registerCmd.Flags().IntVarP(&productShelfLife, "shelf-life", "s", 0, "Shelf life in days")
	registerCmd.Flags().IntVarP(&productEase, "ease", "e", 5, "Ease of use, 1-10")
	registerCmd.Flags().StringVar(&productComment, "comment", "", "Free-form comment")
	registerCmd.MarkFlagRequired("name")

	listCmd.Flags().StringVar(&listSort, "sort", "", "Sort key: category, price, shelf_life or ease")
	listCmd.Flags().BoolVar(&listDescending, "desc", false, "Sort in descending order")

	deleteCmd.Flags().StringVarP(&deleteName, "name", "n", "", "Product name (required)")
	deleteCmd.Flags().StringVarP(&deleteCategory, "category", "c", "", "Product category (required)")
	deleteCmd.Flags().BoolVar(&deleteYes, "yes", false, "Skip confirmation prompts")
	deleteCmd.MarkFlagRequired("name")
	deleteCmd.MarkFlagRequired("category")

	evaluateCmd.Flags().StringVarP(&evalName, "name", "n", "", "Registered product name (required)")
	evaluateCmd.Flags().Float64VarP(&evalPrice, "price", "p", 0, "Price today in yen")
	evaluateCmd.Flags().IntVarP(&evalShelfLife, "shelf-life", "s", 0, "Shelf life today in days")
	evaluateCmd.MarkFlagRequired("name")

	rootCmd.AddCommand(registerCmd, listCmd, deleteCmd, evaluateCmd)
}

func runRegister(cmd *cobra.Command, args []string) error {
	if !models.IsCategory(productCategory) {
		return &models.ValidationError{Field: "category", Reason: fmt.Sprintf("must be one of %s", strings.Join(models.Categories, ", "))}
	}

	reg, err := catalogService().Register(catalog.Input{
		Category:  productCategory,
		Name:      productName,
		Price:     productPrice,
		ShelfLife: productShelfLife,
		Ease:      productEase,
		Comment:   productComment,
	})
	if err != nil {
		return err
	}

	printWarning(cmd, reg.Warning)
	fmt.Fprintf(cmd.OutOrStdout(), "Saved [%s] %s\n", reg.Record.Category, reg.Record.ProductName)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	key, err := catalog.ParseSortKey(listSort)
	if err != nil {
		return err
	}

	listing, err := catalogService().List(key, listDescending)
	if err != nil {
		return err
	}
	printWarning(cmd, listing.Warning)

	if len(listing.Records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No products registered yet.")
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), productTable(listing.Records))
	return nil
}

func productTable(records []models.ProductRecord) string {
	rows := make([][]string, 0, len(records))
	for _, p := range records {
		rows = append(rows, []string{
			p.Category,
			p.ProductName,
			strconv.FormatFloat(p.Price, 'f', -1, 64),
			strconv.Itoa(p.ShelfLife),
			strconv.Itoa(p.Ease),
			p.Comment,
		})
	}

	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("category", "product_name", "price", "shelf_life", "ease", "comment").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		String()
}

func runDelete(cmd *cobra.Command, args []string) error {
	if !deleteYes && !confirmAction(fmt.Sprintf("Delete every [%s] %s?", deleteCategory, deleteName)) {
		fmt.Fprintln(cmd.OutOrStdout(), "Delete cancelled")
		return nil
	}

	removed, err := catalogService().Delete(deleteName, deleteCategory)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d record(s)\n", removed)
	return nil
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	record, err := catalogService().Find(evalName)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Registered: [%s] %s  price %s  shelf life %d days  ease %d\n",
		record.Category, record.ProductName, strconv.FormatFloat(record.Price, 'f', -1, 64), record.ShelfLife, record.Ease)

	result, err := scoring.Evaluate(record, evalPrice, evalShelfLife)
	if err != nil {
		return fmt.Errorf("cannot score %s: %w", record.ProductName, err)
	}

	fmt.Fprintf(out, "Score: %.2f\n", result.Score)
	if result.Decision == scoring.Buy {
		fmt.Fprintln(out, "Recommended: buy it!")
	} else {
		fmt.Fprintln(out, "Reconsider: it may not be worth it")
	}
	return nil
}
