package cmd

import (
	"fmt"
	"slices"

	"shopscore/internal/backup"
	"shopscore/internal/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dbURI      string
	dbName     string
	collection string
	pullYes    bool
)

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Copy the product catalog to MongoDB",
	Long:  "Replace the MongoDB mirror collection with the current product catalog",
	RunE:  runPush,
}

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Replace the product catalog with the MongoDB mirror",
	RunE:  runPull,
}

func init() {
	for _, c := range []*cobra.Command{pushCmd, pullCmd} {
		c.Flags().StringVarP(&dbURI, "db-uri", "u", "", "MongoDB connection URI (default from config or DB_URI)")
		c.Flags().StringVarP(&dbName, "database", "d", "", "Database name (default from config or DB_NAME)")
		c.Flags().StringVarP(&collection, "collection", "t", "", "Collection name (default from config or DB_COLLECTION)")
	}
	pullCmd.Flags().BoolVar(&pullYes, "yes", false, "Skip confirmation prompts")

	rootCmd.AddCommand(pushCmd, pullCmd)
}

// mongoTarget resolves flags over config, which already carries the environment overrides.
func mongoTarget() (uri, name, coll string) {
	uri, name, coll = cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection
	if dbURI != "" {
		uri = dbURI
	}
	if dbName != "" {
		name = dbName
	}
	if collection != "" {
		coll = collection
	}
	return uri, name, coll
}

func runPush(cmd *cobra.Command, args []string) error {
	uri, name, coll := mongoTarget()

	db, err := database.NewMongoDB(uri, name, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	defer db.Close()

	n, err := backup.NewService(productStore(), logger).Push(db, coll)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Pushed %d products to %s.%s\n", n, name, coll)
	return nil
}

func runPull(cmd *cobra.Command, args []string) error {
	uri, name, coll := mongoTarget()

	db, err := database.NewMongoDB(uri, name, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	defer db.Close()

	collections, err := db.ListCollections()
	if err != nil {
		return err
	}
	if !slices.Contains(collections, coll) {
		logger.Warn("Mirror collection not found", zap.String("database", name), zap.Strings("collections", collections))
		return fmt.Errorf("collection %s.%s does not exist", name, coll)
	}

	if !pullYes && !confirmAction(fmt.Sprintf("Replace %s with %s.%s?", cfg.ProductsFile, name, coll)) {
		fmt.Fprintln(cmd.OutOrStdout(), "Pull cancelled")
		return nil
	}

	n, err := backup.NewService(productStore(), logger).Pull(db, coll)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Pulled %d products into %s\n", n, cfg.ProductsFile)
	return nil
}
