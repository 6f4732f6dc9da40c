package cmd

import (
	"fmt"
	"os"

	"shopscore/internal/board"
	"shopscore/internal/catalog"
	"shopscore/internal/config"
	"shopscore/internal/logging"
	"shopscore/internal/models"
	"shopscore/internal/store"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// interactiveAnnotation marks commands that own the terminal; their logs go to the log file.
const interactiveAnnotation = "interactive"

var (
	cfgFile string
	envErr  error
	cfg     *config.Config
	logger  = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "shopscore",
	Short: "A shopping helper that scores purchases against products you registered",
	Long: `shopscore keeps a catalog of products you buy (category, price, shelf life,
how easy they are to use) and tells you whether today's offer is worth it.

Running without a command starts the interactive menu. The catalog and the
bulletin board are plain JSON files, shared with any other running copy.`,
	Annotations:        map[string]string{interactiveAnnotation: "true"},
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
	RunE:               runTUI,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./"+config.DefaultFile+" if present)")
}

func initConfig() {
	envErr = godotenv.Load()
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	logFile := ""
	if cmd.Annotations[interactiveAnnotation] == "true" {
		logFile = cfg.LogFile
	}
	logger, err = logging.New(cfg.LogLevel, logFile)
	if err != nil {
		return err
	}

	if envErr != nil {
		logger.Debug("No .env file loaded", zap.Error(envErr))
	}
	logger.Debug("Configuration loaded",
		zap.String("command", cmd.Name()),
		zap.String("products", cfg.ProductsFile),
		zap.String("board", cfg.BoardFile))
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	// Sync on stderr fails with EINVAL on some platforms; nothing to do about it.
	_ = logger.Sync()
	return nil
}

func productStore() *store.FileStore[models.ProductRecord] {
	return store.NewFileStore[models.ProductRecord](cfg.ProductsFile, logger)
}

func boardStore() *store.FileStore[models.BoardPost] {
	return store.NewFileStore[models.BoardPost](cfg.BoardFile, logger)
}

func catalogService() *catalog.Service {
	return catalog.NewService(productStore(), logger)
}

func boardService() *board.Service {
	return board.NewService(boardStore(), logger)
}

func printWarning(cmd *cobra.Command, warning string) {
	if warning != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", warning)
	}
}
