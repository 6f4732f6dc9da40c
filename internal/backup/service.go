package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"shopscore/internal/models"
	"shopscore/internal/store"

	"go.uber.org/zap"
)

// Mirror is an external copy of the product store, such as a MongoDB collection.
type Mirror interface {
	ReplaceProducts(collection string, records []models.ProductRecord) (int, error)
	FetchProducts(collection string) ([]models.ProductRecord, error)
}

type Service struct {
	products *store.FileStore[models.ProductRecord]
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(products *store.FileStore[models.ProductRecord], logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{products: products, logger: logger, now: time.Now}
}

// BackupStore writes a timestamped copy of the product store into outputDir and returns its path.
func (s *Service) BackupStore(outputDir string) (string, error) {
	res, err := s.products.Load()
	if err != nil {
		return "", err
	}
	if res.Recovered {
		return "", fmt.Errorf("refusing to back up unreadable store: %s", res.Warning)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := s.now().Format("20060102_150405")
	filename := fmt.Sprintf("backup_products_%s.json", timestamp)
	path := filepath.Join(outputDir, filename)

	if err := store.NewFileStore[models.ProductRecord](path, s.logger).Save(res.Records); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("backup failed: %w", err)
	}

	s.logger.Info("Backed up product store",
		zap.String("file", path),
		zap.Int("products", len(res.Records)))
	return path, nil
}

// RestoreStore loads a backup file into the product store. With replace the store becomes the
// backup; otherwise the backup's records are appended after the current ones. The warning is
// set when appending replaced an unreadable store.
func (s *Service) RestoreStore(inputFile string, replace bool) (int, string, error) {
	records, err := s.readBackup(inputFile)
	if err != nil {
		return 0, "", err
	}

	var warning string
	if !replace {
		res, err := s.products.Load()
		if err != nil {
			return 0, "", err
		}
		records = append(res.Records, records...)
		warning = res.OverwriteWarning()
	}

	if err := s.products.Save(records); err != nil {
		return 0, "", fmt.Errorf("restore failed: %w", err)
	}

	s.logger.Info("Restored product store",
		zap.String("file", inputFile),
		zap.Bool("replace", replace),
		zap.Int("products", len(records)))
	return len(records), warning, nil
}

func (s *Service) ValidateBackupFile(filename string) error {
	_, err := s.readBackup(filename)
	return err
}

func (s *Service) readBackup(filename string) ([]models.ProductRecord, error) {
	if ext := filepath.Ext(filename); ext != ".json" {
		return nil, fmt.Errorf("expected JSON file but got %q", ext)
	}

	info, err := os.Stat(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open backup file: %w", err)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("backup file is empty")
	}

	res, err := store.NewFileStore[models.ProductRecord](filename, s.logger).Load()
	if err != nil {
		return nil, err
	}
	if res.Recovered {
		return nil, fmt.Errorf("backup file is not a product list: %s", res.Warning)
	}
	return res.Records, nil
}

// Push copies the product store into the mirror collection.
func (s *Service) Push(m Mirror, collection string) (int, error) {
	res, err := s.products.Load()
	if err != nil {
		return 0, err
	}
	if res.Recovered {
		return 0, fmt.Errorf("refusing to push unreadable store: %s", res.Warning)
	}
	n, err := m.ReplaceProducts(collection, res.Records)
	if err != nil {
		return 0, fmt.Errorf("push failed: %w", err)
	}
	return n, nil
}

// Pull replaces the product store with the mirror collection's content.
func (s *Service) Pull(m Mirror, collection string) (int, error) {
	records, err := m.FetchProducts(collection)
	if err != nil {
		return 0, fmt.Errorf("pull failed: %w", err)
	}
	if err := s.products.Save(records); err != nil {
		return 0, fmt.Errorf("pull failed: %w", err)
	}
	s.logger.Info("Pulled product mirror",
		zap.String("collection", collection),
		zap.Int("products", len(records)))
	return len(records), nil
}
