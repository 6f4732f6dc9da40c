package board

import (
	"fmt"
	"strings"

	"shopscore/internal/models"
	"shopscore/internal/store"

	"go.uber.org/zap"
)

// Service keeps bulletin-board posts newest first.
type Service struct {
	store  *store.FileStore[models.BoardPost]
	logger *zap.Logger
}

func NewService(st *store.FileStore[models.BoardPost], logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: st, logger: logger}
}

// Post stores text as the newest post. The returned warning is set when an unreadable board
// file was replaced.
func (s *Service) Post(text string) (models.BoardPost, string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.BoardPost{}, "", &models.ValidationError{Field: "text", Reason: "must not be empty"}
	}

	res, err := s.store.Load()
	if err != nil {
		return models.BoardPost{}, "", err
	}

	post := models.BoardPost{Text: text}
	posts := append([]models.BoardPost{post}, res.Records...)
	if err := s.store.Save(posts); err != nil {
		return models.BoardPost{}, "", fmt.Errorf("failed to save post: %w", err)
	}

	s.logger.Info("Posted to board", zap.Int("length", len(text)), zap.Int("posts", len(posts)))
	return post, res.OverwriteWarning(), nil
}

// List returns posts in stored order, newest first. The warning is non-empty when the board
// file could not be parsed.
func (s *Service) List() ([]models.BoardPost, string, error) {
	res, err := s.store.Load()
	if err != nil {
		return nil, "", err
	}
	return res.Records, res.Warning, nil
}
