package board

import (
	"os"
	"path/filepath"
	"testing"

	"shopscore/internal/models"
	"shopscore/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	path := filepath.Join(t.TempDir(), "board.json")
	return NewService(store.NewFileStore[models.BoardPost](path, nil), nil)
}

func texts(posts []models.BoardPost) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Text)
	}
	return out
}

func TestPostNewestFirst(t *testing.T) {
	s := newTestService(t)

	_, _, err := s.Post("hello")
	require.NoError(t, err)
	_, _, err = s.Post("world")
	require.NoError(t, err)

	posts, warning, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, warning)
	assert.Equal(t, []string{"world", "hello"}, texts(posts))
}

func TestPostEmptyIsRejected(t *testing.T) {
	s := newTestService(t)
	_, _, err := s.Post("first")
	require.NoError(t, err)

	_, _, err = s.Post("   ")
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "text", verr.Field)

	posts, _, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"first"}, texts(posts))
}

func TestPostTrimsText(t *testing.T) {
	s := newTestService(t)
	post, _, err := s.Post("  特売は火曜日  \n")
	require.NoError(t, err)
	assert.Equal(t, "特売は火曜日", post.Text)
}

func TestListEmptyBoard(t *testing.T) {
	posts, warning, err := newTestService(t).List()
	require.NoError(t, err)
	assert.Empty(t, warning)
	assert.Empty(t, posts)
}

func TestPostOverCorruptBoardWarns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))
	s := NewService(store.NewFileStore[models.BoardPost](path, nil), nil)

	_, warning, err := s.Post("hello")
	require.NoError(t, err)
	assert.Contains(t, warning, "overwritten")

	posts, warning, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, warning)
	assert.Equal(t, []string{"hello"}, texts(posts))
}
