package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/jirabridge/pkg/infra/storage"
)

func TestLocal_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := storage.NewLocal(dir, "/uploads/")
	gt.NoError(t, err)

	url, err := store.Save(context.Background(), "abc.png", "image/png", strings.NewReader("PNG"))
	gt.NoError(t, err)
	gt.V(t, url).Equal("/uploads/abc.png")

	data, err := os.ReadFile(filepath.Join(dir, "abc.png"))
	gt.NoError(t, err)
	gt.V(t, string(data)).Equal("PNG")

	t.Run("does not overwrite", func(t *testing.T) {
		_, err := store.Save(context.Background(), "abc.png", "image/png", strings.NewReader("other"))
		gt.Error(t, err)
	})

	t.Run("delete", func(t *testing.T) {
		gt.NoError(t, store.Delete(context.Background(), "abc.png"))
		_, err := os.Stat(filepath.Join(dir, "abc.png"))
		gt.True(t, os.IsNotExist(err))

		gt.NoError(t, store.Delete(context.Background(), "abc.png"))
		gt.Error(t, store.Delete(context.Background(), "../abc.png"))
	})

	t.Run("rejects path traversal", func(t *testing.T) {
		_, err := store.Save(context.Background(), "../escape.txt", "text/plain", strings.NewReader("x"))
		gt.Error(t, err)
	})
}
