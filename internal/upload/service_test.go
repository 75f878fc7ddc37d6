package upload

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("WritesFileAndReturnsPublicURL", func(t *testing.T) {
		dir := t.TempDir()
		svc, err := NewService(dir, "http://localhost:4000")
		require.NoError(t, err)

		url, err := svc.Save(ctx, strings.NewReader("fake-image-bytes"), "quilt.JPG")
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(url, "http://localhost:4000/uploads/img_"), url)
		assert.True(t, strings.HasSuffix(url, ".jpg"), url)

		name := strings.TrimPrefix(url, "http://localhost:4000/uploads/")
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, "fake-image-bytes", string(data))
	})

	t.Run("MissingExtensionDefaultsToPNG", func(t *testing.T) {
		svc, err := NewService(t.TempDir(), "http://localhost:4000")
		require.NoError(t, err)

		url, err := svc.Save(ctx, strings.NewReader("x"), "noext")
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(url, ".png"), url)
	})

	t.Run("GeneratedNamesNeverCollide", func(t *testing.T) {
		svc, err := NewService(t.TempDir(), "http://localhost:4000")
		require.NoError(t, err)

		a, err := svc.Save(ctx, strings.NewReader("a"), "img.png")
		require.NoError(t, err)
		b, err := svc.Save(ctx, strings.NewReader("b"), "img.png")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("CreatesMissingDir", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "uploads")
		_, err := NewService(dir, "http://localhost:4000")
		require.NoError(t, err)

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})
}
