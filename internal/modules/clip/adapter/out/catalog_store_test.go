package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clipout "cigbreak/internal/modules/clip/adapter/out"
	"cigbreak/internal/modules/clip/domain"
)

func TestEmbeddedCatalogHasSevenPlayableClips(t *testing.T) {
	t.Parallel()
	clips, err := clipout.NewEmbeddedCatalogStore().Load(context.Background())
	require.NoError(t, err)
	require.Len(t, clips, 7)
	assert.Equal(t, "https://www.youtube.com/watch?v=qAcv2EKJhlc", clips[0].SourceURL)
	assert.Empty(t, domain.Duplicates(clips))
	for _, c := range clips {
		require.NoError(t, c.Validate())
		_, ok := domain.ExtractID(c.SourceURL)
		assert.True(t, ok, "clip %s must be playable", c.SourceURL)
	}
}

func TestFileCatalogOverridesDefault(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "clips.yaml")
	body := "clips:\n  - title: Mine\n    source_url: https://youtu.be/abc123\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	clips, err := clipout.NewFileCatalogStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Clip{{Title: "Mine", SourceURL: "https://youtu.be/abc123"}}, clips)
}

func TestFileCatalogErrors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	_, err := clipout.NewFileCatalogStore(filepath.Join(dir, "missing.yaml")).Load(context.Background())
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("clips: [\n"), 0o644))
	_, err = clipout.NewFileCatalogStore(bad).Load(context.Background())
	require.Error(t, err)
}
