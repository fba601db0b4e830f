package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pyscope/pyscope/internal/config"
)

func TestParseFillsDefaultExtensions(t *testing.T) {
	cfg, err := config.Parse([]byte(`force: true`))
	require.NoError(t, err)
	require.True(t, cfg.Force)
	require.Equal(t, config.DefaultSourceExtensions, cfg.SourceExtensions)
}

func TestParseHonorsExplicitExtensions(t *testing.T) {
	cfg, err := config.Parse([]byte("source_extensions: [\".py\"]\n"))
	require.NoError(t, err)
	require.Equal(t, []string{".py"}, cfg.SourceExtensions)
}

func TestHasSourceExt(t *testing.T) {
	cfg, err := config.Parse(nil)
	require.NoError(t, err)
	require.True(t, cfg.HasSourceExt("mod.py"))
	require.True(t, cfg.HasSourceExt("stub.pyi"))
	require.False(t, cfg.HasSourceExt("mod.txt"))
}

func TestToOptionsProjectsPipelineFields(t *testing.T) {
	cfg, err := config.Parse([]byte("platform: linux\nuse_forward_references: true\n"))
	require.NoError(t, err)
	opts := cfg.ToOptions()
	require.Equal(t, "linux", opts.Platform)
	require.True(t, opts.UseForwardReferences)
}

func TestFindWalksUpToParentDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "pyscope.yaml"), []byte("force: true\n"), 0o644))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, err := config.Find(nested)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "pyscope.yaml"), found)
}

func TestFindReturnsEmptyWhenNotPresent(t *testing.T) {
	found, err := config.Find(t.TempDir())
	require.NoError(t, err)
	require.Empty(t, found)
}
