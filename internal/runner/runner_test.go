package runner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hunch/internal/history"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(old) })
}

func setupRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	chdir(t, root)
	return root
}

func TestResolveEmbeddedDefault(t *testing.T) {
	setupRepo(t)

	setup, err := Resolve("", 0, nil)
	require.NoError(t, err)
	assert.Equal(t, "embedded default", setup.Source)
	assert.Zero(t, setup.Seed)
	assert.Len(t, setup.Oracle.Table(), 6)
}

func TestResolveRepoLocalProfile(t *testing.T) {
	root := setupRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "hunch.yaml"), []byte("seed: 7\n"), 0o644))

	setup, err := Resolve("", 0, nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "hunch.yaml"), setup.Source)
	assert.EqualValues(t, 7, setup.Seed)
}

func TestResolveSeedOverride(t *testing.T) {
	root := setupRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "hunch.yaml"), []byte("seed: 7\n"), 0o644))

	setup, err := Resolve("", 11, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 11, setup.Seed)
}

func TestRunRecordsHistory(t *testing.T) {
	root := setupRepo(t)

	err := Run("is this recorded?", RunOptions{Seed: 3, Count: 2})
	require.NoError(t, err)

	log, err := history.New(root)
	require.NoError(t, err)
	entries, err := log.Tail(0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, "is this recorded?", e.Question)
		assert.EqualValues(t, 3, e.Seed)
		assert.GreaterOrEqual(t, e.Draw, 0.0)
		assert.Less(t, e.Draw, 100.0)
		assert.NotEmpty(t, e.ID)
	}
}

func TestRunNoHistory(t *testing.T) {
	root := setupRepo(t)

	require.NoError(t, Run("off the record?", RunOptions{NoHistory: true}))

	_, err := os.Stat(filepath.Join(root, ".hunch", "history.log"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunProfileDisablesHistory(t *testing.T) {
	root := setupRepo(t)
	profileYAML := "options:\n  no_history: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "hunch.yaml"), []byte(profileYAML), 0o644))

	require.NoError(t, Run("quietly?", RunOptions{}))

	_, err := os.Stat(filepath.Join(root, ".hunch", "history.log"))
	assert.True(t, os.IsNotExist(err))
}
