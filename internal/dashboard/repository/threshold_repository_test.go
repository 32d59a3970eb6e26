package repository

import (
	"os"
	"path/filepath"
	"testing"

	"nikkei-dashboard/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFileThresholdRepository_MissingFileUsesDefaults(t *testing.T) {
	repo := NewFileThresholdRepository(filepath.Join(t.TempDir(), "ls_thresholds.yaml"))

	got, err := repo.Load()

	require.NoError(t, err)
	assert.Equal(t, entity.DefaultThresholds, got)
}

func TestFileThresholdRepository_EmptyPathUsesDefaults(t *testing.T) {
	got, err := NewFileThresholdRepository("").Load()

	require.NoError(t, err)
	assert.Equal(t, entity.DefaultThresholds, got)
}

func TestFileThresholdRepository_YAML(t *testing.T) {
	path := writeFile(t, "thresholds.yaml", "thresholds: [75, 55, 45, 25]\n")

	got, err := NewFileThresholdRepository(path).Load()

	require.NoError(t, err)
	assert.Equal(t, entity.Thresholds{T1: 75, T2: 55, T3: 45, T4: 25}, got)
}

func TestFileThresholdRepository_JSON(t *testing.T) {
	path := writeFile(t, "thresholds.json", `{"thresholds": [90, 70, 30, 10]}`)

	got, err := NewFileThresholdRepository(path).Load()

	require.NoError(t, err)
	assert.Equal(t, entity.Thresholds{T1: 90, T2: 70, T3: 30, T4: 10}, got)
}

func TestFileThresholdRepository_WrongLength(t *testing.T) {
	path := writeFile(t, "thresholds.yaml", "thresholds: [80, 60, 40]\n")

	_, err := NewFileThresholdRepository(path).Load()

	assert.Error(t, err)
}
