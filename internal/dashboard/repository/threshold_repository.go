package repository

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"nikkei-dashboard/internal/entity"

	"github.com/spf13/viper"
)

// ThresholdRepository loads the judgment thresholds.
type ThresholdRepository interface {
	Load() (entity.Thresholds, error)
}

type fileThresholdRepository struct {
	path string
}

// NewFileThresholdRepository reads thresholds from a yaml, json or toml file holding a
// "thresholds" list. A missing file yields the defaults.
func NewFileThresholdRepository(path string) ThresholdRepository {
	return &fileThresholdRepository{path: path}
}

func (r *fileThresholdRepository) Load() (entity.Thresholds, error) {
	if r.path == "" {
		return entity.DefaultThresholds, nil
	}
	if _, err := os.Stat(r.path); errors.Is(err, os.ErrNotExist) {
		return entity.DefaultThresholds, nil
	}

	v := viper.New()
	v.SetConfigFile(r.path)
	if ext := strings.TrimPrefix(filepath.Ext(r.path), "."); ext == "" {
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		return entity.Thresholds{}, fmt.Errorf("failed to read thresholds file: %w", err)
	}

	var values []int
	if err := v.UnmarshalKey("thresholds", &values); err != nil {
		return entity.Thresholds{}, fmt.Errorf("invalid thresholds in %s: %w", r.path, err)
	}
	return entity.ThresholdsFromSlice(values)
}
