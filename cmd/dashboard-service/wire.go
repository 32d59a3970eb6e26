package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"nikkei-dashboard/internal/dashboard/config"
	"nikkei-dashboard/internal/dashboard/repository"
	"nikkei-dashboard/internal/dashboard/service"
	"nikkei-dashboard/pkg/common"
	"nikkei-dashboard/pkg/logger"
	"nikkei-dashboard/pkg/redis"
	"nikkei-dashboard/pkg/sheets"
)

// buildDashboardService wires the record store, cache, thresholds and chart into a DashboardService.
// The returned cleanup closes any connection it opened.
func buildDashboardService(ctx context.Context, cfg *config.Config, appLogger *logger.Logger) (service.DashboardService, func(), error) {
	cleanup := func() {}

	thresholds, err := repository.NewFileThresholdRepository(cfg.Thresholds.Path).Load()
	if err != nil {
		return nil, cleanup, err
	}
	if !thresholds.Valid() {
		appLogger.Warn("Thresholds are not in descending order", logger.Field("thresholds", thresholds.Slice()))
	}
	appLogger.Info("Thresholds loaded", logger.Field("thresholds", thresholds.Slice()))

	if _, err := os.Stat(cfg.Model.Path); errors.Is(err, os.ErrNotExist) {
		appLogger.Info("Model artifact not found", logger.StringField("path", cfg.Model.Path))
	}

	sheetsClient, err := sheets.NewClient(ctx, sheets.Credentials{
		File: cfg.Sheets.CredentialsFile,
		JSON: cfg.Sheets.CredentialsJSON,
	})
	if err != nil {
		return nil, cleanup, err
	}
	recordRepo := repository.NewSheetsRecordRepository(cfg.Sheets, sheetsClient, appLogger)

	var recordCache repository.RecordCache
	switch cfg.Cache.Provider {
	case common.CacheProviderRedis:
		redisClient, err := redis.NewClient(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			return nil, cleanup, err
		}
		cleanup = func() { _ = redisClient.Close() }
		recordCache = repository.NewRedisRecordCache(redisClient.Client, cfg.Cache.Key, cfg.Cache.TTL, appLogger)
	case common.CacheProviderMemory, "":
		recordCache = repository.NewMemoryRecordCache(cfg.Cache.TTL)
	default:
		return nil, cleanup, fmt.Errorf("unknown cache provider %q", cfg.Cache.Provider)
	}
	appLogger.Info("Record cache ready", logger.StringField("provider", cfg.Cache.Provider), logger.Field("ttl", cfg.Cache.TTL))

	chartSvc, err := service.NewChartService(cfg.Chart, appLogger)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}

	cachedRepo := repository.NewCachedRecordRepository(recordRepo, recordCache, appLogger)
	return service.NewDashboardService(cachedRepo, chartSvc, thresholds, appLogger), cleanup, nil
}
