// Package bootstrap constructs the shared infrastructure clients from
// configuration. Each client is built once at process start and held for
// the process lifetime; there is no teardown beyond process exit.
package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/rs/zerolog"

	"stockwatch/internal/cache"
	"stockwatch/internal/config"
	"stockwatch/internal/database"
	"stockwatch/internal/modules/alerts"
	"stockwatch/internal/modules/portfolio"
	"stockwatch/internal/queue"
)

// NewQueue builds the price queue selected by cfg.QueueBackend
func NewQueue(ctx context.Context, cfg *config.Config, log zerolog.Logger) (queue.PriceQueue, error) {
	switch cfg.QueueBackend {
	case config.QueueMemory:
		return queue.NewMemory(), nil
	default:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		return queue.NewSQS(sqs.NewFromConfig(awsCfg), cfg.QueueURL, log), nil
	}
}

// NewCache builds the cache selected by cfg.CacheBackend
func NewCache(ctx context.Context, cfg *config.Config, log zerolog.Logger) (cache.Cache, error) {
	switch cfg.CacheBackend {
	case config.CacheMemory:
		return cache.NewMemory(), nil
	default:
		return cache.NewRedis(ctx, cfg.RedisAddr, cfg.RedisDB, log)
	}
}

// NewConditionStore builds the alert condition store selected by
// cfg.StoreBackend
func NewConditionStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (alerts.ConditionStore, error) {
	switch cfg.StoreBackend {
	case config.StoreSQLite:
		db, err := database.New(database.Config{
			Path: filepath.Join(cfg.DataDir, "alerts.db"),
			Name: "alerts",
		})
		if err != nil {
			return nil, err
		}
		return alerts.NewSQLiteConditionStore(db.Conn(), log)
	default:
		client, err := dynamoClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return alerts.NewDynamoConditionStore(client, cfg.AlertTable, log), nil
	}
}

// NewPortfolioStore builds the portfolio store selected by cfg.StoreBackend
func NewPortfolioStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (portfolio.Store, error) {
	switch cfg.StoreBackend {
	case config.StoreSQLite:
		db, err := database.New(database.Config{
			Path: filepath.Join(cfg.DataDir, "portfolios.db"),
			Name: "portfolios",
		})
		if err != nil {
			return nil, err
		}
		return portfolio.NewSQLiteStore(db.Conn(), log)
	default:
		client, err := dynamoClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return portfolio.NewDynamoStore(client, cfg.PortfolioTable, log), nil
	}
}

func dynamoClient(ctx context.Context, cfg *config.Config) (*dynamodb.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return dynamodb.NewFromConfig(awsCfg), nil
}
