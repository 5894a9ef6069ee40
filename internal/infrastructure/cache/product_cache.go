// Package cache implementa el caché de snapshots de productos sobre Redis.
// Es estrictamente opcional: sin Redis configurado la app consulta siempre la DB.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/application/inventory"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/application/usecase"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain/entity"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/pkg/config"
)

var _ usecase.ProductCache = (*ProductCache)(nil)
var _ inventory.SnapshotInvalidator = (*ProductCache)(nil)

// ProductCache guarda el snapshot de productos por empresa en Redis con TTL.
// Las escrituras de stock lo invalidan; las lecturas lo repueblan lazy.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProductCache conecta a Redis y verifica la conexión con Ping.
func NewProductCache(ctx context.Context, cfg config.RedisConfig) (*ProductCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	ttl := time.Duration(cfg.TTLSecs) * time.Second
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ProductCache{client: client, ttl: ttl}, nil
}

func snapshotKey(companyID string) string {
	return "products:snapshot:" + companyID
}

// Get devuelve el snapshot cacheado. El segundo valor indica cache hit.
func (c *ProductCache) Get(ctx context.Context, companyID string) ([]*entity.Product, bool, error) {
	raw, err := c.client.Get(ctx, snapshotKey(companyID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get snapshot: %w", err)
	}
	var products []*entity.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		// Snapshot corrupto: descartarlo y tratar como miss
		_ = c.client.Del(ctx, snapshotKey(companyID)).Err()
		return nil, false, nil
	}
	return products, true, nil
}

// Set guarda el snapshot con TTL.
func (c *ProductCache) Set(ctx context.Context, companyID string, products []*entity.Product) error {
	raw, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := c.client.Set(ctx, snapshotKey(companyID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set snapshot: %w", err)
	}
	return nil
}

// Invalidate borra el snapshot de la empresa tras una escritura de stock.
func (c *ProductCache) Invalidate(ctx context.Context, companyID string) error {
	if err := c.client.Del(ctx, snapshotKey(companyID)).Err(); err != nil {
		return fmt.Errorf("invalidate snapshot: %w", err)
	}
	return nil
}

// Close cierra la conexión a Redis.
func (c *ProductCache) Close() error {
	return c.client.Close()
}
