package redis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/DRSN-tech/inventory-backend/internal/cfg"
	"github.com/DRSN-tech/inventory-backend/internal/repository/redis/converter"
	"github.com/DRSN-tech/inventory-backend/internal/usecase"
	"github.com/DRSN-tech/inventory-backend/pkg/clients"
	"github.com/DRSN-tech/inventory-backend/pkg/e"
	"github.com/DRSN-tech/inventory-backend/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// viewKey — единственный ключ кэша: представление склада всегда
// пересобирается целиком, поэтому и кэшируется целиком.
const viewKey = "inventory:view"

type CacheRepo struct {
	client *clients.RedisClient
	conv   converter.InventoryViewConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, conv converter.InventoryViewConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// GetView возвращает закэшированное представление склада.
// Промах кэша — это (nil, nil), а не ошибка.
func (c *CacheRepo) GetView(ctx context.Context) (*usecase.InventoryView, error) {
	data, err := c.client.Client.Get(ctx, viewKey).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, nil // cache miss
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model, err := c.unmarshalViewFromCache(data)
	if err != nil {
		// Битую запись убираем, чтобы не спотыкаться о неё на каждом чтении
		c.logger.Warnf("Redis unmarshal failed, dropping cached view: %v", e.Wrap(whereami.WhereAmI(), err))
		if err := c.client.Client.Del(context.Background(), viewKey).Err(); err != nil {
			c.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}
		return nil, nil
	}

	return c.conv.ToUseCase(model), nil
}

// SetView кэширует представление склада с заданным TTL.
func (c *CacheRepo) SetView(ctx context.Context, view *usecase.InventoryView) error {
	model := c.conv.ToRedisModel(view)

	data, err := c.marshalViewForCache(model)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := c.client.Client.Set(ctx, viewKey, data, c.cfg.ViewTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// DeleteView сбрасывает кэш представления после мутации склада.
func (c *CacheRepo) DeleteView(ctx context.Context) error {
	if err := c.client.Client.Del(ctx, viewKey).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// marshalViewForCache сериализует представление склада в JSON для кэша
func (c *CacheRepo) marshalViewForCache(model *converter.InventoryViewRedisModel) ([]byte, error) {
	data, err := json.Marshal(model)
	if err != nil {
		return nil, err
	}

	return data, nil
}

// unmarshalViewFromCache десериализует JSON из кэша в модель представления
func (c *CacheRepo) unmarshalViewFromCache(data []byte) (*converter.InventoryViewRedisModel, error) {
	var model converter.InventoryViewRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, err
	}

	return &model, nil
}
