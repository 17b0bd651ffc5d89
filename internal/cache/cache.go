package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache 定義快取操作介面
// 封裝 Redis 實作，方便測試時替換 FakeCache
// TxPipeline 供限流計數在單一往返內完成多個指令
// ttl <= 0 表示不設過期

type Cache interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd
	TxPipeline() redis.Pipeliner
	Close() error
}

type FakeCache struct {
	SetFn        func(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	TxPipelineFn func() redis.Pipeliner
	CloseFn      func() error
}

// Set 執行 Fake 設定或 panic
func (f *FakeCache) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	if f.SetFn != nil {
		return f.SetFn(ctx, key, value, expiration)
	}
	panic("unexpected Set")
}

// TxPipeline 執行 Fake 設定或 panic
func (f *FakeCache) TxPipeline() redis.Pipeliner {
	if f.TxPipelineFn != nil {
		return f.TxPipelineFn()
	}
	panic("unexpected TxPipeline")
}

// Close 執行 Fake 設定或 no-op
func (f *FakeCache) Close() error {
	if f.CloseFn != nil {
		return f.CloseFn()
	}
	return nil
}
