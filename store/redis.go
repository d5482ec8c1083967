package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/LLrodyaLL/predictive-analytics-project/core"
)

// RedisRecordStore 是 Redis 实现的 RecordStore。
// 多实例部署时 submit 与 recommend 可以落在不同进程，
// 记录以 JSON 存储，TTL 由 Redis 托管。
type RedisRecordStore struct {
	client     *redis.Client
	keyPrefix  string
	defaultTTL time.Duration
}

// NewRedisRecordStore 创建 Redis 记录存储并探活。
func NewRedisRecordStore(addr string, db int, defaultTTLSeconds int) (*RedisRecordStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeUnavailable,
			fmt.Sprintf("redis ping: %v", err))
	}

	ttl := 15 * time.Minute
	if defaultTTLSeconds > 0 {
		ttl = time.Duration(defaultTTLSeconds) * time.Second
	}
	return &RedisRecordStore{
		client:     client,
		keyPrefix:  "feature_record:",
		defaultTTL: ttl,
	}, nil
}

func (r *RedisRecordStore) Name() string { return "redis" }

func (r *RedisRecordStore) Save(ctx context.Context, key string, rec *core.FeatureRecord, ttlSeconds int) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	ttl := r.defaultTTL
	if ttlSeconds > 0 {
		ttl = time.Duration(ttlSeconds) * time.Second
	}
	return r.client.Set(ctx, r.keyPrefix+key, data, ttl).Err()
}

func (r *RedisRecordStore) Load(ctx context.Context, key string) (*core.FeatureRecord, error) {
	data, err := r.client.Get(ctx, r.keyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, core.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}

	var rec core.FeatureRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}
	return &rec, nil
}

func (r *RedisRecordStore) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.keyPrefix+key).Err()
}

func (r *RedisRecordStore) Close() error {
	return r.client.Close()
}
