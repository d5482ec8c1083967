package store

import (
	"context"
	"sync"
	"time"

	"github.com/LLrodyaLL/predictive-analytics-project/core"
)

// MemoryRecordStore 是内存实现的 RecordStore，用于测试/开发/单实例部署。
// 记录带 TTL，进程重启后数据丢失。
type MemoryRecordStore struct {
	mu         sync.RWMutex
	data       map[string]*entry
	defaultTTL time.Duration
	clean      *time.Ticker
	stop       chan struct{}
}

type entry struct {
	rec      *core.FeatureRecord
	expireAt time.Time
}

// NewMemoryRecordStore 创建内存记录存储；defaultTTL <= 0 时默认 15 分钟。
func NewMemoryRecordStore(defaultTTL time.Duration) *MemoryRecordStore {
	if defaultTTL <= 0 {
		defaultTTL = 15 * time.Minute
	}
	ms := &MemoryRecordStore{
		data:       make(map[string]*entry),
		defaultTTL: defaultTTL,
		clean:      time.NewTicker(time.Minute),
		stop:       make(chan struct{}),
	}
	go ms.cleanup()
	return ms
}

func (m *MemoryRecordStore) Name() string { return "memory" }

func (m *MemoryRecordStore) Save(_ context.Context, key string, rec *core.FeatureRecord, ttlSeconds int) error {
	ttl := m.defaultTTL
	if ttlSeconds > 0 {
		ttl = time.Duration(ttlSeconds) * time.Second
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = &entry{rec: rec, expireAt: time.Now().Add(ttl)}
	return nil
}

func (m *MemoryRecordStore) Load(_ context.Context, key string) (*core.FeatureRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.data[key]
	if !ok || time.Now().After(e.expireAt) {
		return nil, core.ErrRecordNotFound
	}
	return e.rec, nil
}

func (m *MemoryRecordStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryRecordStore) Close() error {
	m.clean.Stop()
	close(m.stop)
	return nil
}

func (m *MemoryRecordStore) cleanup() {
	for {
		select {
		case <-m.clean.C:
			now := time.Now()
			m.mu.Lock()
			for k, e := range m.data {
				if now.After(e.expireAt) {
					delete(m.data, k)
				}
			}
			m.mu.Unlock()
		case <-m.stop:
			return
		}
	}
}
