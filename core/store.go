package core

import "context"

// RecordStore 是特征记录的短期存储接口。
//
// 用途：HTTP 编排层在 submit 与 recommend 两次请求之间，
// 用显式的关联 key 暂存特征记录——取代“进程级最近一次结果”
// 这种在并发请求下不安全的全局状态。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（store）实现
//   - 记录有明确的生命周期（TTL），过期即不存在
//
// 实现：
//   - store.MemoryRecordStore（进程内，测试/开发）
//   - store.RedisRecordStore（多实例部署）
type RecordStore interface {
	// Name 返回存储后端名称（用于日志/监控）
	Name() string

	// Save 以 key 暂存一条记录；ttlSeconds <= 0 表示使用后端默认 TTL。
	Save(ctx context.Context, key string, rec *FeatureRecord, ttlSeconds int) error

	// Load 按 key 读取记录；不存在或已过期返回 ErrRecordNotFound。
	Load(ctx context.Context, key string) (*FeatureRecord, error)

	// Delete 删除记录（幂等）。
	Delete(ctx context.Context, key string) error

	// Close 关闭连接/释放资源
	Close() error
}
