package store

// 注意：此包只包含实现，接口定义在 core 包。
// 使用 core.RecordStore 接口。
//
// 示例：
//   var rs core.RecordStore = NewMemoryRecordStore(15 * time.Minute)
//   var rs core.RecordStore = NewRedisRecordStore("localhost:6379", 0, 900)
