package core

import "context"

// RankPredictor 是排位预测模型的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（model）实现
//   - 模型进程内加载一次、预测多次：不存在“每次预测启动一个子进程”
//     这种形态，预测就是一次函数调用（本地模型）或一次 RPC（模型服务）
//   - 输入是 ModelInput 的精确字段集，类别特征（main_warehouse、
//     loyalty_level）按类别消费
//
// 实现：
//   - model.CatBoostClient（REST 模型服务）
//   - model.LinearModel（本地线性模型，测试/原型用）
type RankPredictor interface {
	// Name 返回模型名称（用于日志/监控）
	Name() string

	// Predict 预测搜索排位。返回值是无上界的非负实数，越小越好。
	Predict(ctx context.Context, in *ModelInput) (float64, error)
}
