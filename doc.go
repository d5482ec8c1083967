// Package rankwise 是一个商品搜索排位分析工具包。
//
// 设计要点：
// - 特征优先：feature 包把外部分析 API 与物流矩阵组装成固定 schema 的
//   特征记录，任何上游失败都退化为默认值而不是中断批次
// - 模型即函数：排位预测是 core.RankPredictor 的一次调用（本地模型或
//   远程模型服务），进程内加载一次、预测多次
// - 敏感性扫描：recommend 包对单条记录做一次一个特征的扰动搜索，
//   输出按边际改进排序的建议与配送短板诊断
package rankwise

import (
	"github.com/LLrodyaLL/predictive-analytics-project/core"
	"github.com/LLrodyaLL/predictive-analytics-project/feature"
	"github.com/LLrodyaLL/predictive-analytics-project/recommend"
)

// 轻量 facade：便于用户直接 import 根包使用核心抽象。
type FeatureRecord = core.FeatureRecord
type ModelInput = core.ModelInput
type DataSource = core.DataSource
type RankPredictor = core.RankPredictor
type RecordStore = core.RecordStore

type Extractor = feature.Extractor
type Engine = recommend.Engine
type Report = recommend.Report
type Recommendation = recommend.Recommendation
