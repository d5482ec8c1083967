package feature

import (
	"github.com/LLrodyaLL/predictive-analytics-project/core"
	"github.com/LLrodyaLL/predictive-analytics-project/pkg/conv"
)

// ExtractPositionValue 从一条原始位置观测中解析出位置数字。
//
// 按固定优先级尝试四个候选字段：expected_position → position →
// general_position → pos。第一个“存在、能解析为数字、且严格大于 0”
// 的值胜出；解析失败或非正值的候选被跳过（不当作 0），继续看下一个。
// 全部落空时返回 (0, false)，该条观测不贡献任何值。
func ExtractPositionValue(pos core.PositionRecord) (float64, bool) {
	for _, candidate := range []any{pos.ExpectedPosition, pos.Position, pos.GeneralPosition, pos.Pos} {
		if candidate == nil {
			continue
		}
		num, ok := conv.ToNumber(candidate)
		if ok && num > 0 {
			return num, true
		}
	}
	return 0, false
}

// applyPositions 把一组位置观测聚合进记录。
//
//   - positions_found：收到的观测总数（含无效的）
//   - positions_count：解析出有效值的观测数
//   - first_valid_position：输入顺序中第一个有效值
//   - expected_position：第一条显式带非空 expected_position 字段的
//     观测的解析值——显式的“期望位置”信号优先于顺带解析出的数字；
//     没有任何观测显式标注时回落到 avg_position
//   - avg_position：全部有效值的均值，保留一位小数
//
// 空列表或全无效时不动记录的默认值。
func applyPositions(rec *core.FeatureRecord, positions []core.PositionRecord) {
	if len(positions) == 0 {
		return
	}
	rec.PositionsFound = len(positions)

	var valid []float64
	for _, pos := range positions {
		num, ok := ExtractPositionValue(pos)
		if !ok {
			continue
		}
		valid = append(valid, num)

		if rec.FirstValidPosition == nil {
			v := num
			rec.FirstValidPosition = &v
		}
		if rec.ExpectedPosition == nil && pos.ExpectedPosition != nil {
			v := num
			rec.ExpectedPosition = &v
		}
	}

	rec.PositionsCount = len(valid)
	if len(valid) > 0 {
		avg := core.Round1(mean(valid))
		rec.AvgPosition = &avg
		if rec.ExpectedPosition == nil {
			rec.ExpectedPosition = &avg
		}
	}
}
