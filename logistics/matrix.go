// Package logistics 维护配送时长矩阵：一张外部提供的表，
// 行是仓库，列是目的地联邦管区的配送时长（小时）。
//
// 生命周期：每个抽取批次加载一次，之后只读，供批次内所有商品共享。
// 矩阵参数是整个抽取流程中唯一做前置校验的输入——表不合法在批次
// 开始前就拒绝，而不是让每个商品各自失败。
package logistics

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/LLrodyaLL/predictive-analytics-project/core"
)

// 表头的固定列名。仓库列与管区标签列之后，每个 core.Regions 代码
// 对应一列配送时长。
const (
	columnWarehouse       = "warehouse"
	columnFederalDistrict = "federal_district"
)

// FallbackWarehouses 是默认仓库列表：当商品自己的仓库集合
// 在矩阵中匹配不到任何一行时退回使用。
var FallbackWarehouses = []string{"Подольск", "Коледино", "Электросталь", "Казань"}

// unmeasuredCeiling 以下（含）的时长视为未测量，不参与取最小值。
const unmeasuredCeiling = 1

// Row 是矩阵中的一行：一个仓库到各管区的配送时长。
type Row struct {
	Warehouse       string
	FederalDistrict string
	Durations       map[core.Region]float64
}

// Matrix 是加载完成的只读配送矩阵。
type Matrix struct {
	rows []Row
}

// Load 从 CSV 文件加载矩阵。
func Load(path string) (*Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open logistics matrix: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse 从 reader 解析矩阵并做 schema 校验。
// 校验失败返回 INVALID_INPUT 领域错误：表头必须包含仓库列、
// 管区标签列以及全部七个管区的时长列。
func Parse(r io.Reader) (*Matrix, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, core.NewDomainError(core.ModuleLogistics, core.ErrorCodeInvalidInput,
			fmt.Sprintf("logistics matrix is not tabular: %v", err))
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	if _, ok := index[columnWarehouse]; !ok {
		return nil, core.NewDomainError(core.ModuleLogistics, core.ErrorCodeInvalidInput,
			"logistics matrix: missing warehouse column")
	}
	if _, ok := index[columnFederalDistrict]; !ok {
		return nil, core.NewDomainError(core.ModuleLogistics, core.ErrorCodeInvalidInput,
			"logistics matrix: missing federal_district column")
	}
	for _, region := range core.Regions {
		if _, ok := index[region]; !ok {
			return nil, core.NewDomainError(core.ModuleLogistics, core.ErrorCodeInvalidInput,
				fmt.Sprintf("logistics matrix: missing region column %q", region))
		}
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, core.NewDomainError(core.ModuleLogistics, core.ErrorCodeInvalidInput,
				fmt.Sprintf("logistics matrix row %d: %v", len(rows)+2, err))
		}

		row := Row{
			Warehouse:       strings.TrimSpace(record[index[columnWarehouse]]),
			FederalDistrict: strings.TrimSpace(record[index[columnFederalDistrict]]),
			Durations:       make(map[core.Region]float64, len(core.Regions)),
		}
		for _, region := range core.Regions {
			cell := strings.TrimSpace(record[index[region]])
			if cell == "" {
				continue // 空单元格 = 无数据
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				continue // 非数值单元格同样视为无数据
			}
			row.Durations[region] = v
		}
		rows = append(rows, row)
	}

	return &Matrix{rows: rows}, nil
}

// Len 返回矩阵行数。
func (m *Matrix) Len() int { return len(m.rows) }

// MinDurations 返回给定仓库集合到每个管区的最小有效配送时长。
//
// 规则：
//   - 先按商品自己的仓库集合筛行；一行都匹配不到时退回 FallbackWarehouses
//   - 时长 <= 1 视为未测量，参与不了最小值
//   - 某管区没有任何有效时长时，结果 map 里没有该 key
func (m *Matrix) MinDurations(warehouses []string) map[core.Region]float64 {
	rows := m.matchRows(warehouses)
	if len(rows) == 0 {
		rows = m.matchRows(FallbackWarehouses)
	}

	result := make(map[core.Region]float64)
	for _, row := range rows {
		for _, region := range core.Regions {
			v, ok := row.Durations[region]
			if !ok || v <= unmeasuredCeiling {
				continue
			}
			if cur, ok := result[region]; !ok || v < cur {
				result[region] = v
			}
		}
	}
	return result
}

func (m *Matrix) matchRows(warehouses []string) []Row {
	set := make(map[string]struct{}, len(warehouses))
	for _, w := range warehouses {
		set[w] = struct{}{}
	}
	var matched []Row
	for _, row := range m.rows {
		if _, ok := set[row.Warehouse]; ok {
			matched = append(matched, row)
		}
	}
	return matched
}
