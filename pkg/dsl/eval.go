// Package dsl 是指标规则的解释器，使用 CEL (Common Expression Language) 实现。
// CEL 是 Google 开发的表达式语言，具有类型安全、高性能、线程安全等特性。
//
// 表达式在 `features` 变量（特征名 → 数值）上求值，必须返回布尔值：
//   - 数值比较：features.rating >= 4.5 / features.avg_delivery_time <= 48
//   - 逻辑组合：features.discount >= 30 && features.promo_days >= 15
//
// 推荐引擎的状态规则（好/正常/待改进）用它表达阈值，
// 阈值因此可以随配置调整而无需改代码。
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
	celEnvErr  error
)

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("features", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// Program 是编译后的规则程序：编译一次，多次求值。
type Program struct {
	expr string
	prg  cel.Program
}

// Compile 编译一条规则表达式。表达式为空串时编译结果恒为 true。
func Compile(expr string) (*Program, error) {
	if expr == "" {
		return &Program{expr: expr}, nil
	}

	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile %q: %w", expr, issues.Err())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", expr, err)
	}

	return &Program{expr: expr, prg: prg}, nil
}

// Evaluate 在给定的特征表上执行规则，返回布尔结果。
// 表达式引用了不存在的特征名时返回错误（调用方决定如何降级）。
func (p *Program) Evaluate(features map[string]float64) (bool, error) {
	if p.prg == nil {
		return true, nil
	}

	out, _, err := p.prg.Eval(map[string]any{
		"features": features,
	})
	if err != nil {
		return false, fmt.Errorf("eval %q: %w", p.expr, err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression %q must return boolean, got %T", p.expr, out.Value())
	}
	return result, nil
}

// String 返回原始表达式文本。
func (p *Program) String() string { return p.expr }
