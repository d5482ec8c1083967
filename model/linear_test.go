package model

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/LLrodyaLL/predictive-analytics-project/core"
)

func TestLinearModel_Predict(t *testing.T) {
	m := &LinearModel{
		Bias: 1000,
		Weights: map[string]float64{
			core.FeaturePrice:    0.1,
			core.FeatureDiscount: -5,
		},
		CategoryWeights: map[string]map[string]float64{
			core.FeatureLoyaltyLevel: {
				core.LoyaltyGold:   -200,
				core.LoyaltyNoData: 100,
			},
		},
	}

	tests := []struct {
		name string
		in   *core.ModelInput
		want float64
	}{
		{
			name: "weighted sum plus category bias",
			in: &core.ModelInput{
				Numeric:     map[string]float64{core.FeaturePrice: 1000, core.FeatureDiscount: 20},
				Categorical: map[string]string{core.FeatureLoyaltyLevel: core.LoyaltyGold},
			},
			// 1000 + 0.1*1000 - 5*20 - 200 = 800
			want: 800,
		},
		{
			name: "unknown category value contributes zero",
			in: &core.ModelInput{
				Numeric:     map[string]float64{core.FeaturePrice: 1000},
				Categorical: map[string]string{core.FeatureLoyaltyLevel: "platinum"},
			},
			want: 1100,
		},
		{
			name: "features without weights are ignored",
			in: &core.ModelInput{
				Numeric: map[string]float64{core.FeaturePrice: 1000, core.FeatureRating: 4.5},
			},
			want: 1100,
		},
		{
			name: "negative score floors at zero",
			in: &core.ModelInput{
				Numeric: map[string]float64{core.FeatureDiscount: 500},
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Predict(context.Background(), tt.in)
			if err != nil {
				t.Fatalf("Predict() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Predict() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadLinearModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	payload := `{
		"bias": 500,
		"weights": {"price": 0.2},
		"category_weights": {"loyalty_level": {"gold": -50}}
	}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := LoadLinearModel(path)
	if err != nil {
		t.Fatalf("LoadLinearModel() error = %v", err)
	}
	if m.Bias != 500 {
		t.Errorf("Bias = %v, want 500", m.Bias)
	}
	if m.Weights["price"] != 0.2 {
		t.Errorf("Weights[price] = %v, want 0.2", m.Weights["price"])
	}
	if m.CategoryWeights["loyalty_level"]["gold"] != -50 {
		t.Errorf("CategoryWeights = %v", m.CategoryWeights)
	}
}

func TestLoadLinearModel_Errors(t *testing.T) {
	if _, err := LoadLinearModel(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadLinearModel(path); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
