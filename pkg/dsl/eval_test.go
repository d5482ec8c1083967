package dsl

import "testing"

func TestCompileAndEvaluate(t *testing.T) {
	features := map[string]float64{
		"rating":     4.6,
		"discount":   25,
		"promo_days": 10,
	}

	tests := []struct {
		name    string
		expr    string
		want    bool
		wantErr bool
	}{
		{name: "greater-or-equal true", expr: "features.rating >= 4.5", want: true},
		{name: "greater-or-equal false", expr: "features.rating >= 4.9", want: false},
		{name: "less-or-equal", expr: "features.discount <= 30.0", want: true},
		{name: "conjunction", expr: "features.discount >= 20.0 && features.promo_days >= 5.0", want: true},
		{name: "empty expression is always true", expr: "", want: true},
		{name: "missing feature is an eval error", expr: "features.unknown > 1.0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prg, err := Compile(tt.expr)
			if err != nil {
				t.Fatalf("Compile(%q) error = %v", tt.expr, err)
			}

			got, err := prg.Evaluate(features)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Evaluate(%q) expected error", tt.expr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Evaluate(%q) error = %v", tt.expr, err)
			}
			if got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestCompile_InvalidExpression(t *testing.T) {
	if _, err := Compile("features.rating >="); err == nil {
		t.Fatal("Compile() expected error for malformed expression")
	}
}

func TestEvaluate_NonBooleanResult(t *testing.T) {
	prg, err := Compile("features.rating + 1.0")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if _, err := prg.Evaluate(map[string]float64{"rating": 4.0}); err == nil {
		t.Fatal("Evaluate() expected error for non-boolean result")
	}
}

// Compiled programs must be reusable across evaluations.
func TestProgram_Reuse(t *testing.T) {
	prg, err := Compile("features.rating >= 4.5")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	for i, features := range []map[string]float64{
		{"rating": 4.6},
		{"rating": 4.0},
		{"rating": 5.0},
	} {
		want := features["rating"] >= 4.5
		got, err := prg.Evaluate(features)
		if err != nil {
			t.Fatalf("Evaluate() run %d error = %v", i, err)
		}
		if got != want {
			t.Errorf("Evaluate() run %d = %v, want %v", i, got, want)
		}
	}
}
