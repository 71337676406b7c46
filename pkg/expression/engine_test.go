package expression

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemEnv(name string, price float64) map[string]interface{} {
	return map[string]interface{}{
		"name":        name,
		"description": "Fresh tomatoes with basil on toast",
		"course":      "Starters",
		"price":       price,
	}
}

func TestEngine_Evaluate(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		name     string
		expr     string
		env      map[string]interface{}
		expected interface{}
		wantErr  bool
	}{
		{name: "Simple Math", expr: "1 + 1", expected: 2},
		{name: "Price Rule", expr: "price > 0", env: itemEnv("Bruschetta", 65), expected: true},
		{name: "Trim", expr: "TRIM(name)", env: itemEnv("  Ribeye ", 220), expected: "Ribeye"},
		{name: "Blank", expr: "ISBLANK(name)", env: itemEnv("   ", 220), expected: true},
		{name: "Len", expr: "LEN(name)", env: itemEnv("Ribeye", 220), expected: 6},
		{name: "Lower", expr: "LOWER(course)", env: itemEnv("x", 1), expected: "starters"},
		{name: "Round", expr: "ROUND(price / 3, 2)", env: itemEnv("x", 100), expected: 33.33},
		{name: "Finite", expr: "ISFINITE(price)", env: itemEnv("x", math.Inf(1)), expected: false},
		{name: "Syntax Error", expr: "price >", env: itemEnv("x", 1), wantErr: true},
		{name: "Bad Argument", expr: "TRIM(price)", env: itemEnv("x", 1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Evaluate(tt.expr, tt.env)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestEngine_EvaluateBool(t *testing.T) {
	e := NewEngine()

	ok, err := e.EvaluateBool("price > 0 && !ISBLANK(name)", itemEnv("Ribeye", 220))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = e.EvaluateBool("price > 0", itemEnv("Ribeye", -1))
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = e.EvaluateBool("name", itemEnv("Ribeye", 1))
	assert.Error(t, err)
}

func TestEngine_RegisterFunction(t *testing.T) {
	e := NewEngine()
	e.RegisterFunction("DOUBLE", func(params ...interface{}) (interface{}, error) {
		f, err := toFloat(params[0])
		return f * 2, err
	})

	out, err := e.Evaluate("DOUBLE(price)", itemEnv("x", 21))
	require.NoError(t, err)
	assert.Equal(t, 42.0, out)
}

func TestEngine_Validate(t *testing.T) {
	e := NewEngine()
	assert.NoError(t, e.Validate("price <= 10000", itemEnv("x", 1)))
	assert.Error(t, e.Validate("price <=", itemEnv("x", 1)))
}
