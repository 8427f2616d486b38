package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lifeos_backend/internal/model"
)

func TestClassifyTrend(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		want   model.Trend
	}{
		{"monotone increasing", []float64{50, 55, 60, 65, 70}, model.TrendImproving},
		{"monotone decreasing", []float64{70, 66, 62, 58, 55}, model.TrendDeclining},
		{"constant series", []float64{80, 80, 80, 80}, model.TrendStable},
		{"slope below threshold", []float64{70, 70.3, 70.6, 70.9}, model.TrendStable},
		{"slope just above threshold", []float64{70, 71, 72, 73}, model.TrendImproving},
		{"noisy but flat", []float64{60, 62, 59, 61, 60}, model.TrendStable},
		{"empty", nil, model.TrendStable},
		{"single point", []float64{40}, model.TrendStable},
		{"two points insufficient", []float64{40, 90}, model.TrendStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyTrend(tt.scores))
		})
	}
}

func TestClassifyTrendMonotoneProperty(t *testing.T) {
	// 任意长度 >= 3 的严格递增序列必须判为 improving，递减判为 declining
	for n := 3; n <= 20; n++ {
		up := make([]float64, n)
		down := make([]float64, n)
		for i := 0; i < n; i++ {
			up[i] = float64(10 + i*2)
			down[i] = float64(90 - i*2)
		}
		assert.Equal(t, model.TrendImproving, classifyTrend(up), "len=%d", n)
		assert.Equal(t, model.TrendDeclining, classifyTrend(down), "len=%d", n)
	}
}
