package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsistency(t *testing.T) {
	assert.Equal(t, 1.0, consistency(nil))
	assert.Equal(t, 1.0, consistency([]float64{75}))
	assert.Equal(t, 1.0, consistency([]float64{80, 80, 80}))

	// stdev = 10 -> 1 - 10/30
	assert.InDelta(t, 1-10.0/30, consistency([]float64{60, 80}), 1e-9)

	// 足够大的波动触底为 0
	assert.Equal(t, 0.0, consistency([]float64{0, 100, 0, 100}))
}

func TestConsistencyBoundsAndMonotonicity(t *testing.T) {
	// 标准差增大时 consistency 单调不增，且始终落在 [0,1]
	prev := 1.1
	for spread := 0.0; spread <= 50; spread += 5 {
		c := consistency([]float64{50 - spread, 50 + spread})
		assert.GreaterOrEqual(t, c, 0.0)
		assert.LessOrEqual(t, c, 1.0)
		assert.LessOrEqual(t, c, prev, "spread=%f", spread)
		prev = c
	}
}

func TestVelocity(t *testing.T) {
	assert.Equal(t, 0.0, velocity(nil, 5))
	assert.Equal(t, 0.0, velocity([]float64{50}, 5))

	// 均匀每次 +2
	assert.InDelta(t, 2.0, velocity([]float64{50, 52, 54, 56, 58}, 5), 1e-9)

	// 只看最近 5 个观测：前面的大跌不影响
	assert.InDelta(t, 2.0, velocity([]float64{90, 10, 50, 52, 54, 56, 58}, 5), 1e-9)

	// 钳制到 [-10, 10]
	assert.Equal(t, 10.0, velocity([]float64{0, 100}, 5))
	assert.Equal(t, -10.0, velocity([]float64{100, 0}, 5))
}

func TestStability(t *testing.T) {
	// 少于 3 个观测恒为中性 0.5
	assert.Equal(t, 0.5, stability(nil, 10))
	assert.Equal(t, 0.5, stability([]float64{70}, 10))
	assert.Equal(t, 0.5, stability([]float64{70, 90}, 10))

	// 平稳序列接近 1
	assert.Equal(t, 1.0, stability([]float64{80, 80, 80, 80}, 10))

	// 平均波动 10 -> 1 - 10/20
	assert.InDelta(t, 0.5, stability([]float64{70, 80, 70, 80}, 10), 1e-9)

	// 剧烈波动触底为 0
	assert.Equal(t, 0.0, stability([]float64{0, 100, 0, 100}, 10))
}

func TestTail(t *testing.T) {
	s := []float64{1, 2, 3, 4, 5}
	assert.Equal(t, []float64{3, 4, 5}, tail(s, 3))
	assert.Equal(t, s, tail(s, 10))
	assert.Equal(t, s, tail(s, 0))
}
