package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedPointArithmetic(t *testing.T) {
	a := NewFixedPointFromInt(3)
	b := NewFixedPointFromInt(2)

	assert.Equal(t, "5.000000000000000000", a.Add(b).String())
	assert.Equal(t, "1.000000000000000000", a.Sub(b).String())
	assert.Equal(t, "6.000000000000000000", a.Mul(b).String())
}

func TestFixedPointMulBps(t *testing.T) {
	amount := NewFixedPointFromInt(1000)
	fiftyBps := amount.MulBps(50) // 0.5%
	assert.Equal(t, "5.000000000000000000", fiftyBps.String())
}

func TestFixedPointCmpAndZero(t *testing.T) {
	zero := NewFixedPointFromInt(0)
	one := NewFixedPointFromInt(1)

	assert.True(t, zero.IsZero())
	assert.False(t, one.IsZero())
	assert.Equal(t, -1, zero.Cmp(one))
	assert.Equal(t, 1, one.Cmp(zero))
	assert.Equal(t, 0, one.Cmp(one))
}
