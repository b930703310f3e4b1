package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceLabel(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "$0.00"},
		{42.5, "$42.50"},
		{999.99, "$999.99"},
		{1000, "$1,000.00"},
		{42000.5, "$42,000.50"},
		{1234567.89, "$1,234,567.89"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PriceLabel(tt.value))
	}
}

func TestDeltaLabel(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{123.45, "+$123.45"},
		{-123.45, "-$123.45"},
		{0, "+$0.00"},
		{-1500, "-$1,500.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DeltaLabel(tt.value))
	}
}

func TestDeltaDirection(t *testing.T) {
	assert.Equal(t, DirectionUp, DeltaDirection(0.01))
	assert.Equal(t, DirectionDown, DeltaDirection(-0.01))
	assert.Equal(t, DirectionFlat, DeltaDirection(0))
}
