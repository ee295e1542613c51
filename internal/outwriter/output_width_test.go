package outwriter

import (
	"testing"

	"github.com/huangsam/commitlog/internal/contract"
	"github.com/stretchr/testify/assert"
)

func TestGetMaxSubjectWidth(t *testing.T) {
	tests := []struct {
		width    int
		expected int
	}{
		{width: 120, expected: 60},
		{width: 70, expected: minFlexWidth},
		{width: 300, expected: maxFlexWidth},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, GetMaxSubjectWidth(&contract.Config{Width: tt.width}), "width %d", tt.width)
	}
}

func TestGetMaxPathWidth(t *testing.T) {
	assert.Equal(t, 64, GetMaxPathWidth(&contract.Config{Width: 80}))
	assert.Equal(t, minFlexWidth, GetMaxPathWidth(&contract.Config{Width: 20}))
}

func TestGetTermWidthFallback(t *testing.T) {
	// Test binaries do not run attached to a terminal
	width := getTermWidth(&contract.Config{})
	assert.Positive(t, width)
}
