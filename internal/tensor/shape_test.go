package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
		want  int
	}{
		{"scalar", Scalar, 1},
		{"nil", nil, 1},
		{"vector", Shape{4}, 4},
		{"matrix", Shape{2, 3}, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.shape.NumElements())
		})
	}
}

func TestShapeEqual(t *testing.T) {
	assert.True(t, Shape{2, 3}.Equal(Shape{2, 3}))
	assert.True(t, Scalar.Equal(Shape{}))
	assert.False(t, Shape{2, 3}.Equal(Shape{3, 2}))
	assert.False(t, Shape{3}.Equal(Scalar))
}

func TestShapeString(t *testing.T) {
	assert.Equal(t, "[]", Scalar.String())
	assert.Equal(t, "[2 3]", Shape{2, 3}.String())
}

func TestBroadcastShapes(t *testing.T) {
	got, needs, err := BroadcastShapes(Shape{1}, Shape{4})
	require.NoError(t, err)
	assert.True(t, needs)
	assert.Equal(t, Shape{4}, got)

	got, needs, err = BroadcastShapes(Shape{3, 5}, Shape{3, 5})
	require.NoError(t, err)
	assert.False(t, needs)
	assert.Equal(t, Shape{3, 5}, got)

	_, _, err = BroadcastShapes(Shape{3, 4}, Shape{3, 5})
	assert.Error(t, err)
}

func TestDataTypeString(t *testing.T) {
	assert.Equal(t, "float64", Float64.String())
	assert.Equal(t, "dual", Dual.String())
	assert.Equal(t, 16, Dual.Size())
}
