package location

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegion(t *testing.T) {
	r, err := NewRegion(10, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(10), r.Left())
	assert.Equal(t, int64(20), r.Right())
	assert.Equal(t, int64(11), r.Length())
}

func TestNewRegion_SinglePosition(t *testing.T) {
	r, err := NewRegion(42, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(1), r.Length())
}

func TestNewRegion_Inverted(t *testing.T) {
	_, err := NewRegion(20, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRegion_Mutation(t *testing.T) {
	r, err := NewRegion(100, 200)
	require.NoError(t, err)

	r.SetLeft(150)
	r.SetRight(250)
	assert.Equal(t, int64(150), r.Left())
	assert.Equal(t, int64(250), r.Right())
}

func TestRegion_Compare(t *testing.T) {
	tests := []struct {
		name string
		a, b Region
		want int
	}{
		{"a before b", Region{left: 10, right: 20}, Region{left: 30, right: 40}, -1},
		{"a after b", Region{left: 30, right: 40}, Region{left: 10, right: 20}, 1},
		{"equal left is a tie", Region{left: 10, right: 20}, Region{left: 10, right: 99}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Compare(tt.b); got != tt.want {
				t.Errorf("Compare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestRegion_String(t *testing.T) {
	r, err := NewRegion(10, 20)
	require.NoError(t, err)
	assert.Equal(t, "[10, 20]", r.String())
}
