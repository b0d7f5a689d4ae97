package trend

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuffer_AppendBelowCapacity(t *testing.T) {
	b := NewBuffer[float64](5)

	p0 := b.Append(1.5)
	p1 := b.Append(2.5)

	assert.Equal(t, 0, p0.Index)
	assert.Equal(t, 1, p1.Index)
	assert.Equal(t, 2, b.Len())

	latest, ok := b.Latest()
	require.True(t, ok)
	assert.Equal(t, 2.5, latest)
}

func TestBuffer_SlidingWindowKeepsNewest30(t *testing.T) {
	b := NewBuffer[float64](0)
	require.Equal(t, DefaultCapacity, b.Capacity())

	for i := 0; i < 45; i++ {
		b.Append(float64(i))
	}

	assert.Equal(t, 30, b.Len())

	points := b.Points()
	for i, p := range points {
		// chronological: values 15..44, most recent last
		assert.Equal(t, float64(15+i), p.Value)
	}
	latest, ok := b.Latest()
	require.True(t, ok)
	assert.Equal(t, 44.0, latest)
}

func TestBuffer_IndexIsLengthBeforeAppend(t *testing.T) {
	b := NewBuffer[float64](3)

	assert.Equal(t, 0, b.Append(10).Index)
	assert.Equal(t, 1, b.Append(11).Index)
	assert.Equal(t, 2, b.Append(12).Index)
	// full window: every later sample is labelled with the capacity
	assert.Equal(t, 3, b.Append(13).Index)
	assert.Equal(t, 3, b.Append(14).Index)

	points := b.Points()
	assert.Equal(t, []int{2, 3, 3}, []int{points[0].Index, points[1].Index, points[2].Index})
}

func TestBuffer_TailAndAt(t *testing.T) {
	b := NewBuffer[int](30)
	for i := 1; i <= 12; i++ {
		b.Append(i)
	}

	assert.Equal(t, []int{3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, b.Tail(10))
	assert.Len(t, b.Tail(100), 12)
	assert.Nil(t, b.Tail(0))

	v, ok := b.At(0)
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = b.At(12)
	assert.False(t, ok)
	_, ok = b.At(-1)
	assert.False(t, ok)
}

func TestBuffer_CloneIsIndependent(t *testing.T) {
	b := NewBuffer[float64](3)
	b.Append(1)
	b.Append(2)

	c := b.Clone()
	c.Append(3)
	c.Append(4)

	assert.Equal(t, 2, b.Len())
	assert.Equal(t, 3, c.Len())

	var nilBuf *Buffer[float64]
	assert.Nil(t, nilBuf.Clone())
	assert.Equal(t, 0, nilBuf.Len())
}

func TestBuffer_JSON(t *testing.T) {
	b := NewBuffer[float64](30)
	b.Append(98)
	b.Append(99)

	data, err := json.Marshal(b)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"index":0,"value":98},{"index":1,"value":99}]`, string(data))

	decoded := NewBuffer[float64](1)
	require.NoError(t, json.Unmarshal(data, decoded))
	assert.Equal(t, 1, decoded.Len())
	latest, _ := decoded.Latest()
	assert.Equal(t, 99.0, latest)
}
