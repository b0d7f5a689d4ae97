// Package trend keeps the sliding window of recent samples charted per vital.
package trend

import (
	"encoding/json"
)

// DefaultCapacity samples kept per vital
const DefaultCapacity = 30

// Point one chart sample. Index is the buffer length before the append,
// so once the window is full every new point carries the same index;
// treat it as an x-axis label only.
type Point[T any] struct {
	Index int `json:"index"`
	Value T   `json:"value"`
}

// Buffer fixed-capacity, oldest-first window
type Buffer[T any] struct {
	capacity int
	points   []Point[T]
}

// NewBuffer creates an empty buffer; capacity <= 0 means DefaultCapacity
func NewBuffer[T any](capacity int) *Buffer[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer[T]{
		capacity: capacity,
		points:   make([]Point[T], 0, capacity),
	}
}

// Append adds value as the newest sample, dropping the oldest on overflow
func (b *Buffer[T]) Append(value T) Point[T] {
	p := Point[T]{Index: len(b.points), Value: value}

	if len(b.points) < b.capacity {
		b.points = append(b.points, p)
		return p
	}

	copy(b.points, b.points[1:])
	b.points[len(b.points)-1] = p
	return p
}

// Len number of samples held
func (b *Buffer[T]) Len() int {
	if b == nil {
		return 0
	}
	return len(b.points)
}

// Capacity maximum number of samples held
func (b *Buffer[T]) Capacity() int {
	if b == nil {
		return 0
	}
	return b.capacity
}

// Points copy of the samples, oldest first
func (b *Buffer[T]) Points() []Point[T] {
	if b == nil {
		return nil
	}
	out := make([]Point[T], len(b.points))
	copy(out, b.points)
	return out
}

// At returns the value at position i (0 = oldest); ok is false when out of range
func (b *Buffer[T]) At(i int) (T, bool) {
	var zero T
	if b == nil || i < 0 || i >= len(b.points) {
		return zero, false
	}
	return b.points[i].Value, true
}

// Latest newest value; ok is false when empty
func (b *Buffer[T]) Latest() (T, bool) {
	return b.At(b.Len() - 1)
}

// Tail values of the newest n samples, oldest first
func (b *Buffer[T]) Tail(n int) []T {
	if b == nil || n <= 0 {
		return nil
	}
	start := len(b.points) - n
	if start < 0 {
		start = 0
	}
	out := make([]T, 0, len(b.points)-start)
	for _, p := range b.points[start:] {
		out = append(out, p.Value)
	}
	return out
}

// Clone deep copy; nil stays nil
func (b *Buffer[T]) Clone() *Buffer[T] {
	if b == nil {
		return nil
	}
	c := &Buffer[T]{
		capacity: b.capacity,
		points:   make([]Point[T], len(b.points), b.capacity),
	}
	copy(c.points, b.points)
	return c
}

// MarshalJSON encodes the buffer as its sample array
func (b *Buffer[T]) MarshalJSON() ([]byte, error) {
	if b == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(b.points)
}

// UnmarshalJSON decodes a sample array, keeping the newest capacity samples
func (b *Buffer[T]) UnmarshalJSON(data []byte) error {
	var points []Point[T]
	if err := json.Unmarshal(data, &points); err != nil {
		return err
	}
	if b.capacity <= 0 {
		b.capacity = DefaultCapacity
	}
	if len(points) > b.capacity {
		points = points[len(points)-b.capacity:]
	}
	b.points = make([]Point[T], len(points), b.capacity)
	copy(b.points, points)
	return nil
}
