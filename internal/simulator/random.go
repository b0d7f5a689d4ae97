package simulator

import (
	"math/rand"
	"time"
)

// Source uniform floats in [0, 1). Not safe for concurrent use unless the
// implementation says so; the simulator is always driven from one critical section.
type Source interface {
	Float64() float64
}

// NewSeededSource deterministic source; seed 0 seeds from the wall clock
func NewSeededSource(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
