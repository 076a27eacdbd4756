package feed

import (
	"math/rand"
	"time"
)

// Clock and Rand are seams for deterministic tests.
type Clock interface {
	Now() time.Time
}

type Rand interface {
	Float64() float64
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

func NewRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
