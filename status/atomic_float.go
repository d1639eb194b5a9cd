package status

import (
	"math"
	"sync/atomic"
)

// AtomicFloat is a float64 stored as its IEEE bits; zero value reads 0.0
type AtomicFloat struct {
	v atomic.Uint64
}

func (f *AtomicFloat) Set(x float64) { f.v.Store(math.Float64bits(x)) }

func (f *AtomicFloat) Get() float64 { return math.Float64frombits(f.v.Load()) }

// Add returns the sum after adding delta
func (f *AtomicFloat) Add(delta float64) float64 {
	for {
		old := f.v.Load()
		sum := math.Float64frombits(old) + delta
		if f.v.CompareAndSwap(old, math.Float64bits(sum)) {
			return sum
		}
	}
}

// Smooth blends x into the stored value with weight k (exponential moving average)
func (f *AtomicFloat) Smooth(x, k float64) {
	for {
		old := f.v.Load()
		cur := math.Float64frombits(old)
		next := cur + (x-cur)*k
		if cur == 0 {
			next = x
		}
		if f.v.CompareAndSwap(old, math.Float64bits(next)) {
			return
		}
	}
}
