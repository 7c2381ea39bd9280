package faults

import (
	"math/rand"
	"sync"
	"time"
)

// Injector owns all the randomness behind synthetic latency and failures.
// Handlers never touch the RNG directly, so a fixed seed makes a whole run
// reproducible.
type Injector struct {
	mu      sync.Mutex
	rng     *rand.Rand
	profile Profile
}

// NewInjector builds an injector for the given profile. A zero seed derives
// one from the clock.
func NewInjector(profile Profile, seed int64) *Injector {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Injector{
		rng:     rand.New(rand.NewSource(seed)),
		profile: profile,
	}
}

// Profile returns the active fault profile.
func (i *Injector) Profile() Profile {
	return i.profile
}

// Chance reports true with probability p.
func (i *Injector) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	i.mu.Lock()
	v := i.rng.Float64()
	i.mu.Unlock()
	return v < p
}

// IntBetween returns a random int in [min, max]. A degenerate range
// collapses to min.
func (i *Injector) IntBetween(min, max int) int {
	if max <= min {
		return min
	}
	i.mu.Lock()
	v := min + i.rng.Intn(max-min+1)
	i.mu.Unlock()
	return v
}

// Sleep suspends the calling goroutine for a uniformly random duration
// inside the fault window and returns how long it slept.
func (i *Injector) Sleep(f LatencyFault) time.Duration {
	d := time.Duration(i.IntBetween(f.MinMS, f.MaxMS)) * time.Millisecond
	time.Sleep(d)
	return d
}

// Gauss draws a normally distributed duration, clamped below at floor.
func (i *Injector) Gauss(meanMS, stddevMS, floorMS int) time.Duration {
	i.mu.Lock()
	v := i.rng.NormFloat64()*float64(stddevMS) + float64(meanMS)
	i.mu.Unlock()
	if v < float64(floorMS) {
		v = float64(floorMS)
	}
	return time.Duration(v * float64(time.Millisecond))
}
