package generator

import (
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// RNG wraps a single seedable random source shared by every pipeline
// stage, so a fixed seed reproduces an entire generation run.
type RNG struct {
	src rand.Source
	*rand.Rand
}

// NewRNG creates a generator RNG. Seed 0 seeds from the wall clock.
func NewRNG(seed uint64) *RNG {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	src := rand.NewSource(seed)
	return &RNG{src: src, Rand: rand.New(src)}
}

// IntRange returns a uniform integer in [min, max] inclusive.
func (r *RNG) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.Intn(max-min+1)
}

// FloatRange returns a uniform float in [min, max).
func (r *RNG) FloatRange(min, max float64) float64 {
	return min + r.Float64()*(max-min)
}

// Chance returns true with probability p.
func (r *RNG) Chance(p float64) bool {
	return r.Float64() < p
}

// Beta draws from a Beta(alpha, beta) distribution in [0, 1].
func (r *RNG) Beta(alpha, beta float64) float64 {
	return distuv.Beta{Alpha: alpha, Beta: beta, Src: r.src}.Rand()
}

// Normal draws from a Normal(mu, sigma) distribution.
func (r *RNG) Normal(mu, sigma float64) float64 {
	return distuv.Normal{Mu: mu, Sigma: sigma, Src: r.src}.Rand()
}

// Exponential draws from an exponential distribution with the given
// mean (the long-tail shape used for join dates).
func (r *RNG) Exponential(mean float64) float64 {
	return distuv.Exponential{Rate: 1 / mean, Src: r.src}.Rand()
}

// WeightedIndex picks an index with probability proportional to its
// weight. Weights must be non-negative with a positive sum.
func (r *RNG) WeightedIndex(weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	target := r.Float64() * total
	for i, w := range weights {
		target -= w
		if target < 0 {
			return i
		}
	}
	return len(weights) - 1
}

// DateBetween returns a uniform calendar date in [start, end] at
// midnight UTC.
func (r *RNG) DateBetween(start, end time.Time) time.Time {
	start = atMidnight(start)
	end = atMidnight(end)
	days := int(end.Sub(start).Hours() / 24)
	if days <= 0 {
		return start
	}
	return start.AddDate(0, 0, r.Intn(days+1))
}

func atMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
