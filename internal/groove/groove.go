// Package groove holds the shared performance math: seedable randomness
// helpers, weighted choice, velocity clamping, and the humanization pipeline
// applied to every generated event list.
package groove

import (
	"math"
	"math/rand"
	"sort"

	"github.com/Conceptual-Machines/magda-engine-go/internal/models"
)

// Jitter returns a uniform random value in [-scale, +scale].
func Jitter(rng *rand.Rand, scale float64) float64 {
	return (rng.Float64()*2 - 1) * scale
}

// JitterTicks rounds a timing jitter to whole ticks.
func JitterTicks(rng *rand.Rand, scale float64) int {
	return int(math.Round(Jitter(rng, scale)))
}

// ClampVelocity bounds a velocity to the playable MIDI range [1,127].
// Generated hits are never fully silent; a zero step is a rest, not a note.
func ClampVelocity(v int) int {
	if v < 1 {
		return 1
	}
	if v > 127 {
		return 127
	}
	return v
}

// ClampPitch bounds a pitch number to 0-127.
func ClampPitch(p int) int {
	if p < 0 {
		return 0
	}
	if p > 127 {
		return 127
	}
	return p
}

// Weighted pairs a candidate with its selection weight.
type Weighted[T any] struct {
	Value  T
	Weight float64
}

// PickWeighted samples one candidate by cumulative-weight selection. Zero or
// negative weights are skipped; when all weights are unusable the first
// candidate is returned.
func PickWeighted[T any](rng *rand.Rand, candidates []Weighted[T]) T {
	var total float64
	for _, c := range candidates {
		if c.Weight > 0 {
			total += c.Weight
		}
	}
	if total <= 0 {
		return candidates[0].Value
	}

	target := rng.Float64() * total
	var acc float64
	for _, c := range candidates {
		if c.Weight <= 0 {
			continue
		}
		acc += c.Weight
		if target < acc {
			return c.Value
		}
	}
	return candidates[len(candidates)-1].Value
}

// SortEvents orders events ascending by start tick, breaking ties by pitch so
// identical inputs always serialize identically.
func SortEvents(events []models.NoteEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].StartTick != events[j].StartTick {
			return events[i].StartTick < events[j].StartTick
		}
		return events[i].MidiNoteNumber < events[j].MidiNoteNumber
	})
}
