// Package arps generates arpeggio lines: the chord-tone set spread over an
// octave range, reordered by a named shape, stepped at a fixed rate, and
// repeated cyclically to fill the span.
package arps

import (
	"math"
	"math/rand"
	"sort"

	"github.com/Conceptual-Machines/magda-engine-go/internal/groove"
	"github.com/Conceptual-Machines/magda-engine-go/internal/models"
	"github.com/Conceptual-Machines/magda-engine-go/internal/theory"
)

const (
	defaultOctave      = 4
	defaultOctaveRange = 2

	beatAccent        = 15 // extra velocity for steps landing on a beat
	stepGapTicks      = 15
	timingJitterTicks = 15.0
	velocityJitter    = 10.0
)

// rateBeats maps a rate name to the step length in beats.
var rateBeats = map[string]float64{
	"quarter":        1,
	"eighth":         0.5,
	"sixteenth":      0.25,
	"triplet-eighth": 1.0 / 3,
}

// Options parameterize one arpeggio span.
type Options struct {
	Beats       int
	Energy      float64
	Humanize    float64
	BaseOctave  int    // zero means the arp default
	OctaveRange int    // octaves of chord tones in the pool, default 2
	Rate        string // quarter/eighth/sixteenth/triplet-eighth
	Rng         *rand.Rand
	Theory      theory.Analyzer
}

// Generate renders one chord span with the named shape. Unknown shapes fall
// back to "up"; an unknown rate falls back to eighths.
func Generate(chord, shape string, opts Options) []models.NoteEvent {
	if opts.BaseOctave == 0 {
		opts.BaseOctave = defaultOctave
	}
	if opts.OctaveRange < 1 {
		opts.OctaveRange = defaultOctaveRange
	}
	if opts.Beats < 1 {
		opts.Beats = 4
	}

	pool := tonePool(chord, opts)
	sequence := reorder(pool, shape, opts.Rng)
	if len(sequence) == 0 {
		return nil
	}

	stepLen, ok := rateBeats[opts.Rate]
	if !ok {
		stepLen = rateBeats["eighth"]
	}
	stepTicks := stepLen * models.TicksPerBeat
	spanTicks := opts.Beats * models.TicksPerBeat
	baseVel := scaledVelocity(85, opts.Energy)

	var events []models.NoteEvent
	for i := 0; ; i++ {
		tick := int(math.Round(float64(i) * stepTicks))
		if tick >= spanTicks {
			break
		}

		duration := int(math.Round(stepTicks)) - stepGapTicks
		if tick+duration > spanTicks {
			duration = spanTicks - tick
		}
		if duration < 1 {
			duration = 1
		}

		vel := baseVel
		if tick%models.TicksPerBeat == 0 {
			vel += beatAccent
		}

		ev := models.NoteEvent{
			StartTick:      tick,
			DurationTicks:  duration,
			MidiNoteNumber: sequence[i%len(sequence)],
			Velocity:       vel,
		}
		if opts.Humanize > 0 {
			ev.StartTick += groove.JitterTicks(opts.Rng, timingJitterTicks*opts.Humanize)
			ev.Velocity += int(math.Round(groove.Jitter(opts.Rng, velocityJitter*opts.Humanize)))
			if ev.StartTick < 0 {
				ev.StartTick = 0
			}
		}
		ev.Velocity = groove.ClampVelocity(ev.Velocity)
		events = append(events, ev)
	}
	return events
}

// tonePool builds the ascending chord-tone pitch set across the octave range.
func tonePool(chord string, opts Options) []int {
	tones := opts.Theory.ChordTones(chord)

	seen := map[int]bool{}
	var pool []int
	for oct := opts.BaseOctave; oct < opts.BaseOctave+opts.OctaveRange; oct++ {
		for _, name := range tones {
			p := groove.ClampPitch(opts.Theory.PitchNumber(name, oct))
			if !seen[p] {
				seen[p] = true
				pool = append(pool, p)
			}
		}
	}
	sort.Ints(pool)
	return pool
}

// reorder arranges the ascending pool per the shape name.
func reorder(pool []int, shape string, rng *rand.Rand) []int {
	switch shape {
	case "down":
		return reversed(pool)
	case "up-down":
		// Ascend then descend without repeating the endpoints.
		if len(pool) < 3 {
			return pool
		}
		out := append([]int{}, pool...)
		for i := len(pool) - 2; i >= 1; i-- {
			out = append(out, pool[i])
		}
		return out
	case "down-up":
		if len(pool) < 3 {
			return reversed(pool)
		}
		out := reversed(pool)
		for i := 1; i <= len(pool)-2; i++ {
			out = append(out, pool[i])
		}
		return out
	case "random":
		out := append([]int{}, pool...)
		rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		return out
	case "1-3-5-3":
		return fixedShape(pool, []int{0, 1, 2, 1})
	case "1-5-3-5":
		return fixedShape(pool, []int{0, 2, 1, 2})
	case "broken":
		// Interleave the even and odd positions.
		var out []int
		for i := 0; i < len(pool); i += 2 {
			out = append(out, pool[i])
		}
		for i := 1; i < len(pool); i += 2 {
			out = append(out, pool[i])
		}
		return out
	default: // "up"
		return pool
	}
}

// fixedShape picks scale-degree positions from the first octave of the pool.
func fixedShape(pool []int, degrees []int) []int {
	out := make([]int, 0, len(degrees))
	for _, d := range degrees {
		if d >= len(pool) {
			d = len(pool) - 1
		}
		out = append(out, pool[d])
	}
	return out
}

func reversed(s []int) []int {
	out := make([]int, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

func scaledVelocity(base int, energy float64) int {
	return groove.ClampVelocity(int(math.Round(float64(base) * (0.5 + energy*0.5))))
}
