// Package drums generates percussion events from 16-step grid patterns.
package drums

import (
	"math"
	"math/rand"
	"sort"

	"github.com/Conceptual-Machines/magda-engine-go/internal/groove"
	"github.com/Conceptual-Machines/magda-engine-go/internal/models"
)

const (
	stepsPerBar = 16
	stepTicks   = models.TicksPerBeat / 4 // sixteenth-note grid

	ghostEnergyFloor   = 0.7 // ghosts only appear above this energy
	ghostVelocityFloor = 80  // and only next to hits louder than this
	ghostProbability   = 0.2
	ghostVelocityScale = 0.4

	hitDurationTicks = 100 // nominal percussion hit length

	timingJitterSteps = 0.15 // humanize timing range, in fractions of a step
	velocityJitter    = 10.0 // humanize velocity range
)

// Options parameterize one drum-generation run.
type Options struct {
	Bars     int
	Energy   float64
	Humanize float64
	Rng      *rand.Rand
}

// Generate renders the pattern selected by hint across opts.Bars bars.
// Unknown hints degrade to the default pattern; the result is always sorted
// ascending by start tick.
func Generate(hint string, opts Options) []models.NoteEvent {
	pattern := pickPattern(hint, opts.Rng)
	return GeneratePattern(pattern, opts)
}

// GeneratePattern renders a specific pattern. Exposed separately so callers
// with their own pattern tables (or tests) can bypass hint resolution.
func GeneratePattern(pattern DrumPattern, opts Options) []models.NoteEvent {
	bars := opts.Bars
	if bars < 1 {
		bars = 1
	}

	energyScale := 0.5 + opts.Energy*0.5
	var events []models.NoteEvent

	// Lanes are visited in name order so a seeded RNG always sees the same
	// draw sequence.
	lanes := make([]string, 0, len(pattern.Sounds))
	for sound := range pattern.Sounds {
		lanes = append(lanes, sound)
	}
	sort.Strings(lanes)

	for bar := 0; bar < bars; bar++ {
		for _, sound := range lanes {
			note, ok := drumNotes[sound]
			if !ok {
				continue
			}
			steps := pattern.Sounds[sound]
			for step, stepVel := range steps {
				if stepVel == 0 {
					continue
				}

				finalVel := int(math.Round(float64(stepVel) * energyScale))
				tick := bar*stepsPerBar*stepTicks + step*stepTicks

				// Ghost hit: a quiet grace note half a step early,
				// only next to loud hits at high energy.
				if opts.Energy > ghostEnergyFloor && stepVel > ghostVelocityFloor &&
					opts.Rng.Float64() < ghostProbability {
					ghostTick := tick - stepTicks/2
					if ghostTick >= 0 {
						events = append(events, models.NoteEvent{
							StartTick:      ghostTick,
							DurationTicks:  hitDurationTicks / 2,
							MidiNoteNumber: note,
							Velocity:       groove.ClampVelocity(int(math.Round(float64(finalVel) * ghostVelocityScale))),
						})
					}
				}

				// Swing delays the odd sixteenths (the 8th-note offbeats).
				if step%2 == 1 && pattern.Swing > 0 {
					tick += int(math.Round(pattern.Swing * stepTicks * 0.5))
				}

				if opts.Humanize > 0 {
					tick += groove.JitterTicks(opts.Rng, timingJitterSteps*stepTicks*opts.Humanize)
					finalVel += int(math.Round(groove.Jitter(opts.Rng, velocityJitter*opts.Humanize)))
				}
				if tick < 0 {
					tick = 0
				}

				events = append(events, models.NoteEvent{
					StartTick:      tick,
					DurationTicks:  hitDurationTicks,
					MidiNoteNumber: note,
					Velocity:       groove.ClampVelocity(finalVel),
				})
			}
		}
	}

	// Downstream consumers assume temporal order.
	groove.SortEvents(events)
	return events
}

// pickPattern resolves a hint to a concrete pattern: direct pattern names
// win, then hint sets are sampled uniformly, then the default applies.
func pickPattern(hint string, rng *rand.Rand) DrumPattern {
	if p, ok := patterns[hint]; ok {
		return p
	}
	if names, ok := hintPatterns[hint]; ok && len(names) > 0 {
		return patterns[names[rng.Intn(len(names))]]
	}
	return patterns[defaultPatternName]
}
