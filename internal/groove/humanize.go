package groove

import (
	"math"
	"math/rand"

	"github.com/Conceptual-Machines/magda-engine-go/internal/models"
)

// Humanization stage constants.
const (
	timingJitterTicks   = 30.0 // max timing offset at full timing depth
	velocityJitterRange = 25.0 // max velocity offset at full velocity depth
	downbeatWindow      = 0.1  // beats either side of a downbeat that count
	downbeatAccent      = 12   // fixed accent for downbeat hits
	beatsPerBar         = 4    // downbeat spacing; simple meters assumed
	phraseBeats         = 4    // phrase-contour window length
	phraseFloor         = 0.8  // contour multiplier at phrase edges
	durationJitterDepth = 0.1  // max multiplicative duration perturbation
	minDurationTicks    = 10   // duration floor after jitter
	swingWindowLow      = 0.4  // fractional-beat window treated as offbeat
	swingWindowHigh     = 0.6
)

// HumanizeOptions configure the pipeline depth per stage. All depths are 0-1;
// zero disables the stage's randomness entirely, which is what the
// deterministic property tests rely on.
type HumanizeOptions struct {
	Timing          float64 // timing jitter depth
	Velocity        float64 // velocity jitter depth
	Swing           float64 // offbeat delay amount
	DynamicRange    float64 // phrase contour depth
	AccentDownbeats bool    // add the fixed accent to on-the-beat hits
}

// Humanize runs the full pipeline over a generated event list and returns new
// events; inputs are never mutated. Stage order is fixed: swing/jitter/accent,
// then phrase dynamics, then duration jitter.
func Humanize(events []models.NoteEvent, opts HumanizeOptions, rng *rand.Rand) []models.NoteEvent {
	out := make([]models.NoteEvent, len(events))
	copy(out, events)

	out = applyTimingAndAccents(out, opts, rng)
	out = applyPhraseDynamics(out, opts.DynamicRange)
	out = applyDurationJitter(out, opts.Timing, rng)
	return out
}

// applyTimingAndAccents is stage 1: swing delay for offbeat-window events,
// uniform timing and velocity jitter, optional downbeat accent.
func applyTimingAndAccents(events []models.NoteEvent, opts HumanizeOptions, rng *rand.Rand) []models.NoteEvent {
	out := events[:0]
	for _, ev := range events {
		beatPos := float64(ev.StartTick) / models.TicksPerBeat
		frac := beatPos - math.Floor(beatPos)

		tick := ev.StartTick
		if opts.Swing > 0 && frac >= swingWindowLow && frac <= swingWindowHigh {
			// Push the offbeat toward a triplet feel.
			tick += int(math.Round(opts.Swing * models.TicksPerBeat / 3))
		}
		if opts.Timing > 0 {
			tick += JitterTicks(rng, timingJitterTicks*opts.Timing)
		}
		if tick < 0 {
			tick = 0
		}

		vel := ev.Velocity
		if opts.Velocity > 0 {
			vel += int(math.Round(Jitter(rng, velocityJitterRange*opts.Velocity)))
		}
		if opts.AccentDownbeats && isNearDownbeat(beatPos) {
			vel += downbeatAccent
		}

		ev.StartTick = tick
		ev.Velocity = ClampVelocity(vel)
		out = append(out, ev)
	}
	return out
}

// applyPhraseDynamics is stage 2: a 4-beat arc whose velocity multiplier
// rises from the floor to 1.0 over the first half of the phrase and falls
// back over the second, scaled by the dynamic-range depth.
func applyPhraseDynamics(events []models.NoteEvent, depth float64) []models.NoteEvent {
	if depth <= 0 {
		return events
	}

	out := events[:0]
	phraseTicks := float64(phraseBeats * models.TicksPerBeat)
	for _, ev := range events {
		pos := math.Mod(float64(ev.StartTick), phraseTicks) / phraseTicks

		var contour float64
		if pos <= 0.5 {
			contour = phraseFloor + (1-phraseFloor)*(pos/0.5)
		} else {
			contour = 1 - (1-phraseFloor)*((pos-0.5)/0.5)
		}
		mult := 1 + (contour-1)*depth

		ev.Velocity = ClampVelocity(int(math.Round(float64(ev.Velocity) * mult)))
		out = append(out, ev)
	}
	return out
}

// applyDurationJitter is stage 3: a bounded multiplicative perturbation that
// never lets a note collapse below the duration floor.
func applyDurationJitter(events []models.NoteEvent, depth float64, rng *rand.Rand) []models.NoteEvent {
	if depth <= 0 {
		return events
	}

	out := events[:0]
	for _, ev := range events {
		mult := 1 + Jitter(rng, durationJitterDepth*depth)
		d := int(math.Round(float64(ev.DurationTicks) * mult))
		if d < minDurationTicks {
			d = minDurationTicks
		}
		ev.DurationTicks = d
		out = append(out, ev)
	}
	return out
}

func isNearDownbeat(beatPos float64) bool {
	barPos := math.Mod(beatPos, beatsPerBar)
	return barPos < downbeatWindow || barPos > beatsPerBar-downbeatWindow
}
