// Package bass generates bass lines from chord tones, with optional
// chromatic lookahead toward the next chord.
package bass

import (
	"math"
	"math/rand"

	"github.com/Conceptual-Machines/magda-engine-go/internal/groove"
	"github.com/Conceptual-Machines/magda-engine-go/internal/models"
	"github.com/Conceptual-Machines/magda-engine-go/internal/theory"
)

const (
	defaultOctave = 2

	beatGapTicks     = 20 // breath between consecutive quarter notes
	eighthTicks      = models.TicksPerBeat / 2
	passingToneProb  = 0.3 // walking-bass chromatic passing chance
	octavePulseScale = 0.3 // reduced humanize for the mechanical pulse feel

	timingJitterTicks = 18.0
	velocityJitter    = 10.0
)

// Options parameterize one bass span (a single chord's beats).
type Options struct {
	Beats    int
	Energy   float64
	Swing    float64
	Humanize float64
	Octave   int    // base octave; zero means the bass default
	NextRoot string // next chord's root for lookahead, empty when unknown
	Rng      *rand.Rand
	Theory   theory.Analyzer
}

// Generate renders one chord span using the variant selected by hint.
// Unknown hints fall back to root-fifth. Ticks are relative to the span
// start; the orchestrator offsets them per chord.
func Generate(chord, hint string, opts Options) []models.NoteEvent {
	if opts.Octave == 0 {
		opts.Octave = defaultOctave
	}
	if opts.Beats < 1 {
		opts.Beats = 4
	}

	tones := opts.Theory.ChordTones(chord)

	switch hint {
	case "walking":
		return walking(tones, opts)
	case "octave-pulse":
		return octavePulse(tones, opts)
	case "syncopated":
		return syncopated(tones, opts)
	default:
		return rootFifth(tones, opts)
	}
}

// walking plays one note per beat: root first, the fifth favored mid-span,
// chord tones or chromatic passing tones between, and a chromatic approach
// into the next chord's root on the final beat.
func walking(tones []string, opts Options) []models.NoteEvent {
	var events []models.NoteEvent
	baseVel := scaledVelocity(95, opts.Energy)

	for beat := 0; beat < opts.Beats; beat++ {
		var pitch int
		switch {
		case beat == 0:
			pitch = opts.Theory.PitchNumber(tones[0], opts.Octave)
		case beat == opts.Beats-1 && opts.NextRoot != "":
			// Approach the next root by a semitone, from above or below.
			target := opts.Theory.PitchNumber(opts.NextRoot, opts.Octave)
			if opts.Rng.Intn(2) == 0 {
				pitch = target + 1
			} else {
				pitch = target - 1
			}
		case beat == 2 && opts.Beats >= 4:
			pitch = pitchForTone(tones, 2, opts)
		case opts.Rng.Float64() < passingToneProb:
			// Chromatic passing tone a semitone off a random chord tone.
			base := pitchForTone(tones, opts.Rng.Intn(len(tones)), opts)
			if opts.Rng.Intn(2) == 0 {
				pitch = base + 1
			} else {
				pitch = base - 1
			}
		default:
			pitch = pitchForTone(tones, opts.Rng.Intn(len(tones)), opts)
		}

		events = append(events, jittered(models.NoteEvent{
			StartTick:      beat * models.TicksPerBeat,
			DurationTicks:  models.TicksPerBeat - beatGapTicks,
			MidiNoteNumber: groove.ClampPitch(pitch),
			Velocity:       baseVel,
		}, opts.Humanize, opts.Rng))
	}
	return events
}

// rootFifth alternates root on even beats and fifth on odd beats; roots are
// louder and held longer.
func rootFifth(tones []string, opts Options) []models.NoteEvent {
	var events []models.NoteEvent
	root := opts.Theory.PitchNumber(tones[0], opts.Octave)
	fifth := pitchForTone(tones, 2, opts)

	for beat := 0; beat < opts.Beats; beat++ {
		ev := models.NoteEvent{StartTick: beat * models.TicksPerBeat}
		if beat%2 == 0 {
			ev.MidiNoteNumber = root
			ev.Velocity = scaledVelocity(100, opts.Energy)
			ev.DurationTicks = models.TicksPerBeat - beatGapTicks
		} else {
			ev.MidiNoteNumber = fifth
			ev.Velocity = scaledVelocity(82, opts.Energy)
			ev.DurationTicks = eighthTicks
		}
		events = append(events, jittered(ev, opts.Humanize, opts.Rng))
	}
	return events
}

// octavePulse subdivides each beat into a driving root pulse, jumping up an
// octave on odd sub-steps at high energy. Deliberately tight: reduced
// humanize, no swing.
func octavePulse(tones []string, opts Options) []models.NoteEvent {
	subdivisions := 2
	if opts.Energy > 0.7 {
		subdivisions = 4
	}
	subTicks := models.TicksPerBeat / subdivisions
	root := opts.Theory.PitchNumber(tones[0], opts.Octave)

	var events []models.NoteEvent
	for beat := 0; beat < opts.Beats; beat++ {
		for sub := 0; sub < subdivisions; sub++ {
			pitch := root
			if sub%2 == 1 && opts.Energy > 0.5 {
				pitch += 12
			}
			vel := scaledVelocity(92, opts.Energy)
			if sub > 0 {
				vel = scaledVelocity(78, opts.Energy)
			}
			events = append(events, jittered(models.NoteEvent{
				StartTick:      beat*models.TicksPerBeat + sub*subTicks,
				DurationTicks:  subTicks - 10,
				MidiNoteNumber: groove.ClampPitch(pitch),
				Velocity:       vel,
			}, opts.Humanize*octavePulseScale, opts.Rng))
		}
	}
	return events
}

// syncopatedHit is one slot of the fixed syncopation template.
type syncopatedHit struct {
	step     int // sixteenth step within the bar
	toneIdx  int // chord-tone index (0 root, 1 third, 2 fifth)
	velocity int
}

var syncopatedTemplate = []syncopatedHit{
	{step: 0, toneIdx: 0, velocity: 110},
	{step: 5, toneIdx: 2, velocity: 88},
	{step: 8, toneIdx: 0, velocity: 100},
	{step: 12, toneIdx: 1, velocity: 84},
	{step: 14, toneIdx: 2, velocity: 80},
}

// syncopated repeats a five-hit 16-step template each bar of the span.
// Odd-step hits are the designated offbeats and take swing.
func syncopated(tones []string, opts Options) []models.NoteEvent {
	stepTicks := models.TicksPerBeat / 4
	bars := opts.Beats / 4
	if bars < 1 {
		bars = 1
	}

	var events []models.NoteEvent
	for bar := 0; bar < bars; bar++ {
		for _, hit := range syncopatedTemplate {
			tick := bar*16*stepTicks + hit.step*stepTicks
			if hit.step%2 == 1 && opts.Swing > 0 {
				tick += int(math.Round(opts.Swing * float64(stepTicks) * 0.5))
			}
			events = append(events, jittered(models.NoteEvent{
				StartTick:      tick,
				DurationTicks:  eighthTicks - 20,
				MidiNoteNumber: pitchForTone(tones, hit.toneIdx, opts),
				Velocity:       scaledVelocity(hit.velocity, opts.Energy),
			}, opts.Humanize, opts.Rng))
		}
	}
	return events
}

// pitchForTone resolves chord-tone index i in the bass register, clamping the
// index for triads missing upper tones.
func pitchForTone(tones []string, i int, opts Options) int {
	if i >= len(tones) {
		i = len(tones) - 1
	}
	return groove.ClampPitch(opts.Theory.PitchNumber(tones[i], opts.Octave))
}

func scaledVelocity(base int, energy float64) int {
	return groove.ClampVelocity(int(math.Round(float64(base) * (0.5 + energy*0.5))))
}

// jittered routes every variant's timing and velocity through the shared
// humanize math.
func jittered(ev models.NoteEvent, humanize float64, rng *rand.Rand) models.NoteEvent {
	if humanize > 0 {
		ev.StartTick += groove.JitterTicks(rng, timingJitterTicks*humanize)
		ev.Velocity += int(math.Round(groove.Jitter(rng, velocityJitter*humanize)))
		if ev.StartTick < 0 {
			ev.StartTick = 0
		}
	}
	ev.Velocity = groove.ClampVelocity(ev.Velocity)
	if ev.DurationTicks < 1 {
		ev.DurationTicks = 1
	}
	return ev
}
