// Package melody generates lead lines. Pitch choice is mostly stepwise:
// candidates are chord and scale tones near the previous pitch, weighted
// toward small intervals, with continuity threaded across chords through an
// explicit previous-pitch value.
package melody

import (
	"math"
	"math/rand"
	"sort"

	"github.com/Conceptual-Machines/magda-engine-go/internal/groove"
	"github.com/Conceptual-Machines/magda-engine-go/internal/models"
	"github.com/Conceptual-Machines/magda-engine-go/internal/theory"
)

const (
	defaultOctave = 5

	stepReach = 4 // stepwise candidates stay within a major third

	lyricalRestProb   = 0.15
	passingProbScale  = 0.3 // improvisatory chromaticism grows with tension
	restProbScale     = 0.3 // improvisatory rests grow as energy falls
	articulationGap   = 30  // release before the next onset
	forteVelocity     = 98
	mezzoVelocity     = 76
	ostinatoAccent    = 15
	timingJitterTicks = 20.0
	velocityJitter    = 12.0
)

// Options parameterize one chord span of melody.
type Options struct {
	Beats     int
	Energy    float64
	Tension   float64
	Humanize  float64
	Octave    int    // zero means the lead default
	Scale     string // key-derived scale name, e.g. "C major"
	PrevPitch int    // previous note for stepwise continuity, 0 = none
	Rng       *rand.Rand
	Theory    theory.Analyzer
}

// Generate renders one chord span in the requested style and returns the
// events plus the last sounded pitch for the caller to thread into the next
// chord. Unknown styles fall back to lyrical.
func Generate(chord, style string, opts Options) ([]models.NoteEvent, int) {
	if opts.Octave == 0 {
		opts.Octave = defaultOctave
	}
	if opts.Beats < 1 {
		opts.Beats = 4
	}

	switch style {
	case "riff-based":
		return riff(chord, opts)
	case "improvisatory":
		return improvisatory(chord, opts)
	case "call-response":
		return callResponse(chord, opts)
	default:
		return lyrical(chord, opts)
	}
}

// lyrical favors long notes at low energy and moves stepwise through chord
// and scale tones, resting occasionally for phrasing.
func lyrical(chord string, opts Options) ([]models.NoteEvent, int) {
	palette := tonePitches(chord, opts, true)
	last := opts.PrevPitch

	durations := []groove.Weighted[float64]{
		{Value: 0.5, Weight: 0.5 + opts.Energy},
		{Value: 1, Weight: 1.2},
		{Value: 1.5, Weight: 0.6 + (1-opts.Energy)*0.5},
		{Value: 2, Weight: (1 - opts.Energy) * 1.2},
	}

	var events []models.NoteEvent
	pos := 0.0
	for pos < float64(opts.Beats) {
		if opts.Rng.Float64() < lyricalRestProb {
			pos++
			continue
		}

		beats := groove.PickWeighted(opts.Rng, durations)
		if pos+beats > float64(opts.Beats) {
			beats = float64(opts.Beats) - pos
		}

		pitch := stepwisePitch(palette, last, chord, opts)
		events = append(events, jittered(models.NoteEvent{
			StartTick:      tickAt(pos),
			DurationTicks:  durationTicks(beats),
			MidiNoteNumber: pitch,
			Velocity:       scaledVelocity(84, opts.Energy),
		}, opts))
		last = pitch
		pos += beats
	}
	return events, last
}

// riff plays a fixed 4-note ostinato over chord tones with an
// eighth/eighth/quarter/quarter rhythm, accenting every fourth note.
func riff(chord string, opts Options) ([]models.NoteEvent, int) {
	tones := opts.Theory.ChordTones(chord)
	shape := []int{0, 1, 2, 1}
	rhythm := []float64{0.5, 0.5, 1, 1}

	last := opts.PrevPitch
	var events []models.NoteEvent
	pos := 0.0
	for i := 0; pos < float64(opts.Beats); i++ {
		beats := rhythm[i%len(rhythm)]
		if pos+beats > float64(opts.Beats) {
			beats = float64(opts.Beats) - pos
		}

		toneIdx := shape[i%len(shape)]
		if toneIdx >= len(tones) {
			toneIdx = len(tones) - 1
		}
		pitch := groove.ClampPitch(opts.Theory.PitchNumber(tones[toneIdx], opts.Octave))

		vel := scaledVelocity(82, opts.Energy)
		if i%4 == 0 {
			vel = groove.ClampVelocity(vel + ostinatoAccent)
		}
		events = append(events, jittered(models.NoteEvent{
			StartTick:      tickAt(pos),
			DurationTicks:  durationTicks(beats),
			MidiNoteNumber: pitch,
			Velocity:       vel,
		}, opts))
		last = pitch
		pos += beats
	}
	return events, last
}

// improvisatory runs fast variable rhythms down to sixteenths and triplets,
// resting more as energy falls and slipping in chromatic passing tones in
// proportion to tension.
func improvisatory(chord string, opts Options) ([]models.NoteEvent, int) {
	palette := tonePitches(chord, opts, true)
	last := opts.PrevPitch

	durations := []groove.Weighted[float64]{
		{Value: 0.25, Weight: 0.6 + opts.Energy},
		{Value: 1.0 / 3, Weight: 0.5},
		{Value: 0.5, Weight: 1},
		{Value: 0.75, Weight: 0.5},
		{Value: 1, Weight: 0.4 + (1-opts.Energy)*0.6},
	}

	var events []models.NoteEvent
	pos := 0.0
	for pos < float64(opts.Beats) {
		if opts.Rng.Float64() < restProbScale*(1-opts.Energy) {
			pos += 0.5
			continue
		}

		beats := groove.PickWeighted(opts.Rng, durations)
		if pos+beats > float64(opts.Beats) {
			beats = float64(opts.Beats) - pos
		}

		var pitch int
		if last > 0 && opts.Rng.Float64() < passingProbScale*opts.Tension {
			// Chromatic neighbor of the previous note.
			if opts.Rng.Intn(2) == 0 {
				pitch = groove.ClampPitch(last + 1)
			} else {
				pitch = groove.ClampPitch(last - 1)
			}
		} else {
			pitch = stepwisePitch(palette, last, chord, opts)
		}

		events = append(events, jittered(models.NoteEvent{
			StartTick:      tickAt(pos),
			DurationTicks:  durationTicks(beats),
			MidiNoteNumber: pitch,
			Velocity:       scaledVelocity(86, opts.Energy),
		}, opts))
		last = pitch
		pos += beats
	}
	return events, last
}

// callResponse plays the first half of the span from chord tones at forte,
// answers from scale tones at a softer dynamic, and lands on the chord root.
func callResponse(chord string, opts Options) ([]models.NoteEvent, int) {
	chordPalette := tonePitches(chord, opts, false)
	scalePalette := scalePitches(opts)
	half := float64(opts.Beats) / 2

	var events []models.NoteEvent
	pos := 0.0
	for pos < float64(opts.Beats)-1 {
		palette := chordPalette
		vel := forteVelocity
		if pos >= half {
			palette = scalePalette
			vel = mezzoVelocity
		}

		events = append(events, jittered(models.NoteEvent{
			StartTick:      tickAt(pos),
			DurationTicks:  durationTicks(0.5),
			MidiNoteNumber: palette[opts.Rng.Intn(len(palette))],
			Velocity:       scaledVelocity(vel, opts.Energy),
		}, opts))
		pos += 0.5
	}

	// Resolve on the root.
	root := groove.ClampPitch(opts.Theory.PitchNumber(opts.Theory.ChordTones(chord)[0], opts.Octave))
	events = append(events, jittered(models.NoteEvent{
		StartTick:      tickAt(float64(opts.Beats) - 1),
		DurationTicks:  durationTicks(1),
		MidiNoteNumber: root,
		Velocity:       scaledVelocity(mezzoVelocity, opts.Energy),
	}, opts))
	return events, root
}

// tonePitches builds the candidate pitch pool across the melody register:
// chord tones, plus scale tones when withScale is set, over two adjacent
// octaves.
func tonePitches(chord string, opts Options, withScale bool) []int {
	seen := map[int]bool{}
	var pool []int
	add := func(name string, octave int) {
		p := groove.ClampPitch(opts.Theory.PitchNumber(name, octave))
		if !seen[p] {
			seen[p] = true
			pool = append(pool, p)
		}
	}

	for _, oct := range []int{opts.Octave, opts.Octave + 1} {
		for _, name := range opts.Theory.ChordTones(chord) {
			add(name, oct)
		}
		if withScale {
			for _, name := range opts.Theory.ScaleTones(opts.Scale) {
				add(name, oct)
			}
		}
	}
	sort.Ints(pool)
	return pool
}

func scalePitches(opts Options) []int {
	var pool []int
	for _, oct := range []int{opts.Octave, opts.Octave + 1} {
		for _, name := range opts.Theory.ScaleTones(opts.Scale) {
			pool = append(pool, groove.ClampPitch(opts.Theory.PitchNumber(name, oct)))
		}
	}
	sort.Ints(pool)
	return pool
}

// stepwisePitch picks the next note from candidates within a major third of
// the previous pitch, weighting nearer candidates heavier. Without a
// previous pitch, or when nothing is in reach, it falls back to the chord
// root in the melody register.
func stepwisePitch(palette []int, last int, chord string, opts Options) int {
	if last <= 0 {
		return groove.ClampPitch(opts.Theory.PitchNumber(opts.Theory.ChordTones(chord)[0], opts.Octave))
	}

	var candidates []groove.Weighted[int]
	for _, p := range palette {
		dist := p - last
		if dist < 0 {
			dist = -dist
		}
		if dist > stepReach || p == last {
			continue
		}
		candidates = append(candidates, groove.Weighted[int]{
			Value:  p,
			Weight: 1.0 / float64(1+dist),
		})
	}
	if len(candidates) == 0 {
		return groove.ClampPitch(opts.Theory.PitchNumber(opts.Theory.ChordTones(chord)[0], opts.Octave))
	}
	return groove.PickWeighted(opts.Rng, candidates)
}

func tickAt(beats float64) int {
	return int(math.Round(beats * models.TicksPerBeat))
}

func durationTicks(beats float64) int {
	d := int(math.Round(beats*models.TicksPerBeat)) - articulationGap
	if d < 1 {
		d = 1
	}
	return d
}

func scaledVelocity(base int, energy float64) int {
	return groove.ClampVelocity(int(math.Round(float64(base) * (0.5 + energy*0.5))))
}

func jittered(ev models.NoteEvent, opts Options) models.NoteEvent {
	if opts.Humanize > 0 {
		ev.StartTick += groove.JitterTicks(opts.Rng, timingJitterTicks*opts.Humanize)
		ev.Velocity += int(math.Round(groove.Jitter(opts.Rng, velocityJitter*opts.Humanize)))
		if ev.StartTick < 0 {
			ev.StartTick = 0
		}
	}
	ev.Velocity = groove.ClampVelocity(ev.Velocity)
	return ev
}
