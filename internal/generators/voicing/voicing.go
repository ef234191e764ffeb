// Package voicing realizes chords as concrete pitch sets and renders them
// with comping patterns. Voice-leading state (the previous chord's voicing)
// is threaded explicitly through Build so multi-chord tracks connect
// smoothly without any hidden generator state.
package voicing

import (
	"math"
	"math/rand"

	"github.com/Conceptual-Machines/magda-engine-go/internal/groove"
	"github.com/Conceptual-Machines/magda-engine-go/internal/models"
	"github.com/Conceptual-Machines/magda-engine-go/internal/theory"
)

const (
	defaultOctave = 3

	sustainGapTicks = 20  // sustained notes release just before the boundary
	stabTicks       = 190 // short comped hit length
	accentBoost     = 10

	stabEnergyFloor  = 0.6 // denser stab grid above this energy
	compEnergyFloor  = 0.7 // denser Charleston grid above this energy
	compJitterWiden  = 1.6 // comping uses looser time than other patterns
	compVelocityCap  = 85  // comping stays conversational, never slams
	compVelocityBase = 72

	timingJitterTicks = 15.0
	velocityJitter    = 8.0
)

// Options parameterize one chord span.
type Options struct {
	Beats         int
	Energy        float64
	Humanize      float64
	BaseOctave    int     // zero means the harmony default
	VelocityScale float64 // texture passes <1 for its softer pad role
	SustainBoost  int     // extra sustain ticks for the texture role
	Rng           *rand.Rand
	Theory        theory.Analyzer
}

// Build selects the note set for a chord per its color hint and assigns
// octaves. When prev is non-empty, each note's octave is chosen from the
// three octaves around the previous voicing to minimize movement; otherwise
// notes spread upward two at a time from the base octave.
func Build(th theory.Analyzer, chord, color string, prev models.Voicing, baseOctave int) models.Voicing {
	if baseOctave == 0 {
		baseOctave = defaultOctave
	}
	tones := th.ChordTones(chord)

	var names []string
	switch color {
	case "jazzy", "shell-voicings":
		// Shell: root + third + seventh (fifth when no seventh exists).
		names = []string{tones[0], toneAt(tones, 1)}
		if len(tones) >= 4 {
			names = append(names, tones[3])
		} else {
			names = append(names, toneAt(tones, 2))
		}
	case "open":
		// Spread: root low, fifth mid, third high.
		names = []string{tones[0], toneAt(tones, 2), toneAt(tones, 1)}
	default:
		// Simple close triad from the lowest three tones.
		names = tones
		if len(names) > 3 {
			names = names[:3]
		}
	}

	voiced := make(models.Voicing, 0, len(names))
	for i, name := range names {
		oct := baseOctave + i/2
		if len(prev) > 0 {
			oct = leadOctave(th, name, prev, i)
		}
		voiced = append(voiced, models.VoicedNote{Name: name, Octave: oct})
	}
	return voiced
}

// leadOctave picks the octave for one target note by searching the octave
// above and below the previous voicing's corresponding note, keeping the
// placement whose pitch lands nearest any previous pitch.
func leadOctave(th theory.Analyzer, name string, prev models.Voicing, idx int) int {
	anchor := prev[idx%len(prev)].Octave

	best := anchor
	bestDist := math.MaxInt32
	for _, oct := range []int{anchor - 1, anchor, anchor + 1} {
		pitch := th.PitchNumber(name, oct)
		dist := math.MaxInt32
		for _, pn := range prev {
			d := pitch - th.PitchNumber(pn.Name, pn.Octave)
			if d < 0 {
				d = -d
			}
			if d < dist {
				dist = d
			}
		}
		if dist < bestDist {
			bestDist = dist
			best = oct
		}
	}
	return best
}

// Generate voices the chord and renders it with the requested pattern,
// returning the events plus the voicing for the caller to thread into the
// next chord. Unknown patterns yield no events.
func Generate(chord, pattern, color string, prev models.Voicing, opts Options) ([]models.NoteEvent, models.Voicing) {
	if opts.Beats < 1 {
		opts.Beats = 4
	}
	if opts.VelocityScale == 0 {
		opts.VelocityScale = 1
	}
	if pattern == "shell-voicings" && color == "" {
		color = "shell-voicings"
	}

	voiced := Build(opts.Theory, chord, color, prev, opts.BaseOctave)

	var events []models.NoteEvent
	switch pattern {
	case "sustained":
		events = sustained(voiced, opts)
	case "rhythmic-stabs":
		events = stabs(voiced, opts)
	case "shell-voicings":
		events = comping(voiced, opts)
	}
	return events, voiced
}

// sustained holds every voiced note for the span minus a release gap, each
// onset micro-jittered independently.
func sustained(voiced models.Voicing, opts Options) []models.NoteEvent {
	duration := opts.Beats*models.TicksPerBeat - sustainGapTicks + opts.SustainBoost
	baseVel := scaledVelocity(84, opts)

	var events []models.NoteEvent
	for _, vn := range voiced {
		start := 0
		if opts.Humanize > 0 {
			start = groove.JitterTicks(opts.Rng, timingJitterTicks*opts.Humanize)
			if start < 0 {
				start = 0
			}
		}
		events = append(events, models.NoteEvent{
			StartTick:      start,
			DurationTicks:  duration,
			MidiNoteNumber: pitchOf(opts.Theory, vn),
			Velocity:       baseVel,
		})
	}
	return events
}

// stabs hits the voicing on beats {0,2}, or {0,1.5,2,3.5} at high energy.
// On-beat hits are accented, the pushed hits softened.
func stabs(voiced models.Voicing, opts Options) []models.NoteEvent {
	beats := []float64{0, 2}
	if opts.Energy > stabEnergyFloor {
		beats = []float64{0, 1.5, 2, 3.5}
	}

	var events []models.NoteEvent
	for _, beat := range beats {
		if beat >= float64(opts.Beats) {
			continue
		}
		vel := scaledVelocity(86, opts)
		if beat == math.Trunc(beat) {
			vel += accentBoost
		} else {
			vel -= accentBoost
		}
		events = append(events, hitAll(voiced, beat, stabTicks, vel, opts, 1)...)
	}
	return events
}

// comping plays Charleston-style shell hits at {0,1.5}, expanding to
// {0,1.5,2.5,3} at high energy, with wider jitter and a capped soft velocity
// range for a conversational feel.
func comping(voiced models.Voicing, opts Options) []models.NoteEvent {
	beats := []float64{0, 1.5}
	if opts.Energy > compEnergyFloor {
		beats = []float64{0, 1.5, 2.5, 3}
	}

	var events []models.NoteEvent
	for _, beat := range beats {
		if beat >= float64(opts.Beats) {
			continue
		}
		vel := scaledVelocity(compVelocityBase, opts)
		if vel > compVelocityCap {
			vel = compVelocityCap
		}
		events = append(events, hitAll(voiced, beat, stabTicks+40, vel, opts, compJitterWiden)...)
	}
	return events
}

// hitAll strikes every voicing note together at a beat offset.
func hitAll(voiced models.Voicing, beat float64, duration, velocity int, opts Options, jitterScale float64) []models.NoteEvent {
	baseTick := int(math.Round(beat * models.TicksPerBeat))

	events := make([]models.NoteEvent, 0, len(voiced))
	for _, vn := range voiced {
		tick := baseTick
		vel := velocity
		if opts.Humanize > 0 {
			tick += groove.JitterTicks(opts.Rng, timingJitterTicks*opts.Humanize*jitterScale)
			vel += int(math.Round(groove.Jitter(opts.Rng, velocityJitter*opts.Humanize)))
			if tick < 0 {
				tick = 0
			}
		}
		events = append(events, models.NoteEvent{
			StartTick:      tick,
			DurationTicks:  duration,
			MidiNoteNumber: pitchOf(opts.Theory, vn),
			Velocity:       groove.ClampVelocity(vel),
		})
	}
	return events
}

func pitchOf(th theory.Analyzer, vn models.VoicedNote) int {
	return groove.ClampPitch(th.PitchNumber(vn.Name, vn.Octave))
}

func scaledVelocity(base int, opts Options) int {
	v := float64(base) * (0.5 + opts.Energy*0.5) * opts.VelocityScale
	return groove.ClampVelocity(int(math.Round(v)))
}

func toneAt(tones []string, i int) string {
	if i >= len(tones) {
		i = len(tones) - 1
	}
	return tones[i]
}
