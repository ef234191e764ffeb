// Package engine orchestrates the generators: it derives global timing from
// a producer command, dispatches each active voice to its generator,
// humanizes the results, and assembles the final multi-track segment.
package engine

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/Conceptual-Machines/magda-engine-go/internal/generators/arps"
	"github.com/Conceptual-Machines/magda-engine-go/internal/generators/bass"
	"github.com/Conceptual-Machines/magda-engine-go/internal/generators/drums"
	"github.com/Conceptual-Machines/magda-engine-go/internal/generators/melody"
	"github.com/Conceptual-Machines/magda-engine-go/internal/generators/voicing"
	"github.com/Conceptual-Machines/magda-engine-go/internal/groove"
	"github.com/Conceptual-Machines/magda-engine-go/internal/logger"
	"github.com/Conceptual-Machines/magda-engine-go/internal/models"
	"github.com/Conceptual-Machines/magda-engine-go/internal/theory"
)

const (
	defaultBPM = 120

	textureVelocityScale = 0.75 // texture pads sit under the harmony
	textureSustainBoost  = 15
)

// beatsPerChord maps harmonic rhythm to the beats each chord occupies.
// "irregular" collapses to 4 as a documented simplification.
var beatsPerChord = map[models.HarmonicRhythm]int{
	models.HarmonicRhythmSlow:      8,
	models.HarmonicRhythmMedium:    4,
	models.HarmonicRhythmFast:      2,
	models.HarmonicRhythmIrregular: 4,
}

// defaultHints supplies the per-role pattern when the command omits one.
var defaultHints = map[models.VoiceRole]string{
	models.RoleRhythm:   "backbeat",
	models.RoleBass:     "root-fifth",
	models.RoleHarmony:  "sustained",
	models.RoleTexture:  "sustained",
	models.RoleArpeggio: "up",
	models.RoleLead:     "lyrical",
}

// registerOffsets shifts a generator's base octave per the optional register
// hint.
var registerOffsets = map[string]int{
	"low":  -1,
	"high": 1,
}

// arpRates maps voice activity to the arpeggio step rate.
var arpRates = map[models.Activity]string{
	models.ActivitySparse: "quarter",
	models.ActivityNormal: "eighth",
	models.ActivityBusy:   "sixteenth",
}

// dynamicsDepth maps the command's named dynamics to the phrase-contour
// depth applied by humanization.
var dynamicsDepth = map[string]float64{
	"flat":     0.0,
	"subtle":   0.35,
	"moderate": 0.6,
	"dramatic": 1.0,
}

// Engine converts producer commands into music segments. It is cheap to
// create and safe to reuse; each Generate call reseeds its own RNG so
// identical commands on the same seed produce identical segments.
type Engine struct {
	theory theory.Analyzer
	seed   int64
}

// New builds an engine over the given harmonic analyzer and RNG seed.
// A nil analyzer uses the built-in tables.
func New(th theory.Analyzer, seed int64) *Engine {
	if th == nil {
		th = theory.Standard{}
	}
	return &Engine{theory: th, seed: seed}
}

// Generate converts a structurally valid command into a segment. It never
// returns an error: unknown symbols and hints degrade to defaults, and
// voices that produce no events are dropped. A command with no active voices
// yields an empty track list with the computed duration.
func (e *Engine) Generate(cmd models.ProducerCommand) models.MusicSegment {
	rng := rand.New(rand.NewSource(e.seed))

	bpm := cmd.Musical.Tempo.BPM
	if bpm <= 0 {
		bpm = defaultBPM
	}
	beats := beatsPerChord[cmd.Musical.HarmonicRhythm]
	if beats == 0 {
		beats = beatsPerChord[models.HarmonicRhythmMedium]
	}
	totalBeats := len(cmd.Musical.ChordProgression) * beats
	durationMs := float64(totalBeats) / (bpm / 60) * 1000

	var tracks []models.Track
	for _, voice := range cmd.Arrangement.ActiveVoices {
		if voice.Activity == models.ActivitySilent {
			continue
		}

		events := e.generateVoice(cmd, voice, beats, rng)
		if len(events) == 0 {
			// Nothing to play is not an error; the track is simply omitted.
			continue
		}

		events = groove.Humanize(events, groove.HumanizeOptions{
			Timing:          cmd.Expression.Humanize,
			Velocity:        cmd.Expression.Humanize,
			Swing:           cmd.Expression.Swing,
			DynamicRange:    dynamicsDepth[cmd.Expression.Dynamics],
			AccentDownbeats: voice.Role == models.RoleRhythm,
		}, rng)

		style := styleFor(cmd.Genre, voice.Role)
		tracks = append(tracks, models.Track{
			ID:         newID(rng),
			Role:       voice.Role,
			Instrument: style.Instrument,
			Events:     events,
			Effects:    style.Effects,
		})
	}

	segment := models.MusicSegment{
		ID:              newID(rng),
		DurationMs:      durationMs,
		Tempo:           bpm,
		TimeSignature:   cmd.Musical.TimeSignature,
		Tracks:          tracks,
		ProcessingHints: cmd.ProcessingHints,
	}

	logger.Info("segment generated", logger.Fields{
		"segment_id":  segment.ID,
		"genre":       cmd.Genre,
		"chords":      len(cmd.Musical.ChordProgression),
		"total_beats": totalBeats,
		"tracks":      len(tracks),
		"duration_ms": durationMs,
	})
	return segment
}

// generateVoice dispatches one voice to its generator and returns the raw
// (pre-humanization) events across the whole progression.
func (e *Engine) generateVoice(cmd models.ProducerCommand, voice models.VoiceAssignment, beats int, rng *rand.Rand) []models.NoteEvent {
	hint := voice.PatternHint
	if hint == "" {
		hint = defaultHints[voice.Role]
	}
	expr := cmd.Expression
	octaveShift := registerOffsets[voice.Register]
	progression := cmd.Musical.ChordProgression
	spanTicks := beats * models.TicksPerBeat

	switch voice.Role {
	case models.RoleRhythm:
		// Bars round up so a partial final bar still plays, then the events
		// are clipped back to the progression span.
		totalTicks := len(progression) * spanTicks
		bars := (len(progression)*beats + 3) / 4
		if bars < 1 {
			bars = 1
		}
		events := drums.Generate(hint, drums.Options{
			Bars:     bars,
			Energy:   expr.Energy,
			Humanize: expr.Humanize,
			Rng:      rng,
		})
		return clipEvents(events, totalTicks)

	case models.RoleBass:
		var events []models.NoteEvent
		for i, chord := range progression {
			next := cmd.Musical.ChordAt(i + 1)
			nextTones := e.theory.ChordTones(next.Symbol)
			chordEvents := bass.Generate(chord.Symbol, hint, bass.Options{
				Beats:    beats,
				Energy:   expr.Energy,
				Swing:    expr.Swing,
				Humanize: expr.Humanize,
				Octave:   2 + octaveShift,
				NextRoot: nextTones[0],
				Rng:      rng,
				Theory:   e.theory,
			})
			events = append(events, offsetEvents(chordEvents, i*spanTicks)...)
		}
		return events

	case models.RoleHarmony, models.RoleTexture:
		opts := voicing.Options{
			Beats:      beats,
			Energy:     expr.Energy,
			Humanize:   expr.Humanize,
			BaseOctave: 3 + octaveShift,
			Rng:        rng,
			Theory:     e.theory,
		}
		if voice.Role == models.RoleTexture {
			opts.VelocityScale = textureVelocityScale
			opts.SustainBoost = textureSustainBoost
		}

		var events []models.NoteEvent
		var prev models.Voicing
		for i, chord := range progression {
			chordEvents, voiced := voicing.Generate(chord.Symbol, hint, chord.Color, prev, opts)
			prev = voiced
			events = append(events, offsetEvents(chordEvents, i*spanTicks)...)
		}
		return events

	case models.RoleArpeggio:
		rate := arpRates[voice.Activity]
		var events []models.NoteEvent
		for i, chord := range progression {
			chordEvents := arps.Generate(chord.Symbol, hint, arps.Options{
				Beats:      beats,
				Energy:     expr.Energy,
				Humanize:   expr.Humanize,
				BaseOctave: 4 + octaveShift,
				Rate:       rate,
				Rng:        rng,
				Theory:     e.theory,
			})
			events = append(events, offsetEvents(chordEvents, i*spanTicks)...)
		}
		return events

	case models.RoleLead:
		var events []models.NoteEvent
		prevPitch := 0
		for i, chord := range progression {
			chordEvents, last := melody.Generate(chord.Symbol, hint, melody.Options{
				Beats:     beats,
				Energy:    expr.Energy,
				Tension:   expr.Tension,
				Humanize:  expr.Humanize,
				Octave:    5 + octaveShift,
				Scale:     cmd.Musical.Key,
				PrevPitch: prevPitch,
				Rng:       rng,
				Theory:    e.theory,
			})
			prevPitch = last
			events = append(events, offsetEvents(chordEvents, i*spanTicks)...)
		}
		return events
	}

	logger.Warn("unknown voice role, skipping", logger.Fields{"role": string(voice.Role)})
	return nil
}

// newID draws a UUID from the seeded RNG, keeping segment and track IDs
// reproducible under a fixed seed.
func newID(rng *rand.Rand) string {
	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// offsetEvents shifts a chord span's events to its absolute position in the
// progression.
func offsetEvents(events []models.NoteEvent, ticks int) []models.NoteEvent {
	for i := range events {
		events[i].StartTick += ticks
	}
	return events
}

// clipEvents drops events starting at or past the limit and shortens any note
// still sounding across it.
func clipEvents(events []models.NoteEvent, limit int) []models.NoteEvent {
	out := events[:0]
	for _, ev := range events {
		if ev.StartTick >= limit {
			continue
		}
		if ev.EndTick() > limit {
			ev.DurationTicks = limit - ev.StartTick
		}
		out = append(out, ev)
	}
	return out
}
