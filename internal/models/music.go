package models

// TicksPerBeat is the fixed timing resolution: 480 ticks per quarter-note
// beat. Every component computes in these ticks.
const TicksPerBeat = 480

// Expression carries optional per-note controller data for the
// serialization collaborator. Generators leave it nil unless a style
// explicitly writes bend or pressure.
type Expression struct {
	PitchBend  int `json:"pitchBend,omitempty"`
	Aftertouch int `json:"aftertouch,omitempty"`
}

// NoteEvent represents a single musical note with timing and pitch information.
// Events are immutable once produced: humanization returns new events rather
// than mutating in place.
type NoteEvent struct {
	StartTick      int         `json:"startTick"`
	DurationTicks  int         `json:"durationTicks"`
	MidiNoteNumber int         `json:"midiNoteNumber"`
	Velocity       int         `json:"velocity"`
	Expression     *Expression `json:"expression,omitempty"`
}

// EndTick returns the first tick after the note stops sounding.
func (n NoteEvent) EndTick() int {
	return n.StartTick + n.DurationTicks
}

// EffectSettings describes the per-track effect chain applied by the
// serialization/playback collaborators. Purely styling metadata, not
// algorithmic.
type EffectSettings struct {
	Reverb      float64 `json:"reverb"`
	Delay       float64 `json:"delay"`
	Distortion  float64 `json:"distortion"`
	Compression float64 `json:"compression"`
}

// Track holds one voice's generated events plus its styling.
type Track struct {
	ID         string         `json:"id"`
	Role       VoiceRole      `json:"role"`
	Instrument string         `json:"instrument"`
	Events     []NoteEvent    `json:"events"`
	Effects    EffectSettings `json:"effects"`
}

// AutomationPoint is a timed parameter change targeting the mix layer.
type AutomationPoint struct {
	Target string  `json:"target"`
	AtMs   float64 `json:"atMs"`
	Value  float64 `json:"value"`
}

// MusicSegment is the engine's sole output type: a fully time-resolved,
// multi-track bundle ready for serialization or playback.
type MusicSegment struct {
	ID              string            `json:"id"`
	DurationMs      float64           `json:"durationMs"`
	Tempo           float64           `json:"tempo"`
	TimeSignature   string            `json:"timeSignature"`
	Tracks          []Track           `json:"tracks"`
	Automation      []AutomationPoint `json:"automation,omitempty"`
	ProcessingHints map[string]string `json:"processingHints,omitempty"`
}

// VoicedNote is one note of a voicing: a pitch-class name with an assigned
// octave.
type VoicedNote struct {
	Name   string `json:"name"`
	Octave int    `json:"octave"`
}

// Voicing is an ordered set of voiced notes realizing a chord. It is carried
// forward between chords of the same track as "previous voicing" state for
// voice leading, scoped to a single track-generation run.
type Voicing []VoicedNote
