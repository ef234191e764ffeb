package models

// HarmonicRhythm controls how many beats each chord of the progression
// occupies.
type HarmonicRhythm string

const (
	HarmonicRhythmSlow      HarmonicRhythm = "slow"
	HarmonicRhythmMedium    HarmonicRhythm = "medium"
	HarmonicRhythmFast      HarmonicRhythm = "fast"
	HarmonicRhythmIrregular HarmonicRhythm = "irregular"
)

// VoiceRole identifies which generator handles a voice.
type VoiceRole string

const (
	RoleLead     VoiceRole = "lead"
	RoleHarmony  VoiceRole = "harmony"
	RoleBass     VoiceRole = "bass"
	RoleRhythm   VoiceRole = "rhythm"
	RoleTexture  VoiceRole = "texture"
	RoleArpeggio VoiceRole = "arpeggio"
)

// Activity sets how busy a voice should be. Silent voices are skipped
// entirely by the orchestrator.
type Activity string

const (
	ActivitySilent Activity = "silent"
	ActivitySparse Activity = "sparse"
	ActivityNormal Activity = "normal"
	ActivityBusy   Activity = "busy"
)

// ChordSpec is one chord of the progression. Duration is advisory for
// collaborators; the engine derives the per-chord span from the harmonic
// rhythm. Color hints the voicing style ("simple", "jazzy", "open").
type ChordSpec struct {
	Symbol   string  `json:"symbol"`
	Duration float64 `json:"duration,omitempty"`
	Color    string  `json:"color,omitempty"`
}

// Tempo wraps the tempo block of a producer command.
type Tempo struct {
	BPM float64 `json:"bpm"`
}

// MusicalContext is the harmonic/timing portion of a producer command.
type MusicalContext struct {
	Key              string         `json:"key"`
	TimeSignature    string         `json:"timeSignature"`
	Tempo            Tempo          `json:"tempo"`
	HarmonicRhythm   HarmonicRhythm `json:"harmonicRhythm"`
	ChordProgression []ChordSpec    `json:"chordProgression"`
}

// VoiceAssignment activates one voice with optional styling hints. A missing
// PatternHint falls back to the role's default pattern; a missing Register
// falls back to the role's default octave.
type VoiceAssignment struct {
	Role        VoiceRole `json:"role"`
	Activity    Activity  `json:"activity"`
	PatternHint string    `json:"patternHint,omitempty"`
	Register    string    `json:"register,omitempty"`
}

// Arrangement describes which voices play and the overall section shape.
type Arrangement struct {
	SectionType  string            `json:"sectionType"`
	Density      string            `json:"density"`
	ActiveVoices []VoiceAssignment `json:"activeVoices"`
}

// ExpressionParams are the 0-1 performance knobs taken verbatim from the
// producer command. Dynamics is a named contour depth ("flat", "subtle",
// "moderate", "dramatic").
type ExpressionParams struct {
	Energy   float64 `json:"energy"`
	Tension  float64 `json:"tension"`
	Humanize float64 `json:"humanize"`
	Swing    float64 `json:"swing"`
	Dynamics string  `json:"dynamics"`
}

// ProducerCommand is the upstream decision object the engine consumes.
// Construction and validation happen upstream; the engine assumes the
// required fields of the contract are present and defaults everything
// optional.
type ProducerCommand struct {
	Genre           string            `json:"genre,omitempty"`
	Musical         MusicalContext    `json:"musical"`
	Arrangement     Arrangement       `json:"arrangement"`
	Expression      ExpressionParams  `json:"expression"`
	ProcessingHints map[string]string `json:"processingHints,omitempty"`
}

// ChordAt returns the progression chord at index i, looping past the end so
// lookahead ("next chord") is always defined for a non-empty progression.
func (m MusicalContext) ChordAt(i int) ChordSpec {
	return m.ChordProgression[i%len(m.ChordProgression)]
}
