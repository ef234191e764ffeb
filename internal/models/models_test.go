package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChordAtLoopsPastTheEnd(t *testing.T) {
	m := MusicalContext{
		ChordProgression: []ChordSpec{
			{Symbol: "Dm7"},
			{Symbol: "G7"},
			{Symbol: "Cmaj7"},
		},
	}

	assert.Equal(t, "G7", m.ChordAt(1).Symbol)
	assert.Equal(t, "Dm7", m.ChordAt(3).Symbol)
	assert.Equal(t, "G7", m.ChordAt(7).Symbol)
}

func TestNoteEventEndTick(t *testing.T) {
	ev := NoteEvent{StartTick: 480, DurationTicks: 460}
	assert.Equal(t, 940, ev.EndTick())
}

func TestProducerCommandRoundTrip(t *testing.T) {
	raw := []byte(`{
		"genre": "jazz",
		"musical": {
			"key": "C major",
			"timeSignature": "4/4",
			"tempo": {"bpm": 96},
			"harmonicRhythm": "slow",
			"chordProgression": [{"symbol": "Am7", "color": "jazzy"}]
		},
		"arrangement": {
			"sectionType": "chorus",
			"density": "high",
			"activeVoices": [{"role": "bass", "activity": "busy", "patternHint": "walking"}]
		},
		"expression": {"energy": 0.8, "tension": 0.2, "humanize": 0.5, "swing": 0.1, "dynamics": "dramatic"}
	}`)

	var cmd ProducerCommand
	require.NoError(t, json.Unmarshal(raw, &cmd))

	assert.Equal(t, 96.0, cmd.Musical.Tempo.BPM)
	assert.Equal(t, HarmonicRhythmSlow, cmd.Musical.HarmonicRhythm)
	require.Len(t, cmd.Arrangement.ActiveVoices, 1)
	assert.Equal(t, RoleBass, cmd.Arrangement.ActiveVoices[0].Role)
	assert.Equal(t, ActivityBusy, cmd.Arrangement.ActiveVoices[0].Activity)
	assert.Empty(t, cmd.ProcessingHints)
}
