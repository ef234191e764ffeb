package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChordTones(t *testing.T) {
	tests := []struct {
		name     string
		symbol   string
		expected []string
	}{
		{
			name:     "C major",
			symbol:   "C",
			expected: []string{"C", "E", "G"},
		},
		{
			name:     "E minor",
			symbol:   "Em",
			expected: []string{"E", "G", "B"},
		},
		{
			name:     "A minor 7th",
			symbol:   "Am7",
			expected: []string{"A", "C", "E", "G"},
		},
		{
			name:     "C major 7th",
			symbol:   "Cmaj7",
			expected: []string{"C", "E", "G", "B"},
		},
		{
			name:     "dominant 7th",
			symbol:   "G7",
			expected: []string{"G", "B", "D", "F"},
		},
		{
			name:     "minor 7th with flat root",
			symbol:   "Bbm7",
			expected: []string{"A#", "C#", "F", "G#"},
		},
		{
			name:     "diminished",
			symbol:   "Bdim",
			expected: []string{"B", "D", "F"},
		},
		{
			name:     "sus4",
			symbol:   "Dsus4",
			expected: []string{"D", "G", "A"},
		},
		{
			name:     "slash chord ignores bass",
			symbol:   "G7/B",
			expected: []string{"G", "B", "D", "F"},
		},
		{
			name:     "unknown symbol falls back to C major triad",
			symbol:   "Xyz9",
			expected: []string{"C", "E", "G"},
		},
		{
			name:     "empty symbol falls back to C major triad",
			symbol:   "",
			expected: []string{"C", "E", "G"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Standard{}.ChordTones(tt.symbol))
		})
	}
}

func TestScaleTones(t *testing.T) {
	tests := []struct {
		name     string
		scale    string
		expected []string
	}{
		{
			name:     "C major",
			scale:    "C major",
			expected: []string{"C", "D", "E", "F", "G", "A", "B"},
		},
		{
			name:     "A minor",
			scale:    "A minor",
			expected: []string{"A", "B", "C", "D", "E", "F", "G"},
		},
		{
			name:     "D dorian",
			scale:    "D dorian",
			expected: []string{"D", "E", "F", "G", "A", "B", "C"},
		},
		{
			name:     "bare mode roots on C",
			scale:    "major",
			expected: []string{"C", "D", "E", "F", "G", "A", "B"},
		},
		{
			name:     "unknown falls back to C major",
			scale:    "H gypsy",
			expected: []string{"C", "D", "E", "F", "G", "A", "B"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Standard{}.ScaleTones(tt.scale))
		})
	}
}

func TestPitchNumber(t *testing.T) {
	tests := []struct {
		name     string
		note     string
		octave   int
		expected int
	}{
		{name: "middle C", note: "C", octave: 4, expected: 60},
		{name: "A4", note: "A", octave: 4, expected: 69},
		{name: "low E", note: "E", octave: 1, expected: 28},
		{name: "sharp", note: "F#", octave: 3, expected: 54},
		{name: "flat equals sharp", note: "Gb", octave: 3, expected: 54},
		{name: "unknown note falls back to middle C", note: "H", octave: 2, expected: 60},
		{name: "clamped low", note: "C", octave: -3, expected: 0},
		{name: "clamped high", note: "B", octave: 10, expected: 127},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Standard{}.PitchNumber(tt.note, tt.octave))
		})
	}
}

func TestTranspose(t *testing.T) {
	tests := []struct {
		name      string
		note      string
		semitones int
		expected  string
	}{
		{name: "up a fifth", note: "C", semitones: 7, expected: "G"},
		{name: "up an octave wraps", note: "D", semitones: 12, expected: "D"},
		{name: "compound interval wraps", note: "C", semitones: 14, expected: "D"},
		{name: "down a semitone", note: "C", semitones: -1, expected: "B"},
		{name: "flat input, sharp output", note: "Eb", semitones: 2, expected: "F"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Standard{}.Transpose(tt.note, tt.semitones))
		})
	}
}
