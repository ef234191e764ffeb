package arps

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/magda-engine-go/internal/models"
	"github.com/Conceptual-Machines/magda-engine-go/internal/theory"
)

func testOptions() Options {
	return Options{
		Beats:  4,
		Energy: 0.5,
		Rate:   "eighth",
		Rng:    rand.New(rand.NewSource(1)),
		Theory: theory.Standard{},
	}
}

func pitchesOf(events []models.NoteEvent) []int {
	out := make([]int, len(events))
	for i, ev := range events {
		out[i] = ev.MidiNoteNumber
	}
	return out
}

func TestShapeOrderings(t *testing.T) {
	// C over two octaves from octave 4: C4 E4 G4 C5 E5 G5.
	c4, e4, g4, c5, e5, g5 := 60, 64, 67, 72, 76, 79

	tests := []struct {
		shape    string
		expected []int
	}{
		{"up", []int{c4, e4, g4, c5, e5, g5, c4, e4}},
		{"down", []int{g5, e5, c5, g4, e4, c4, g5, e5}},
		{"up-down", []int{c4, e4, g4, c5, e5, g5, e5, c5}},
		{"down-up", []int{g5, e5, c5, g4, e4, c4, e4, g4}},
		{"1-3-5-3", []int{c4, e4, g4, e4, c4, e4, g4, e4}},
		{"1-5-3-5", []int{c4, g4, e4, g4, c4, g4, e4, g4}},
		{"broken", []int{c4, g4, e5, e4, c5, g5, c4, g4}},
	}

	for _, tt := range tests {
		t.Run(tt.shape, func(t *testing.T) {
			events := Generate("C", tt.shape, testOptions())
			require.Len(t, events, 8) // eighths over 4 beats
			assert.Equal(t, tt.expected, pitchesOf(events))
		})
	}
}

func TestUpDownSkipsEndpointRepeats(t *testing.T) {
	opts := testOptions()
	opts.Rate = "sixteenth"
	events := Generate("C", "up-down", opts)
	require.Len(t, events, 16)

	// 10-step cycle: C4 E4 G4 C5 E5 G5 E5 C5 G4 E4, no doubled top or bottom.
	pitches := pitchesOf(events)
	for i := 1; i < len(pitches); i++ {
		assert.NotEqual(t, pitches[i-1], pitches[i], "adjacent repeat at %d", i)
	}
	assert.Equal(t, pitches[0], pitches[10]) // cycle length 10
}

func TestUnknownShapeFallsBackToUp(t *testing.T) {
	got := Generate("C", "zigzag", testOptions())
	want := Generate("C", "up", testOptions())
	assert.Equal(t, want, got)
}

func TestRandomShapeIsAPermutation(t *testing.T) {
	opts := testOptions()
	opts.Rate = "quarter"
	opts.OctaveRange = 1
	events := Generate("C", "random", opts)
	require.Len(t, events, 4)

	// One octave of C holds three tones, cycled: the first three events are
	// some permutation of them.
	got := append([]int{}, pitchesOf(events)[:3]...)
	sort.Ints(got)
	assert.Equal(t, []int{60, 64, 67}, got)
	assert.Equal(t, events[0].MidiNoteNumber, events[3].MidiNoteNumber)
}

func TestRateControlsStepCount(t *testing.T) {
	tests := []struct {
		rate  string
		count int
	}{
		{"quarter", 4},
		{"eighth", 8},
		{"sixteenth", 16},
		{"triplet-eighth", 12},
		{"warp-speed", 8}, // unknown rates fall back to eighths
	}

	for _, tt := range tests {
		t.Run(tt.rate, func(t *testing.T) {
			opts := testOptions()
			opts.Rate = tt.rate
			events := Generate("Am", "up", opts)
			assert.Len(t, events, tt.count)
		})
	}
}

func TestBeatStepsAreAccented(t *testing.T) {
	events := Generate("C", "up", testOptions())
	require.Len(t, events, 8)

	for i, ev := range events {
		if ev.StartTick%models.TicksPerBeat == 0 {
			assert.Equal(t, events[1].Velocity+beatAccent, ev.Velocity, "event %d", i)
		} else {
			assert.Equal(t, events[1].Velocity, ev.Velocity, "event %d", i)
		}
	}
}

func TestTripletTiming(t *testing.T) {
	opts := testOptions()
	opts.Beats = 1
	opts.Rate = "triplet-eighth"
	events := Generate("C", "up", opts)
	require.Len(t, events, 3)

	assert.Equal(t, 0, events[0].StartTick)
	assert.Equal(t, 160, events[1].StartTick)
	assert.Equal(t, 320, events[2].StartTick)
	assert.Equal(t, 160-stepGapTicks, events[2].DurationTicks)
}

func TestEventsStayInsideSpan(t *testing.T) {
	opts := testOptions()
	opts.Humanize = 0.8
	opts.Rate = "sixteenth"
	span := opts.Beats * models.TicksPerBeat

	events := Generate("Fmaj7", "up-down", opts)
	require.NotEmpty(t, events)
	for _, ev := range events {
		assert.GreaterOrEqual(t, ev.StartTick, 0)
		// The inter-step gap leaves more room than the jitter range, so
		// even humanized notes stay inside the span.
		assert.LessOrEqual(t, ev.EndTick(), span)
		assert.GreaterOrEqual(t, ev.DurationTicks, 1)
		assert.GreaterOrEqual(t, ev.Velocity, 1)
		assert.LessOrEqual(t, ev.Velocity, 127)
	}
}
