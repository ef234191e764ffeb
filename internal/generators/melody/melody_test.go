package melody

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/magda-engine-go/internal/models"
	"github.com/Conceptual-Machines/magda-engine-go/internal/theory"
)

func testOptions(seed int64) Options {
	return Options{
		Beats:  4,
		Energy: 0.5,
		Scale:  "C major",
		Rng:    rand.New(rand.NewSource(seed)),
		Theory: theory.Standard{},
	}
}

func TestRiffShapeAndRhythm(t *testing.T) {
	opts := testOptions(1)
	events, last := Generate("C", "riff-based", opts)
	require.Len(t, events, 6) // 0.5+0.5+1+1 then 0.5+0.5 fills 4 beats

	c5 := 72
	e5 := 76
	g5 := 79
	wantPitches := []int{c5, e5, g5, e5, c5, e5}
	wantStarts := []int{0, 240, 480, 960, 1440, 1680}
	for i, ev := range events {
		assert.Equal(t, wantPitches[i], ev.MidiNoteNumber, "event %d pitch", i)
		assert.Equal(t, wantStarts[i], ev.StartTick, "event %d start", i)
	}
	assert.Equal(t, e5, last)
}

func TestRiffAccentsEveryFourthNote(t *testing.T) {
	events, _ := Generate("C", "riff-based", testOptions(1))
	require.GreaterOrEqual(t, len(events), 5)

	base := events[1].Velocity
	assert.Equal(t, base+ostinatoAccent, events[0].Velocity)
	assert.Equal(t, base+ostinatoAccent, events[4].Velocity)
	assert.Equal(t, base, events[2].Velocity)
}

func TestLyricalStaysInPalette(t *testing.T) {
	th := theory.Standard{}
	allowed := map[int]bool{}
	for _, oct := range []int{5, 6} {
		for _, name := range th.ChordTones("Cmaj7") {
			allowed[th.PitchNumber(name, oct)] = true
		}
		for _, name := range th.ScaleTones("C major") {
			allowed[th.PitchNumber(name, oct)] = true
		}
	}

	for seed := int64(0); seed < 20; seed++ {
		events, _ := Generate("Cmaj7", "lyrical", testOptions(seed))
		for _, ev := range events {
			assert.True(t, allowed[ev.MidiNoteNumber], "seed %d: pitch %d outside palette", seed, ev.MidiNoteNumber)
		}
	}
}

func TestStepwiseMotionStaysWithinReach(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		opts := testOptions(seed)
		opts.PrevPitch = 72 // C5
		events, _ := Generate("Cmaj7", "lyrical", opts)

		last := opts.PrevPitch
		for _, ev := range events {
			interval := ev.MidiNoteNumber - last
			if interval < 0 {
				interval = -interval
			}
			assert.LessOrEqual(t, interval, stepReach, "seed %d", seed)
			last = ev.MidiNoteNumber
		}
	}
}

func TestFirstNoteWithoutHistoryIsChordRoot(t *testing.T) {
	checked := 0
	for seed := int64(0); seed < 10; seed++ {
		events, _ := Generate("Fmaj7", "lyrical", testOptions(seed))
		if len(events) == 0 {
			continue
		}
		assert.Equal(t, 77, events[0].MidiNoteNumber, "seed %d", seed) // F5
		checked++
	}
	require.Positive(t, checked)
}

func TestCallResponseResolvesOnRoot(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		events, last := Generate("G7", "call-response", testOptions(seed))
		require.NotEmpty(t, events)

		g5 := 79
		assert.Equal(t, g5, last, "seed %d", seed)
		final := events[len(events)-1]
		assert.Equal(t, g5, final.MidiNoteNumber, "seed %d", seed)
		assert.Equal(t, 3*models.TicksPerBeat, final.StartTick, "seed %d", seed)
	}
}

func TestCallResponseDynamicContrast(t *testing.T) {
	events, _ := Generate("C", "call-response", testOptions(2))
	require.NotEmpty(t, events)

	for _, ev := range events[:len(events)-1] {
		if ev.StartTick < 2*models.TicksPerBeat {
			assert.Equal(t, scaledVelocity(forteVelocity, 0.5), ev.Velocity)
		} else {
			assert.Equal(t, scaledVelocity(mezzoVelocity, 0.5), ev.Velocity)
		}
	}
}

func TestImprovisatoryChromaticismNeedsTension(t *testing.T) {
	th := theory.Standard{}
	inPalette := map[int]bool{}
	for _, oct := range []int{5, 6} {
		for _, name := range th.ChordTones("Cmaj7") {
			inPalette[th.PitchNumber(name, oct)] = true
		}
		for _, name := range th.ScaleTones("C major") {
			inPalette[th.PitchNumber(name, oct)] = true
		}
	}

	// With zero tension no chromatic neighbors appear.
	for seed := int64(0); seed < 10; seed++ {
		opts := testOptions(seed)
		opts.Tension = 0
		events, _ := Generate("Cmaj7", "improvisatory", opts)
		for _, ev := range events {
			assert.True(t, inPalette[ev.MidiNoteNumber], "seed %d: pitch %d", seed, ev.MidiNoteNumber)
		}
	}

	// At full tension some passing tones fall outside the palette.
	chromatic := 0
	for seed := int64(0); seed < 30; seed++ {
		opts := testOptions(seed)
		opts.Tension = 1
		opts.PrevPitch = 72
		events, _ := Generate("Cmaj7", "improvisatory", opts)
		for _, ev := range events {
			if !inPalette[ev.MidiNoteNumber] {
				chromatic++
			}
		}
	}
	assert.Positive(t, chromatic)
}

func TestEventsStayInsideSpan(t *testing.T) {
	styles := []string{"lyrical", "riff-based", "improvisatory", "call-response"}
	span := 4 * models.TicksPerBeat

	for _, style := range styles {
		t.Run(style, func(t *testing.T) {
			for seed := int64(0); seed < 10; seed++ {
				opts := testOptions(seed)
				events, _ := Generate("Am7", style, opts)
				for _, ev := range events {
					assert.GreaterOrEqual(t, ev.StartTick, 0)
					assert.LessOrEqual(t, ev.EndTick(), span, "style %s seed %d", style, seed)
					assert.GreaterOrEqual(t, ev.Velocity, 1)
					assert.LessOrEqual(t, ev.Velocity, 127)
					assert.GreaterOrEqual(t, ev.DurationTicks, 1)
				}
			}
		})
	}
}

func TestUnknownStyleFallsBackToLyrical(t *testing.T) {
	a, _ := Generate("C", "nonexistent", testOptions(7))
	b, _ := Generate("C", "lyrical", testOptions(7))
	assert.Equal(t, b, a)
}
