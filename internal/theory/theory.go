// Package theory provides the harmonic primitives the generators depend on:
// chord-symbol and scale-name resolution, note-name arithmetic, and absolute
// pitch conversion. Generators only ever see the Analyzer interface, so the
// lookup tables here can be swapped for a richer theory backend without
// touching any generation algorithm.
package theory

import "strings"

// Analyzer is the narrow contract the engine requires from harmonic analysis.
// Every method degrades to a documented default instead of failing: an
// unrecognized chord resolves to a C major triad, an unrecognized scale to
// C major, an unresolvable note to middle C (60).
type Analyzer interface {
	// ChordTones resolves a chord symbol to its ordered pitch-class names
	// (root first).
	ChordTones(symbol string) []string
	// ScaleTones resolves a scale name like "C major" or "A minor" to its
	// ordered pitch-class names.
	ScaleTones(name string) []string
	// PitchNumber converts a note name plus octave to an absolute MIDI
	// pitch number (C4 = 60 = middle C), clamped to 0-127.
	PitchNumber(note string, octave int) int
	// Transpose moves a note name by a semitone offset, returning the new
	// pitch-class name (sharps preferred).
	Transpose(note string, semitones int) string
}

// Standard is the built-in table-driven Analyzer.
type Standard struct{}

var sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var noteOffsets = map[string]int{
	"C": 0, "C#": 1, "Db": 1,
	"D": 2, "D#": 3, "Eb": 3,
	"E": 4,
	"F": 5, "F#": 6, "Gb": 6,
	"G": 7, "G#": 8, "Ab": 8,
	"A": 9, "A#": 10, "Bb": 10,
	"B": 11,
}

var scaleIntervals = map[string][]int{
	"major":            {0, 2, 4, 5, 7, 9, 11},
	"minor":            {0, 2, 3, 5, 7, 8, 10},
	"dorian":           {0, 2, 3, 5, 7, 9, 10},
	"mixolydian":       {0, 2, 4, 5, 7, 9, 10},
	"lydian":           {0, 2, 4, 6, 7, 9, 11},
	"phrygian":         {0, 1, 3, 5, 7, 8, 10},
	"pentatonic":       {0, 2, 4, 7, 9},
	"minor-pentatonic": {0, 3, 5, 7, 10},
	"blues":            {0, 3, 5, 6, 7, 10},
}

// ChordTones parses symbols like "C", "Em", "Am7", "Cmaj7", "F#dim",
// "Bbsus4", "G7/B". The slash bass is ignored for tone selection; inversions
// are an octave-placement concern handled by voicing. Unrecognized symbols
// fall back to the C major triad.
func (Standard) ChordTones(symbol string) []string {
	base := symbol
	if i := strings.Index(symbol, "/"); i >= 0 {
		base = strings.TrimSpace(symbol[:i])
	}

	root, rest, ok := splitRoot(base)
	if !ok {
		return []string{"C", "E", "G"}
	}

	quality := parseQuality(rest)
	intervals := chordIntervals(quality, parseExtensions(rest))

	tones := make([]string, 0, len(intervals))
	for _, iv := range intervals {
		tones = append(tones, Standard{}.Transpose(root, iv))
	}
	return tones
}

// ScaleTones parses names like "C major", "A minor", "D dorian", or a bare
// mode name (rooted on C). Unrecognized names fall back to the C major scale.
func (Standard) ScaleTones(name string) []string {
	root := "C"
	mode := strings.ToLower(strings.TrimSpace(name))

	fields := strings.Fields(mode)
	if len(fields) == 2 {
		if r, _, ok := splitRoot(strings.ToUpper(fields[0][:1]) + fields[0][1:]); ok {
			root = r
			mode = fields[1]
		}
	}

	intervals, ok := scaleIntervals[mode]
	if !ok {
		root = "C"
		intervals = scaleIntervals["major"]
	}

	tones := make([]string, 0, len(intervals))
	for _, iv := range intervals {
		tones = append(tones, Standard{}.Transpose(root, iv))
	}
	return tones
}

// PitchNumber uses the MIDI convention (octave+1)*12 + semitone, giving
// C-1 = 0 and C4 = 60. Unresolvable names return middle C.
func (Standard) PitchNumber(note string, octave int) int {
	offset, ok := noteOffsets[note]
	if !ok {
		return 60
	}
	pitch := (octave+1)*12 + offset
	if pitch < 0 {
		pitch = 0
	}
	if pitch > 127 {
		pitch = 127
	}
	return pitch
}

// Transpose shifts a pitch-class name by semitones, wrapping within the
// octave. Unknown names are treated as C.
func (Standard) Transpose(note string, semitones int) string {
	offset := noteOffsets[note]
	idx := (offset + semitones) % 12
	if idx < 0 {
		idx += 12
	}
	return sharpNames[idx]
}

// splitRoot extracts the root note from a chord symbol ("F#m7" -> "F#",
// "m7"). Returns ok=false when the leading characters are not a valid root.
func splitRoot(symbol string) (root, rest string, ok bool) {
	if symbol == "" {
		return "", "", false
	}
	root = symbol[:1]
	rest = symbol[1:]
	if len(symbol) > 1 && (symbol[1] == '#' || symbol[1] == 'b') {
		root = symbol[:2]
		rest = symbol[2:]
	}
	if _, valid := noteOffsets[root]; !valid {
		return "", "", false
	}
	return root, rest, true
}

func parseQuality(rest string) string {
	switch {
	case strings.HasPrefix(rest, "dim"):
		return "diminished"
	case strings.HasPrefix(rest, "aug"):
		return "augmented"
	case strings.HasPrefix(rest, "sus2"):
		return "sus2"
	case strings.HasPrefix(rest, "sus4"):
		return "sus4"
	case strings.HasPrefix(rest, "m") && !strings.HasPrefix(rest, "maj"):
		return "minor"
	default:
		return "major"
	}
}

func parseExtensions(rest string) []string {
	var exts []string

	// maj7/min7 must come out before the bare quality markers, otherwise
	// TrimPrefix("m") corrupts "maj7" to "aj7".
	if strings.Contains(rest, "maj7") {
		exts = append(exts, "maj7")
		rest = strings.ReplaceAll(rest, "maj7", "")
	}
	if strings.Contains(rest, "min7") {
		exts = append(exts, "min7")
		rest = strings.ReplaceAll(rest, "min7", "")
	}

	rest = strings.TrimPrefix(rest, "m")
	rest = strings.TrimPrefix(rest, "dim")
	rest = strings.TrimPrefix(rest, "aug")
	rest = strings.TrimPrefix(rest, "sus2")
	rest = strings.TrimPrefix(rest, "sus4")

	if strings.Contains(rest, "7") {
		exts = append(exts, "7")
	}
	if strings.Contains(rest, "9") {
		exts = append(exts, "9")
	}
	if strings.Contains(rest, "11") {
		exts = append(exts, "11")
	}
	if strings.Contains(rest, "13") {
		exts = append(exts, "13")
	}
	return exts
}

func chordIntervals(quality string, extensions []string) []int {
	var intervals []int

	switch quality {
	case "minor":
		intervals = []int{0, 3, 7}
	case "diminished":
		intervals = []int{0, 3, 6}
	case "augmented":
		intervals = []int{0, 4, 8}
	case "sus2":
		intervals = []int{0, 2, 7}
	case "sus4":
		intervals = []int{0, 5, 7}
	default:
		intervals = []int{0, 4, 7}
	}

	for _, ext := range extensions {
		switch ext {
		case "7", "min7":
			intervals = append(intervals, 10)
		case "maj7":
			intervals = append(intervals, 11)
		case "9":
			intervals = append(intervals, 14)
		case "11":
			intervals = append(intervals, 17)
		case "13":
			intervals = append(intervals, 21)
		}
	}
	return intervals
}
