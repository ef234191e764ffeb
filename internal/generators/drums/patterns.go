package drums

// DrumPattern is a one-bar, 16-step grid: one velocity lane per drum sound,
// 0 = rest. Swing shifts the odd (offbeat) steps later.
type DrumPattern struct {
	Name   string
	Sounds map[string][16]int
	Swing  float64
}

// General MIDI percussion notes for each lane name.
var drumNotes = map[string]int{
	"kick":    36,
	"rim":     37,
	"snare":   38,
	"clap":    39,
	"hat":     42,
	"openhat": 46,
	"lowtom":  45,
	"hightom": 50,
	"crash":   49,
	"ride":    51,
	"shaker":  70,
}

const defaultPatternName = "backbeat"

// patterns is the grid library. Velocities are pre-energy values; the
// generator rescales them with the command's energy.
var patterns = map[string]DrumPattern{
	"four-on-floor": {
		Name: "four-on-floor",
		Sounds: map[string][16]int{
			"kick":    {100, 0, 0, 0, 100, 0, 0, 0, 100, 0, 0, 0, 100, 0, 0, 0},
			"clap":    {0, 0, 0, 0, 100, 0, 0, 0, 0, 0, 0, 0, 100, 0, 0, 0},
			"hat":     {0, 0, 80, 0, 0, 0, 80, 0, 0, 0, 80, 0, 0, 0, 80, 0},
			"openhat": {0, 0, 0, 0, 0, 0, 0, 60, 0, 0, 0, 0, 0, 0, 0, 60},
		},
	},
	"boom-bap": {
		Name: "boom-bap",
		Sounds: map[string][16]int{
			"kick":  {110, 0, 0, 0, 0, 0, 0, 70, 0, 0, 90, 0, 0, 0, 0, 0},
			"snare": {0, 0, 0, 0, 100, 0, 0, 0, 0, 0, 0, 0, 100, 0, 0, 0},
			"hat":   {90, 0, 70, 0, 90, 0, 70, 0, 90, 0, 70, 0, 90, 0, 70, 0},
		},
		Swing: 0.35,
	},
	"boom-bap-b": {
		Name: "boom-bap-b",
		Sounds: map[string][16]int{
			"kick":  {110, 0, 0, 60, 0, 0, 85, 0, 0, 0, 95, 0, 0, 55, 0, 0},
			"snare": {0, 0, 0, 0, 100, 0, 0, 0, 0, 40, 0, 0, 100, 0, 0, 45},
			"hat":   {90, 0, 70, 0, 90, 0, 70, 0, 90, 0, 70, 0, 90, 0, 70, 0},
		},
		Swing: 0.4,
	},
	"breakbeat": {
		Name: "breakbeat",
		Sounds: map[string][16]int{
			"kick":  {110, 0, 0, 0, 0, 0, 80, 0, 0, 75, 0, 0, 0, 0, 0, 0},
			"snare": {0, 0, 0, 0, 100, 0, 0, 45, 0, 0, 50, 0, 100, 0, 0, 40},
			"hat":   {85, 0, 85, 0, 85, 0, 85, 0, 85, 0, 85, 0, 85, 0, 85, 0},
			"ride":  {0, 0, 0, 0, 0, 0, 0, 0, 70, 0, 0, 0, 0, 0, 70, 0},
		},
	},
	"half-time": {
		Name: "half-time",
		Sounds: map[string][16]int{
			"kick":  {110, 0, 0, 0, 0, 0, 0, 0, 0, 0, 70, 0, 0, 0, 0, 0},
			"snare": {0, 0, 0, 0, 0, 0, 0, 0, 105, 0, 0, 0, 0, 0, 0, 0},
			"hat":   {80, 0, 60, 0, 80, 0, 60, 0, 80, 0, 60, 0, 80, 0, 60, 0},
		},
	},
	"backbeat": {
		Name: "backbeat",
		Sounds: map[string][16]int{
			"kick":  {110, 0, 0, 0, 0, 0, 0, 0, 95, 0, 60, 0, 0, 0, 0, 0},
			"snare": {0, 0, 0, 0, 100, 0, 0, 0, 0, 0, 0, 0, 100, 0, 0, 0},
			"hat":   {85, 0, 70, 0, 85, 0, 70, 0, 85, 0, 70, 0, 85, 0, 70, 0},
		},
	},
	"shuffle": {
		Name: "shuffle",
		Sounds: map[string][16]int{
			"kick":  {110, 0, 0, 0, 0, 0, 70, 0, 95, 0, 0, 0, 0, 0, 65, 0},
			"snare": {0, 0, 0, 0, 100, 0, 0, 0, 0, 0, 0, 0, 100, 0, 0, 0},
			"ride":  {90, 0, 60, 0, 90, 0, 60, 0, 90, 0, 60, 0, 90, 0, 60, 0},
		},
		Swing: 0.6,
	},
	"trap-hat": {
		Name: "trap-hat",
		Sounds: map[string][16]int{
			"kick": {110, 0, 0, 0, 0, 0, 0, 75, 0, 0, 0, 0, 80, 0, 0, 0},
			"clap": {0, 0, 0, 0, 0, 0, 0, 0, 105, 0, 0, 0, 0, 0, 0, 0},
			"hat":  {90, 55, 70, 55, 90, 55, 70, 90, 55, 70, 55, 90, 70, 55, 90, 55},
			"rim":  {0, 0, 0, 45, 0, 0, 0, 0, 0, 0, 45, 0, 0, 0, 0, 0},
		},
	},
	"bossa": {
		Name: "bossa",
		Sounds: map[string][16]int{
			"kick":   {95, 0, 0, 85, 0, 0, 0, 0, 95, 0, 0, 85, 0, 0, 0, 0},
			"rim":    {0, 0, 0, 90, 0, 0, 90, 0, 0, 0, 90, 0, 0, 90, 0, 0},
			"shaker": {75, 55, 65, 55, 75, 55, 65, 55, 75, 55, 65, 55, 75, 55, 65, 55},
		},
	},
}

// hintPatterns maps a producer pattern hint to the candidate pattern names
// sampled for it. Unmapped hints fall back to the default pattern.
var hintPatterns = map[string][]string{
	"four-on-floor": {"four-on-floor"},
	"house":         {"four-on-floor"},
	"boom-bap":      {"boom-bap", "boom-bap-b"},
	"hip-hop":       {"boom-bap", "boom-bap-b", "half-time"},
	"breakbeat":     {"breakbeat"},
	"funk":          {"breakbeat", "backbeat"},
	"half-time":     {"half-time"},
	"rock":          {"backbeat"},
	"backbeat":      {"backbeat"},
	"shuffle":       {"shuffle"},
	"swing":         {"shuffle"},
	"trap":          {"trap-hat"},
	"latin":         {"bossa"},
	"bossa":         {"bossa"},
}
